package shopify

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-shop", "test-token", logger.New("error"))
	c.BaseURL = srv.URL
	return c, srv
}

func TestNormalizeShopDomain(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"widgets", "widgets.myshopify.com"},
		{"widgets.myshopify.com", "widgets.myshopify.com"},
		{"https://widgets.myshopify.com/", "widgets.myshopify.com"},
		{"http://shop.example.com", "shop.example.com"},
		{" widgets ", "widgets.myshopify.com"},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeShopDomain(tc.in), "NormalizeShopDomain(%q)", tc.in)
	}
}

func TestFetchAllProductsPagination(t *testing.T) {
	var requests int
	var srv *httptest.Server

	mux := http.NewServeMux()
	mux.HandleFunc("/admin/api/2023-10/products.json", func(w http.ResponseWriter, r *http.Request) {
		requests++
		require.Equal(t, "test-token", r.Header.Get("X-Shopify-Access-Token"))
		require.Equal(t, "250", r.URL.Query().Get("limit"))

		page := r.URL.Query().Get("page_info")
		switch page {
		case "":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2023-10/products.json?limit=250&page_info=p2>; rel="next"`, srv.URL))
			fmt.Fprint(w, `{"products":[{"id":1,"title":"One"},{"id":2,"title":"Two"}]}`)
		case "p2":
			w.Header().Set("Link", fmt.Sprintf(`<%s/admin/api/2023-10/products.json?limit=250&page_info=p3>; rel="next", <%s/admin/api/2023-10/products.json?limit=250&page_info=p1>; rel="previous"`, srv.URL, srv.URL))
			fmt.Fprint(w, `{"products":[{"id":3,"title":"Three"}]}`)
		case "p3":
			// Last page: no Link header.
			fmt.Fprint(w, `{"products":[{"id":4,"title":"Four"}]}`)
		default:
			t.Fatalf("unexpected page_info %q", page)
		}
	})

	c, server := newTestClient(t, mux)
	srv = server

	products, err := c.FetchAllProducts()
	require.NoError(t, err)

	assert.Equal(t, 3, requests, "one request per page")
	require.Len(t, products, 4)
	assert.Equal(t, int64(1), products[0].ID)
	assert.Equal(t, int64(4), products[3].ID)
}

func TestFetchAllProductsErrors(t *testing.T) {
	t.Run("NonOKStatus", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprint(w, "upstream down")
		}))

		_, err := c.FetchAllProducts()
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusServiceUnavailable, apiErr.Status)
		assert.Equal(t, "upstream down", apiErr.Body)
	})

	t.Run("UndecodableBody", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprint(w, "<html>not json</html>")
		}))

		_, err := c.FetchAllProducts()
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
	})
}

func TestCreateProduct(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/admin/api/2023-10/products.json", r.URL.Path)
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `{"product":{"id":7,"title":"Widget","handle":"widget"}}`)
		}))

		product, err := c.CreateProduct(ProductPayload{Title: "Widget"})
		require.NoError(t, err)
		assert.Equal(t, int64(7), product.ID)
		assert.Equal(t, "widget", product.Handle)
	})

	t.Run("StructuredErrorBody", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			fmt.Fprint(w, `{"errors":{"title":["can't be blank"]}}`)
		}))

		_, err := c.CreateProduct(ProductPayload{})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Status)
		assert.JSONEq(t, `{"title":["can't be blank"]}`, apiErr.Body)
	})

	t.Run("RawErrorBodyPreserved", func(t *testing.T) {
		c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			fmt.Fprint(w, "Bad Gateway")
		}))

		_, err := c.CreateProduct(ProductPayload{Title: "Widget"})
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, "Bad Gateway", apiErr.Body)
	})
}

func TestUpdateProduct(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/admin/api/2023-10/products/42.json", r.URL.Path)
		fmt.Fprint(w, `{"product":{"id":42,"title":"Widget v2"}}`)
	}))

	product, err := c.UpdateProduct(42, ProductPayload{ID: 42, Title: "Widget v2"})
	require.NoError(t, err)
	assert.Equal(t, "Widget v2", product.Title)
}

func TestFetchProduct(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/api/2023-10/products/9.json", r.URL.Path)
		fmt.Fprint(w, `{"product":{"id":9,"title":"Nine"}}`)
	}))

	product, err := c.FetchProduct(9)
	require.NoError(t, err)
	assert.Equal(t, int64(9), product.ID)
}

func TestFetchAllOrders(t *testing.T) {
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/api/2023-10/orders.json", r.URL.Path)
		require.Equal(t, "any", r.URL.Query().Get("status"))
		fmt.Fprint(w, `{"orders":[{"id":1,"name":"#1001","line_items":[{"id":5,"title":"Widget","vendor":"Acme","price":"10.00","quantity":2}]}]}`)
	}))

	orders, err := c.FetchAllOrders()
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Len(t, orders[0].LineItems, 1)
	assert.Equal(t, "Acme", orders[0].LineItems[0].Vendor)
}
