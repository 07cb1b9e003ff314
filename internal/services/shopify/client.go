package shopify

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"backoffice/internal/logger"

	"github.com/tomnomnom/linkheader"
)

const (
	apiVersion = "2023-10"
	pageLimit  = 250
)

type Client struct {
	// BaseURL is the admin API root, derived from the shop domain. Tests
	// point it at a local server.
	BaseURL string

	accessToken string
	httpClient  *http.Client
	logger      *logger.Logger
}

func NewClient(shopDomain, accessToken string, logger *logger.Logger) *Client {
	return &Client{
		BaseURL:     "https://" + NormalizeShopDomain(shopDomain),
		accessToken: accessToken,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// NormalizeShopDomain turns whatever domain string a vendor saved into the
// host the admin API lives on: protocol and trailing slash stripped, bare
// shop names suffixed with the storefront domain.
func NormalizeShopDomain(shopDomain string) string {
	d := strings.TrimSpace(shopDomain)
	d = strings.TrimPrefix(d, "https://")
	d = strings.TrimPrefix(d, "http://")
	d = strings.TrimSuffix(d, "/")
	if d != "" && !strings.Contains(d, ".") {
		d += ".myshopify.com"
	}
	return d
}

// FetchAllProducts fetches the full product catalog, following the Link
// header's rel="next" cursor until no further page exists.
func (c *Client) FetchAllProducts() ([]Product, error) {
	var all []Product

	url := fmt.Sprintf("%s/admin/api/%s/products.json?limit=%d", c.BaseURL, apiVersion, pageLimit)
	for url != "" {
		var page ProductsResponse
		next, err := c.getPage(url, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Products...)
		url = next
	}

	return all, nil
}

// FetchAllOrders fetches every order regardless of status, using the same
// cursor pagination as products.
func (c *Client) FetchAllOrders() ([]Order, error) {
	var all []Order

	url := fmt.Sprintf("%s/admin/api/%s/orders.json?status=any&limit=%d", c.BaseURL, apiVersion, pageLimit)
	for url != "" {
		var page OrdersResponse
		next, err := c.getPage(url, &page)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Orders...)
		url = next
	}

	return all, nil
}

// getPage issues one paginated GET, decodes the body into out and returns
// the URL of the next page, if any.
func (c *Client) getPage(url string, out interface{}) (string, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return "", newAPIError(resp.StatusCode, body)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return "", &ParseError{Err: err}
	}

	return nextPageURL(resp.Header.Get("Link")), nil
}

// nextPageURL extracts the rel="next" target from a Link response header.
func nextPageURL(header string) string {
	if header == "" {
		return ""
	}
	for _, link := range linkheader.Parse(header).FilterByRel("next") {
		return link.URL
	}
	return ""
}

// FetchProduct fetches a single product by ID
func (c *Client) FetchProduct(id int64) (*Product, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products/%d.json", c.BaseURL, apiVersion, id)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, newAPIError(resp.StatusCode, body)
	}

	var productResp struct {
		Product Product `json:"product"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&productResp); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &productResp.Product, nil
}

// CreateProduct creates a product in the store
func (c *Client) CreateProduct(payload ProductPayload) (*Product, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products.json", c.BaseURL, apiVersion)
	product, err := c.write(http.MethodPost, url, payload)
	if err != nil {
		c.logger.Error("shopify: create product %q failed: %v", payload.Title, err)
		return nil, err
	}
	c.logger.Info("shopify: created product %q (id %d)", product.Title, product.ID)
	return product, nil
}

// UpdateProduct updates an existing product in the store
func (c *Client) UpdateProduct(id int64, payload ProductPayload) (*Product, error) {
	url := fmt.Sprintf("%s/admin/api/%s/products/%d.json", c.BaseURL, apiVersion, id)
	product, err := c.write(http.MethodPut, url, payload)
	if err != nil {
		c.logger.Error("shopify: update product %d failed: %v", id, err)
		return nil, err
	}
	c.logger.Info("shopify: updated product %q (id %d)", product.Title, product.ID)
	return product, nil
}

func (c *Client) write(method, url string, payload ProductPayload) (*Product, error) {
	body := struct {
		Product ProductPayload `json:"product"`
	}{
		Product: payload,
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal product: %w", err)
	}
	c.logger.Debug("shopify: %s %s payload=%s", method, url, string(jsonData))

	req, err := http.NewRequest(method, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	c.logger.Debug("shopify: %s %s -> %d %s", method, url, resp.StatusCode, string(respBody))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, respBody)
	}

	var productResp struct {
		Product Product `json:"product"`
	}
	if err := json.Unmarshal(respBody, &productResp); err != nil {
		return nil, &ParseError{Err: err}
	}

	return &productResp.Product, nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)
	req.Header.Set("Content-Type", "application/json")
}
