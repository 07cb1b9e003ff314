package shopify

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"
)

// Product represents a Shopify product
type Product struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	BodyHTML    string     `json:"body_html"`
	Vendor      string     `json:"vendor"`
	ProductType string     `json:"product_type"`
	Handle      string     `json:"handle"`
	Status      string     `json:"status"`
	Tags        string     `json:"tags"`
	Variants    []Variant  `json:"variants"`
	Images      []Image    `json:"images"`
	Options     []Option   `json:"options"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	PublishedAt *time.Time `json:"published_at"`
}

// Variant represents a product variant
type Variant struct {
	ID                  int64   `json:"id"`
	ProductID           int64   `json:"product_id"`
	Title               string  `json:"title"`
	Price               string  `json:"price"`
	Sku                 string  `json:"sku"`
	Position            int     `json:"position"`
	CompareAtPrice      *string `json:"compare_at_price"`
	InventoryManagement string  `json:"inventory_management"`
	InventoryQuantity   int     `json:"inventory_quantity"`
	Option1             *string `json:"option1"`
	Option2             *string `json:"option2"`
	Option3             *string `json:"option3"`
}

// Image represents a product image
type Image struct {
	ID       int64  `json:"id"`
	Position int    `json:"position"`
	Src      string `json:"src"`
}

// Option represents a product option
type Option struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position int      `json:"position"`
	Values   []string `json:"values"`
}

// Order represents a Shopify order
type Order struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	TotalPrice      string     `json:"total_price"`
	Currency        string     `json:"currency"`
	FinancialStatus string     `json:"financial_status"`
	LineItems       []LineItem `json:"line_items"`
	CreatedAt       time.Time  `json:"created_at"`
}

// LineItem is one order line, attributed to a vendor by name.
type LineItem struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Vendor   string `json:"vendor"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
	Sku      string `json:"sku"`
}

// Candidate is a vendor-sourced product awaiting reconciliation against the
// main store. The fields tolerate the loose shapes vendor feeds actually
// send: tags as an array or a comma string, prices as numbers or strings.
type Candidate struct {
	Title       string             `json:"title"`
	Handle      string             `json:"handle"`
	ProductType string             `json:"product_type"`
	Tags        FlexTags           `json:"tags"`
	Status      string             `json:"status"`
	Price       FlexPrice          `json:"price"`
	Images      []CandidateImage   `json:"images"`
	Options     []CandidateOption  `json:"options"`
	Variants    []CandidateVariant `json:"variants"`
}

type CandidateImage struct {
	Src string `json:"src"`
}

type CandidateOption struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Position int      `json:"position"`
}

type CandidateVariant struct {
	Title             string    `json:"title"`
	Price             FlexPrice `json:"price"`
	CompareAtPrice    FlexPrice `json:"compare_at_price"`
	InventoryQuantity int       `json:"inventory_quantity"`
	Option1           string    `json:"option1"`
	Option2           string    `json:"option2"`
	Option3           string    `json:"option3"`
	Sku               string    `json:"sku"`
}

// FlexTags accepts either a JSON array of tags or a single delimited string
// and normalizes to one comma-joined string.
type FlexTags string

func (t *FlexTags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*t = ""
		return nil
	}
	if data[0] == '[' {
		var list []string
		if err := json.Unmarshal(data, &list); err != nil {
			return err
		}
		for i := range list {
			list[i] = strings.TrimSpace(list[i])
		}
		*t = FlexTags(strings.Join(list, ", "))
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = FlexTags(s)
	return nil
}

func (t FlexTags) String() string {
	return string(t)
}

// FlexPrice accepts a JSON number or string price. The zero value means
// "not supplied".
type FlexPrice string

func (p *FlexPrice) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*p = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = FlexPrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = FlexPrice(n.String())
	return nil
}

func (p FlexPrice) String() string {
	return string(p)
}

// ProductPayload is the write shape the Admin API expects. The id is set
// only on updates. body_html is always sent, deliberately empty: vendor
// authored rich text is not carried into the main store.
type ProductPayload struct {
	ID          int64            `json:"id,omitempty"`
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type,omitempty"`
	Tags        string           `json:"tags,omitempty"`
	Status      string           `json:"status"`
	Images      []ImagePayload   `json:"images,omitempty"`
	Options     []OptionPayload  `json:"options"`
	Variants    []VariantPayload `json:"variants"`
}

type ImagePayload struct {
	Src string `json:"src"`
}

type OptionPayload struct {
	Name     string   `json:"name"`
	Values   []string `json:"values"`
	Position int      `json:"position,omitempty"`
}

// VariantPayload deliberately has no product_id field: the API computes
// variant ownership, and a stale product_id on an update payload makes it
// reject the variant.
type VariantPayload struct {
	ID                  int64  `json:"id,omitempty"`
	Title               string `json:"title,omitempty"`
	Price               string `json:"price"`
	CompareAtPrice      string `json:"compare_at_price,omitempty"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management,omitempty"`
	Option1             string `json:"option1,omitempty"`
	Option2             string `json:"option2,omitempty"`
	Option3             string `json:"option3,omitempty"`
	Sku                 string `json:"sku,omitempty"`
}

// ProductsResponse represents the response from the products API
type ProductsResponse struct {
	Products []Product `json:"products"`
}

// OrdersResponse represents the response from the orders API
type OrdersResponse struct {
	Orders []Order `json:"orders"`
}
