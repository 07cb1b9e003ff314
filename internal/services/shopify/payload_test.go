package shopify

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Men's T-Shirt!!", "mens-t-shirt"},
		{"Widget", "widget"},
		{"  Spaced   Out  ", "spaced-out"},
		{"UPPER_case mix", "upper-case-mix"},
		{"100% Cotton Tee", "100-cotton-tee"},
		{"---", ""},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

func TestMatchKey(t *testing.T) {
	m := NewMapper()

	t.Run("PrefersDeclaredHandle", func(t *testing.T) {
		c := &Candidate{Title: "Completely Different", Handle: "Widget Handle"}
		assert.Equal(t, "widget-handle", m.MatchKey(c))
	})

	t.Run("DerivesFromTitle", func(t *testing.T) {
		c := &Candidate{Title: "Men's T-Shirt!!"}
		assert.Equal(t, "mens-t-shirt", m.MatchKey(c))
	})
}

func TestBuildCreate(t *testing.T) {
	m := NewMapper()

	t.Run("DefaultVariantSynthesis", func(t *testing.T) {
		c := &Candidate{Title: "Bare Product"}

		p := m.BuildCreate(c, "Acme")

		require.Len(t, p.Variants, 1)
		assert.Equal(t, "0", p.Variants[0].Price)
		assert.Equal(t, 0, p.Variants[0].InventoryQuantity)
		assert.NotNil(t, p.Options)
		assert.Empty(t, p.Options)
		assert.Equal(t, "Acme", p.Vendor)
		assert.Equal(t, "active", p.Status)
	})

	t.Run("DefaultVariantCarriesCandidatePrice", func(t *testing.T) {
		c := &Candidate{Title: "Priced Product", Price: "15.50"}

		p := m.BuildCreate(c, "Acme")

		require.Len(t, p.Variants, 1)
		assert.Equal(t, "15.50", p.Variants[0].Price)
	})

	t.Run("OptionsAndVariants", func(t *testing.T) {
		c := &Candidate{
			Title:  "Shirt",
			Status: "draft",
			Images: []CandidateImage{{Src: "https://cdn.example.com/shirt.png"}},
			Options: []CandidateOption{
				{Name: "Size", Values: []string{"S", "M"}},
				{Name: "Color", Values: []string{"Red"}, Position: 2},
			},
			Variants: []CandidateVariant{
				{Title: "S / Red", Price: "20", InventoryQuantity: 3, Option1: "S", Option2: "Red", Sku: "SH-S-R"},
				{Title: "M / Red", InventoryQuantity: -4, Option1: "M", Option2: "Red"},
			},
		}

		p := m.BuildCreate(c, "Acme")

		assert.Equal(t, "draft", p.Status)
		assert.Equal(t, "", p.BodyHTML)
		require.Len(t, p.Images, 1)
		assert.Equal(t, "https://cdn.example.com/shirt.png", p.Images[0].Src)

		require.Len(t, p.Options, 2)
		assert.Equal(t, 1, p.Options[0].Position, "position defaults to index+1")
		assert.Equal(t, 2, p.Options[1].Position)

		require.Len(t, p.Variants, 2)
		assert.Equal(t, "20", p.Variants[0].Price)
		assert.Equal(t, 3, p.Variants[0].InventoryQuantity)
		assert.Equal(t, "shopify", p.Variants[0].InventoryManagement)
		assert.Equal(t, "SH-S-R", p.Variants[0].Sku)
		assert.Equal(t, "0", p.Variants[1].Price, "missing price coerces to 0")
		assert.Equal(t, 0, p.Variants[1].InventoryQuantity, "negative inventory clamps to 0")
	})
}

func TestBuildUpdate(t *testing.T) {
	m := NewMapper()

	existing := &Product{
		ID:     42,
		Title:  "Widget",
		Handle: "widget",
		Variants: []Variant{
			{ID: 9, Sku: "A1"},
			{ID: 10, Sku: ""},
		},
	}

	t.Run("VariantIdentityBySku", func(t *testing.T) {
		c := &Candidate{
			Title: "Widget",
			Variants: []CandidateVariant{
				{Sku: "A1", Price: "20"},
				{Sku: "B2", Price: "30"},
			},
		}

		p := m.BuildUpdate(c, existing, "Acme")

		assert.Equal(t, int64(42), p.ID)
		require.Len(t, p.Variants, 2)
		assert.Equal(t, int64(9), p.Variants[0].ID, "matched SKU carries the existing variant id")
		assert.Equal(t, "20", p.Variants[0].Price)
		assert.Zero(t, p.Variants[1].ID, "unmatched SKU is emitted as a new variant")
		assert.Equal(t, "30", p.Variants[1].Price)
	})

	t.Run("UnmatchedVariantOmitsIDOnTheWire", func(t *testing.T) {
		c := &Candidate{
			Title:    "Widget",
			Variants: []CandidateVariant{{Sku: "B2", Price: "30"}},
		}

		p := m.BuildUpdate(c, existing, "Acme")
		data, err := json.Marshal(p.Variants[0])
		require.NoError(t, err)
		assert.NotContains(t, string(data), `"id"`)
		assert.NotContains(t, string(data), "product_id")
	})

	t.Run("OptionsCarryNoPosition", func(t *testing.T) {
		c := &Candidate{
			Title:   "Widget",
			Options: []CandidateOption{{Name: "Size", Values: []string{"S"}, Position: 7}},
		}

		p := m.BuildUpdate(c, existing, "Acme")

		require.Len(t, p.Options, 1)
		assert.Zero(t, p.Options[0].Position)
	})

	t.Run("NormalizesTagsAndStatus", func(t *testing.T) {
		c := &Candidate{
			Title:       "Widget",
			ProductType: "Gadget",
			Tags:        "a, b",
		}

		p := m.BuildUpdate(c, existing, "Acme")

		assert.Equal(t, "Gadget", p.ProductType)
		assert.Equal(t, "a, b", p.Tags)
		assert.Equal(t, "active", p.Status)
		assert.Equal(t, "Acme", p.Vendor)
		assert.Equal(t, "", p.BodyHTML, "vendor body html is never carried over")
	})
}

func TestCandidateFlexibleDecoding(t *testing.T) {
	t.Run("TagsAsArray", func(t *testing.T) {
		var c Candidate
		require.NoError(t, json.Unmarshal([]byte(`{"title":"X","tags":["a"," b ","c"]}`), &c))
		assert.Equal(t, "a, b, c", c.Tags.String())
	})

	t.Run("TagsAsString", func(t *testing.T) {
		var c Candidate
		require.NoError(t, json.Unmarshal([]byte(`{"title":"X","tags":"a, b"}`), &c))
		assert.Equal(t, "a, b", c.Tags.String())
	})

	t.Run("PriceAsNumber", func(t *testing.T) {
		var c Candidate
		require.NoError(t, json.Unmarshal([]byte(`{"title":"X","variants":[{"price":19.9}]}`), &c))
		require.Len(t, c.Variants, 1)
		assert.Equal(t, "19.9", c.Variants[0].Price.String())
	})

	t.Run("PriceAsString", func(t *testing.T) {
		var c Candidate
		require.NoError(t, json.Unmarshal([]byte(`{"title":"X","variants":[{"price":"19.90"}]}`), &c))
		require.Len(t, c.Variants, 1)
		assert.Equal(t, "19.90", c.Variants[0].Price.String())
	})

	t.Run("NullTags", func(t *testing.T) {
		var c Candidate
		require.NoError(t, json.Unmarshal([]byte(`{"title":"X","tags":null}`), &c))
		assert.Equal(t, "", c.Tags.String())
	})
}
