package shopify

type Mapper struct{}

func NewMapper() *Mapper {
	return &Mapper{}
}

// Slugify normalizes a title or handle into the store's handle alphabet:
// lower-cased, whitespace collapsed to single hyphens, everything outside
// [a-z0-9-] dropped.
func Slugify(s string) string {
	out := make([]byte, 0, len(s))
	hyphen := false
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			r += 'a' - 'A'
			fallthrough
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			out = append(out, byte(r))
			hyphen = false
		case r == ' ' || r == '\t' || r == '\n' || r == '-' || r == '_':
			if !hyphen && len(out) > 0 {
				out = append(out, '-')
				hyphen = true
			}
		}
	}
	if hyphen {
		out = out[:len(out)-1]
	}
	return string(out)
}

// MatchKey is the key a candidate is reconciled under: its declared handle
// when present, otherwise a handle derived from the title.
func (m *Mapper) MatchKey(c *Candidate) string {
	if c.Handle != "" {
		return Slugify(c.Handle)
	}
	return Slugify(c.Title)
}

// BuildCreate maps a candidate onto the payload for a brand new product in
// the main store.
func (m *Mapper) BuildCreate(c *Candidate, vendorName string) ProductPayload {
	p := ProductPayload{
		Title:  c.Title,
		Vendor: vendorName,
		Status: statusOrDefault(c.Status),
	}

	for _, img := range c.Images {
		p.Images = append(p.Images, ImagePayload{Src: img.Src})
	}

	if len(c.Variants) == 0 {
		// No declared variants: the store still requires one, so synthesize
		// a default carrying only the candidate's price and zero stock.
		p.Options = []OptionPayload{}
		p.Variants = []VariantPayload{{
			Price:             priceOrZero(c.Price),
			InventoryQuantity: 0,
		}}
		return p
	}

	p.Options = make([]OptionPayload, 0, len(c.Options))
	for i, o := range c.Options {
		pos := o.Position
		if pos == 0 {
			pos = i + 1
		}
		p.Options = append(p.Options, OptionPayload{Name: o.Name, Values: o.Values, Position: pos})
	}

	p.Variants = make([]VariantPayload, 0, len(c.Variants))
	for i := range c.Variants {
		p.Variants = append(p.Variants, m.buildVariant(&c.Variants[i], 0))
	}

	return p
}

// BuildUpdate maps a candidate onto the payload for an in-place update of
// existing. Candidate variants are matched to existing variants by SKU: a
// match carries the existing variant id (update in place), no match carries
// none (add as new variant).
func (m *Mapper) BuildUpdate(c *Candidate, existing *Product, vendorName string) ProductPayload {
	skuToID := make(map[string]int64, len(existing.Variants))
	for _, v := range existing.Variants {
		if v.Sku != "" {
			skuToID[v.Sku] = v.ID
		}
	}

	p := ProductPayload{
		ID:          existing.ID,
		Title:       c.Title,
		Vendor:      vendorName,
		ProductType: c.ProductType,
		Tags:        c.Tags.String(),
		Status:      statusOrDefault(c.Status),
	}

	p.Options = make([]OptionPayload, 0, len(c.Options))
	for _, o := range c.Options {
		p.Options = append(p.Options, OptionPayload{Name: o.Name, Values: o.Values})
	}

	p.Variants = make([]VariantPayload, 0, len(c.Variants))
	for i := range c.Variants {
		p.Variants = append(p.Variants, m.buildVariant(&c.Variants[i], skuToID[c.Variants[i].Sku]))
	}

	return p
}

func (m *Mapper) buildVariant(v *CandidateVariant, id int64) VariantPayload {
	qty := v.InventoryQuantity
	if qty < 0 {
		qty = 0
	}
	return VariantPayload{
		ID:                  id,
		Title:               v.Title,
		Price:               priceOrZero(v.Price),
		CompareAtPrice:      v.CompareAtPrice.String(),
		InventoryQuantity:   qty,
		InventoryManagement: "shopify",
		Option1:             v.Option1,
		Option2:             v.Option2,
		Option3:             v.Option3,
		Sku:                 v.Sku,
	}
}

func priceOrZero(p FlexPrice) string {
	if p == "" {
		return "0"
	}
	return p.String()
}

func statusOrDefault(status string) string {
	if status == "" {
		return "active"
	}
	return status
}
