package models

// Product is a sellable article with media, price, text and suggestion
// references plus typed properties.
type Product struct {
	ID         string
	Code       string
	Label      string
	Type       string // "default", "bundle", "select", ...
	Status     int
	Dataset    string
	Rating     float64 // average of visible reviews, maintained on review changes
	Ratings    int     // number of visible reviews
	Lists      []*ListItem
	Properties []*Property
}

func (p *Product) ItemID() string             { return p.ID }
func (p *Product) ResourceType() string       { return "product" }
func (p *Product) ListItems() []*ListItem     { return p.Lists }
func (p *Product) PropertyItems() []*Property { return p.Properties }

func (p *Product) ToMap() map[string]any {
	return map[string]any{
		"product.id":      p.ID,
		"product.code":    p.Code,
		"product.label":   p.Label,
		"product.type":    p.Type,
		"product.status":  p.Status,
		"product.dataset": p.Dataset,
		"product.rating":  p.Rating,
		"product.ratings": p.Ratings,
	}
}

// RefItems returns the resolved referenced items of a domain, filtered
// by list type if given.
func (p *Product) RefItems(domain, listType string) []Item {
	var items []Item
	for _, l := range p.Lists {
		if l.Domain != domain || l.Ref == nil {
			continue
		}
		if listType != "" && l.Type != listType {
			continue
		}
		items = append(items, l.Ref)
	}
	return items
}
