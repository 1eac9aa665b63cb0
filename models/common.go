package models

// ListItem is a typed reference from a parent entity into another
// domain. The reference carries its own attributes (list type, position,
// validity dates) distinct from the attributes of the referenced item.
type ListItem struct {
	ID       string
	Domain   string // referenced domain: "media", "price", "text", "product"
	RefID    string
	Type     string // list type: "default", "download", "suggestion", ...
	Position int
	Status   int
	Ref      Item // resolved referenced item, may be nil
}

// AttributeMap exports the reference attributes prefixed for the given
// parent type ("product.lists.type" etc).
func (l *ListItem) AttributeMap(parentType string) map[string]any {
	prefix := SchemaOf(parentType).ListPrefix
	return map[string]any{
		prefix + ".id":       l.ID,
		prefix + ".domain":   l.Domain,
		prefix + ".refid":    l.RefID,
		prefix + ".type":     l.Type,
		prefix + ".position": l.Position,
		prefix + ".status":   l.Status,
	}
}

// Property is a key/value entry attached to a parent entity.
type Property struct {
	ID         string
	Parent     string // parent resource type: "product", "media", ...
	Type       string // property type: "package-weight", "isbn", ...
	LanguageID string
	Value      string
}

func (p *Property) ItemID() string { return p.ID }

func (p *Property) ResourceType() string { return SchemaOf(p.Parent).PropertyType }

func (p *Property) ToMap() map[string]any {
	prefix := SchemaOf(p.Parent).PropertyType
	return map[string]any{
		prefix + ".id":         p.ID,
		prefix + ".type":       p.Type,
		prefix + ".languageid": p.LanguageID,
		prefix + ".value":      p.Value,
	}
}

// Media is an image or download attached to a product or service.
type Media struct {
	ID         string
	Type       string
	LanguageID string
	MimeType   string
	URL        string
	Preview    string
	Properties []*Property
}

func (m *Media) ItemID() string        { return m.ID }
func (m *Media) ResourceType() string  { return "media" }
func (m *Media) PropertyItems() []*Property { return m.Properties }

func (m *Media) ToMap() map[string]any {
	return map[string]any{
		"media.id":         m.ID,
		"media.type":       m.Type,
		"media.languageid": m.LanguageID,
		"media.mimetype":   m.MimeType,
		"media.url":        m.URL,
		"media.preview":    m.Preview,
	}
}

// Price carries a monetary amount plus costs and rebate in a currency.
type Price struct {
	ID         string
	Type       string
	CurrencyID string
	Quantity   int
	Value      string
	Costs      string
	Rebate     string
	TaxRate    string
}

func (p *Price) ItemID() string       { return p.ID }
func (p *Price) ResourceType() string { return "price" }

func (p *Price) ToMap() map[string]any {
	return map[string]any{
		"price.id":         p.ID,
		"price.type":       p.Type,
		"price.currencyid": p.CurrencyID,
		"price.quantity":   p.Quantity,
		"price.value":      p.Value,
		"price.costs":      p.Costs,
		"price.rebate":     p.Rebate,
		"price.taxrate":    p.TaxRate,
	}
}

// Text is a localized content snippet (name, short, long, meta).
type Text struct {
	ID         string
	Type       string
	LanguageID string
	Content    string
}

func (t *Text) ItemID() string       { return t.ID }
func (t *Text) ResourceType() string { return "text" }

func (t *Text) ToMap() map[string]any {
	return map[string]any{
		"text.id":         t.ID,
		"text.type":       t.Type,
		"text.languageid": t.LanguageID,
		"text.content":    t.Content,
	}
}

// Service is a delivery or payment option.
type Service struct {
	ID       string
	Type     string // "delivery" or "payment"
	Code     string
	Label    string
	Position int
	Status   int
	Lists    []*ListItem
}

func (s *Service) ItemID() string           { return s.ID }
func (s *Service) ResourceType() string     { return "service" }
func (s *Service) ListItems() []*ListItem   { return s.Lists }

func (s *Service) ToMap() map[string]any {
	return map[string]any{
		"service.id":       s.ID,
		"service.type":     s.Type,
		"service.code":     s.Code,
		"service.label":    s.Label,
		"service.position": s.Position,
		"service.status":   s.Status,
	}
}
