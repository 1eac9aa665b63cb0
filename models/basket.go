package models

import "strconv"

// Basket is the per-session shopping cart. It is transient until an
// order is placed from it; its sub-items are addressed by position or
// by their slot type, not by persistent ids.
type Basket struct {
	ID         string // session basket id, usually "default"
	CustomerID string
	CurrencyID string
	Comment    string
	Products   []*BasketProduct
	Addresses  []*BasketAddress
	Services   []*BasketService
	Coupons    []*BasketCoupon
}

func (b *Basket) ItemID() string       { return b.ID }
func (b *Basket) ResourceType() string { return "basket" }

func (b *Basket) ToMap() map[string]any {
	return map[string]any{
		"basket.id":         b.ID,
		"basket.customerid": b.CustomerID,
		"basket.currencyid": b.CurrencyID,
		"basket.comment":    b.Comment,
		"basket.price":      b.Total(),
	}
}

// Total sums the line prices. Monetary values are decimal strings, so
// the frontend layer keeps them in cents internally.
func (b *Basket) Total() string {
	var cents int64
	for _, p := range b.Products {
		cents += p.PriceCents * int64(p.Quantity)
	}
	return formatCents(cents)
}

func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign, c = "-", -c
	}
	return sign + strconv.FormatInt(c/100, 10) + "." + pad2(c%100)
}

func pad2(c int64) string {
	if c < 10 {
		return "0" + strconv.FormatInt(c, 10)
	}
	return strconv.FormatInt(c, 10)
}

// BasketProduct is one line in the basket. It has no persistent id and
// is addressed by its array position.
type BasketProduct struct {
	Position   int
	ProductID  string
	Code       string
	Name       string
	Quantity   int
	PriceCents int64
	CurrencyID string
}

// ItemID returns the array position, the positional id line items are
// addressed by while unsaved.
func (p *BasketProduct) ItemID() string       { return strconv.Itoa(p.Position) }
func (p *BasketProduct) ResourceType() string { return "basket.product" }

func (p *BasketProduct) ToMap() map[string]any {
	return map[string]any{
		"basket.product.position":   p.Position,
		"basket.product.prodid":     p.ProductID,
		"basket.product.code":       p.Code,
		"basket.product.name":       p.Name,
		"basket.product.quantity":   p.Quantity,
		"basket.product.price":      formatCents(p.PriceCents),
		"basket.product.currencyid": p.CurrencyID,
	}
}

// BasketAddress is a delivery or payment address slot, keyed by Type.
type BasketAddress struct {
	Type       string // "delivery" or "payment"
	Salutation string
	FirstName  string
	LastName   string
	Address1   string
	Address2   string
	PostalCode string
	City       string
	CountryID  string
	Email      string
}

func (a *BasketAddress) ItemID() string       { return a.Type }
func (a *BasketAddress) ResourceType() string { return "basket.address" }

func (a *BasketAddress) ToMap() map[string]any {
	return map[string]any{
		"basket.address.type":       a.Type,
		"basket.address.salutation": a.Salutation,
		"basket.address.firstname":  a.FirstName,
		"basket.address.lastname":   a.LastName,
		"basket.address.address1":   a.Address1,
		"basket.address.address2":   a.Address2,
		"basket.address.postal":     a.PostalCode,
		"basket.address.city":       a.City,
		"basket.address.countryid":  a.CountryID,
		"basket.address.email":      a.Email,
	}
}

// BasketService is the chosen delivery or payment option, keyed by Type.
type BasketService struct {
	Type       string // "delivery" or "payment"
	ServiceID  string
	Code       string
	Name       string
	PriceCents int64
}

func (s *BasketService) ItemID() string       { return s.Type }
func (s *BasketService) ResourceType() string { return "basket.service" }

func (s *BasketService) ToMap() map[string]any {
	return map[string]any{
		"basket.service.type":      s.Type,
		"basket.service.serviceid": s.ServiceID,
		"basket.service.code":      s.Code,
		"basket.service.name":      s.Name,
		"basket.service.price":     formatCents(s.PriceCents),
	}
}

// BasketCoupon is a redeemed coupon code.
type BasketCoupon struct {
	Code string
}

func (c *BasketCoupon) ItemID() string       { return c.Code }
func (c *BasketCoupon) ResourceType() string { return "basket.coupon" }

func (c *BasketCoupon) ToMap() map[string]any {
	return map[string]any{
		"basket.coupon.code": c.Code,
	}
}
