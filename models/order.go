package models

// Order is a placed basket. Its sub-items are frozen copies of the
// basket content at placement time and carry their own persistent ids.
type Order struct {
	ID             string
	CustomerID     string
	Channel        string // "jsonapi", "web", ...
	CurrencyID     string
	PriceCents     int64
	StatusPayment  string
	StatusDelivery string
	Comment        string
	CTime          string
	Products       []*OrderProduct
	Addresses      []*OrderAddress
	Services       []*OrderService
	Coupons        []*OrderCoupon
}

func (o *Order) ItemID() string       { return o.ID }
func (o *Order) ResourceType() string { return "order" }

func (o *Order) ToMap() map[string]any {
	return map[string]any{
		"order.id":             o.ID,
		"order.customerid":     o.CustomerID,
		"order.channel":        o.Channel,
		"order.currencyid":     o.CurrencyID,
		"order.price":          formatCents(o.PriceCents),
		"order.statuspayment":  o.StatusPayment,
		"order.statusdelivery": o.StatusDelivery,
		"order.comment":        o.Comment,
		"order.ctime":          o.CTime,
	}
}

// OrderProduct is a frozen basket line.
type OrderProduct struct {
	ID         string
	ProductID  string
	Code       string
	Name       string
	Quantity   int
	PriceCents int64
	Position   int
}

func (p *OrderProduct) ItemID() string       { return p.ID }
func (p *OrderProduct) ResourceType() string { return "order.product" }

func (p *OrderProduct) ToMap() map[string]any {
	return map[string]any{
		"order.product.id":       p.ID,
		"order.product.prodid":   p.ProductID,
		"order.product.code":     p.Code,
		"order.product.name":     p.Name,
		"order.product.quantity": p.Quantity,
		"order.product.price":    formatCents(p.PriceCents),
		"order.product.position": p.Position,
	}
}

// OrderAddress is a frozen basket address.
type OrderAddress struct {
	ID         string
	Type       string
	FirstName  string
	LastName   string
	Address1   string
	PostalCode string
	City       string
	CountryID  string
	Email      string
}

func (a *OrderAddress) ItemID() string       { return a.ID }
func (a *OrderAddress) ResourceType() string { return "order.address" }

func (a *OrderAddress) ToMap() map[string]any {
	return map[string]any{
		"order.address.id":        a.ID,
		"order.address.type":      a.Type,
		"order.address.firstname": a.FirstName,
		"order.address.lastname":  a.LastName,
		"order.address.address1":  a.Address1,
		"order.address.postal":    a.PostalCode,
		"order.address.city":      a.City,
		"order.address.countryid": a.CountryID,
		"order.address.email":     a.Email,
	}
}

// OrderCoupon is a coupon code redeemed with the order.
type OrderCoupon struct {
	ID   string
	Code string
}

func (c *OrderCoupon) ItemID() string       { return c.ID }
func (c *OrderCoupon) ResourceType() string { return "order.coupon" }

func (c *OrderCoupon) ToMap() map[string]any {
	return map[string]any{
		"order.coupon.id":   c.ID,
		"order.coupon.code": c.Code,
	}
}

// OrderService is a frozen delivery/payment choice.
type OrderService struct {
	ID         string
	Type       string
	Code       string
	Name       string
	PriceCents int64
}

func (s *OrderService) ItemID() string       { return s.ID }
func (s *OrderService) ResourceType() string { return "order.service" }

func (s *OrderService) ToMap() map[string]any {
	return map[string]any{
		"order.service.id":    s.ID,
		"order.service.type":  s.Type,
		"order.service.code":  s.Code,
		"order.service.name":  s.Name,
		"order.service.price": formatCents(s.PriceCents),
	}
}
