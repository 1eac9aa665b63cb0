package frontend

import (
	"context"
	"time"

	"github.com/ecombase/shopapi/models"
)

type memoryOrders struct {
	store *memoryStore
}

func (m *memoryOrders) Get(ctx context.Context, user, id string) (*models.Order, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, o := range m.store.orders {
		if o.ID != id {
			continue
		}
		if o.CustomerID != user {
			return nil, ErrForbidden
		}
		return o, nil
	}
	return nil, ErrNotFound
}

func (m *memoryOrders) Search(ctx context.Context, user string, c Criteria) ([]*models.Order, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*models.Order
	var attrs []map[string]any
	for _, o := range m.store.orders {
		if o.CustomerID != user {
			continue
		}
		if am := o.ToMap(); c.Match(am) {
			matched = append(matched, o)
			attrs = append(attrs, am)
		}
	}
	total := len(matched)

	ordered := make([]*models.Order, total)
	for i, idx := range sortMaps(attrs, c.Sort) {
		ordered[i] = matched[idx]
	}
	start, end := window(total, c.Offset, c.Limit)
	return ordered[start:end], total, nil
}

// Place freezes the basket content into a new order and clears the
// basket. An empty basket cannot be placed.
func (m *memoryOrders) Place(ctx context.Context, user, basketID string) (*models.Order, error) {
	if basketID == "" {
		basketID = "default"
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b, ok := m.store.baskets[user+"/"+basketID]
	if !ok || len(b.Products) == 0 {
		return nil, &ValidationError{Field: "basket", Reason: "basket is empty"}
	}

	order := &models.Order{
		ID:             models.GenerateID("order"),
		CustomerID:     user,
		Channel:        "jsonapi",
		CurrencyID:     b.CurrencyID,
		StatusPayment:  "pending",
		StatusDelivery: "pending",
		Comment:        b.Comment,
		CTime:          time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	for _, p := range b.Products {
		order.PriceCents += p.PriceCents * int64(p.Quantity)
		order.Products = append(order.Products, &models.OrderProduct{
			ID:         models.GenerateID("order.product"),
			ProductID:  p.ProductID,
			Code:       p.Code,
			Name:       p.Name,
			Quantity:   p.Quantity,
			PriceCents: p.PriceCents,
			Position:   p.Position,
		})
	}
	for _, a := range b.Addresses {
		order.Addresses = append(order.Addresses, &models.OrderAddress{
			ID:         models.GenerateID("order.address"),
			Type:       a.Type,
			FirstName:  a.FirstName,
			LastName:   a.LastName,
			Address1:   a.Address1,
			PostalCode: a.PostalCode,
			City:       a.City,
			CountryID:  a.CountryID,
			Email:      a.Email,
		})
	}
	for _, s := range b.Services {
		order.PriceCents += s.PriceCents
		order.Services = append(order.Services, &models.OrderService{
			ID:         models.GenerateID("order.service"),
			Type:       s.Type,
			Code:       s.Code,
			Name:       s.Name,
			PriceCents: s.PriceCents,
		})
	}
	for _, c := range b.Coupons {
		order.Coupons = append(order.Coupons, &models.OrderCoupon{
			ID:   models.GenerateID("order.coupon"),
			Code: c.Code,
		})
	}

	m.store.orders = append(m.store.orders, order)
	delete(m.store.baskets, user+"/"+basketID)
	return order, nil
}
