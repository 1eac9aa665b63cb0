package frontend

import (
	"context"

	"github.com/ecombase/shopapi/models"
)

type memoryBaskets struct {
	store *memoryStore
}

// basket returns the user's basket, creating an empty one on first
// access. Caller must hold the store lock.
func (m *memoryBaskets) basket(user, id string) *models.Basket {
	if id == "" {
		id = "default"
	}
	key := user + "/" + id
	b, ok := m.store.baskets[key]
	if !ok {
		b = &models.Basket{ID: id, CustomerID: user, CurrencyID: "EUR"}
		m.store.baskets[key] = b
	}
	return b
}

func (m *memoryBaskets) Get(ctx context.Context, user, id string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()
	return m.basket(user, id), nil
}

func (m *memoryBaskets) Update(ctx context.Context, user, id string, attrs map[string]any) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	if comment, ok := attrs["basket.comment"].(string); ok {
		b.Comment = comment
	}
	return b, nil
}

func (m *memoryBaskets) Clear(ctx context.Context, user, id string) error {
	if id == "" {
		id = "default"
	}
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	delete(m.store.baskets, user+"/"+id)
	return nil
}

func (m *memoryBaskets) AddProduct(ctx context.Context, user, id, productID string, quantity int) (*models.Basket, error) {
	if quantity < 1 {
		return nil, &ValidationError{Field: "quantity", Reason: "must be at least 1"}
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var product *models.Product
	for _, p := range m.store.products {
		if p.ID == productID {
			product = p
			break
		}
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if product.Status != 1 {
		return nil, &ConflictError{Code: "stock.out"}
	}

	b := m.basket(user, id)
	b.Products = append(b.Products, &models.BasketProduct{
		Position:   len(b.Products),
		ProductID:  product.ID,
		Code:       product.Code,
		Name:       product.Label,
		Quantity:   quantity,
		PriceCents: priceCents(product),
		CurrencyID: b.CurrencyID,
	})
	return b, nil
}

func (m *memoryBaskets) DeleteProduct(ctx context.Context, user, id string, position int) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	if position < 0 || position >= len(b.Products) {
		return nil, ErrNotFound
	}
	b.Products = append(b.Products[:position], b.Products[position+1:]...)
	for i, p := range b.Products {
		p.Position = i
	}
	return b, nil
}

func (m *memoryBaskets) SetAddress(ctx context.Context, user, id string, addr *models.BasketAddress) (*models.Basket, error) {
	if addr.Type != "delivery" && addr.Type != "payment" {
		return nil, &ValidationError{Field: "basket.address.type", Reason: "must be delivery or payment"}
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	for i, a := range b.Addresses {
		if a.Type == addr.Type {
			b.Addresses[i] = addr
			return b, nil
		}
	}
	b.Addresses = append(b.Addresses, addr)
	return b, nil
}

func (m *memoryBaskets) DeleteAddress(ctx context.Context, user, id, addrType string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	for i, a := range b.Addresses {
		if a.Type == addrType {
			b.Addresses = append(b.Addresses[:i], b.Addresses[i+1:]...)
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryBaskets) SetService(ctx context.Context, user, id, slot, serviceID string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var service *models.Service
	for _, s := range m.store.services {
		if s.ID == serviceID {
			service = s
			break
		}
	}
	if service == nil {
		return nil, ErrNotFound
	}
	if service.Type != slot {
		return nil, &ConflictError{Code: "service.unavail"}
	}

	b := m.basket(user, id)
	entry := &models.BasketService{Type: slot, ServiceID: service.ID, Code: service.Code, Name: service.Label}
	for i, s := range b.Services {
		if s.Type == slot {
			b.Services[i] = entry
			return b, nil
		}
	}
	b.Services = append(b.Services, entry)
	return b, nil
}

func (m *memoryBaskets) DeleteService(ctx context.Context, user, id, slot string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	for i, s := range b.Services {
		if s.Type == slot {
			b.Services = append(b.Services[:i], b.Services[i+1:]...)
			return b, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryBaskets) AddCoupon(ctx context.Context, user, id, code string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	for _, c := range b.Coupons {
		if c.Code == code {
			return nil, &ConflictError{Code: "coupon.duplicate"}
		}
	}
	// Only the fixed demo code is known to the in-memory shop.
	if code != "DEMO10" {
		return nil, &ConflictError{Code: "coupon.invalid"}
	}
	b.Coupons = append(b.Coupons, &models.BasketCoupon{Code: code})
	return b, nil
}

func (m *memoryBaskets) DeleteCoupon(ctx context.Context, user, id, code string) (*models.Basket, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	b := m.basket(user, id)
	for i, c := range b.Coupons {
		if c.Code == code {
			b.Coupons = append(b.Coupons[:i], b.Coupons[i+1:]...)
			return b, nil
		}
	}
	return nil, ErrNotFound
}
