package frontend

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"github.com/ecombase/shopapi/models"
)

type memoryCustomers struct {
	store *memoryStore
}

func (m *memoryCustomers) Get(ctx context.Context, user string) (*models.Customer, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.customers[user]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

func (m *memoryCustomers) Store(ctx context.Context, attrs map[string]any) (*models.Customer, error) {
	code, _ := attrs["customer.code"].(string)
	if code == "" {
		return nil, &ValidationError{Field: "customer.code", Reason: "is required"}
	}
	password, _ := attrs["customer.password"].(string)
	if password == "" {
		return nil, &ValidationError{Field: "customer.password", Reason: "is required"}
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, c := range m.store.customers {
		if c.Code == code {
			return nil, &ConflictError{Code: "customer.exists"}
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	c := &models.Customer{
		ID:           models.GenerateID("customer"),
		Code:         code,
		Email:        code,
		Status:       1,
		PasswordHash: string(hash),
	}
	applyCustomerAttrs(c, attrs)
	m.store.customers[c.ID] = c
	return c, nil
}

func (m *memoryCustomers) Update(ctx context.Context, user string, attrs map[string]any) (*models.Customer, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.customers[user]
	if !ok {
		return nil, ErrNotFound
	}
	applyCustomerAttrs(c, attrs)
	return c, nil
}

func (m *memoryCustomers) Delete(ctx context.Context, user string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	if _, ok := m.store.customers[user]; !ok {
		return ErrNotFound
	}
	delete(m.store.customers, user)
	return nil
}

func (m *memoryCustomers) AddAddress(ctx context.Context, user string, attrs map[string]any) (*models.Address, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.customers[user]
	if !ok {
		return nil, ErrNotFound
	}
	addr := &models.Address{
		ID:       models.GenerateID("customer.address"),
		ParentID: c.ID,
		Position: len(c.Addresses),
	}
	applyAddressAttrs(addr, attrs)
	c.Addresses = append(c.Addresses, addr)
	return addr, nil
}

func (m *memoryCustomers) UpdateAddress(ctx context.Context, user, addressID string, attrs map[string]any) (*models.Address, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.customers[user]
	if !ok {
		return nil, ErrNotFound
	}
	addr := c.Address(addressID)
	if addr == nil {
		return nil, ErrNotFound
	}
	applyAddressAttrs(addr, attrs)
	return addr, nil
}

func (m *memoryCustomers) DeleteAddress(ctx context.Context, user, addressID string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	c, ok := m.store.customers[user]
	if !ok {
		return ErrNotFound
	}
	for i, a := range c.Addresses {
		if a.ID == addressID {
			c.Addresses = append(c.Addresses[:i], c.Addresses[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (m *memoryCustomers) Authenticate(ctx context.Context, code, password string) (*models.Customer, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, c := range m.store.customers {
		if c.Code != code {
			continue
		}
		if err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)); err != nil {
			return nil, ErrForbidden
		}
		if c.Status != 1 {
			return nil, ErrForbidden
		}
		return c, nil
	}
	return nil, ErrForbidden
}

func applyCustomerAttrs(c *models.Customer, attrs map[string]any) {
	if v, ok := attrs["customer.label"].(string); ok {
		c.Label = v
	}
	if v, ok := attrs["customer.salutation"].(string); ok {
		c.Salutation = v
	}
	if v, ok := attrs["customer.firstname"].(string); ok {
		c.FirstName = v
	}
	if v, ok := attrs["customer.lastname"].(string); ok {
		c.LastName = v
	}
	if v, ok := attrs["customer.email"].(string); ok {
		c.Email = v
	}
}

func applyAddressAttrs(a *models.Address, attrs map[string]any) {
	set := func(key string, dst *string) {
		if v, ok := attrs[key].(string); ok {
			*dst = v
		}
	}
	set("customer.address.salutation", &a.Salutation)
	set("customer.address.firstname", &a.FirstName)
	set("customer.address.lastname", &a.LastName)
	set("customer.address.address1", &a.Address1)
	set("customer.address.address2", &a.Address2)
	set("customer.address.postal", &a.PostalCode)
	set("customer.address.city", &a.City)
	set("customer.address.countryid", &a.CountryID)
	set("customer.address.languageid", &a.LanguageID)
	set("customer.address.telephone", &a.Telephone)
	set("customer.address.email", &a.Email)
}
