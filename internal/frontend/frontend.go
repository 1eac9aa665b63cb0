// Package frontend contains the domain controllers the JSON:API layer
// delegates to. The HTTP handlers treat these as opaque collaborators:
// they only depend on the method contracts and the error types defined
// here, not on how baskets are priced or orders are persisted.
package frontend

import (
	"context"

	"github.com/ecombase/shopapi/models"
)

// Criteria is the search input passed through from the request: filter
// conditions keyed operator -> field -> value, sort keys (a "-" prefix
// sorts descending) and the result window.
type Criteria struct {
	Conditions map[string]any
	Sort       []string
	Offset     int
	Limit      int
}

// ProductController reads the product catalog.
type ProductController interface {
	Get(ctx context.Context, id string) (*models.Product, error)
	Find(ctx context.Context, code string) (*models.Product, error)
	Search(ctx context.Context, c Criteria) ([]*models.Product, int, error)
	Aggregate(ctx context.Context, key string, c Criteria) (map[string]int, error)
}

// BasketController manages the per-session shopping cart. The user
// argument is the opaque current-user/session fact from the HTTP layer.
type BasketController interface {
	Get(ctx context.Context, user, id string) (*models.Basket, error)
	Update(ctx context.Context, user, id string, attrs map[string]any) (*models.Basket, error)
	Clear(ctx context.Context, user, id string) error
	AddProduct(ctx context.Context, user, id, productID string, quantity int) (*models.Basket, error)
	DeleteProduct(ctx context.Context, user, id string, position int) (*models.Basket, error)
	SetAddress(ctx context.Context, user, id string, addr *models.BasketAddress) (*models.Basket, error)
	DeleteAddress(ctx context.Context, user, id, addrType string) (*models.Basket, error)
	SetService(ctx context.Context, user, id, slot, serviceID string) (*models.Basket, error)
	DeleteService(ctx context.Context, user, id, slot string) (*models.Basket, error)
	AddCoupon(ctx context.Context, user, id, code string) (*models.Basket, error)
	DeleteCoupon(ctx context.Context, user, id, code string) (*models.Basket, error)
}

// OrderController places and reads orders of the current user.
type OrderController interface {
	Get(ctx context.Context, user, id string) (*models.Order, error)
	Search(ctx context.Context, user string, c Criteria) ([]*models.Order, int, error)
	Place(ctx context.Context, user, basketID string) (*models.Order, error)
}

// CustomerController manages the account of the current user.
type CustomerController interface {
	Get(ctx context.Context, user string) (*models.Customer, error)
	Store(ctx context.Context, attrs map[string]any) (*models.Customer, error)
	Update(ctx context.Context, user string, attrs map[string]any) (*models.Customer, error)
	Delete(ctx context.Context, user string) error
	AddAddress(ctx context.Context, user string, attrs map[string]any) (*models.Address, error)
	UpdateAddress(ctx context.Context, user, addressID string, attrs map[string]any) (*models.Address, error)
	DeleteAddress(ctx context.Context, user, addressID string) error
	Authenticate(ctx context.Context, code, password string) (*models.Customer, error)
}

// ReviewController manages product reviews. Mutations are restricted to
// reviews owned by the current user.
type ReviewController interface {
	Search(ctx context.Context, c Criteria) ([]*models.Review, int, error)
	Aggregate(ctx context.Context, key string, c Criteria) (map[string]int, error)
	Store(ctx context.Context, user string, attrs map[string]any) (*models.Review, error)
	Update(ctx context.Context, user, id string, attrs map[string]any) (*models.Review, error)
	Delete(ctx context.Context, user, id string) error
}

// ServiceController lists the available delivery and payment options.
type ServiceController interface {
	Search(ctx context.Context, c Criteria) ([]*models.Service, int, error)
}

// Frontend bundles the controllers for the HTTP layer.
type Frontend struct {
	Product  ProductController
	Basket   BasketController
	Order    OrderController
	Customer CustomerController
	Review   ReviewController
	Service  ServiceController
}
