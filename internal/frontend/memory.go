package frontend

import (
	"sync"

	"github.com/ecombase/shopapi/models"
)

// memoryStore is the shared state behind the in-memory controllers.
// One mutex guards everything; the contention is request-scoped and
// negligible next to the HTTP round trip.
type memoryStore struct {
	mu        sync.Mutex
	products  []*models.Product
	services  []*models.Service
	customers map[string]*models.Customer // keyed by customer id
	baskets   map[string]*models.Basket   // keyed by user + "/" + basket id
	orders    []*models.Order
	reviews   []*models.Review
}

// NewMemory builds a frontend backed by in-memory controllers, seeded
// with a small demo catalog. Used by the default server wiring and the
// handler tests.
func NewMemory() *Frontend {
	store := &memoryStore{
		customers: map[string]*models.Customer{},
		baskets:   map[string]*models.Basket{},
	}
	store.seed()
	return &Frontend{
		Product:  &memoryProducts{store: store},
		Basket:   &memoryBaskets{store: store},
		Order:    &memoryOrders{store: store},
		Customer: &memoryCustomers{store: store},
		Review:   &memoryReviews{store: store},
		Service:  &memoryServices{store: store},
	}
}

func (s *memoryStore) seed() {
	price := &models.Price{ID: "price:1", Type: "default", CurrencyID: "EUR", Quantity: 1, Value: "24.99", Costs: "0.00", Rebate: "0.00", TaxRate: "19.00"}
	media := &models.Media{
		ID: "media:1", Type: "default", MimeType: "image/jpeg",
		URL: "/media/demo-article.jpg", Preview: "/media/demo-article-260.jpg",
		Properties: []*models.Property{
			{ID: "prop:m1", Parent: "media", Type: "title", LanguageID: "en", Value: "Demo article"},
		},
	}
	name := &models.Text{ID: "text:1", Type: "name", LanguageID: "en", Content: "Demo article"}

	article := &models.Product{
		ID: "product:1", Code: "demo-article", Label: "Demo article", Type: "default", Status: 1, Dataset: "demo",
		Rating: 4, Ratings: 1, // matches the seeded review below
		Properties: []*models.Property{
			{ID: "prop:p1", Parent: "product", Type: "package-weight", Value: "1.25"},
		},
	}
	bundle := &models.Product{
		ID: "product:2", Code: "demo-bundle", Label: "Demo bundle", Type: "bundle", Status: 1, Dataset: "demo",
	}
	article.Lists = []*models.ListItem{
		{ID: "list:1", Domain: "media", RefID: media.ID, Type: "default", Position: 0, Status: 1, Ref: media},
		{ID: "list:2", Domain: "price", RefID: price.ID, Type: "default", Position: 0, Status: 1, Ref: price},
		{ID: "list:3", Domain: "text", RefID: name.ID, Type: "default", Position: 0, Status: 1, Ref: name},
		{ID: "list:4", Domain: "product", RefID: bundle.ID, Type: "suggestion", Position: 0, Status: 1, Ref: bundle},
	}
	bundle.Lists = []*models.ListItem{
		{ID: "list:5", Domain: "product", RefID: article.ID, Type: "suggestion", Position: 0, Status: 1, Ref: article},
		{ID: "list:6", Domain: "price", RefID: price.ID, Type: "default", Position: 0, Status: 1, Ref: price},
	}
	s.products = []*models.Product{article, bundle}

	s.services = []*models.Service{
		{ID: "service:1", Type: "delivery", Code: "standard", Label: "Standard delivery", Position: 0, Status: 1},
		{ID: "service:2", Type: "payment", Code: "invoice", Label: "Payment by invoice", Position: 0, Status: 1},
	}

	s.reviews = []*models.Review{
		{ID: "review:1", CustomerID: "customer:seed", Domain: "product", RefID: article.ID,
			Name: "Test user", Rating: 4, Comment: "Works as described", Status: 1, CTime: "2024-01-15 10:00:00"},
	}
}

// priceCents returns the default sales price of a product in cents.
func priceCents(p *models.Product) int64 {
	for _, l := range p.Lists {
		if l.Domain != "price" || l.Ref == nil {
			continue
		}
		if price, ok := l.Ref.(*models.Price); ok {
			return parseCents(price.Value)
		}
	}
	return 0
}

func parseCents(value string) int64 {
	var euros, cents int64
	var inCents bool
	var centDigits int
	neg := false
	for _, r := range value {
		switch {
		case r == '-':
			neg = true
		case r == '.':
			inCents = true
		case r >= '0' && r <= '9':
			if inCents {
				if centDigits < 2 {
					cents = cents*10 + int64(r-'0')
					centDigits++
				}
			} else {
				euros = euros*10 + int64(r-'0')
			}
		}
	}
	if centDigits == 1 {
		cents *= 10
	}
	total := euros*100 + cents
	if neg {
		return -total
	}
	return total
}
