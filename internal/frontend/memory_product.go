package frontend

import (
	"context"

	"github.com/ecombase/shopapi/models"
)

type memoryProducts struct {
	store *memoryStore
}

func (m *memoryProducts) Get(ctx context.Context, id string) (*models.Product, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, p := range m.store.products {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryProducts) Find(ctx context.Context, code string) (*models.Product, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	for _, p := range m.store.products {
		if p.Code == code {
			return p, nil
		}
	}
	return nil, ErrNotFound
}

func (m *memoryProducts) Search(ctx context.Context, c Criteria) ([]*models.Product, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*models.Product
	var attrs []map[string]any
	for _, p := range m.store.products {
		if am := p.ToMap(); c.Match(am) {
			matched = append(matched, p)
			attrs = append(attrs, am)
		}
	}
	total := len(matched)

	ordered := make([]*models.Product, total)
	for i, idx := range sortMaps(attrs, c.Sort) {
		ordered[i] = matched[idx]
	}
	start, end := window(total, c.Offset, c.Limit)
	return ordered[start:end], total, nil
}

func (m *memoryProducts) Aggregate(ctx context.Context, key string, c Criteria) (map[string]int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	counts := map[string]int{}
	for _, p := range m.store.products {
		am := p.ToMap()
		if c.Match(am) {
			counts[toString(am[key])]++
		}
	}
	return counts, nil
}

type memoryServices struct {
	store *memoryStore
}

func (m *memoryServices) Search(ctx context.Context, c Criteria) ([]*models.Service, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*models.Service
	for _, s := range m.store.services {
		if c.Match(s.ToMap()) {
			matched = append(matched, s)
		}
	}
	total := len(matched)
	start, end := window(total, c.Offset, c.Limit)
	return matched[start:end], total, nil
}
