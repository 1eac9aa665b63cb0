package frontend

import (
	"context"
	"time"

	"github.com/ecombase/shopapi/models"
)

type memoryReviews struct {
	store *memoryStore
}

func (m *memoryReviews) Search(ctx context.Context, c Criteria) ([]*models.Review, int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	var matched []*models.Review
	var attrs []map[string]any
	for _, r := range m.store.reviews {
		if r.Status != 1 {
			continue
		}
		if am := r.ToMap(); c.Match(am) {
			matched = append(matched, r)
			attrs = append(attrs, am)
		}
	}
	total := len(matched)

	ordered := make([]*models.Review, total)
	for i, idx := range sortMaps(attrs, c.Sort) {
		ordered[i] = matched[idx]
	}
	start, end := window(total, c.Offset, c.Limit)
	return ordered[start:end], total, nil
}

// Aggregate counts visible reviews grouped by an attribute key, usually
// "review.rating" for rating histograms.
func (m *memoryReviews) Aggregate(ctx context.Context, key string, c Criteria) (map[string]int, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	counts := map[string]int{}
	for _, r := range m.store.reviews {
		if r.Status != 1 {
			continue
		}
		am := r.ToMap()
		if c.Match(am) {
			counts[toString(am[key])]++
		}
	}
	return counts, nil
}

func (m *memoryReviews) Store(ctx context.Context, user string, attrs map[string]any) (*models.Review, error) {
	rating, ok := toFloat(attrs["review.rating"])
	if !ok || rating < 0 || rating > 5 {
		return nil, &ValidationError{Field: "review.rating", Reason: "must be between 0 and 5"}
	}
	refID, _ := attrs["review.refid"].(string)
	if refID == "" {
		return nil, &ValidationError{Field: "review.refid", Reason: "is required"}
	}

	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	r := &models.Review{
		ID:         models.GenerateID("review"),
		CustomerID: user,
		Domain:     "product",
		RefID:      refID,
		Rating:     int(rating),
		Status:     1,
		CTime:      time.Now().UTC().Format("2006-01-02 15:04:05"),
	}
	if v, ok := attrs["review.domain"].(string); ok && v != "" {
		r.Domain = v
	}
	if v, ok := attrs["review.name"].(string); ok {
		r.Name = v
	}
	if v, ok := attrs["review.comment"].(string); ok {
		r.Comment = v
	}
	m.store.reviews = append(m.store.reviews, r)
	m.recomputeRating(r.Domain, r.RefID)
	return r, nil
}

func (m *memoryReviews) Update(ctx context.Context, user, id string, attrs map[string]any) (*models.Review, error) {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	r, err := m.owned(user, id)
	if err != nil {
		return nil, err
	}
	if rating, ok := toFloat(attrs["review.rating"]); ok {
		if rating < 0 || rating > 5 {
			return nil, &ValidationError{Field: "review.rating", Reason: "must be between 0 and 5"}
		}
		r.Rating = int(rating)
	}
	if v, ok := attrs["review.comment"].(string); ok {
		r.Comment = v
	}
	if v, ok := attrs["review.name"].(string); ok {
		r.Name = v
	}
	m.recomputeRating(r.Domain, r.RefID)
	return r, nil
}

func (m *memoryReviews) Delete(ctx context.Context, user, id string) error {
	m.store.mu.Lock()
	defer m.store.mu.Unlock()

	r, err := m.owned(user, id)
	if err != nil {
		return err
	}
	for i, rev := range m.store.reviews {
		if rev.ID == id {
			m.store.reviews = append(m.store.reviews[:i], m.store.reviews[i+1:]...)
			break
		}
	}
	m.recomputeRating(r.Domain, r.RefID)
	return nil
}

// recomputeRating refreshes the reviewed product's average rating and
// rating count from the visible reviews. Caller must hold the store
// lock.
func (m *memoryReviews) recomputeRating(domain, refID string) {
	if domain != "product" {
		return
	}
	var sum, count int
	for _, r := range m.store.reviews {
		if r.Status == 1 && r.Domain == "product" && r.RefID == refID {
			sum += r.Rating
			count++
		}
	}
	for _, p := range m.store.products {
		if p.ID == refID {
			p.Ratings = count
			p.Rating = 0
			if count > 0 {
				p.Rating = float64(sum) / float64(count)
			}
			return
		}
	}
}

// owned returns the review if it exists and belongs to the user.
// Caller must hold the store lock.
func (m *memoryReviews) owned(user, id string) (*models.Review, error) {
	for _, r := range m.store.reviews {
		if r.ID == id {
			if r.CustomerID != user {
				return nil, ErrForbidden
			}
			return r, nil
		}
	}
	return nil, ErrNotFound
}
