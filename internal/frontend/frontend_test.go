package frontend

import (
	"context"
	"errors"
	"testing"
)

func TestCriteriaMatch(t *testing.T) {
	attrs := map[string]any{
		"product.code":   "demo-article",
		"product.status": 1,
		"product.label":  "Demo article",
	}

	tests := []struct {
		name       string
		conditions map[string]any
		want       bool
	}{
		{
			name:       "equality on string",
			conditions: map[string]any{"==": map[string]any{"product.code": "demo-article"}},
			want:       true,
		},
		{
			name:       "equality mismatch",
			conditions: map[string]any{"==": map[string]any{"product.code": "other"}},
			want:       false,
		},
		{
			name:       "numeric equality across types",
			conditions: map[string]any{"==": map[string]any{"product.status": float64(1)}},
			want:       true,
		},
		{
			name:       "prefix match",
			conditions: map[string]any{"=~": map[string]any{"product.label": "Demo"}},
			want:       true,
		},
		{
			name: "all groups must hold",
			conditions: map[string]any{
				"==": map[string]any{"product.code": "demo-article"},
				"!=": map[string]any{"product.label": "Demo article"},
			},
			want: false,
		},
		{
			name:       "unknown operator matches nothing",
			conditions: map[string]any{"~=": map[string]any{"product.code": "demo-article"}},
			want:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Criteria{Conditions: tt.conditions}
			if got := c.Match(attrs); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBasketLifecycle(t *testing.T) {
	ctx := context.Background()
	fe := NewMemory()

	b, err := fe.Basket.AddProduct(ctx, "user-1", "default", "product:1", 2)
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if len(b.Products) != 1 || b.Products[0].Quantity != 2 {
		t.Fatalf("unexpected basket content: %+v", b.Products)
	}
	if b.Total() != "49.98" {
		t.Errorf("Total() = %s, want 49.98", b.Total())
	}

	if _, err := fe.Basket.AddProduct(ctx, "user-1", "default", "product:none", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown product: got %v, want ErrNotFound", err)
	}

	if _, err := fe.Basket.AddCoupon(ctx, "user-1", "default", "NOPE"); err == nil {
		t.Error("invalid coupon accepted")
	}
	if _, err := fe.Basket.AddCoupon(ctx, "user-1", "default", "DEMO10"); err != nil {
		t.Errorf("valid coupon rejected: %v", err)
	}
	var conflict *ConflictError
	if _, err := fe.Basket.AddCoupon(ctx, "user-1", "default", "DEMO10"); !errors.As(err, &conflict) {
		t.Errorf("duplicate coupon: got %v, want ConflictError", err)
	}

	b, err = fe.Basket.DeleteProduct(ctx, "user-1", "default", 0)
	if err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}
	if len(b.Products) != 0 {
		t.Errorf("basket still has %d products", len(b.Products))
	}
}

func TestOrderPlace(t *testing.T) {
	ctx := context.Background()
	fe := NewMemory()

	if _, err := fe.Order.Place(ctx, "user-1", "default"); err == nil {
		t.Fatal("placing an empty basket must fail")
	}

	if _, err := fe.Basket.AddProduct(ctx, "user-1", "default", "product:1", 1); err != nil {
		t.Fatal(err)
	}
	order, err := fe.Order.Place(ctx, "user-1", "default")
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	if len(order.Products) != 1 || order.Products[0].Code != "demo-article" {
		t.Fatalf("unexpected order products: %+v", order.Products)
	}

	// The basket is cleared on placement.
	b, err := fe.Basket.Get(ctx, "user-1", "default")
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Products) != 0 {
		t.Errorf("basket not cleared after placement")
	}

	// Orders are only visible to their owner.
	if _, err := fe.Order.Get(ctx, "user-2", order.ID); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign order access: got %v, want ErrForbidden", err)
	}
}

func TestReviewOwnership(t *testing.T) {
	ctx := context.Background()
	fe := NewMemory()

	r, err := fe.Review.Store(ctx, "user-1", map[string]any{
		"review.refid":  "product:1",
		"review.rating": float64(5),
	})
	if err != nil {
		t.Fatalf("Store: %v", err)
	}

	if _, err := fe.Review.Update(ctx, "user-2", r.ID, map[string]any{"review.rating": float64(1)}); !errors.Is(err, ErrForbidden) {
		t.Errorf("foreign update: got %v, want ErrForbidden", err)
	}
	if err := fe.Review.Delete(ctx, "user-1", r.ID); err != nil {
		t.Errorf("owner delete: %v", err)
	}
}

func TestReviewAggregate(t *testing.T) {
	ctx := context.Background()
	fe := NewMemory()

	counts, err := fe.Review.Aggregate(ctx, "review.rating", Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if counts["4"] != 1 {
		t.Errorf("Aggregate() = %v, want one 4-star review", counts)
	}
}

func TestReviewRatingRecompute(t *testing.T) {
	ctx := context.Background()
	fe := NewMemory()

	p, err := fe.Product.Get(ctx, "product:1")
	if err != nil {
		t.Fatal(err)
	}
	if p.Rating != 4 || p.Ratings != 1 {
		t.Fatalf("seeded rating = %v/%d, want 4/1", p.Rating, p.Ratings)
	}

	r, err := fe.Review.Store(ctx, "user-1", map[string]any{
		"review.refid":  "product:1",
		"review.rating": float64(2),
	})
	if err != nil {
		t.Fatal(err)
	}
	if p.Rating != 3 || p.Ratings != 2 {
		t.Errorf("after store: rating = %v/%d, want 3/2", p.Rating, p.Ratings)
	}

	if _, err := fe.Review.Update(ctx, "user-1", r.ID, map[string]any{"review.rating": float64(0)}); err != nil {
		t.Fatal(err)
	}
	if p.Rating != 2 || p.Ratings != 2 {
		t.Errorf("after update: rating = %v/%d, want 2/2", p.Rating, p.Ratings)
	}

	if err := fe.Review.Delete(ctx, "user-1", r.ID); err != nil {
		t.Fatal(err)
	}
	if p.Rating != 4 || p.Ratings != 1 {
		t.Errorf("after delete: rating = %v/%d, want 4/1", p.Rating, p.Ratings)
	}
}
