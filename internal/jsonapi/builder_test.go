package jsonapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecombase/shopapi/models"
)

func testProduct() *models.Product {
	return &models.Product{
		ID:     "p1",
		Code:   "demo-article",
		Label:  "Demo article",
		Type:   "default",
		Status: 1,
		Lists: []*models.ListItem{
			{
				ID: "l1", Domain: "media", RefID: "m1", Type: "default", Position: 0,
				Ref: &models.Media{ID: "m1", Type: "default", URL: "/img/demo.jpg", Properties: []*models.Property{
					{ID: "mp1", Parent: "media", Type: "title", Value: "Demo"},
				}},
			},
			{
				ID: "l2", Domain: "price", RefID: "pr1", Type: "default", Position: 0,
				Ref: &models.Price{ID: "pr1", Type: "default", CurrencyID: "EUR", Value: "24.99"},
			},
		},
		Properties: []*models.Property{
			{ID: "pp1", Parent: "product", Type: "package-weight", Value: "1.25"},
		},
	}
}

func TestBuilderPrimary(t *testing.T) {
	b := NewBuilder("http://shop.test/jsonapi", []string{"media", "price", "product.property"}, nil)

	res := b.Primary(testProduct(), []string{"GET"})

	require.NotNil(t, res.ID)
	assert.Equal(t, "p1", *res.ID)
	assert.Equal(t, "product", res.Type)
	assert.Equal(t, "demo-article", res.Attributes["product.code"])
	assert.Equal(t, "http://shop.test/jsonapi/product/p1", res.Links["self"].Href)

	require.Len(t, res.Relationships["media"].Data, 1)
	ptr := res.Relationships["media"].Data[0]
	assert.Equal(t, "m1", ptr.ID)
	assert.Equal(t, "media", ptr.Type)
	assert.Equal(t, "default", ptr.Attributes["product.lists.type"])

	require.Len(t, res.Relationships["product.property"].Data, 1)
	assert.Equal(t, "product.property", res.Relationships["product.property"].Data[0].Type)

	// media, price and product property are flattened into included;
	// media.property was not requested so the media entry carries no
	// relationship to it and mp1 stays out.
	types := includedTypes(b.Included())
	assert.Equal(t, map[string]int{"media": 1, "price": 1, "product.property": 1}, types)
}

func TestBuilderSparseFields(t *testing.T) {
	fs := Fieldsets{"product": {"product.code": true}}
	b := NewBuilder("http://shop.test/jsonapi", nil, fs)

	res := b.Primary(testProduct(), []string{"GET"})

	assert.Equal(t, map[string]any{"product.code": "demo-article"}, res.Attributes)
}

func TestBuilderIncludeFilter(t *testing.T) {
	b := NewBuilder("http://shop.test/jsonapi", []string{"price"}, nil)

	res := b.Primary(testProduct(), []string{"GET"})

	assert.NotContains(t, res.Relationships, "media")
	assert.Contains(t, res.Relationships, "price")
	assert.Equal(t, map[string]int{"price": 1}, includedTypes(b.Included()))
}

// Two products suggesting each other form a reference cycle. The
// included table must contain exactly one entry per (type, id) pair.
func TestBuilderIncludedCycle(t *testing.T) {
	a := &models.Product{ID: "a", Code: "prod-a"}
	c := &models.Product{ID: "c", Code: "prod-c"}
	a.Lists = []*models.ListItem{{ID: "la", Domain: "product", RefID: "c", Type: "suggestion", Ref: c}}
	c.Lists = []*models.ListItem{{ID: "lc", Domain: "product", RefID: "a", Type: "suggestion", Ref: a}}

	b := NewBuilder("http://shop.test/jsonapi", []string{"product"}, nil)
	b.Primary(a, []string{"GET"})

	seen := map[string]int{}
	for _, res := range b.Included() {
		require.NotNil(t, res.ID)
		seen[res.Type+"/"+*res.ID]++
	}
	for key, n := range seen {
		assert.Equalf(t, 1, n, "entry %s duplicated", key)
	}
	// Both cycle members appear: c as reference of a, a via the cycle.
	assert.Len(t, seen, 2)
}

func TestBuilderRelate(t *testing.T) {
	basket := &models.Basket{ID: "default", CurrencyID: "EUR"}
	line := &models.BasketProduct{Position: 0, ProductID: "p1", Code: "demo-article", Quantity: 2, PriceCents: 2499}

	b := NewBuilder("http://shop.test/jsonapi", []string{"basket.product"}, nil)
	res := b.Primary(basket, []string{"GET", "POST", "PATCH", "DELETE"})
	b.Relate(&res, "basket.product", line)

	require.Len(t, res.Relationships["basket.product"].Data, 1)
	assert.Equal(t, "0", res.Relationships["basket.product"].Data[0].ID)

	inc := b.Included()
	require.Len(t, inc, 1)
	assert.Equal(t, "basket.product", inc[0].Type)
	assert.Equal(t, "24.99", inc[0].Attributes["basket.product.price"])
}

// A rendered document carries errors if and only if data and included
// are absent.
func TestErrorDocumentExclusivity(t *testing.T) {
	doc := ErrorDocument(Link{Href: "http://shop.test/jsonapi/product"}, []ErrorObject{{Title: "boom"}})

	assert.Nil(t, doc.Data)
	assert.Empty(t, doc.Included)
	assert.Len(t, doc.Errors, 1)
	assert.Equal(t, 0, doc.Meta["total"])
}

func includedTypes(included []Resource) map[string]int {
	types := map[string]int{}
	for _, res := range included {
		types[res.Type]++
	}
	return types
}
