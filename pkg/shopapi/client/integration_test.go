package client

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecombase/shopapi/internal/api"
	"github.com/ecombase/shopapi/internal/config"
	"github.com/ecombase/shopapi/internal/frontend"
)

// TestClientAgainstServer drives the client through a real server
// instance: bootstrap, catalog search with relationship resolution and a
// csrf-protected basket mutation.
func TestClientAgainstServer(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 0},
		Site: config.SiteConfig{
			ContentBaseURL:  "https://cdn.example.com",
			PageSizeProduct: 48,
			PageSizeReview:  25,
			PageSize:        10,
			PageSizeMax:     100,
		},
		Security: config.SecurityConfig{
			CSRFEnabled:   true,
			RateLimit:     100,
			JWTSecret:     "integration-test-secret",
			JWTExpiration: time.Hour,
		},
	}
	ts := httptest.NewServer(api.New(cfg, frontend.NewMemory()).Echo())
	defer ts.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	c := New(&http.Client{Jar: jar})

	ctx := context.Background()
	require.NoError(t, c.Bootstrap(ctx, ts.URL+"/jsonapi"))

	meta := c.Meta()
	assert.Equal(t, "https://cdn.example.com", meta.ContentBaseURL)
	assert.NotEmpty(t, meta.CSRF.Value)
	assert.Contains(t, meta.Resources, "product")

	products, err := c.Use("product")
	require.NoError(t, err)

	result, err := products.Find(ctx, "demo-article", "media", "price", "product.property", "media.property")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, 1, result.Total)

	article := result.Items[0]
	assert.Equal(t, "demo-article", article.Get("product.code", nil))

	weights := article.Properties("package-weight")
	require.Len(t, weights, 1)
	assert.Equal(t, "1.25", weights[0])

	media := article.RelItems("media", nil, nil)
	require.Len(t, media, 1)
	assert.Equal(t, "https://cdn.example.com/media/demo-article.jpg",
		c.Content(media[0].Get("media.url", "").(string)))

	titles := media[0].Properties("title")
	require.Len(t, titles, 1)
	assert.Equal(t, "Demo article", titles[0])

	// The basket mutation only passes because the csrf pair learned at
	// bootstrap is injected into the request body.
	lines, err := c.Use("basket/product")
	require.NoError(t, err)

	result, err = lines.Create(ctx, map[string]any{
		"product.id": article.ID(),
		"quantity":   2,
	})
	require.NoError(t, err)
	assert.NotNil(t, result.Document["data"])

	baskets, err := c.Use("basket")
	require.NoError(t, err)

	result, err = baskets.Get(ctx, "default", "basket.product")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	basketLines := result.Items[0].RelItems("basket.product", nil, nil)
	require.Len(t, basketLines, 1)
	assert.Equal(t, float64(2), basketLines[0].Get("basket.product.quantity", nil))
	assert.Equal(t, "49.98", result.Items[0].Get("basket.price", nil))
}
