package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecombase/shopapi/internal/config"
	"github.com/ecombase/shopapi/internal/frontend"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Site: config.SiteConfig{
			ContentBaseURL:  "https://cdn.example.com",
			PageSizeProduct: 48,
			PageSizeReview:  25,
			PageSize:        10,
			PageSizeMax:     100,
		},
		Security: config.SecurityConfig{
			CSRFEnabled:   false,
			RateLimit:     100,
			JWTSecret:     "test-secret-key-for-handler-tests",
			JWTExpiration: time.Hour,
		},
		Logging: config.LoggingConfig{Level: "error", Format: "text"},
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(testConfig(), frontend.NewMemory())
}

type testRequest struct {
	method  string
	target  string
	body    string
	cookies []*http.Cookie
	bearer  string
}

func (s *Server) do(t *testing.T, tr testRequest) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var body *strings.Reader
	if tr.body != "" {
		body = strings.NewReader(tr.body)
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(tr.method, tr.target, body)
	if tr.body != "" {
		req.Header.Set(echo.HeaderContentType, MediaType)
	}
	if tr.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+tr.bearer)
	}
	for _, cookie := range tr.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	doc := map[string]any{}
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	}
	return rec, doc
}

func TestGetResources(t *testing.T) {
	s := newTestServer(t)
	rec, doc := s.do(t, testRequest{method: http.MethodOptions, target: "/jsonapi"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, MediaType, rec.Header().Get("Content-Type"))

	meta, ok := doc["meta"].(map[string]any)
	require.True(t, ok)
	resources, ok := meta["resources"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, resources["product"], "/jsonapi/product")
	assert.Contains(t, resources["basket"], "/jsonapi/basket")

	csrf, ok := meta["csrf"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "_token", csrf["name"])
	assert.NotEmpty(t, csrf["value"])
}

func TestSearchProductsPagination(t *testing.T) {
	s := newTestServer(t)
	rec, doc := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/product?page[limit]=1"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), doc["meta"].(map[string]any)["total"])

	data, ok := doc["data"].([]any)
	require.True(t, ok)
	assert.Len(t, data, 1)

	links, ok := doc["links"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, links, "self")
	assert.Contains(t, links, "next")
	assert.Contains(t, links, "last")
	assert.NotContains(t, links, "prev")
	assert.NotContains(t, links, "first")
}

func TestGetProductIncludedDedup(t *testing.T) {
	s := newTestServer(t)

	// The two demo products suggest each other, so the relationship
	// graph contains a cycle.
	rec, doc := s.do(t, testRequest{
		method: http.MethodGet,
		target: "/jsonapi/product/product:1?include=product,media,price,text,product.property,media.property",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	included, ok := doc["included"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, included)

	seen := map[string]int{}
	for _, entry := range included {
		res := entry.(map[string]any)
		key := res["type"].(string) + "/" + res["id"].(string)
		seen[key]++
	}
	for key, count := range seen {
		assert.Equal(t, 1, count, "duplicate included entry %s", key)
	}
	assert.Contains(t, seen, "product/product:2")
	assert.Contains(t, seen, "media/media:1")
}

func TestSparseFieldsets(t *testing.T) {
	s := newTestServer(t)
	rec, doc := s.do(t, testRequest{
		method: http.MethodGet,
		target: "/jsonapi/product/product:1?fields[product]=product.code",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := doc["data"].(map[string]any)
	require.True(t, ok)
	attrs, ok := data["attributes"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"product.code": "demo-article"}, attrs)
}

func TestErrorDocumentExclusivity(t *testing.T) {
	s := newTestServer(t)
	rec, doc := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/product/missing"})

	assert.Equal(t, http.StatusNotFound, rec.Code)

	errs, ok := doc["errors"].([]any)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.NotEmpty(t, errs[0].(map[string]any)["title"])

	_, hasData := doc["data"]
	_, hasIncluded := doc["included"]
	assert.False(t, hasData)
	assert.False(t, hasIncluded)
	assert.Equal(t, float64(0), doc["meta"].(map[string]any)["total"])
}

func TestProductAggregate(t *testing.T) {
	s := newTestServer(t)
	rec, doc := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/product?aggregate=product.type"})
	require.Equal(t, http.StatusOK, rec.Code)

	data, ok := doc["data"].([]any)
	require.True(t, ok)
	require.Len(t, data, 2)

	counts := map[string]float64{}
	for _, entry := range data {
		res := entry.(map[string]any)
		counts[res["id"].(string)] = res["attributes"].(map[string]any)["aggregate.count"].(float64)
	}
	assert.Equal(t, float64(1), counts["default"])
	assert.Equal(t, float64(1), counts["bundle"])
}

func TestBasketFlow(t *testing.T) {
	s := newTestServer(t)

	// First contact issues the guest session cookie; all later requests
	// must carry it so they hit the same basket.
	rec, _ := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/basket"})
	require.Equal(t, http.StatusOK, rec.Code)
	session := rec.Result().Cookies()
	require.NotEmpty(t, session)

	rec, doc := s.do(t, testRequest{
		method:  http.MethodPost,
		target:  "/jsonapi/basket/default/product?include=basket.product",
		body:    `{"data":{"attributes":{"product.id":"product:1","quantity":2}}}`,
		cookies: session,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := doc["data"].(map[string]any)
	assert.Equal(t, "basket", data["type"])
	assert.Equal(t, "49.98", data["attributes"].(map[string]any)["basket.price"])

	rels := data["relationships"].(map[string]any)
	pointers := rels["basket.product"].(map[string]any)["data"].([]any)
	require.Len(t, pointers, 1)
	assert.Equal(t, "0", pointers[0].(map[string]any)["id"])

	included := doc["included"].([]any)
	require.Len(t, included, 1)
	line := included[0].(map[string]any)
	assert.Equal(t, "basket.product", line["type"])
	assert.Equal(t, float64(2), line["attributes"].(map[string]any)["basket.product.quantity"])

	rec, doc = s.do(t, testRequest{
		method:  http.MethodDelete,
		target:  "/jsonapi/basket/default/product/0?include=basket.product",
		cookies: session,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	data = doc["data"].(map[string]any)
	_, hasRels := data["relationships"]
	assert.False(t, hasRels)
}

func TestBasketConflict(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/basket"})
	session := rec.Result().Cookies()

	rec, doc := s.do(t, testRequest{
		method:  http.MethodPost,
		target:  "/jsonapi/basket/default/coupon",
		body:    `{"data":{"attributes":{"basket.coupon.code":"NOPE"}}}`,
		cookies: session,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
	errs := doc["errors"].([]any)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].(map[string]any)["title"], "coupon")
}

func TestCSRFEnforcement(t *testing.T) {
	cfg := testConfig()
	cfg.Security.CSRFEnabled = true
	s := New(cfg, frontend.NewMemory())

	// Mutating request without the cookie/token pair is rejected.
	rec, _ := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/basket/default/product",
		body:   `{"data":{"attributes":{"product.id":"product:1","quantity":1}}}`,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A read hands out the csrf cookie whose value must be echoed.
	rec, doc := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/basket"})
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	token := doc["meta"].(map[string]any)["csrf"].(map[string]any)["value"].(string)
	require.NotEmpty(t, token)

	rec, _ = s.do(t, testRequest{
		method:  http.MethodPost,
		target:  "/jsonapi/basket/default/product?_token=" + token,
		body:    `{"data":{"attributes":{"product.id":"product:1","quantity":1}}}`,
		cookies: cookies,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestCustomerLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer",
		body:   `{"data":{"attributes":{"customer.code":"jane@example.com","customer.password":"secret123","customer.firstname":"Jane"}}}`,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	// Duplicate registration conflicts.
	rec, _ = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer",
		body:   `{"data":{"attributes":{"customer.code":"jane@example.com","customer.password":"other"}}}`,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, doc := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer/login",
		body:   `{"data":{"attributes":{"customer.code":"jane@example.com","customer.password":"secret123"}}}`,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := doc["meta"].(map[string]any)["token"].(string)
	require.NotEmpty(t, token)

	rec, doc = s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/customer", bearer: token})
	require.Equal(t, http.StatusOK, rec.Code)
	attrs := doc["data"].(map[string]any)["attributes"].(map[string]any)
	assert.Equal(t, "jane@example.com", attrs["customer.code"])
	assert.Equal(t, "Jane", attrs["customer.firstname"])

	// Wrong password is forbidden, not a validation error.
	rec, _ = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer/login",
		body:   `{"data":{"attributes":{"customer.code":"jane@example.com","customer.password":"wrong"}}}`,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestOrderRequiresCustomer(t *testing.T) {
	s := newTestServer(t)
	rec, _ := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/order"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOrderPlaceOverHTTP(t *testing.T) {
	s := newTestServer(t)

	// Register and log in so the basket belongs to a customer account.
	rec, _ := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer",
		body:   `{"data":{"attributes":{"customer.code":"buyer@example.com","customer.password":"secret123"}}}`,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	_, doc := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer/login",
		body:   `{"data":{"attributes":{"customer.code":"buyer@example.com","customer.password":"secret123"}}}`,
	})
	token := doc["meta"].(map[string]any)["token"].(string)

	rec, _ = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/basket/default/product",
		body:   `{"data":{"attributes":{"product.id":"product:1","quantity":1}}}`,
		bearer: token,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, doc = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/order?include=order.product",
		body:   `{"data":{"attributes":{}}}`,
		bearer: token,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	data := doc["data"].(map[string]any)
	assert.Equal(t, "order", data["type"])
	pointers := data["relationships"].(map[string]any)["order.product"].(map[string]any)["data"].([]any)
	assert.Len(t, pointers, 1)

	// Placing again from the now empty basket fails validation.
	rec, _ = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/order",
		body:   `{"data":{"attributes":{}}}`,
		bearer: token,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPayloadValidation(t *testing.T) {
	s := newTestServer(t)

	// Registration requires a well-formed email as the login code.
	rec, doc := s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/customer",
		body:   `{"data":{"attributes":{"customer.code":"not-an-email","customer.password":"secret123"}}}`,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotEmpty(t, doc["errors"])

	// Basket addresses reject malformed email addresses up front.
	rec, _ = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/basket/default/address",
		body:   `{"data":{"attributes":{"basket.address.type":"delivery","basket.address.email":"nope"}}}`,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A well-formed address passes validation and lands in the basket.
	rec, doc = s.do(t, testRequest{
		method: http.MethodPost,
		target: "/jsonapi/basket/default/address",
		body: `{"data":{"attributes":{"basket.address.type":"delivery","basket.address.firstname":"Jane",` +
			`"basket.address.lastname":"Doe","basket.address.city":"Hamburg","basket.address.countryid":"DE",` +
			`"basket.address.email":"jane@example.com"}}}`,
	})
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, doc["data"])
}

func TestDocumentSerializer(t *testing.T) {
	s := newTestServer(t)

	assert.IsType(t, jsonSerializer{}, s.echo.JSONSerializer)

	// Round trip a document through the full encode path.
	rec, doc := s.do(t, testRequest{method: http.MethodGet, target: "/jsonapi/product"})
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, doc["data"])
}
