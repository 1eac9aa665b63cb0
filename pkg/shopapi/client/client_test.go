package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDoer records requests and replays canned response documents.
type fakeDoer struct {
	requests  []*http.Request
	bodies    []map[string]any
	responses []string
	status    []int
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.requests = append(f.requests, req)

	body := map[string]any{}
	if req.Body != nil {
		if raw, err := io.ReadAll(req.Body); err == nil && len(raw) > 0 {
			_ = json.Unmarshal(raw, &body)
		}
	}
	f.bodies = append(f.bodies, body)

	doc := `{"meta":{"total":0},"data":[]}`
	status := http.StatusOK
	if n := len(f.requests) - 1; n < len(f.responses) {
		doc = f.responses[n]
		if n < len(f.status) {
			status = f.status[n]
		}
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(doc)),
		Header:     http.Header{"Content-Type": []string{MediaType}},
	}, nil
}

func newTestManager(doer *fakeDoer, resource string) (*Client, *Manager) {
	c := New(doer)
	c.meta.Resources = map[string]string{resource: "http://shop.example/jsonapi/" + resource}
	m, err := c.Use(resource)
	if err != nil {
		panic(err)
	}
	return c, m
}

func TestManagerRequestBodies(t *testing.T) {
	doer := &fakeDoer{}
	_, m := newTestManager(doer, "product")

	_, err := m.Create(context.Background(), map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, doer.requests[0].Method)
	assert.Equal(t, map[string]any{
		"data": map[string]any{"attributes": map[string]any{"a": float64(1)}},
	}, doer.bodies[0])

	_, err = m.Update(context.Background(), "product:1", map[string]any{"a": float64(1)})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, doer.requests[1].Method)
	assert.Equal(t, map[string]any{
		"data": map[string]any{"id": "product:1", "attributes": map[string]any{"a": float64(1)}},
	}, doer.bodies[1])

	_, err = m.Delete(context.Background(), "product:1")
	require.NoError(t, err)
	assert.Equal(t, http.MethodDelete, doer.requests[2].Method)
	assert.Equal(t, map[string]any{
		"data": map[string]any{"id": "product:1"},
	}, doer.bodies[2])

	// Lists of ids pass through unchanged.
	_, err = m.Delete(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, doer.bodies[3]["data"].(map[string]any)["id"])
}

func TestManagerFindFilter(t *testing.T) {
	doer := &fakeDoer{}
	_, m := newTestManager(doer, "product")

	_, err := m.Find(context.Background(), "demo-article", "media", "price")
	require.NoError(t, err)

	query := doer.requests[0].URL.Query()
	assert.Equal(t, "media,price", query.Get("include"))

	filter := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(query.Get("filter")), &filter))
	assert.Equal(t, map[string]any{
		"==": map[string]any{"product.code": "demo-article"},
	}, filter)
}

func TestUseNormalizesResourceNames(t *testing.T) {
	c := New(&fakeDoer{})
	c.meta.Resources = map[string]string{"basket/product": "http://shop.example/jsonapi/basket/default/product"}

	// The registry uses slash keys; the dot form resolves to the same
	// endpoint and the manager's filter namespace stays dotted.
	m, err := c.Use("basket.product")
	require.NoError(t, err)
	assert.Equal(t, "basket.product", m.resource)

	_, err = c.Use("unknown")
	assert.Error(t, err)
}

func TestSearchTransform(t *testing.T) {
	doer := &fakeDoer{responses: []string{`{
		"meta": {"total": 7},
		"links": {"self": {"href": "http://shop.example/jsonapi/product"}},
		"data": [{"id": "product:1", "type": "product", "relationships": {
			"media": {"data": [{"id": "media:1", "type": "media"}]}
		}}],
		"included": [{"id": "media:1", "type": "media", "attributes": {"media.url": "/a.jpg"}}]
	}`}}
	_, m := newTestManager(doer, "product")

	result, err := m.Search(context.Background(), nil, "media")
	require.NoError(t, err)

	assert.Equal(t, 7, result.Total)
	assert.Contains(t, result.Links, "self")
	require.Len(t, result.Items, 1)

	media := result.Items[0].RelItems("media", nil, nil)
	require.Len(t, media, 1)
	assert.Equal(t, "/a.jpg", media[0].Get("media.url", nil))
}

func TestSearchTransformPromotesSingleObject(t *testing.T) {
	doer := &fakeDoer{responses: []string{`{
		"meta": {"total": 1},
		"data": {"id": "product:1", "type": "product"}
	}`}}
	_, m := newTestManager(doer, "product")

	result, err := m.Get(context.Background(), "product:1")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "product:1", result.Items[0].ID())
}

func TestSearchTransformWithoutTotal(t *testing.T) {
	doer := &fakeDoer{responses: []string{`{"data": []}`}}
	_, m := newTestManager(doer, "product")

	result, err := m.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, -1, result.Total)
	assert.Empty(t, result.Items)
}

func TestCSRFPropagation(t *testing.T) {
	search := `{"meta":{"total":0,"csrf":{"name":"_token","value":"tok-123"}},"data":[]}`
	doer := &fakeDoer{responses: []string{search, `{"data":[]}`, `{"data":[]}`}}
	c, m := newTestManager(doer, "product")

	// Reads never carry the pair, even after it is known.
	_, err := m.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, CSRF{Name: "_token", Value: "tok-123"}, c.Meta().CSRF)

	_, err = m.Create(context.Background(), map[string]any{"a": "b"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", doer.bodies[1]["_token"])

	_, err = m.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.NotContains(t, doer.requests[2].URL.RawQuery, "tok-123")
}

func TestPrefixWrapping(t *testing.T) {
	doer := &fakeDoer{}
	c, m := newTestManager(doer, "product")
	c.meta.Prefix = "ai"

	_, err := m.Create(context.Background(), map[string]any{"a": "b"})
	require.NoError(t, err)

	wrapped, ok := doer.bodies[0]["ai"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, wrapped, "data")
}

func TestErrorResponses(t *testing.T) {
	doer := &fakeDoer{
		responses: []string{`{"meta":{"total":0},"errors":[{"title":"Item not available"}]}`},
		status:    []int{http.StatusNotFound},
	}
	_, m := newTestManager(doer, "product")

	_, err := m.Get(context.Background(), "missing")
	require.Error(t, err)

	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Equal(t, http.StatusNotFound, reqErr.Status)
	assert.Contains(t, reqErr.Error(), "Item not available")
}

func TestContent(t *testing.T) {
	c := New(&fakeDoer{})

	assert.Equal(t, "data:image/png;base64,xyz", c.Content("data:image/png;base64,xyz"))
	assert.Equal(t, "https://cdn.example.com/a.jpg", c.Content("https://cdn.example.com/a.jpg"))
	assert.Equal(t, "/media/a.jpg", c.Content("media/a.jpg"))

	c.meta.ContentBaseURL = "https://cdn.example.com/"
	assert.Equal(t, "https://cdn.example.com/media/a.jpg", c.Content("/media/a.jpg"))
}

func TestTransformRegistry(t *testing.T) {
	doer := &fakeDoer{responses: []string{`{"data":{"id":"x","type":"product"}}`}}
	c, m := newTestManager(doer, "product")

	// Unregistered mutating verbs pass the raw document through.
	result, err := m.Create(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Empty(t, result.Items)
	assert.NotNil(t, result.Document["data"])

	// A registered transform replaces the default; chaining returns the
	// client itself.
	chained := c.SetTransform("create", func(c *Client, doc map[string]any) (*Result, error) {
		return searchTransform(c, doc)
	})
	assert.Same(t, c, chained)

	doer.responses = append(doer.responses, `{"data":{"id":"x","type":"product"}}`)
	result, err = m.Create(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}

func TestReadVerbTransforms(t *testing.T) {
	doer := &fakeDoer{responses: []string{
		`{"meta":{"total":1},"data":[{"id":"x","type":"product"}]}`,
	}}
	c, m := newTestManager(doer, "product")

	// Get defaults to the compound-document transform, like search.
	result, err := m.Get(context.Background(), "x")
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	// A "get" registration applies to Get requests; searches keep their
	// own verb.
	var verbs []string
	c.SetTransform("get", func(c *Client, doc map[string]any) (*Result, error) {
		verbs = append(verbs, "get")
		return identityTransform(c, doc)
	})
	c.SetTransform("search", func(c *Client, doc map[string]any) (*Result, error) {
		verbs = append(verbs, "search")
		return searchTransform(c, doc)
	})

	_, err = m.Get(context.Background(), "x")
	require.NoError(t, err)
	_, err = m.Search(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"get", "search"}, verbs)
}

func TestWithQuery(t *testing.T) {
	target, err := withQuery("http://shop.example/jsonapi/product?lang=en", url.Values{"include": []string{"media"}})
	require.NoError(t, err)

	u, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "en", u.Query().Get("lang"))
	assert.Equal(t, "media", u.Query().Get("include"))
}
