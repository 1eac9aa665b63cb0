package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/goccy/go-json"
)

// MediaType is the JSON:API media type requests are sent with.
const MediaType = "application/vnd.api+json"

// Doer issues HTTP requests. *http.Client satisfies it; tests plug in
// fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CSRF is the token pair mutating requests must echo back.
type CSRF struct {
	Name  string
	Value string
}

// Meta is the client state learned from the server: the parameter
// prefix, the csrf pair, the content base URL and the resource registry.
// The csrf value is refreshed from every response that carries one.
type Meta struct {
	Prefix         string
	CSRF           CSRF
	ContentBaseURL string
	Resources      map[string]string
}

// Transform converts a decoded response document into a Result. Custom
// transforms can be registered per verb; the read verbs "search" and
// "get" share a non-trivial default.
type Transform func(c *Client, doc map[string]any) (*Result, error)

// Result is the outcome of one client operation. Items and Total are
// populated by the search transform on reads; mutating verbs pass the
// raw document through unless a custom transform is registered. Total
// is -1 when the response carried no meta.total.
type Result struct {
	Items    []*RelItem
	Links    map[string]any
	Total    int
	Document map[string]any
}

// RequestError is returned when the server answers with an errors
// document.
type RequestError struct {
	Status int
	Errors []map[string]any
}

func (e *RequestError) Error() string {
	if len(e.Errors) > 0 {
		if title, ok := e.Errors[0]["title"].(string); ok && title != "" {
			return fmt.Sprintf("request failed (%d): %s", e.Status, title)
		}
	}
	return fmt.Sprintf("request failed (%d)", e.Status)
}

// Client is the transport facade. It owns the mutable meta state and the
// per-verb transform registry. Concurrent requests through one client
// may race on the csrf refresh; last response wins, which is fine for a
// token that is refreshed opportunistically.
type Client struct {
	doer Doer

	mu    sync.Mutex
	meta  Meta
	trans map[string]Transform
}

// New creates a client on the given transport. A nil doer falls back to
// http.DefaultClient.
func New(doer Doer) *Client {
	if doer == nil {
		doer = http.DefaultClient
	}
	return &Client{
		doer:  doer,
		meta:  Meta{Resources: map[string]string{}},
		trans: map[string]Transform{},
	}
}

// Meta returns a snapshot of the current client state.
func (c *Client) Meta() Meta {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.meta
}

// Bootstrap discovers the server's resource registry, parameter prefix,
// content base URL and csrf pair via an OPTIONS request on the JSON:API
// root.
func (c *Client) Bootstrap(ctx context.Context, rootURL string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodOptions, rootURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", MediaType)

	doc, status, err := c.roundTrip(req)
	if err != nil {
		return err
	}
	if errs := errorList(doc); status >= 400 || errs != nil {
		return &RequestError{Status: status, Errors: errs}
	}

	meta, _ := doc["meta"].(map[string]any)

	c.mu.Lock()
	defer c.mu.Unlock()
	if prefix, ok := meta["prefix"].(string); ok {
		c.meta.Prefix = prefix
	}
	if base, ok := meta["content-baseurl"].(string); ok {
		c.meta.ContentBaseURL = base
	}
	c.updateCSRFLocked(meta)
	if resources, ok := meta["resources"].(map[string]any); ok {
		for name, u := range resources {
			if href, ok := u.(string); ok {
				c.meta.Resources[name] = href
			}
		}
	}
	return nil
}

// Use returns a manager for the named resource. The name is looked up in
// the resource registry learned at bootstrap; both the dot and the slash
// form are accepted.
func (c *Client) Use(resource string) (*Manager, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	u, ok := c.meta.Resources[resource]
	if !ok {
		u, ok = c.meta.Resources[strings.ReplaceAll(resource, ".", "/")]
	}
	if !ok {
		return nil, fmt.Errorf("unknown resource %q", resource)
	}
	return &Manager{client: c, resource: strings.ReplaceAll(resource, "/", "."), url: u}, nil
}

// Content resolves a media path against the content base URL. Data URIs
// and absolute URLs pass through unchanged.
func (c *Client) Content(path string) string {
	if strings.HasPrefix(path, "data:") || strings.Contains(path, "://") {
		return path
	}

	c.mu.Lock()
	base := c.meta.ContentBaseURL
	c.mu.Unlock()
	if base == "" {
		base = "/"
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// Transform returns the registered transform for a verb. Without a
// registration, the read verbs "search" and "get" use the
// compound-document transform and every other verb an identity
// transform returning the raw document.
func (c *Client) Transform(verb string) Transform {
	c.mu.Lock()
	defer c.mu.Unlock()

	if fn, ok := c.trans[verb]; ok {
		return fn
	}
	if verb == "search" || verb == "get" {
		return searchTransform
	}
	return identityTransform
}

// SetTransform registers a custom transform for a verb and returns the
// client for chaining.
func (c *Client) SetTransform(verb string, fn Transform) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trans[verb] = fn
	return c
}

// Get issues a read under the "get" verb, which defaults to the search
// transform, so list and single resource responses come back as wrapped
// items.
func (c *Client) Get(ctx context.Context, rawURL string, params url.Values) (*Result, error) {
	target, err := withQuery(rawURL, params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", MediaType)
	return c.execute(req, "get")
}

// Search issues a read under the "search" verb. It differs from Get
// only in which transform registration applies.
func (c *Client) Search(ctx context.Context, rawURL string, params url.Values) (*Result, error) {
	target, err := withQuery(rawURL, params)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", MediaType)
	return c.execute(req, "search")
}

// Create issues a create with the params as request body.
func (c *Client) Create(ctx context.Context, rawURL string, params map[string]any) (*Result, error) {
	return c.mutate(ctx, http.MethodPost, rawURL, params, "create")
}

// Update issues an update with the params as request body.
func (c *Client) Update(ctx context.Context, rawURL string, params map[string]any) (*Result, error) {
	return c.mutate(ctx, http.MethodPatch, rawURL, params, "update")
}

// Delete issues a delete with the params as request body.
func (c *Client) Delete(ctx context.Context, rawURL string, params map[string]any) (*Result, error) {
	return c.mutate(ctx, http.MethodDelete, rawURL, params, "delete")
}

// mutate wraps the params under the configured prefix, injects the csrf
// pair and issues the request. Reads never carry the csrf pair.
func (c *Client) mutate(ctx context.Context, method, rawURL string, params map[string]any, verb string) (*Result, error) {
	c.mu.Lock()
	prefix := c.meta.Prefix
	csrf := c.meta.CSRF
	c.mu.Unlock()

	body := map[string]any{}
	if prefix != "" {
		body[prefix] = params
	} else {
		for k, v := range params {
			body[k] = v
		}
	}
	if csrf.Name != "" && csrf.Value != "" {
		body[csrf.Name] = csrf.Value
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", MediaType)
	req.Header.Set("Accept", MediaType)
	return c.execute(req, verb)
}

func (c *Client) execute(req *http.Request, verb string) (*Result, error) {
	doc, status, err := c.roundTrip(req)
	if err != nil {
		return nil, err
	}

	// The csrf pair is refreshed from every document that carries one,
	// success or failure.
	if meta, ok := doc["meta"].(map[string]any); ok {
		c.mu.Lock()
		c.updateCSRFLocked(meta)
		c.mu.Unlock()
	}

	if errs := errorList(doc); status >= 400 || errs != nil {
		return nil, &RequestError{Status: status, Errors: errs}
	}
	return c.Transform(verb)(c, doc)
}

func (c *Client) roundTrip(req *http.Request) (map[string]any, int, error) {
	resp, err := c.doer.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	doc := map[string]any{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("decode response: %w", err)
		}
	}
	return doc, resp.StatusCode, nil
}

func (c *Client) updateCSRFLocked(meta map[string]any) {
	csrf, ok := meta["csrf"].(map[string]any)
	if !ok {
		return
	}
	name, _ := csrf["name"].(string)
	value, _ := csrf["value"].(string)
	if name != "" && value != "" {
		c.meta.CSRF = CSRF{Name: name, Value: value}
	}
}

// searchTransform builds the included index and wraps the primary data
// as RelItem list. A single resource object is promoted to a one-element
// list so callers handle both shapes uniformly.
func searchTransform(c *Client, doc map[string]any) (*Result, error) {
	result := &Result{Total: -1, Links: map[string]any{}, Document: doc}

	if meta, ok := doc["meta"].(map[string]any); ok {
		if total, ok := meta["total"].(float64); ok {
			result.Total = int(total)
		}
	}
	if links, ok := doc["links"].(map[string]any); ok {
		result.Links = links
	}

	included := Included{}
	if entries, ok := doc["included"].([]any); ok {
		for _, entry := range entries {
			res, ok := entry.(map[string]any)
			if !ok {
				continue
			}
			typ, _ := res["type"].(string)
			id, _ := res["id"].(string)
			if included[typ] == nil {
				included[typ] = map[string]map[string]any{}
			}
			included[typ][id] = res
		}
	}

	switch data := doc["data"].(type) {
	case []any:
		for _, entry := range data {
			if res, ok := entry.(map[string]any); ok {
				result.Items = append(result.Items, NewRelItem(res, included))
			}
		}
	case map[string]any:
		result.Items = append(result.Items, NewRelItem(data, included))
	}
	return result, nil
}

func identityTransform(_ *Client, doc map[string]any) (*Result, error) {
	return &Result{Total: -1, Document: doc}, nil
}

func errorList(doc map[string]any) []map[string]any {
	entries, ok := doc["errors"].([]any)
	if !ok {
		return nil
	}
	errs := make([]map[string]any, 0, len(entries))
	for _, entry := range entries {
		if obj, ok := entry.(map[string]any); ok {
			errs = append(errs, obj)
		}
	}
	return errs
}

func withQuery(rawURL string, params url.Values) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for key, values := range params {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
