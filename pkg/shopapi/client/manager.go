package client

import (
	"context"
	"net/url"
	"strings"

	"github.com/goccy/go-json"
)

// Manager is the per-resource facade returned by Client.Use. It binds
// the resource's endpoint URL and namespaces filter condition fields
// with the resource key in canonical dot form.
type Manager struct {
	client   *Client
	resource string
	url      string
}

// Create issues a create with body {data: {attributes: props}}.
func (m *Manager) Create(ctx context.Context, props map[string]any) (*Result, error) {
	return m.client.Create(ctx, m.url, map[string]any{
		"data": map[string]any{"attributes": props},
	})
}

// Delete issues a delete with body {data: {id: id}}. The id may be a
// scalar or a list of ids.
func (m *Manager) Delete(ctx context.Context, id any) (*Result, error) {
	return m.client.Delete(ctx, m.url, map[string]any{
		"data": map[string]any{"id": id},
	})
}

// Update issues an update with body {data: {id, attributes: props}}.
func (m *Manager) Update(ctx context.Context, id string, props map[string]any) (*Result, error) {
	return m.client.Update(ctx, m.url, map[string]any{
		"data": map[string]any{"id": id, "attributes": props},
	})
}

// Find searches by the resource's code attribute and includes the given
// relationship domains.
func (m *Manager) Find(ctx context.Context, code string, domains ...string) (*Result, error) {
	filter := map[string]any{
		"==": map[string]any{m.resource + ".code": code},
	}
	return m.Search(ctx, filter, domains...)
}

// Get fetches one resource by id, including the given relationship
// domains.
func (m *Manager) Get(ctx context.Context, id string, domains ...string) (*Result, error) {
	params := url.Values{}
	if len(domains) > 0 {
		params.Set("include", strings.Join(domains, ","))
	}
	return m.client.Get(ctx, m.url+"/"+url.PathEscape(id), params)
}

// Search passes the filter through verbatim, injecting the include list.
func (m *Manager) Search(ctx context.Context, filter map[string]any, domains ...string) (*Result, error) {
	params := url.Values{}
	if len(filter) > 0 {
		encoded, err := json.Marshal(filter)
		if err != nil {
			return nil, err
		}
		params.Set("filter", string(encoded))
	}
	if len(domains) > 0 {
		params.Set("include", strings.Join(domains, ","))
	}
	return m.client.Search(ctx, m.url, params)
}
