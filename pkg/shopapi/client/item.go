// Package client consumes the shop's JSON:API documents: it wraps raw
// compound-document payloads into item objects that resolve relationship
// pointers lazily against the shared included side-table, and provides
// per-resource managers on top of a pluggable HTTP transport.
package client

// Included is the flattened side-table of a compound document, bucketed
// as type -> id -> resource object. Items hold a reference to it; they
// never copy or own it.
type Included map[string]map[string]map[string]any

// Item is an immutable read view over one decoded resource object.
type Item struct {
	data map[string]any
}

// NewItem wraps a decoded resource object. A nil map yields an item
// whose accessors all degrade to their zero results.
func NewItem(data map[string]any) *Item {
	if data == nil {
		data = map[string]any{}
	}
	return &Item{data: data}
}

// ID returns the resource id, or the empty string if absent.
func (i *Item) ID() string {
	id, _ := i.data["id"].(string)
	return id
}

// Type returns the resource type, or the empty string if absent.
func (i *Item) Type() string {
	typ, _ := i.data["type"].(string)
	return typ
}

// Get returns the named attribute, or def when the key is absent or the
// stored value is empty (nil, false, zero, empty string). The or-default
// lookup makes a stored zero indistinguishable from a missing key; this
// is a documented quirk callers rely on.
func (i *Item) Get(key string, def any) any {
	attrs, _ := i.data["attributes"].(map[string]any)
	if v, ok := attrs[key]; ok && !isEmpty(v) {
		return v
	}
	return def
}

// Attributes returns the raw attribute map, or an empty map if absent.
func (i *Item) Attributes() map[string]any {
	if attrs, ok := i.data["attributes"].(map[string]any); ok {
		return attrs
	}
	return map[string]any{}
}

// Link returns the named link object, or nil if it does not exist.
func (i *Item) Link(name string) map[string]any {
	link, _ := i.LinkMap()[name].(map[string]any)
	return link
}

// LinkMap returns the whole links map, empty if none.
func (i *Item) LinkMap() map[string]any {
	if links, ok := i.data["links"].(map[string]any); ok {
		return links
	}
	return map[string]any{}
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case bool:
		return !t
	case string:
		return t == ""
	case float64:
		return t == 0
	case int:
		return t == 0
	}
	return false
}

// RelItem extends Item with relationship resolution against the shared
// included table. Referenced resources are wrapped as RelItem again, so
// relationship walks can continue recursively on the result.
type RelItem struct {
	Item
	relationships map[string]any
	included      Included
}

// NewRelItem wraps a decoded resource object together with the document's
// included index. A nil index behaves like an empty one.
func NewRelItem(data map[string]any, included Included) *RelItem {
	item := NewItem(data)
	rels, _ := item.data["relationships"].(map[string]any)
	if rels == nil {
		rels = map[string]any{}
	}
	if included == nil {
		included = Included{}
	}
	return &RelItem{Item: *item, relationships: rels, included: included}
}

// RelItems resolves the pointers of one relationship domain. The list
// type of each pointer is read from the link's own attributes and matched
// against listTypeFilter; the referenced resource's declared type
// attribute is matched against typeFilter. On a match the link attributes
// are merged over the pointee's attributes and the result is wrapped as a
// new RelItem sharing the same included table.
//
// A filter of nil accepts everything, a []string accepts members, any
// other value must compare equal. Missing relationships, missing included
// entries and empty pointer lists all yield fewer results, never errors.
func (r *RelItem) RelItems(domain string, typeFilter, listTypeFilter any) []*RelItem {
	ownType := r.Type()
	listTypeKey := ownType + ".lists.type"

	var result []*RelItem
	for _, ptr := range r.pointers(domain) {
		linkAttrs, _ := ptr["attributes"].(map[string]any)
		if !matches(listTypeFilter, linkAttrs[listTypeKey]) {
			continue
		}

		typ, _ := ptr["type"].(string)
		id, _ := ptr["id"].(string)
		pointee, ok := r.included[typ][id]
		if !ok {
			continue
		}

		pointeeAttrs, _ := pointee["attributes"].(map[string]any)
		if !matches(typeFilter, pointeeAttrs[typ+".type"]) {
			continue
		}

		merged := make(map[string]any, len(pointee))
		for k, v := range pointee {
			merged[k] = v
		}
		attrs := make(map[string]any, len(pointeeAttrs)+len(linkAttrs))
		for k, v := range pointeeAttrs {
			attrs[k] = v
		}
		for k, v := range linkAttrs {
			attrs[k] = v
		}
		merged["attributes"] = attrs

		result = append(result, NewRelItem(merged, r.included))
	}
	return result
}

// PropertyItems resolves the "<ownType>.property" relationship and
// returns the referenced property resources whose property type matches
// the filter (nil accepts all, see RelItems for the matching rule).
func (r *RelItem) PropertyItems(typeFilter any) []*Item {
	domain := r.Type() + ".property"

	var result []*Item
	for _, pointee := range r.properties(domain) {
		attrs, _ := pointee["attributes"].(map[string]any)
		if matches(typeFilter, attrs[domain+".type"]) {
			result = append(result, NewItem(pointee))
		}
	}
	return result
}

// Properties is like PropertyItems but returns the bare property values
// instead of wrapped items.
func (r *RelItem) Properties(typeFilter any) []any {
	domain := r.Type() + ".property"

	var result []any
	for _, pointee := range r.properties(domain) {
		attrs, _ := pointee["attributes"].(map[string]any)
		if matches(typeFilter, attrs[domain+".type"]) {
			result = append(result, attrs[domain+".value"])
		}
	}
	return result
}

func (r *RelItem) properties(domain string) []map[string]any {
	var result []map[string]any
	for _, ptr := range r.pointers(domain) {
		id, _ := ptr["id"].(string)
		if pointee, ok := r.included[domain][id]; ok {
			result = append(result, pointee)
		}
	}
	return result
}

func (r *RelItem) pointers(domain string) []map[string]any {
	rel, _ := r.relationships[domain].(map[string]any)
	data, _ := rel["data"].([]any)

	var ptrs []map[string]any
	for _, entry := range data {
		if ptr, ok := entry.(map[string]any); ok {
			ptrs = append(ptrs, ptr)
		}
	}
	return ptrs
}

// matches applies the shared filter rule: nil accepts every candidate, a
// string list accepts members, anything else must compare equal.
func matches(filter, candidate any) bool {
	switch f := filter.(type) {
	case nil:
		return true
	case []string:
		for _, v := range f {
			if v == candidate {
				return true
			}
		}
		return false
	case []any:
		for _, v := range f {
			if v == candidate {
				return true
			}
		}
		return false
	default:
		return f == candidate
	}
}
