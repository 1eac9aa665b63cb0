package jsonapi

import (
	"strings"

	"github.com/ecombase/shopapi/models"
)

// includeDepth bounds the relationship walk below the primary data.
// Deeper references are silently not traversed.
const includeDepth = 2

type refKey struct {
	typ string
	id  string
}

// Builder assembles one compound document per request. It carries the
// request's include set and sparse fieldsets and deduplicates included
// entries by (type, id) across the whole document.
type Builder struct {
	baseURL  string
	include  map[string]bool
	fields   Fieldsets
	visited  map[refKey]int
	included []Resource
}

// NewBuilder creates a builder for one response. include holds the
// requested relationship domains in canonical dot form; fields may be
// nil for unfiltered attributes.
func NewBuilder(baseURL string, include []string, fields Fieldsets) *Builder {
	set := make(map[string]bool, len(include))
	for _, name := range include {
		if name != "" {
			set[name] = true
		}
	}
	if fields == nil {
		fields = Fieldsets{}
	}
	return &Builder{
		baseURL: strings.TrimRight(baseURL, "/"),
		include: set,
		fields:  fields,
		visited: map[refKey]int{},
	}
}

// Entry builds the resource object for a domain item: id, type, sparse
// filtered attributes and the self link carrying the permitted verbs.
func (b *Builder) Entry(it models.Item, allow []string) Resource {
	typ := it.ResourceType()
	res := Resource{
		Type:       typ,
		Attributes: b.fields.Filter(typ, it.ToMap()),
		Links: map[string]Link{
			"self": {Href: b.selfURL(typ, it.ItemID()), Allow: allow},
		},
	}
	if id := it.ItemID(); id != "" {
		res.ID = &id
	}
	return res
}

// Primary builds the resource object for a primary data item including
// its relationship block, and collects the referenced items into the
// included table.
func (b *Builder) Primary(it models.Item, allow []string) Resource {
	res := b.Entry(it, allow)
	b.relate(&res, it, includeDepth)
	return res
}

// Relate appends one relationship domain with explicit members to a
// resource and collects the members into the included table. Used for
// resources whose references are not list items (basket, order).
func (b *Builder) Relate(res *Resource, domain string, items ...models.Item) {
	if !b.include[domain] || len(items) == 0 {
		return
	}
	if res.Relationships == nil {
		res.Relationships = map[string]Relationship{}
	}
	rel := res.Relationships[domain]
	for _, it := range items {
		rel.Data = append(rel.Data, ResourceID{ID: it.ItemID(), Type: it.ResourceType()})
		b.collect(it, includeDepth-1)
	}
	res.Relationships[domain] = rel
}

// Included returns the flattened side-table accumulated so far, one
// entry per distinct (type, id) pair.
func (b *Builder) Included() []Resource {
	return b.included
}

// relate appends the relationship pointers for the item's list and
// property capabilities, restricted to the requested include domains,
// and descends depth levels into the referenced items.
func (b *Builder) relate(res *Resource, it models.Item, depth int) {
	ownType := it.ResourceType()

	if lister, ok := it.(models.HasListItems); ok {
		for _, l := range lister.ListItems() {
			if l.Ref == nil || !b.include[l.Domain] {
				continue
			}
			if res.Relationships == nil {
				res.Relationships = map[string]Relationship{}
			}
			rel := res.Relationships[l.Domain]
			rel.Data = append(rel.Data, ResourceID{
				ID:         l.Ref.ItemID(),
				Type:       l.Ref.ResourceType(),
				Attributes: l.AttributeMap(ownType),
			})
			res.Relationships[l.Domain] = rel
			if depth > 0 {
				b.collect(l.Ref, depth-1)
			}
		}
	}

	if propper, ok := it.(models.HasPropertyItems); ok {
		domain := models.SchemaOf(ownType).PropertyType
		if !b.include[domain] {
			return
		}
		for _, p := range propper.PropertyItems() {
			if res.Relationships == nil {
				res.Relationships = map[string]Relationship{}
			}
			rel := res.Relationships[domain]
			rel.Data = append(rel.Data, ResourceID{ID: p.ItemID(), Type: p.ResourceType()})
			res.Relationships[domain] = rel
			if depth > 0 {
				b.collect(p, depth-1)
			}
		}
	}
}

// collect inserts an item into the included table. The stub written
// before descending breaks reference cycles: a cycle back to the same
// (type, id) finds the stub and stops, and the stub is overwritten with
// the complete entry once its own relationships are resolved.
func (b *Builder) collect(it models.Item, depth int) {
	key := refKey{typ: it.ResourceType(), id: it.ItemID()}
	if _, seen := b.visited[key]; seen {
		return
	}
	idx := len(b.included)
	b.visited[key] = idx

	stub := Resource{Type: key.typ}
	if key.id != "" {
		id := key.id
		stub.ID = &id
	}
	b.included = append(b.included, stub)

	res := b.Entry(it, []string{"GET"})
	b.relate(&res, it, depth)
	b.included[idx] = res
}

func (b *Builder) selfURL(resourceType, id string) string {
	href := b.baseURL + "/" + strings.ReplaceAll(resourceType, ".", "/")
	if id != "" {
		href += "/" + id
	}
	return href
}
