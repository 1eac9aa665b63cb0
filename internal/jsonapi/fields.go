package jsonapi

import (
	"net/url"
	"strings"
)

// Fieldsets maps a resource type to the set of attribute names a client
// requested for it. A type without an entry passes all attributes.
type Fieldsets map[string]map[string]bool

// ParseFieldsets reads the fields[<type>]=a,b,c query parameters.
func ParseFieldsets(query url.Values) Fieldsets {
	fs := Fieldsets{}
	for key, values := range query {
		if !strings.HasPrefix(key, "fields[") || !strings.HasSuffix(key, "]") {
			continue
		}
		typ := key[len("fields[") : len(key)-1]
		if typ == "" {
			continue
		}
		set := map[string]bool{}
		for _, v := range values {
			for _, name := range strings.Split(v, ",") {
				if name = strings.TrimSpace(name); name != "" {
					set[name] = true
				}
			}
		}
		fs[typ] = set
	}
	return fs
}

// Filter intersects an attribute map with the fieldset of the given
// type. Filtering is idempotent; types without a fieldset pass through.
func (fs Fieldsets) Filter(resourceType string, attrs map[string]any) map[string]any {
	set, ok := fs[resourceType]
	if !ok {
		return attrs
	}
	out := make(map[string]any, len(set))
	for name, value := range attrs {
		if set[name] {
			out[name] = value
		}
	}
	return out
}
