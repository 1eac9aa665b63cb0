// Package models contains the domain entities served by the JSON:API
// layer and the capability interfaces the document builder branches on.
//
// Every entity exports its attributes as a flat map whose keys follow the
// "<type>.<field>" convention ("product.code", "customer.address.city").
// Nested property and list entries use the prefixes registered in the
// schema table below, so the builder never assembles attribute keys from
// strings at call sites.
package models

type Item interface {
	// ItemID returns the persistent identifier, or "" for transient
	// items addressed positionally (unsaved basket lines).
	ItemID() string

	// ResourceType returns the JSON:API resource type. Sub-resources
	// use the dot form ("customer.address", "product.property").
	ResourceType() string

	// ToMap exports the entity attributes as a flat key/value map.
	ToMap() map[string]any
}

// HasListItems marks entities carrying typed references into other
// domains (product -> media/price/text, customer -> product favorites).
type HasListItems interface {
	ListItems() []*ListItem
}

// HasPropertyItems marks entities carrying key/value property entries.
type HasPropertyItems interface {
	PropertyItems() []*Property
}

// Schema describes the attribute-key prefixes a resource type uses for
// its list references and property entries.
type Schema struct {
	// ListPrefix prefixes the attributes describing the reference
	// itself ("product.lists.type", "product.lists.position").
	ListPrefix string

	// PropertyType is the resource type and attribute prefix of the
	// entity's property entries ("product.property").
	PropertyType string
}

var schemas = map[string]Schema{
	"product":  {ListPrefix: "product.lists", PropertyType: "product.property"},
	"media":    {ListPrefix: "media.lists", PropertyType: "media.property"},
	"customer": {ListPrefix: "customer.lists", PropertyType: "customer.property"},
	"service":  {ListPrefix: "service.lists", PropertyType: "service.property"},
}

// SchemaOf returns the prefix schema for a resource type. Types without
// a registered schema fall back to the "<type>.lists"/"<type>.property"
// convention so unknown domains still resolve consistently.
func SchemaOf(resourceType string) Schema {
	if s, ok := schemas[resourceType]; ok {
		return s
	}
	return Schema{
		ListPrefix:   resourceType + ".lists",
		PropertyType: resourceType + ".property",
	}
}
