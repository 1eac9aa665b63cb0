// Package jsonapi builds JSON:API compound documents from domain items:
// primary data, typed relationship pointers and a flattened, deduplicated
// included side-table, with sparse fieldset filtering and pagination
// links computed from offset/limit/total.
package jsonapi

// Link is a named link of a resource or document. Allow lists the HTTP
// verbs permitted on the target.
type Link struct {
	Href  string   `json:"href"`
	Allow []string `json:"allow,omitempty"`
}

// ResourceID is a lightweight pointer into the included table. The
// optional attributes describe the link itself (list type, position),
// not the referenced resource.
type ResourceID struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// Relationship holds the ordered pointers of one relationship domain.
type Relationship struct {
	Data []ResourceID `json:"data"`
}

// Resource is one JSON:API resource object. ID is a pointer so that
// transient resources render "id": null instead of an empty string.
type Resource struct {
	ID            *string                 `json:"id"`
	Type          string                  `json:"type"`
	Links         map[string]Link         `json:"links,omitempty"`
	Attributes    map[string]any          `json:"attributes,omitempty"`
	Relationships map[string]Relationship `json:"relationships,omitempty"`
}

// ErrorObject is one entry of the errors list. Detail carries internals
// (stack context) and is only populated in debug mode.
type ErrorObject struct {
	Title  string `json:"title"`
	Detail string `json:"detail,omitempty"`
}

// Document is the top-level compound document. Exactly one of Data or
// Errors is present; Included and pagination links are only rendered
// alongside Data.
type Document struct {
	Meta     map[string]any  `json:"meta,omitempty"`
	Links    map[string]Link `json:"links,omitempty"`
	Data     any             `json:"data,omitempty"`
	Included []Resource      `json:"included,omitempty"`
	Errors   []ErrorObject   `json:"errors,omitempty"`
}

// ErrorDocument renders a failed request: meta with a zero total, the
// self link and the error list. Data and Included stay empty.
func ErrorDocument(self Link, errs []ErrorObject) *Document {
	return &Document{
		Meta:   map[string]any{"total": 0},
		Links:  map[string]Link{"self": self},
		Errors: errs,
	}
}
