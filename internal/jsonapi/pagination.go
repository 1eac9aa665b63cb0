package jsonapi

import (
	"net/url"
	"strconv"
)

// PageLinks computes the pagination links for a result window. Absent
// links are omitted, never rendered as null:
//
//	first: offset 0, only when offset > 0
//	prev:  offset-limit, only when not negative
//	next:  offset+limit, only when below total
//	last:  the start of the final page, only when beyond offset
//
// The self link always carries the current offset.
func PageLinks(base string, offset, limit, total int) map[string]Link {
	links := map[string]Link{
		"self": {Href: pageURL(base, offset, limit)},
	}
	if limit <= 0 {
		return links
	}
	if offset > 0 {
		links["first"] = Link{Href: pageURL(base, 0, limit)}
	}
	if prev := offset - limit; prev >= 0 {
		links["prev"] = Link{Href: pageURL(base, prev, limit)}
	}
	if next := offset + limit; next < total {
		links["next"] = Link{Href: pageURL(base, next, limit)}
	}
	if last := (total / limit) * limit; last > offset {
		links["last"] = Link{Href: pageURL(base, last, limit)}
	}
	return links
}

func pageURL(base string, offset, limit int) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("page[offset]", strconv.Itoa(offset))
	q.Set("page[limit]", strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String()
}
