package api

import (
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/frontend"
	"github.com/ecombase/shopapi/internal/jsonapi"
)

const contextKeyBody = "decoded_body"

// parseInclude reads the include parameter as a comma list of
// relationship domains. The canonical separator inside a name is the
// dot ("product.property"); the legacy slash form is accepted and
// normalized.
func parseInclude(c echo.Context) []string {
	raw := c.QueryParam("include")
	if raw == "" {
		return nil
	}
	var domains []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(strings.ReplaceAll(name, "/", "."))
		if name != "" {
			domains = append(domains, name)
		}
	}
	return domains
}

// parseFields reads the fields[<type>] sparse fieldset parameters.
func parseFields(c echo.Context) jsonapi.Fieldsets {
	return jsonapi.ParseFieldsets(c.QueryParams())
}

// parseCriteria reads filter, sort and paging into a search criteria.
// The filter parameter is a JSON object keyed operator -> field -> value
// and is passed through to the frontend layer verbatim.
func (s *Server) parseCriteria(c echo.Context, resource string) (frontend.Criteria, error) {
	crit := frontend.Criteria{}

	if raw := c.QueryParam("filter"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &crit.Conditions); err != nil {
			return crit, echo.NewHTTPError(400, "invalid filter parameter: "+err.Error())
		}
	}

	if raw := c.QueryParam("sort"); raw != "" {
		for _, key := range strings.Split(raw, ",") {
			if key = strings.TrimSpace(key); key != "" {
				crit.Sort = append(crit.Sort, key)
			}
		}
	}

	crit.Offset, crit.Limit = s.parsePagination(c, resource)
	return crit, nil
}

// parsePagination parses page[offset] and page[limit]. The default
// limit depends on the resource and client values are capped.
func (s *Server) parsePagination(c echo.Context, resource string) (offset, limit int) {
	limit = s.config.Site.PageSizeFor(resource)

	if raw := c.QueryParam("page[limit]"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
			if max := s.config.Site.PageSizeMax; limit > max {
				limit = max
			}
		}
	}

	if raw := c.QueryParam("page[offset]"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	return offset, limit
}

// decodeBody parses the JSON request body once per request and caches
// the result. A configured site prefix is unwrapped transparently.
func (s *Server) decodeBody(c echo.Context) (map[string]any, error) {
	if cached, ok := c.Get(contextKeyBody).(map[string]any); ok {
		return cached, nil
	}

	body := map[string]any{}
	raw, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, echo.NewHTTPError(400, "cannot read request body")
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			return nil, echo.NewHTTPError(400, "invalid JSON body: "+err.Error())
		}
	}

	if prefix := s.config.Site.Prefix; prefix != "" {
		if wrapped, ok := body[prefix].(map[string]any); ok {
			// Parameters outside the prefix (csrf token) stay visible.
			for k, v := range wrapped {
				body[k] = v
			}
		}
	}

	c.Set(contextKeyBody, body)
	return body, nil
}

// bodyAttributes extracts data.attributes from a decoded request body.
func bodyAttributes(body map[string]any) map[string]any {
	data, ok := body["data"].(map[string]any)
	if !ok {
		return nil
	}
	attrs, _ := data["attributes"].(map[string]any)
	return attrs
}

// bodyID extracts data.id from a decoded request body.
func bodyID(body map[string]any) string {
	data, ok := body["data"].(map[string]any)
	if !ok {
		return ""
	}
	id, _ := data["id"].(string)
	return id
}
