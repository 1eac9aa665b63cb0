package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/jsonapi"
)

// meta assembles the document meta block: total count, the parameter
// prefix and content base url clients need, and the csrf pair.
func (s *Server) meta(c echo.Context, total int) map[string]any {
	meta := map[string]any{
		"total":           total,
		"content-baseurl": s.config.Site.ContentBaseURL,
		"csrf": map[string]any{
			"name":  csrfParam,
			"value": s.csrfToken(c),
		},
	}
	if s.config.Site.Prefix != "" {
		meta["prefix"] = s.config.Site.Prefix
	}
	return meta
}

// baseURL reconstructs the absolute URL of the JSON:API root.
func (s *Server) baseURL(c echo.Context) string {
	scheme := c.Scheme()
	if fwd := c.Request().Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request().Host + "/jsonapi"
}

// requestURL is the absolute URL of the current request including its
// query, used as the self link and pagination base.
func (s *Server) requestURL(c echo.Context) string {
	scheme := c.Scheme()
	if fwd := c.Request().Header.Get("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}
	return scheme + "://" + c.Request().Host + c.Request().RequestURI
}

// respond writes a success document. There is exactly one render path
// per handler; failures go through respondError instead.
func (s *Server) respond(c echo.Context, status int, doc *jsonapi.Document, allow []string, cacheable bool) error {
	h := c.Response().Header()
	h.Set(echo.HeaderContentType, MediaType)
	h.Set("Allow", strings.Join(allow, ", "))
	if cacheable {
		h.Set("Cache-Control", "max-age=300")
	} else {
		h.Set("Cache-Control", "no-cache, private")
	}
	return c.JSON(status, doc)
}

// respondError writes the error document for a failed operation. The
// document carries errors only; data and included stay absent.
func (s *Server) respondError(c echo.Context, err error, allow []string) error {
	doc := jsonapi.ErrorDocument(
		jsonapi.Link{Href: s.requestURL(c)},
		errorObjects(err, s.config.Server.Debug),
	)
	doc.Meta = s.meta(c, 0)
	doc.Meta["total"] = 0

	h := c.Response().Header()
	h.Set(echo.HeaderContentType, MediaType)
	h.Set("Allow", strings.Join(allow, ", "))
	h.Set("Cache-Control", "no-cache, private")
	return c.JSON(statusOf(err), doc)
}

var (
	allowRead      = []string{http.MethodGet, http.MethodOptions}
	allowReadWrite = []string{http.MethodDelete, http.MethodGet, http.MethodOptions, http.MethodPatch, http.MethodPost}
)
