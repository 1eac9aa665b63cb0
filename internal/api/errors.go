package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/frontend"
	"github.com/ecombase/shopapi/internal/jsonapi"
)

// statusOf maps an error to its HTTP status code:
// validation 400, domain policy 403, missing items 404, provider
// conflicts 409. Unclassified errors keep their own code when it is a
// valid HTTP status, everything else becomes a 500.
func statusOf(err error) int {
	var ve *frontend.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest
	}
	if errors.Is(err, frontend.ErrForbidden) {
		return http.StatusForbidden
	}
	if errors.Is(err, frontend.ErrNotFound) {
		return http.StatusNotFound
	}
	var ce *frontend.ConflictError
	if errors.As(err, &ce) {
		return http.StatusConflict
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= 100 && he.Code <= 599 {
			return he.Code
		}
	}
	return http.StatusInternalServerError
}

// errorObjects renders an error as the JSON:API errors list. Internals
// are only exposed through Detail when debug mode is on.
func errorObjects(err error, debug bool) []jsonapi.ErrorObject {
	title := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if msg, ok := he.Message.(string); ok {
			title = msg
		}
	}
	if statusOf(err) == http.StatusInternalServerError {
		title = "An internal error occurred"
	}

	obj := jsonapi.ErrorObject{Title: title}
	if debug {
		obj.Detail = err.Error()
	}
	return []jsonapi.ErrorObject{obj}
}

// httpErrorHandler renders errors that escape the handlers (routing
// 404s, middleware rejections) as JSON:API error documents, keeping the
// media type consistent across all failure paths.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	doc := jsonapi.ErrorDocument(
		jsonapi.Link{Href: c.Request().RequestURI},
		errorObjects(err, s.config.Server.Debug),
	)

	c.Response().Header().Set(echo.HeaderContentType, MediaType)
	if err := c.JSON(statusOf(err), doc); err != nil {
		c.Logger().Error(err)
	}
}
