package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/jsonapi"
)

// getResources handles OPTIONS /jsonapi
// @Summary Discover the available resources
// @Description Returns the resource name to URL map clients bootstrap from, plus the csrf pair and the parameter prefix
// @Tags meta
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi [options]
func (s *Server) getResources(c echo.Context) error {
	base := s.baseURL(c)

	resources := map[string]string{
		"basket":           base + "/basket",
		"basket/product":   base + "/basket/default/product",
		"basket/address":   base + "/basket/default/address",
		"basket/service":   base + "/basket/default/service",
		"basket/coupon":    base + "/basket/default/coupon",
		"customer":         base + "/customer",
		"customer/address": base + "/customer/address",
		"order":            base + "/order",
		"product":          base + "/product",
		"review":           base + "/review",
		"service":          base + "/service",
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, 0),
		Links: map[string]jsonapi.Link{"self": {Href: base, Allow: []string{http.MethodOptions}}},
	}
	doc.Meta["resources"] = resources
	return s.respond(c, http.StatusOK, doc, []string{http.MethodOptions}, true)
}
