package api

import (
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/jsonapi"
)

// searchProducts handles GET /jsonapi/product
// @Summary Search products
// @Description Search the product catalog with filter, sort, paging, sparse fieldsets and included related resources
// @Tags product
// @Produce json
// @Param filter query string false "Filter conditions as JSON object"
// @Param sort query string false "Comma separated sort keys, - prefix for descending"
// @Param include query string false "Comma separated related resource names"
// @Param aggregate query string false "Attribute key to count results by"
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/product [get]
func (s *Server) searchProducts(c echo.Context) error {
	crit, err := s.parseCriteria(c, "product")
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	if key := c.QueryParam("aggregate"); key != "" {
		counts, err := s.frontend.Product.Aggregate(c.Request().Context(), key, crit)
		if err != nil {
			return s.respondError(c, err, allowRead)
		}
		return s.respondAggregate(c, key, counts)
	}

	items, total, err := s.frontend.Product.Search(c.Request().Context(), crit)
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	data := make([]jsonapi.Resource, 0, len(items))
	for _, item := range items {
		data = append(data, builder.Primary(item, allowRead))
	}

	doc := &jsonapi.Document{
		Meta:     s.meta(c, total),
		Links:    jsonapi.PageLinks(s.requestURL(c), crit.Offset, crit.Limit, total),
		Data:     data,
		Included: builder.Included(),
	}
	return s.respond(c, http.StatusOK, doc, allowRead, true)
}

// getProduct handles GET /jsonapi/product/:id
// @Summary Get a product
// @Tags product
// @Produce json
// @Param id path string true "Product ID"
// @Param include query string false "Comma separated related resource names"
// @Success 200 {object} jsonapi.Document
// @Failure 404 {object} jsonapi.Document
// @Router /jsonapi/product/{id} [get]
func (s *Server) getProduct(c echo.Context) error {
	item, err := s.frontend.Product.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	doc := &jsonapi.Document{
		Meta:     s.meta(c, 1),
		Links:    map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowRead}},
		Data:     builder.Primary(item, allowRead),
		Included: builder.Included(),
	}
	return s.respond(c, http.StatusOK, doc, allowRead, true)
}

// searchServices handles GET /jsonapi/service
// @Summary List delivery and payment services
// @Tags service
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/service [get]
func (s *Server) searchServices(c echo.Context) error {
	crit, err := s.parseCriteria(c, "service")
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	items, total, err := s.frontend.Service.Search(c.Request().Context(), crit)
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	data := make([]jsonapi.Resource, 0, len(items))
	for _, item := range items {
		data = append(data, builder.Primary(item, allowRead))
	}

	doc := &jsonapi.Document{
		Meta:     s.meta(c, total),
		Links:    jsonapi.PageLinks(s.requestURL(c), crit.Offset, crit.Limit, total),
		Data:     data,
		Included: builder.Included(),
	}
	return s.respond(c, http.StatusOK, doc, allowRead, true)
}

// respondAggregate renders count-by-key results, one entry per distinct
// value with the count as its only attribute.
func (s *Server) respondAggregate(c echo.Context, key string, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	total := 0
	data := make([]jsonapi.Resource, 0, len(counts))
	for _, k := range keys {
		id := k
		data = append(data, jsonapi.Resource{
			ID:   &id,
			Type: "aggregate",
			Attributes: map[string]any{
				"aggregate.key":   key,
				"aggregate.count": counts[k],
			},
		})
		total += counts[k]
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, total),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowRead}},
		Data:  data,
	}
	return s.respond(c, http.StatusOK, doc, allowRead, true)
}
