package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/jsonapi"
	"github.com/ecombase/shopapi/models"
)

// searchOrders handles GET /jsonapi/order
// @Summary List the orders of the current customer
// @Tags order
// @Produce json
// @Param filter query string false "Filter conditions as JSON object"
// @Param sort query string false "Comma separated sort keys, - prefix for descending"
// @Success 200 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/order [get]
func (s *Server) searchOrders(c echo.Context) error {
	crit, err := s.parseCriteria(c, "order")
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	orders, total, err := s.frontend.Order.Search(c.Request().Context(), auth.UserID(c), crit)
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	data := make([]jsonapi.Resource, 0, len(orders))
	for _, o := range orders {
		res := builder.Primary(o, allowRead)
		s.relateOrder(builder, &res, o)
		data = append(data, res)
	}

	doc := &jsonapi.Document{
		Meta:     s.meta(c, total),
		Links:    jsonapi.PageLinks(s.requestURL(c), crit.Offset, crit.Limit, total),
		Data:     data,
		Included: builder.Included(),
	}
	return s.respond(c, http.StatusOK, doc, allowRead, false)
}

// getOrder handles GET /jsonapi/order/:id
// @Summary Get one order of the current customer
// @Tags order
// @Produce json
// @Param id path string true "Order ID"
// @Param include query string false "Comma separated related resource names"
// @Success 200 {object} jsonapi.Document
// @Failure 404 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/order/{id} [get]
func (s *Server) getOrder(c echo.Context) error {
	o, err := s.frontend.Order.Get(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return s.respondError(c, err, allowRead)
	}
	return s.respondOrder(c, o, http.StatusOK)
}

// createOrder handles POST /jsonapi/order
// @Summary Place an order from the session basket
// @Tags order
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Failure 400 {object} jsonapi.Document
// @Router /jsonapi/order [post]
func (s *Server) createOrder(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowRead)
	}

	basketID, _ := bodyAttributes(body)["order.baseid"].(string)
	if basketID == "" {
		basketID = "default"
	}

	o, err := s.frontend.Order.Place(c.Request().Context(), auth.UserID(c), basketID)
	if err != nil {
		return s.respondError(c, err, allowRead)
	}
	return s.respondOrder(c, o, http.StatusCreated)
}

func (s *Server) respondOrder(c echo.Context, o *models.Order, status int) error {
	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	res := builder.Primary(o, allowRead)
	s.relateOrder(builder, &res, o)

	doc := &jsonapi.Document{
		Meta:     s.meta(c, 1),
		Links:    map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowRead}},
		Data:     res,
		Included: builder.Included(),
	}
	return s.respond(c, status, doc, allowRead, false)
}

// relateOrder appends the frozen sub-item relationships. Order entries
// are immutable once placed, so everything is read only.
func (s *Server) relateOrder(builder *jsonapi.Builder, res *jsonapi.Resource, o *models.Order) {
	builder.Relate(res, "order.product", asItems(o.Products)...)
	builder.Relate(res, "order.address", asItems(o.Addresses)...)
	builder.Relate(res, "order.service", asItems(o.Services)...)
	builder.Relate(res, "order.coupon", asItems(o.Coupons)...)
}
