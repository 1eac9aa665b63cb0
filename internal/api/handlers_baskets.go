package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/jsonapi"
	"github.com/ecombase/shopapi/models"
)

// getBasket handles GET /jsonapi/basket and GET /jsonapi/basket/:id
// @Summary Get the session basket
// @Tags basket
// @Produce json
// @Param include query string false "Comma separated related resource names"
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id} [get]
func (s *Server) getBasket(c echo.Context) error {
	b, err := s.frontend.Basket.Get(c.Request().Context(), auth.UserID(c), c.Param("id"))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// updateBasket handles PATCH /jsonapi/basket/:id
// @Summary Update basket attributes
// @Tags basket
// @Accept json
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id} [patch]
func (s *Server) updateBasket(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	b, err := s.frontend.Basket.Update(c.Request().Context(), auth.UserID(c), c.Param("id"), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// clearBasket handles DELETE /jsonapi/basket/:id
// @Summary Clear the session basket
// @Tags basket
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id} [delete]
func (s *Server) clearBasket(c echo.Context) error {
	if err := s.frontend.Basket.Clear(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, 0),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  []jsonapi.Resource{},
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}

// addBasketProduct handles POST /jsonapi/basket/:id/product
// @Summary Add a product line to the basket
// @Tags basket
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Failure 409 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/product [post]
func (s *Server) addBasketProduct(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	attrs := bodyAttributes(body)

	productID, _ := attrs["product.id"].(string)
	quantity := 1
	if q, ok := attrs["quantity"].(float64); ok {
		quantity = int(q)
	}

	b, err := s.frontend.Basket.AddProduct(c.Request().Context(), auth.UserID(c), c.Param("id"), productID, quantity)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusCreated)
}

// deleteBasketProduct handles DELETE /jsonapi/basket/:id/product/:relatedid
// @Summary Remove a product line by position
// @Tags basket
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/product/{relatedid} [delete]
func (s *Server) deleteBasketProduct(c echo.Context) error {
	position, err := strconv.Atoi(c.Param("relatedid"))
	if err != nil {
		return s.respondError(c, echo.NewHTTPError(400, "invalid line position"), allowReadWrite)
	}

	b, err := s.frontend.Basket.DeleteProduct(c.Request().Context(), auth.UserID(c), c.Param("id"), position)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// setBasketAddress handles POST /jsonapi/basket/:id/address
// @Summary Set the delivery or payment address
// @Tags basket
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/address [post]
func (s *Server) setBasketAddress(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	var payload basketAddressPayload
	if err := s.bindAttributes(c, body, &payload); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	addr := &models.BasketAddress{
		Type:       payload.Type,
		Salutation: payload.Salutation,
		FirstName:  payload.FirstName,
		LastName:   payload.LastName,
		Address1:   payload.Address1,
		Address2:   payload.Address2,
		PostalCode: payload.PostalCode,
		City:       payload.City,
		CountryID:  payload.CountryID,
		Email:      payload.Email,
	}

	b, err := s.frontend.Basket.SetAddress(c.Request().Context(), auth.UserID(c), c.Param("id"), addr)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusCreated)
}

// deleteBasketAddress handles DELETE /jsonapi/basket/:id/address/:relatedid
// @Summary Remove an address slot (delivery or payment)
// @Tags basket
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/address/{relatedid} [delete]
func (s *Server) deleteBasketAddress(c echo.Context) error {
	b, err := s.frontend.Basket.DeleteAddress(c.Request().Context(), auth.UserID(c), c.Param("id"), c.Param("relatedid"))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// setBasketService handles POST /jsonapi/basket/:id/service
// @Summary Choose a delivery or payment service
// @Tags basket
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/service [post]
func (s *Server) setBasketService(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	attrs := bodyAttributes(body)

	slot, _ := attrs["basket.service.type"].(string)
	serviceID, _ := attrs["service.id"].(string)

	b, err := s.frontend.Basket.SetService(c.Request().Context(), auth.UserID(c), c.Param("id"), slot, serviceID)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusCreated)
}

// deleteBasketService handles DELETE /jsonapi/basket/:id/service/:relatedid
// @Summary Remove a chosen service slot
// @Tags basket
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/service/{relatedid} [delete]
func (s *Server) deleteBasketService(c echo.Context) error {
	b, err := s.frontend.Basket.DeleteService(c.Request().Context(), auth.UserID(c), c.Param("id"), c.Param("relatedid"))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// addBasketCoupon handles POST /jsonapi/basket/:id/coupon
// @Summary Redeem a coupon code
// @Tags basket
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Failure 409 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/coupon [post]
func (s *Server) addBasketCoupon(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	code, _ := bodyAttributes(body)["basket.coupon.code"].(string)
	b, err := s.frontend.Basket.AddCoupon(c.Request().Context(), auth.UserID(c), c.Param("id"), code)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusCreated)
}

// deleteBasketCoupon handles DELETE /jsonapi/basket/:id/coupon/:relatedid
// @Summary Remove a redeemed coupon code
// @Tags basket
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/basket/{id}/coupon/{relatedid} [delete]
func (s *Server) deleteBasketCoupon(c echo.Context) error {
	b, err := s.frontend.Basket.DeleteCoupon(c.Request().Context(), auth.UserID(c), c.Param("id"), c.Param("relatedid"))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondBasket(c, b, http.StatusOK)
}

// respondBasket renders the basket compound document. The basket and
// its lines are transient, so every entry carries the full verb set.
func (s *Server) respondBasket(c echo.Context, b *models.Basket, status int) error {
	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	res := builder.Primary(b, allowReadWrite)

	builder.Relate(&res, "basket.product", asItems(b.Products)...)
	builder.Relate(&res, "basket.address", asItems(b.Addresses)...)
	builder.Relate(&res, "basket.service", asItems(b.Services)...)
	builder.Relate(&res, "basket.coupon", asItems(b.Coupons)...)

	if b.CustomerID != "" {
		if cust, err := s.frontend.Customer.Get(c.Request().Context(), b.CustomerID); err == nil {
			builder.Relate(&res, "customer", cust)
		}
	}

	doc := &jsonapi.Document{
		Meta:     s.meta(c, 1),
		Links:    map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:     res,
		Included: builder.Included(),
	}
	return s.respond(c, status, doc, allowReadWrite, false)
}

func asItems[T models.Item](items []T) []models.Item {
	out := make([]models.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}
