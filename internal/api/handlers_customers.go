package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/jsonapi"
	"github.com/ecombase/shopapi/models"
)

// createCustomer handles POST /jsonapi/customer
// @Summary Register a new customer account
// @Tags customer
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Failure 400 {object} jsonapi.Document
// @Failure 409 {object} jsonapi.Document
// @Router /jsonapi/customer [post]
func (s *Server) createCustomer(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	var payload customerPayload
	if err := s.bindAttributes(c, body, &payload); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	cust, err := s.frontend.Customer.Store(c.Request().Context(), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondCustomer(c, cust, http.StatusCreated)
}

// loginCustomer handles POST /jsonapi/customer/login
// @Summary Authenticate and receive a bearer token
// @Tags customer
// @Accept json
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Failure 403 {object} jsonapi.Document
// @Router /jsonapi/customer/login [post]
func (s *Server) loginCustomer(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	attrs := bodyAttributes(body)

	code, _ := attrs["customer.code"].(string)
	password, _ := attrs["customer.password"].(string)

	cust, err := s.frontend.Customer.Authenticate(c.Request().Context(), code, password)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	token, err := s.authMiddle.Service().GenerateToken(cust.ID, cust.Code)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	doc := &jsonapi.Document{
		Meta:  s.meta(c, 1),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  builder.Primary(cust, allowReadWrite),
	}
	doc.Meta["token"] = token
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}

// getCustomer handles GET /jsonapi/customer
// @Summary Get the account of the current customer
// @Tags customer
// @Produce json
// @Param include query string false "Comma separated related resource names"
// @Success 200 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer [get]
func (s *Server) getCustomer(c echo.Context) error {
	cust, err := s.frontend.Customer.Get(c.Request().Context(), auth.UserID(c))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondCustomer(c, cust, http.StatusOK)
}

// updateCustomer handles PATCH /jsonapi/customer
// @Summary Update the account of the current customer
// @Tags customer
// @Accept json
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer [patch]
func (s *Server) updateCustomer(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	cust, err := s.frontend.Customer.Update(c.Request().Context(), auth.UserID(c), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondCustomer(c, cust, http.StatusOK)
}

// deleteCustomer handles DELETE /jsonapi/customer
// @Summary Delete the account of the current customer
// @Tags customer
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer [delete]
func (s *Server) deleteCustomer(c echo.Context) error {
	if err := s.frontend.Customer.Delete(c.Request().Context(), auth.UserID(c)); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, 0),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  []jsonapi.Resource{},
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}

// addCustomerAddress handles POST /jsonapi/customer/address
// @Summary Add an address to the current account
// @Tags customer
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer/address [post]
func (s *Server) addCustomerAddress(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	addr, err := s.frontend.Customer.AddAddress(c.Request().Context(), auth.UserID(c), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondAddress(c, addr, http.StatusCreated)
}

// updateCustomerAddress handles PATCH /jsonapi/customer/address/:relatedid
// @Summary Update an address of the current account
// @Tags customer
// @Accept json
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Failure 404 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer/address/{relatedid} [patch]
func (s *Server) updateCustomerAddress(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	addr, err := s.frontend.Customer.UpdateAddress(c.Request().Context(), auth.UserID(c), c.Param("relatedid"), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	return s.respondAddress(c, addr, http.StatusOK)
}

// deleteCustomerAddress handles DELETE /jsonapi/customer/address/:relatedid
// @Summary Remove an address from the current account
// @Tags customer
// @Produce json
// @Success 200 {object} jsonapi.Document
// @Failure 404 {object} jsonapi.Document
// @Security BearerAuth
// @Router /jsonapi/customer/address/{relatedid} [delete]
func (s *Server) deleteCustomerAddress(c echo.Context) error {
	if err := s.frontend.Customer.DeleteAddress(c.Request().Context(), auth.UserID(c), c.Param("relatedid")); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, 0),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  []jsonapi.Resource{},
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}

// respondCustomer renders the account document. Addresses are explicit
// relationships; list and property references come from the capability
// walk in the builder.
func (s *Server) respondCustomer(c echo.Context, cust *models.Customer, status int) error {
	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	res := builder.Primary(cust, allowReadWrite)
	builder.Relate(&res, "customer.address", asItems(cust.Addresses)...)

	doc := &jsonapi.Document{
		Meta:     s.meta(c, 1),
		Links:    map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:     res,
		Included: builder.Included(),
	}
	return s.respond(c, status, doc, allowReadWrite, false)
}

func (s *Server) respondAddress(c echo.Context, addr *models.Address, status int) error {
	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	doc := &jsonapi.Document{
		Meta:  s.meta(c, 1),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  builder.Primary(addr, allowReadWrite),
	}
	return s.respond(c, status, doc, allowReadWrite, false)
}
