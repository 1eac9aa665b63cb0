package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/jsonapi"
)

// searchReviews handles GET /jsonapi/review
// @Summary Search reviews
// @Tags review
// @Produce json
// @Param filter query string false "Filter conditions as JSON object"
// @Param aggregate query string false "Attribute key to count results by, e.g. review.rating"
// @Success 200 {object} jsonapi.Document
// @Router /jsonapi/review [get]
func (s *Server) searchReviews(c echo.Context) error {
	crit, err := s.parseCriteria(c, "review")
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	if key := c.QueryParam("aggregate"); key != "" {
		counts, err := s.frontend.Review.Aggregate(c.Request().Context(), key, crit)
		if err != nil {
			return s.respondError(c, err, allowReadWrite)
		}
		return s.respondAggregate(c, key, counts)
	}

	items, total, err := s.frontend.Review.Search(c.Request().Context(), crit)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), parseInclude(c), parseFields(c))
	data := make([]jsonapi.Resource, 0, len(items))
	for _, item := range items {
		data = append(data, builder.Primary(item, allowRead))
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, total),
		Links: jsonapi.PageLinks(s.requestURL(c), crit.Offset, crit.Limit, total),
		Data:  data,
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, true)
}

// createReview handles POST /jsonapi/review
// @Summary Create a review for a bought product
// @Tags review
// @Accept json
// @Produce json
// @Success 201 {object} jsonapi.Document
// @Failure 400 {object} jsonapi.Document
// @Router /jsonapi/review [post]
func (s *Server) createReview(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}
	var payload reviewPayload
	if err := s.bindAttributes(c, body, &payload); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	item, err := s.frontend.Review.Store(c.Request().Context(), auth.UserID(c), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), nil, nil)
	doc := &jsonapi.Document{
		Meta:  s.meta(c, 1),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  builder.Primary(item, allowReadWrite),
	}
	return s.respond(c, http.StatusCreated, doc, allowReadWrite, false)
}

// updateReview handles PATCH /jsonapi/review/:id
// @Summary Update an own review
// @Tags review
// @Accept json
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} jsonapi.Document
// @Failure 403 {object} jsonapi.Document
// @Router /jsonapi/review/{id} [patch]
func (s *Server) updateReview(c echo.Context) error {
	body, err := s.decodeBody(c)
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	item, err := s.frontend.Review.Update(c.Request().Context(), auth.UserID(c), c.Param("id"), bodyAttributes(body))
	if err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	builder := jsonapi.NewBuilder(s.baseURL(c), nil, nil)
	doc := &jsonapi.Document{
		Meta:  s.meta(c, 1),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  builder.Primary(item, allowReadWrite),
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}

// deleteReview handles DELETE /jsonapi/review/:id
// @Summary Delete an own review
// @Tags review
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} jsonapi.Document
// @Failure 403 {object} jsonapi.Document
// @Router /jsonapi/review/{id} [delete]
func (s *Server) deleteReview(c echo.Context) error {
	if err := s.frontend.Review.Delete(c.Request().Context(), auth.UserID(c), c.Param("id")); err != nil {
		return s.respondError(c, err, allowReadWrite)
	}

	doc := &jsonapi.Document{
		Meta:  s.meta(c, 0),
		Links: map[string]jsonapi.Link{"self": {Href: s.requestURL(c), Allow: allowReadWrite}},
		Data:  []jsonapi.Resource{},
	}
	return s.respond(c, http.StatusOK, doc, allowReadWrite, false)
}
