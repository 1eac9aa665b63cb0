// Package api provides the JSON:API HTTP layer of the shop. It uses the
// Echo framework to translate resource requests into frontend controller
// calls and renders the results as JSON:API compound documents.
package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/ecombase/shopapi/docs" // Import generated docs
	"github.com/ecombase/shopapi/internal/auth"
	"github.com/ecombase/shopapi/internal/config"
	"github.com/ecombase/shopapi/internal/frontend"
)

// Server represents the shop JSON:API server.
type Server struct {
	echo       *echo.Echo
	config     *config.Config
	frontend   *frontend.Frontend
	authMiddle *auth.Middleware
}

// payloadValidator adapts go-playground/validator to Echo.
type payloadValidator struct {
	validate *validator.Validate
}

func (v *payloadValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

// jsonSerializer routes Echo's JSON encode/decode through goccy/go-json.
// Compound documents are the hot marshal path of this server.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := json.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	if err := json.NewDecoder(c.Request().Body).Decode(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed JSON body").SetInternal(err)
	}
	return nil
}

// New creates a new API server instance.
func New(cfg *config.Config, fe *frontend.Frontend) *Server {
	e := echo.New()

	e.HideBanner = true
	e.HidePort = true
	e.Debug = cfg.Server.Debug
	e.Validator = &payloadValidator{validate: validator.New()}
	e.JSONSerializer = jsonSerializer{}

	authMiddle := auth.NewMiddleware(cfg)

	server := &Server{
		echo:       e,
		config:     cfg,
		frontend:   fe,
		authMiddle: authMiddle,
	}

	e.HTTPErrorHandler = server.httpErrorHandler

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures Echo middleware.
func (s *Server) setupMiddleware() {
	s.echo.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "[${time_rfc3339}] ${status} ${method} ${uri} (${latency_human})\n",
	}))

	s.echo.Use(middleware.Recover())

	s.echo.Use(SecurityHeaders)

	if len(s.config.Security.AllowedOrigins) > 0 {
		s.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: s.config.Security.AllowedOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		}))
	}

	s.echo.Use(middleware.RequestID())

	if s.config.Security.RateLimit > 0 {
		s.echo.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(
			rate.Limit(s.config.Security.RateLimit),
		)))
	}

	s.echo.Use(ValidateContentType)
	s.echo.Use(s.authMiddle.CurrentUser)
	s.echo.Use(s.verifyCSRF)
}

// setupRoutes registers the resource routes.
func (s *Server) setupRoutes() {
	api := s.echo.Group("/jsonapi")

	api.OPTIONS("", s.getResources)
	api.OPTIONS("/", s.getResources)

	api.GET("/product", s.searchProducts)
	api.GET("/product/:id", s.getProduct)

	api.GET("/service", s.searchServices)

	api.GET("/review", s.searchReviews)
	api.POST("/review", s.createReview, s.authMiddle.RequireCustomer)
	api.PATCH("/review/:id", s.updateReview, s.authMiddle.RequireCustomer)
	api.DELETE("/review/:id", s.deleteReview, s.authMiddle.RequireCustomer)

	api.GET("/basket", s.getBasket)
	api.GET("/basket/:id", s.getBasket)
	api.PATCH("/basket/:id", s.updateBasket)
	api.DELETE("/basket/:id", s.clearBasket)
	api.POST("/basket/:id/product", s.addBasketProduct)
	api.DELETE("/basket/:id/product/:relatedid", s.deleteBasketProduct)
	api.POST("/basket/:id/address", s.setBasketAddress)
	api.DELETE("/basket/:id/address/:relatedid", s.deleteBasketAddress)
	api.POST("/basket/:id/service", s.setBasketService)
	api.DELETE("/basket/:id/service/:relatedid", s.deleteBasketService)
	api.POST("/basket/:id/coupon", s.addBasketCoupon)
	api.DELETE("/basket/:id/coupon/:relatedid", s.deleteBasketCoupon)

	api.GET("/order", s.searchOrders, s.authMiddle.RequireCustomer)
	api.GET("/order/:id", s.getOrder, s.authMiddle.RequireCustomer)
	api.POST("/order", s.createOrder)

	api.POST("/customer", s.createCustomer)
	api.POST("/customer/login", s.loginCustomer)
	api.GET("/customer", s.getCustomer, s.authMiddle.RequireCustomer)
	api.PATCH("/customer", s.updateCustomer, s.authMiddle.RequireCustomer)
	api.DELETE("/customer", s.deleteCustomer, s.authMiddle.RequireCustomer)
	api.POST("/customer/address", s.addCustomerAddress, s.authMiddle.RequireCustomer)
	api.PATCH("/customer/address/:relatedid", s.updateCustomerAddress, s.authMiddle.RequireCustomer)
	api.DELETE("/customer/address/:relatedid", s.deleteCustomerAddress, s.authMiddle.RequireCustomer)

	s.echo.GET("/swagger/*", echoSwagger.WrapHandler)
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)

	s.echo.Server.ReadTimeout = s.config.Server.ReadTimeout
	s.echo.Server.WriteTimeout = s.config.Server.WriteTimeout

	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}
