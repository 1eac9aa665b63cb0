package auth

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ecombase/shopapi/internal/config"
)

const (
	// ContextKeyUser is the key for the current user id in the echo context
	ContextKeyUser = "user"
	// ContextKeyClaims is the key for the JWT claims in the echo context
	ContextKeyClaims = "claims"

	// SessionCookie identifies a guest session
	SessionCookie = "shop_sid"
)

// Middleware resolves the current user for every request.
type Middleware struct {
	jwtService *JWTService
	config     *config.Config
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{
		jwtService: NewJWTService(cfg),
		config:     cfg,
	}
}

// Service exposes the JWT service for the login handler.
func (m *Middleware) Service() *JWTService {
	return m.jwtService
}

// CurrentUser sets the current user id in the request context: the
// customer id from a valid bearer token, otherwise a guest session id
// from the session cookie (created on first contact). An invalid or
// expired token is a hard error so clients notice stale credentials.
func (m *Middleware) CurrentUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if authHeader := c.Request().Header.Get("Authorization"); authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
			}

			claims, err := m.jwtService.ValidateToken(parts[1])
			if err != nil {
				if err == ErrExpiredToken {
					return echo.NewHTTPError(http.StatusUnauthorized, "token has expired")
				}
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ContextKeyClaims, claims)
			c.Set(ContextKeyUser, claims.CustomerID)
			return next(c)
		}

		c.Set(ContextKeyUser, m.guestSession(c))
		return next(c)
	}
}

// RequireCustomer rejects guests. Used for the account resources that
// only exist for logged-in customers.
func (m *Middleware) RequireCustomer(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := c.Get(ContextKeyClaims).(*Claims); !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "login required")
		}
		return next(c)
	}
}

// UserID returns the current user id set by CurrentUser.
func UserID(c echo.Context) string {
	id, _ := c.Get(ContextKeyUser).(string)
	return id
}

func (m *Middleware) guestSession(c echo.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return "guest:" + cookie.Value
	}

	sid := uuid.New().String()
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(30 * 24 * time.Hour),
	})
	return "guest:" + sid
}
