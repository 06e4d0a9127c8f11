package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/vibast-solutions/ms-go-jobtrack/app/service"
)

const identityKey = "identity"

type accessTokenVerifier interface {
	VerifyAccess(tokenString string) (*service.Claims, error)
}

type AuthMiddleware struct {
	tokens accessTokenVerifier
}

func NewAuthMiddleware(tokens accessTokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens}
}

// Resolve extracts an optional bearer token and stores the resulting
// identity in the request context. A missing or invalid token resolves to
// the anonymous identity; anonymous access is allowed on every resource
// endpoint, so this middleware never rejects a request.
func (m *AuthMiddleware) Resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(identityKey, m.resolve(c))
		return next(c)
	}
}

// RequireAuth rejects requests whose resolved identity is anonymous.
func (m *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		identity := m.resolve(c)
		if !identity.Authenticated {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error": "invalid or expired token",
			})
		}
		c.Set(identityKey, identity)
		return next(c)
	}
}

func (m *AuthMiddleware) resolve(c echo.Context) service.Identity {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return service.Anonymous
	}

	parts := strings.Fields(authHeader)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		logrus.Debug("Invalid authorization header format")
		return service.Anonymous
	}

	claims, err := m.tokens.VerifyAccess(parts[1])
	if err != nil {
		logrus.Debug("Invalid or expired access token")
		return service.Anonymous
	}

	return service.AuthenticatedAs(claims.UserID)
}

// IdentityFrom returns the identity resolved by this middleware, or the
// anonymous identity when none was stored.
func IdentityFrom(c echo.Context) service.Identity {
	if identity, ok := c.Get(identityKey).(service.Identity); ok {
		return identity
	}
	return service.Anonymous
}
