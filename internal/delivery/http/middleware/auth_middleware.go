package middleware

import (
	"strings"

	deliverycontext "github.com/alexandruvladut/articles-rest-api/internal/delivery/context"
	"github.com/alexandruvladut/articles-rest-api/internal/delivery/http/response"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/entity"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/repository"
	"github.com/alexandruvladut/articles-rest-api/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware provides middleware for bearer-token authentication and
// role-based authorization.
//
// Authenticate never rejects a request. It only decides whether an
// authenticated identity is attached to the request context; RequireRole,
// evaluated after it, is the layer that rejects protected operations.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	userRepo repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, userRepo: userRepo}
}

// Authenticate validates the bearer token, confirms the subject still exists,
// and attaches the identity to the request context. Every failure mode leaves
// the request unauthenticated and lets it continue; no error surfaces here.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return next(c)
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

		subject, ok := m.tokenSvc.ExtractSubject(tokenString)
		if !ok {
			// Malformed, tampered or expired token: stay unauthenticated.
			return next(c)
		}

		// The token may outlive the account. Confirm the subject still exists
		// before trusting the claims.
		user, err := m.userRepo.FindByUsername(c.Request().Context(), subject)
		if err != nil {
			return next(c)
		}

		identity := &entity.Identity{
			Subject: user.Username,
			Roles:   user.Roles(),
		}

		ctx := deliverycontext.WithIdentity(c.Request().Context(), identity)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRole is a middleware factory that checks the authenticated identity
// carries a specific role. It must be used AFTER the Authenticate middleware.
// An absent identity and a missing role both reject with Forbidden, before
// the protected handler runs.
func (m *AuthMiddleware) RequireRole(requiredRole entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := deliverycontext.GetIdentity(c.Request().Context())
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Authentication required")
			}

			if !identity.HasRole(requiredRole) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: require '"+requiredRole.String()+"' role")
			}

			return next(c)
		}
	}
}
