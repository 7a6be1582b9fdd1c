package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/account-intel/errors"
	"github.com/johnquangdev/account-intel/internal/adapter/handler"
	"github.com/johnquangdev/account-intel/pkg/jwt"
)

const (
	// ClientIDContextKey is the echo context key for the calling service
	ClientIDContextKey = "client_id"
	// ScopeContextKey is the echo context key for the token scope
	ScopeContextKey = "scope"
)

// AuthMiddleware validates service-to-service JWT tokens
type AuthMiddleware struct {
	jwtManager *jwt.Manager
	logger     *zap.Logger
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(jwtManager *jwt.Manager, logger *zap.Logger) *AuthMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthMiddleware{
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Authenticate validates the bearer token and stores the caller identity
// on the request context
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := extractToken(c)
		if token == "" {
			return handler.HandleError(m.logger, c, apperrors.ErrUnauthenticated())
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			m.logger.Warn("token validation failed",
				zap.String("path", c.Path()),
				zap.Error(err))
			return handler.HandleError(m.logger, c, apperrors.ErrInvalidToken())
		}

		c.Set(ClientIDContextKey, claims.ClientID)
		c.Set(ScopeContextKey, claims.Scope)
		return next(c)
	}
}

// RequireScope rejects callers whose token lacks the given scope
func (m *AuthMiddleware) RequireScope(scope string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			granted, _ := c.Get(ScopeContextKey).(string)
			for _, s := range strings.Fields(granted) {
				if s == scope {
					return next(c)
				}
			}
			return handler.HandleError(m.logger, c, apperrors.ErrInvalidToken())
		}
	}
}

func extractToken(c echo.Context) string {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
