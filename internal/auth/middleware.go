package auth

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/domain"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

const principalKey = "auth_principal"

// SessionResolver restores a session by id, refreshing it from the latest
// user record. Implemented by the auth service.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Middleware validates bearer tokens and loads the session principal.
type Middleware struct {
	tokens   *TokenManager
	sessions SessionResolver
}

// NewMiddleware constructs middleware.
func NewMiddleware(tokens *TokenManager, sessions SessionResolver) *Middleware {
	return &Middleware{tokens: tokens, sessions: sessions}
}

// Handle enforces authentication for protected routes.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	session, err := m.sessions.Resolve(c.Context(), claims.SessionID)
	if err != nil || session == nil {
		return apperrors.NewUnauthorized("session expired")
	}

	c.Locals(principalKey, session)
	return c.Next()
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

// RequirePermission gates a route on one module/action pair from the
// permission table.
func RequirePermission(module, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if !HasPermission(session.User.Role, module, action) {
			return apperrors.NewForbidden("permissão insuficiente")
		}
		return c.Next()
	}
}

// RequireRole restricts a route to the listed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("not authenticated")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[session.User.Role]; !exists {
			return apperrors.NewForbidden("perfil sem acesso")
		}
		return c.Next()
	}
}
