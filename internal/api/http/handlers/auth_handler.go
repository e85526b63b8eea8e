package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/api/dto"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/service"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// AuthHandler exposes login, logout and session restore.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" {
		return apperrors.NewValidationError("username e password obrigatórios", nil)
	}

	session, token, err := h.auth.Login(c.Context(), req.Username, req.Password)
	if err != nil {
		if service.IsFatalAuthError(err) {
			return apperrors.NewInternalError(err)
		}
		return err
	}

	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		User:      session.User,
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Menu:      auth.MenuFor(session.User.Role),
	}})
}

// Session handles GET /auth/session: restore of the authenticated session.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not logged in")
	}
	return c.JSON(fiber.Map{"data": dto.SessionResponse{
		User:      session.User,
		ExpiresAt: session.ExpiresAt,
		Menu:      auth.MenuFor(session.User.Role),
	}})
}

// Logout handles POST /auth/logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if session, ok := auth.SessionFromContext(c); ok {
		h.auth.Logout(c.Context(), session.ID)
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"loggedOut": true}})
}
