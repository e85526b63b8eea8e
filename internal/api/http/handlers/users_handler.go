package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/api/dto"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/domain"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// UsersHandler manages account administration endpoints.
type UsersHandler struct {
	data   *data.Manager
	hasher *auth.Hasher
}

// NewUsersHandler constructs handler.
func NewUsersHandler(dataManager *data.Manager, hasher *auth.Hasher) *UsersHandler {
	return &UsersHandler{data: dataManager, hasher: hasher}
}

// List GET /api/usuarios.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	users := h.data.Users(c.Context())
	items := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		items = append(items, dto.ToResponse(user))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST /api/usuarios.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Username == "" || req.Password == "" || req.Name == "" {
		return apperrors.NewValidationError("username, name e password obrigatórios", nil)
	}

	hash, err := h.hasher.HashPassword(req.Password, auth.NormalizeUsername(req.Username))
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Username:     req.Username,
		Name:         req.Name,
		Role:         req.Role,
		Email:        req.Email,
		PasswordHash: hash,
		TecnicoID:    req.TecnicoID,
	}
	if err := h.data.SaveUser(c.Context(), user); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ToResponse(*user)})
}

// Update PUT /api/usuarios/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, found := h.data.UserByID(c.Context(), c.Params("id"))
	if !found {
		return apperrors.NewNotFound("usuário", map[string]any{"id": c.Params("id")})
	}

	if req.Username != "" {
		user.Username = req.Username
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Role != "" {
		user.Role = req.Role
	}
	user.Email = req.Email
	user.TecnicoID = req.TecnicoID
	if req.Disabled != nil {
		user.Disabled = *req.Disabled
	}
	if req.Password != "" {
		hash, err := h.hasher.HashPassword(req.Password, auth.NormalizeUsername(user.Username))
		if err != nil {
			return apperrors.NewInternalError(err)
		}
		user.PasswordHash = hash
	}

	if err := h.data.SaveUser(c.Context(), user); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToResponse(*user)})
}

// Delete DELETE /api/usuarios/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if !h.data.DeleteUser(c.Context(), c.Params("id")) {
		return apperrors.NewNotFound("usuário", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
