package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/api/dto"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/data"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// CatalogHandler manages parts, technicians and suppliers.
type CatalogHandler struct {
	data *data.Manager
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(dataManager *data.Manager) *CatalogHandler {
	return &CatalogHandler{data: dataManager}
}

// ListParts GET /api/pecas.
func (h *CatalogHandler) ListParts(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.data.Parts(c.Context())})
}

// SearchParts GET /api/pecas/search?q=&page=&limit=.
func (h *CatalogHandler) SearchParts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	result := h.data.SearchParts(c.Context(), c.Query("q"), page, limit)
	return c.JSON(fiber.Map{"data": result})
}

// RecentParts GET /api/pecas/recentes: the caller's recently requested codes.
func (h *CatalogHandler) RecentParts(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(fiber.Map{"data": h.data.RecentParts(c.Context(), session.User.TecnicoID)})
}

// CreatePart POST /api/pecas.
func (h *CatalogHandler) CreatePart(c *fiber.Ctx) error {
	var req dto.PartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	part := req.ToDomain("")
	if err := h.data.SavePart(c.Context(), part); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": part})
}

// UpdatePart PUT /api/pecas/:id.
func (h *CatalogHandler) UpdatePart(c *fiber.Ctx) error {
	var req dto.PartRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	part := req.ToDomain(c.Params("id"))
	if err := h.data.SavePart(c.Context(), part); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": part})
}

// DeletePart DELETE /api/pecas/:id.
func (h *CatalogHandler) DeletePart(c *fiber.Ctx) error {
	if !h.data.DeletePart(c.Context(), c.Params("id")) {
		return apperrors.NewNotFound("peça", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListTechnicians GET /api/tecnicos.
func (h *CatalogHandler) ListTechnicians(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.data.Technicians(c.Context())})
}

// CreateTechnician POST /api/tecnicos.
func (h *CatalogHandler) CreateTechnician(c *fiber.Ctx) error {
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tech := req.ToDomain("")
	if err := h.data.SaveTechnician(c.Context(), tech); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": tech})
}

// UpdateTechnician PUT /api/tecnicos/:id.
func (h *CatalogHandler) UpdateTechnician(c *fiber.Ctx) error {
	var req dto.TechnicianRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	tech := req.ToDomain(c.Params("id"))
	if err := h.data.SaveTechnician(c.Context(), tech); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": tech})
}

// DeleteTechnician DELETE /api/tecnicos/:id.
func (h *CatalogHandler) DeleteTechnician(c *fiber.Ctx) error {
	if !h.data.DeleteTechnician(c.Context(), c.Params("id")) {
		return apperrors.NewNotFound("técnico", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// ListSuppliers GET /api/fornecedores.
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.data.Suppliers(c.Context())})
}

// CreateSupplier POST /api/fornecedores.
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	supplier := req.ToDomain("")
	if err := h.data.SaveSupplier(c.Context(), supplier); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": supplier})
}

// UpdateSupplier PUT /api/fornecedores/:id.
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	var req dto.SupplierRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	supplier := req.ToDomain(c.Params("id"))
	if err := h.data.SaveSupplier(c.Context(), supplier); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": supplier})
}

// DeleteSupplier DELETE /api/fornecedores/:id.
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	if !h.data.DeleteSupplier(c.Context(), c.Params("id")) {
		return apperrors.NewNotFound("fornecedor", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}
