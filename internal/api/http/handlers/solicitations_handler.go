package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/api/dto"
	"github.com/spec-kit/requisition-service/internal/auth"
	"github.com/spec-kit/requisition-service/internal/service"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// SolicitationsHandler manages part-request endpoints.
type SolicitationsHandler struct {
	service *service.SolicitationService
}

// NewSolicitationsHandler constructs handler.
func NewSolicitationsHandler(solicitationService *service.SolicitationService) *SolicitationsHandler {
	return &SolicitationsHandler{service: solicitationService}
}

// List GET /api/solicitacoes.
func (h *SolicitationsHandler) List(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	return c.JSON(fiber.Map{"data": h.service.List(c.Context(), session)})
}

// Get GET /api/solicitacoes/:id.
func (h *SolicitationsHandler) Get(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	sol, err := h.service.Get(c.Context(), session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sol})
}

// Create POST /api/solicitacoes.
func (h *SolicitationsHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.SolicitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if len(req.Itens) == 0 {
		return apperrors.NewValidationError("ao menos um item é obrigatório", nil)
	}

	sol := req.ToDomain("")
	if err := h.service.Create(c.Context(), session, sol); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": sol})
}

// Update PUT /api/solicitacoes/:id.
func (h *SolicitationsHandler) Update(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.SolicitationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sol := req.ToDomain(c.Params("id"))
	if err := h.service.Update(c.Context(), session, sol); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sol})
}

// Delete DELETE /api/solicitacoes/:id.
func (h *SolicitationsHandler) Delete(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	if err := h.service.Delete(c.Context(), session, c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"deleted": true}})
}

// Transition POST /api/solicitacoes/:id/status.
func (h *SolicitationsHandler) Transition(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("not authenticated")
	}
	var req dto.StatusChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sol, err := h.service.Transition(c.Context(), session, c.Params("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": sol})
}
