package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/data"
	"github.com/spec-kit/requisition-service/internal/domain"
	apperrors "github.com/spec-kit/requisition-service/pkg/util"
)

// ReportsHandler serves statistics, the read-only export feed and settings.
type ReportsHandler struct {
	data *data.Manager
}

// NewReportsHandler constructs handler.
func NewReportsHandler(dataManager *data.Manager) *ReportsHandler {
	return &ReportsHandler{data: dataManager}
}

// Statistics GET /api/estatisticas.
func (h *ReportsHandler) Statistics(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.data.Statistics(c.Context())})
}

// ExportFeed GET /api/relatorios/solicitacoes: the full collection the
// export subsystem renders. Read-only.
func (h *ReportsHandler) ExportFeed(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": fiber.Map{
		"solicitacoes": h.data.Solicitations(c.Context()),
		"estatisticas": h.data.Statistics(c.Context()),
	}})
}

// GetSettings GET /api/configuracoes.
func (h *ReportsHandler) GetSettings(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.data.Settings(c.Context())})
}

// UpdateSettings PUT /api/configuracoes.
func (h *ReportsHandler) UpdateSettings(c *fiber.Ctx) error {
	var settings domain.Settings
	if err := c.BodyParser(&settings); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	h.data.SaveSettings(c.Context(), settings)
	return c.JSON(fiber.Map{"data": settings})
}
