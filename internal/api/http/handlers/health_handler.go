package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/requisition-service/internal/cloud"
)

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName string
	version     string
	client      *cloud.Client
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, client *cloud.Client) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, client: client}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. The service stays ready without the cloud
// (cache-only mode); the response surfaces availability and the number of
// writes waiting to sync.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":         "ready",
		"cloudAvailable": h.client.IsCloudAvailable(),
		"queuedWrites":   h.client.QueueDepth(c.Context()),
	})
}
