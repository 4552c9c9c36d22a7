package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/contable-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary GET /api/dashboard?view=general|senior|junior
//
// Administradores eligen la vista; el personal recibe siempre la suya
// (cantidad de clientes asignados y rol), sin importar view.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.uc.GetSummary(c.UserContext(), GetActor(c), c.Query("view"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
