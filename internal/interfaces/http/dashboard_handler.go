package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del tablero.
type DashboardHandler struct {
	uc *analytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Metrics godoc
// @Summary      Indicadores del tablero
// @Description  Facturas pendientes y pagadas, contratos totales y activos, con el desglose por estado.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardMetricsResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/dashboard/metrics [get]
func (h *DashboardHandler) Metrics(c *fiber.Ctx) error {
	m, err := h.uc.GetMetrics(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(m)
}
