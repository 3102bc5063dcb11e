package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// LocalPeriodID key del período activo en c.Locals.
const LocalPeriodID = "period_id"

// periodGate es el contrato mínimo que necesita el middleware. Lo implementa
// *period.UseCase; la interfaz evita acoplar el router al caso de uso completo.
type periodGate interface {
	RequireActivePeriod(ctx context.Context) (*entity.Period, error)
}

// RequireActivePeriod bloquea las rutas de facturación si no hay un período activo
// vigente. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 409 Conflict → no hay período activo o el activo ya venció.
//   - 503 Service Unavailable → fallo de infraestructura al consultar la DB.
func RequireActivePeriod(gate periodGate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := gate.RequireActivePeriod(c.UserContext())
		switch {
		case errors.Is(err, domain.ErrNoActivePeriod):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "NO_ACTIVE_PERIOD",
				Message: "debe existir un período activo para facturar",
			})
		case errors.Is(err, domain.ErrPeriodExpired):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Code:    "PERIOD_EXPIRED",
				Message: "el período activo está vencido, active uno vigente",
			})
		case err != nil:
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "PERIOD_CHECK_FAILED",
				Message: "no se pudo verificar el período, intente más tarde",
			})
		}
		c.Locals(LocalPeriodID, p.ID)
		return c.Next()
	}
}
