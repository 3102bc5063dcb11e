package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
)

// errorMapping relaciona un error de dominio con su respuesta HTTP.
type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// El orden importa: se usa el primer error que coincida con errors.Is.
var errorMappings = []errorMapping{
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrUserNotFound, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrSessionExpired, fiber.StatusUnauthorized, "SESSION_EXPIRED", "la sesión expiró"},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "recurso duplicado"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "conflicto con el estado actual"},
	{domain.ErrNoActivePeriod, fiber.StatusConflict, "NO_ACTIVE_PERIOD", "no hay un período activo"},
	{domain.ErrPeriodExpired, fiber.StatusConflict, "PERIOD_EXPIRED", "el período activo está vencido"},
	{domain.ErrContractDocumentMissing, fiber.StatusUnprocessableEntity, "CONTRACT_PDF_MISSING", "el contrato no tiene PDF generado"},
	{domain.ErrContractNotSigned, fiber.StatusUnprocessableEntity, "CONTRACT_NOT_SIGNED", "confirme que el cliente firmó el contrato"},
	{domain.ErrInvalidAmount, fiber.StatusUnprocessableEntity, "INVALID_AMOUNT", "monto inválido"},
	{domain.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS", "estado inválido"},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM", "fuente de datos no disponible"},
}

// respondError traduce err a dto.ErrorResponse. Los errores de validación exponen su
// detalle; los no mapeados responden 500 INTERNAL.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			msg := m.message
			if m.status == fiber.StatusBadRequest || m.status == fiber.StatusUnprocessableEntity {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func isUpstream(err error) bool {
	return errors.Is(err, domain.ErrUpstream)
}
