package domain

import (
	"errors"

	"github.com/cyclonet/factonet-api/pkg/money"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")

	// ErrInvalidAmount es el mismo valor que money.ErrInvalidAmount para que errors.Is
	// funcione igual desde el formateador y desde el resolvedor de ajustes.
	ErrInvalidAmount = money.ErrInvalidAmount

	ErrInvalidStatus           = errors.New("estado inválido")
	ErrContractDocumentMissing = errors.New("el contrato no tiene PDF generado")
	ErrContractNotSigned       = errors.New("el cliente no ha firmado el contrato")
	ErrNoActivePeriod          = errors.New("no hay un período activo")
	ErrPeriodExpired           = errors.New("el período activo está vencido")
	ErrSessionExpired          = errors.New("sesión expirada")
	ErrUpstream                = errors.New("fuente de datos no disponible")
)
