package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// ContractStatus estado del contrato de servicios SaaS.
type ContractStatus string

const (
	ContractPending    ContractStatus = "PENDING"
	ContractActive     ContractStatus = "ACTIVE"
	ContractSuspended  ContractStatus = "SUSPENDED"
	ContractCancelled  ContractStatus = "CANCELLED"
	ContractExpired    ContractStatus = "EXPIRED"
	ContractTerminated ContractStatus = "TERMINATED"
	ContractRenewed    ContractStatus = "RENEWED"
	ContractDeleted    ContractStatus = "DELETED"
)

var contractStatuses = []ContractStatus{
	ContractPending, ContractActive, ContractSuspended, ContractCancelled,
	ContractExpired, ContractTerminated, ContractRenewed, ContractDeleted,
}

// ContractStatuses devuelve los estados permitidos.
func ContractStatuses() []ContractStatus {
	out := make([]ContractStatus, len(contractStatuses))
	copy(out, contractStatuses)
	return out
}

// ParseContractStatus acepta el estado sin distinguir mayúsculas.
func ParseContractStatus(s string) (ContractStatus, error) {
	up := ContractStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range contractStatuses {
		if st == up {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: estado de contrato %q", domain.ErrInvalidStatus, s)
}

// Contract contrato de prestación de servicios entre el proveedor y un cliente.
type Contract struct {
	ID        string
	Code      string
	Value     decimal.Decimal
	Mode      string // modalidad de pago: MENSUAL, ANUAL...
	Payday    int    // día de pago (0 = no aplica)
	StartDate time.Time
	EndDate   time.Time
	Status    ContractStatus
	PDFURL    string
	Customer  Customer
	Package   Package
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// CodeOrID devuelve el código o, si está vacío, el ID.
func (c *Contract) CodeOrID() string {
	if c.Code != "" {
		return c.Code
	}
	return c.ID
}

// HasDocument indica si ya se generó el PDF del contrato.
func (c *Contract) HasDocument() bool {
	return strings.TrimSpace(c.PDFURL) != ""
}

// CanActivate exige PDF generado y que el operador confirme que el cliente lo firmó.
// La confirmación no se persiste.
func (c *Contract) CanActivate(signedConfirmed bool) error {
	if !c.HasDocument() {
		return domain.ErrContractDocumentMissing
	}
	if !signedConfirmed {
		return domain.ErrContractNotSigned
	}
	return nil
}

// MaxPayday último día de pago admitido.
const MaxPayday = 31

// Validate condiciones de un contrato nuevo o editado: cliente y paquete referenciados,
// valor no negativo, día de pago entre 0 y MaxPayday y vigencia con fin >= inicio.
func (c *Contract) Validate() error {
	if strings.TrimSpace(c.Customer.ID) == "" {
		return fmt.Errorf("%w: customer_id requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(c.Package.ID) == "" {
		return fmt.Errorf("%w: package_id requerido", domain.ErrInvalidInput)
	}
	if c.Value.IsNegative() {
		return fmt.Errorf("%w: el valor del contrato no puede ser negativo", domain.ErrInvalidAmount)
	}
	if c.Payday < 0 || c.Payday > MaxPayday {
		return fmt.Errorf("%w: payday debe estar entre 0 y %d", domain.ErrInvalidInput, MaxPayday)
	}
	if c.StartDate.IsZero() || c.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date y end_date requeridos", domain.ErrInvalidInput)
	}
	if c.EndDate.Before(c.StartDate) {
		return fmt.Errorf("%w: la fecha fin es anterior a la de inicio", domain.ErrInvalidInput)
	}
	return nil
}

func (c *Contract) ListingStatus() string  { return string(c.Status) }
func (c *Contract) ListingNumber() string  { return c.Code }
func (c *Contract) ListingClient() string  { return c.Customer.DisplayName() }
func (c *Contract) ListingDate() time.Time { return c.StartDate }

// Package paquete de servicio contratado.
type Package struct {
	ID             string
	Code           string
	Name           string
	Description    string
	Configurations []PackageConfiguration
}

// PackageConfiguration línea del paquete: cantidad de cuentas de un rol a un precio unitario.
type PackageConfiguration struct {
	ID           string
	TotalAccount int
	Price        decimal.Decimal
	RoleName     string
}
