package entity

import (
	"fmt"
	"strings"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// Tipo de persona del cliente.
const (
	PersonNatural = "N"
	PersonLegal   = "J"
)

// Customer usuario cliente de Cyclonet. Es persona natural o jurídica: solo uno de
// Natural/Legal viene poblado, según PersonType.
type Customer struct {
	ID             string
	UserName       string // cuenta (normalmente el email)
	PersonType     string // N | J
	DocumentType   string // descripción, ej: "Cédula de ciudadanía"
	DocumentNumber string
	Natural        *NaturalPerson
	Legal          *LegalEntity
}

// NaturalPerson datos de persona natural.
type NaturalPerson struct {
	FirstName     string
	SecondName    string
	FirstSurname  string
	SecondSurname string
}

// LegalEntity datos de persona jurídica.
type LegalEntity struct {
	BusinessName string
	WebSite      string
	ContactName  string
	ContactEmail string
	ContactPhone string
}

// DisplayName nombre para documentos y tablas: razón social, luego nombre completo de la
// persona natural y por último la cuenta.
func (c Customer) DisplayName() string {
	if c.Legal != nil && strings.TrimSpace(c.Legal.BusinessName) != "" {
		return strings.TrimSpace(c.Legal.BusinessName)
	}
	if c.Natural != nil {
		if name := joinNonEmpty(c.Natural.FirstName, c.Natural.SecondName,
			c.Natural.FirstSurname, c.Natural.SecondSurname); name != "" {
			return name
		}
	}
	return c.UserName
}

// DocumentLabel "Cédula de ciudadanía: 1234" o "" si falta información.
func (c Customer) DocumentLabel() string {
	if c.DocumentType == "" || c.DocumentNumber == "" {
		return ""
	}
	return c.DocumentType + ": " + c.DocumentNumber
}

// IsLegalEntity indica si el cliente es persona jurídica.
func (c Customer) IsLegalEntity() bool {
	return c.PersonType == PersonLegal && c.Legal != nil
}

// Validate exige exactamente una de las dos formas, coherente con PersonType, con el
// primer nombre o la razón social diligenciados.
func (c Customer) Validate() error {
	switch c.PersonType {
	case PersonNatural:
		if c.Natural == nil || c.Legal != nil {
			return fmt.Errorf("%w: persona natural sin datos de persona natural", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(c.Natural.FirstName) == "" {
			return fmt.Errorf("%w: first_name requerido", domain.ErrInvalidInput)
		}
	case PersonLegal:
		if c.Legal == nil || c.Natural != nil {
			return fmt.Errorf("%w: persona jurídica sin datos de persona jurídica", domain.ErrInvalidInput)
		}
		if strings.TrimSpace(c.Legal.BusinessName) == "" {
			return fmt.Errorf("%w: persona jurídica sin razón social", domain.ErrInvalidInput)
		}
	default:
		return fmt.Errorf("%w: tipo de persona %q", domain.ErrInvalidInput, c.PersonType)
	}
	return nil
}

func joinNonEmpty(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}
