// Package listing filtra, ordena y pagina las tablas de facturas, contratos y
// parámetros.
package listing

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
)

// Record lo que el motor necesita de una fila.
type Record interface {
	ListingStatus() string
	ListingNumber() string
	ListingClient() string
	ListingDate() time.Time
}

// Criteria filtros activos. Un campo vacío o nil no filtra.
type Criteria struct {
	Status string
	Number string
	Client string
	From   *time.Time
	To     *time.Time
}

// IsEmpty indica si ningún filtro está activo.
func (c Criteria) IsEmpty() bool {
	return c.Status == "" && c.Number == "" && c.Client == "" && c.From == nil && c.To == nil
}

// Apply devuelve un slice nuevo con los registros que cumplen todos los filtros activos:
// estado exacto, número y cliente por subcadena sin distinguir mayúsculas, y rango de
// fechas inclusivo comparando solo la fecha.
func Apply[T Record](records []T, c Criteria) []T {
	fold := cases.Fold()
	number := fold.String(strings.TrimSpace(c.Number))
	client := fold.String(strings.TrimSpace(c.Client))
	var from, to time.Time
	if c.From != nil {
		from = dateOnly(*c.From)
	}
	if c.To != nil {
		to = dateOnly(*c.To)
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if c.Status != "" && r.ListingStatus() != c.Status {
			continue
		}
		if number != "" && !strings.Contains(fold.String(r.ListingNumber()), number) {
			continue
		}
		if client != "" && !strings.Contains(fold.String(r.ListingClient()), client) {
			continue
		}
		if c.From != nil || c.To != nil {
			day := dateOnly(r.ListingDate())
			if c.From != nil && day.Before(from) {
				continue
			}
			if c.To != nil && day.After(to) {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
