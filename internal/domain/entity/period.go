package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// Estados de período y de parámetro por período.
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// Period período de facturación. Un período puede tener un padre (subperíodo) y debe
// quedar dentro de sus fechas.
type Period struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Status    string
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el período está marcado como activo.
func (p *Period) IsActive() bool { return p.Status == StatusActive }

// IsExpired es verdadero cuando la fecha fin ya pasó (se compara solo la fecha).
func (p *Period) IsExpired(now time.Time) bool {
	return dateOnly(p.EndDate).Before(dateOnly(now))
}

// Contains indica si [start, end] cabe dentro del período.
func (p *Period) Contains(start, end time.Time) bool {
	return !dateOnly(start).Before(dateOnly(p.StartDate)) && !dateOnly(end).After(dateOnly(p.EndDate))
}

// Validate nombre obligatorio y fecha inicio <= fecha fin.
func (p *Period) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: nombre del período requerido", domain.ErrInvalidInput)
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: fechas del período requeridas", domain.ErrInvalidInput)
	}
	if dateOnly(p.EndDate).Before(dateOnly(p.StartDate)) {
		return fmt.Errorf("%w: la fecha fin es anterior a la fecha inicio", domain.ErrInvalidInput)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
