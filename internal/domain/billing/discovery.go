package billing

import "github.com/cyclonet/factonet-api/internal/domain/entity"

// baseFields son los campos propios de la factura; nunca se tratan como ajuste aunque
// aparezcan en el mapa de valores.
var baseFields = map[string]struct{}{
	"id":          {},
	"code":        {},
	"number":      {},
	"client":      {},
	"customer_id": {},
	"issue_date":  {},
	"due_date":    {},
	"date":        {},
	"total":       {},
	"base_amount": {},
	"status":      {},
	"adjustments": {},
	"operations":  {},
}

// IsBaseField indica si field pertenece al conjunto fijo de campos base.
func IsBaseField(field string) bool {
	_, ok := baseFields[field]
	return ok
}

// DiscoverColumns recorre las facturas en orden y devuelve los campos de ajuste en el
// orden en que aparecen por primera vez. No reordena: llamar dos veces con el mismo
// slice devuelve el mismo resultado.
func DiscoverColumns(records []*entity.Invoice) []string {
	seen := make(map[string]struct{})
	columns := make([]string, 0)
	for _, inv := range records {
		if inv == nil {
			continue
		}
		for _, field := range inv.Adjustments.Keys() {
			if IsBaseField(field) {
				continue
			}
			if _, dup := seen[field]; dup {
				continue
			}
			seen[field] = struct{}{}
			columns = append(columns, field)
		}
	}
	return columns
}

// Failure factura que no se pudo resolver.
type Failure struct {
	Invoice *entity.Invoice
	Err     error
}

// ResolveAll descubre las columnas y resuelve cada factura contra ellas. El índice de
// cada resolución coincide con el de records; una factura que no se puede resolver deja
// nil en su posición y se informa en failures sin afectar a las demás.
func ResolveAll(records []*entity.Invoice) (columns []string, resolutions []*Resolution, failures []Failure) {
	columns = DiscoverColumns(records)
	resolutions = make([]*Resolution, len(records))
	for i, inv := range records {
		res, err := Resolve(inv, columns)
		if err != nil {
			failures = append(failures, Failure{Invoice: inv, Err: err})
			continue
		}
		resolutions[i] = res
	}
	return columns, resolutions, failures
}
