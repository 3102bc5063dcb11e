package period

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con repos atados a ella.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		periods repository.PeriodRepository,
		params repository.ParameterRepository,
	) error) error
}
