package billing

import (
	"context"

	"github.com/cyclonet/factonet-api/internal/domain/document"
	"github.com/cyclonet/factonet-api/internal/domain/entity"
)

// PDFRenderer traduce un layout ya calculado a los bytes del PDF.
type PDFRenderer interface {
	Render(ctx context.Context, layout *document.Layout) ([]byte, error)
}

// TableExporter escribe una tabla (encabezado + filas) como hoja de cálculo.
type TableExporter interface {
	Export(ctx context.Context, sheet string, header []string, rows [][]any) ([]byte, error)
}

// DocumentParameters parámetros del período activo que se imprimen en las facturas.
type DocumentParameters interface {
	DocumentParameters(ctx context.Context) ([]*entity.PeriodParameter, error)
}
