// Package xlsx exporta tablas a hojas de cálculo con excelize.
package xlsx

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
)

// Formatos numéricos de Excel: 14 fecha corta; 4 "#,##0.00".
const (
	numFmtDate  = 14
	numFmtMoney = 4
)

// Exporter implementa billing.TableExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export escribe header en la fila 1 y cada fila debajo, con escritura en streaming. Las
// celdas time.Time salen como fecha y las float64 como moneda; nil deja la celda vacía.
func (e *Exporter) Export(ctx context.Context, sheet string, header []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if sheet == "" {
		sheet = "Hoja1"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("xlsx: nombre de hoja: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtDate})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo: %w", err)
	}

	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return nil, fmt.Errorf("xlsx: stream: %w", err)
	}
	if len(header) > 0 {
		if err := sw.SetColWidth(1, len(header), 16); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columnas: %w", err)
		}
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = excelize.Cell{StyleID: headStyle, Value: h}
	}
	if err := sw.SetRow("A1", head); err != nil {
		return nil, fmt.Errorf("xlsx: encabezado: %w", err)
	}

	for i, r := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cells := make([]any, len(r))
		for j, v := range r {
			switch v.(type) {
			case time.Time:
				cells[j] = excelize.Cell{StyleID: dateStyle, Value: v}
			case float64:
				cells[j] = excelize.Cell{StyleID: moneyStyle, Value: v}
			default:
				cells[j] = v
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if err := sw.Flush(); err != nil {
		return nil, fmt.Errorf("xlsx: flush: %w", err)
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
