package pdf

import (
	"sync"

	"github.com/jung-kurt/gofpdf"

	"github.com/cyclonet/factonet-api/internal/domain/document"
)

// GofpdfMeasurer mide el texto con las métricas de las fuentes base de gofpdf
// (Helvetica, la misma familia que usa el renderizador).
type GofpdfMeasurer struct {
	mu        sync.Mutex
	pdf       *gofpdf.Fpdf
	translate func(string) string
}

// NewGofpdfMeasurer construye el medidor.
func NewGofpdfMeasurer() *GofpdfMeasurer {
	pdf := gofpdf.New("P", "mm", "A4", "")
	return &GofpdfMeasurer{
		pdf:       pdf,
		translate: pdf.UnicodeTranslatorFromDescriptor(""), // cp1252: tildes y ñ
	}
}

// LineCount cantidad de líneas que ocupa text al ajustarlo a maxWidth mm. El texto
// vacío ocupa una línea.
func (m *GofpdfMeasurer) LineCount(text string, size float64, style document.Style, maxWidth float64) int {
	if text == "" || maxWidth <= 0 {
		return 1
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont("Helvetica", gofpdfStyle(style), size)
	lines := m.pdf.SplitLines([]byte(m.translate(text)), maxWidth)
	if len(lines) == 0 {
		return 1
	}
	return len(lines)
}

func gofpdfStyle(s document.Style) string {
	switch s {
	case document.StyleBold:
		return "B"
	case document.StyleItalic:
		return "I"
	}
	return ""
}

var _ document.Measurer = (*GofpdfMeasurer)(nil)
