// Package pdf traduce los layouts de documento (contratos y facturas) a PDF con Maroto
// v2 y mide el texto con las métricas de fuente de gofpdf.
//
// El layout ya trae cada bloque ubicado en su página; el renderizador agrupa los bloques
// por página y los convierte en filas de Maroto con la misma altura:
//
//	KindImage  → fila de imagen (logo centrado)
//	KindText   → fila de texto (una o dos columnas)
//	KindSpace  → fila vacía
//	KindRule   → fila con línea horizontal
//	KindPageBreak → página nueva
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/page"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/cyclonet/factonet-api/internal/domain/document"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorText    = &props.Color{Red: 30, Green: 30, Blue: 30}
	colorRule    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// a4Width ancho de la hoja en mm.
const a4Width = 210.0

// titleSize a partir de este tamaño el texto en negrita usa el color primario.
const titleSize = 12

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoRenderer implementa billing.PDFRenderer usando Maroto v2.
type MarotoRenderer struct {
	title  string
	author string
}

// NewMarotoRenderer author se escribe en los metadatos del PDF.
func NewMarotoRenderer(title, author string) *MarotoRenderer {
	return &MarotoRenderer{title: title, author: author}
}

// Render genera el PDF del layout y devuelve sus bytes.
func (r *MarotoRenderer) Render(ctx context.Context, layout *document.Layout) ([]byte, error) {
	if layout == nil {
		return nil, fmt.Errorf("pdf: layout nulo")
	}
	opts := layout.Options()
	side := (a4Width - opts.MaxWidth) / 2

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(side).WithRightMargin(side).
		WithTopMargin(opts.TopMargin).WithBottomMargin(opts.BottomMargin).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9, Color: colorText})
	if r.title != "" {
		b = b.WithTitle(r.title, true)
	}
	if r.author != "" {
		b = b.WithAuthor(r.author, true)
	}
	m := maroto.New(b.Build())

	var rows []core.Row
	flush := func() {
		if len(rows) > 0 {
			m.AddPages(page.New().Add(rows...))
			rows = nil
		}
	}
	for _, blk := range layout.Blocks() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch blk.Kind {
		case document.KindPageBreak:
			flush()
		case document.KindImage:
			if blk.Logo.Usable() {
				rows = append(rows, logoRow(blk))
			}
		case document.KindSpace:
			rows = append(rows, row.New(blk.Height))
		case document.KindRule:
			rows = append(rows, line.NewRow(blk.Height, props.Line{Color: colorRule, Thickness: 0.3}))
		case document.KindText:
			rows = append(rows, textRow(blk))
		}
	}
	flush()

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Filas ─────────────────────────────────────────────────────────────────────

func logoRow(blk document.Block) core.Row {
	ext := extension.Png
	if blk.Logo.Extension == "jpg" || blk.Logo.Extension == "jpeg" {
		ext = extension.Jpg
	}
	return row.New(blk.Height).Add(
		col.New(3),
		image.NewFromBytesCol(6, blk.Logo.Data, ext, props.Rect{Center: true, Percent: 100}),
		col.New(3),
	)
}

// textRow una columna de ancho completo o, si el bloque trae Right, dos mitades.
func textRow(blk document.Block) core.Row {
	p := textProps(blk)
	if blk.Right == "" {
		return row.New(blk.Height).Add(col.New(12).Add(text.New(blk.Text, p)))
	}
	left, right := p, p
	left.Align, right.Align = align.Left, align.Left
	return row.New(blk.Height).Add(
		col.New(6).Add(text.New(blk.Text, left)),
		col.New(6).Add(text.New(blk.Right, right)),
	)
}

func textProps(blk document.Block) props.Text {
	p := props.Text{
		Size:  blk.Size,
		Left:  blk.Indent,
		Style: fontStyle(blk.Style),
		Align: alignment(blk.Align),
		Color: colorText,
	}
	if blk.Style == document.StyleBold && blk.Size >= titleSize {
		p.Color = colorPrimary
	}
	return p
}

func fontStyle(s document.Style) fontstyle.Type {
	switch s {
	case document.StyleBold:
		return fontstyle.Bold
	case document.StyleItalic:
		return fontstyle.Italic
	}
	return fontstyle.Normal
}

func alignment(a document.Align) align.Type {
	switch a {
	case document.AlignCenter:
		return align.Center
	case document.AlignRight:
		return align.Right
	}
	return align.Left
}
