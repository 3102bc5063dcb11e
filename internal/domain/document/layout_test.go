package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cyclonet/factonet-api/internal/domain/document"
)

// charMeasurer aproxima: cada 2 mm de ancho cabe un carácter.
type charMeasurer struct{}

func (charMeasurer) LineCount(text string, _ float64, _ document.Style, maxWidth float64) int {
	perLine := int(maxWidth / 2)
	n := len([]rune(text))
	if n == 0 {
		return 1
	}
	return (n + perLine - 1) / perLine
}

func TestLayout_AjusteDeLineasAvanzaCursor(t *testing.T) {
	l := document.New(charMeasurer{}, document.Options{})
	start := l.Y()

	l.Text(strings.Repeat("a", 200), 11, document.StyleNormal) // 85 por línea → 3 líneas
	blocks := l.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, 3, blocks[0].Lines)
	assert.InDelta(t, 15.0, blocks[0].Height, 0.001, "5 mm por línea a 11 pt")
	assert.InDelta(t, start+15, l.Y(), 0.001)
}

func TestLayout_LogoConservaProporcion(t *testing.T) {
	logo := &document.Logo{Data: []byte{1}, Extension: "png", Width: 600, Height: 200}
	l := document.New(charMeasurer{}, document.Options{}).WithLogo(logo)

	blocks := l.Blocks()
	require.Len(t, blocks, 1)
	assert.Equal(t, document.KindImage, blocks[0].Kind)
	assert.InDelta(t, 20.0, blocks[0].Height, 0.001, "60 mm de ancho → 20 mm de alto")
	assert.False(t, l.Fallback())
}

func TestLayout_SinLogoComprimeEspaciado(t *testing.T) {
	for _, logo := range []*document.Logo{nil, {Data: []byte{1}}} {
		l := document.New(charMeasurer{}, document.Options{}).WithLogo(logo)
		assert.True(t, l.Fallback())

		before := l.Y()
		l.Space(10)
		assert.InDelta(t, 6.0, l.Y()-before, 0.001)
		for _, b := range l.Blocks() {
			assert.NotEqual(t, document.KindImage, b.Kind)
		}
	}
}

func TestLayout_SaltoDePagina(t *testing.T) {
	l := document.New(charMeasurer{}, document.Options{})
	for i := 0; i < 80; i++ {
		l.Text("línea", 11, document.StyleNormal)
	}
	assert.Greater(t, l.Pages(), 1)

	opts := l.Options()
	var breaks int
	for _, b := range l.Blocks() {
		if b.Kind == document.KindPageBreak {
			breaks++
			continue
		}
		assert.LessOrEqual(t, b.Y+b.Height, opts.PageHeight-opts.BottomMargin+0.001)
		assert.GreaterOrEqual(t, b.Y, opts.TopMargin)
	}
	assert.Equal(t, l.Pages()-1, breaks)
	assert.Len(t, l.Texts(), 80, "ningún texto se pierde al paginar")
}

func TestLayout_BulletConSangria(t *testing.T) {
	l := document.New(charMeasurer{}, document.Options{}).Bullet("5 cuentas Admin", 10)
	b := l.Blocks()[0]
	assert.Equal(t, "• 5 cuentas Admin", b.Text)
	assert.Equal(t, 5.0, b.Indent)
}

func TestLayout_PairUsaLaColumnaMasAlta(t *testing.T) {
	l := document.New(charMeasurer{}, document.Options{}).
		Pair(strings.Repeat("x", 100), "CLIENTE", 11, document.StyleNormal) // 42 por columna → 3 líneas
	b := l.Blocks()[0]
	assert.Equal(t, 3, b.Lines)
	assert.Equal(t, "CLIENTE", b.Right)
}
