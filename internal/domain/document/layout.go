// Package document arma la disposición vertical de los documentos PDF (contratos y
// facturas) sin depender del motor de PDF: calcula cuántas líneas ocupa cada texto,
// dónde queda el cursor y cuándo hay que saltar de página. El renderizador solo traduce
// los bloques resultantes.
package document

// Style estilo de fuente de un bloque de texto.
type Style int

const (
	StyleNormal Style = iota
	StyleBold
	StyleItalic
)

// Align alineación horizontal.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Kind tipo de bloque.
type Kind int

const (
	KindText Kind = iota
	KindSpace
	KindImage
	KindRule
	KindPageBreak
)

// Block unidad de contenido ya ubicada en la página.
type Block struct {
	Kind   Kind
	Text   string
	Right  string // segunda columna (firmas); vacío = una sola columna
	Size   float64
	Style  Style
	Align  Align
	Indent float64
	Lines  int
	Height float64 // mm
	Y      float64 // borde superior, mm desde el tope de la página
	Page   int     // 1-indexado
	Logo   *Logo
}

// Logo imagen de cabecera con sus dimensiones en píxeles.
type Logo struct {
	Data      []byte
	Extension string // png | jpg
	Width     int
	Height    int
}

// Usable indica si el logo puede dibujarse.
func (l *Logo) Usable() bool {
	return l != nil && len(l.Data) > 0 && l.Width > 0 && l.Height > 0
}

// Measurer calcula cuántas líneas ocupa text al ajustarlo a maxWidth (mm).
type Measurer interface {
	LineCount(text string, size float64, style Style, maxWidth float64) int
}

// Options medidas de la página en mm.
type Options struct {
	PageHeight      float64
	TopMargin       float64
	BottomMargin    float64
	MaxWidth        float64
	LogoWidth       float64
	FallbackSpacing float64
}

// DefaultOptions A4 con 20 mm de margen lateral (170 mm de ancho útil) y logo de 60 mm.
func DefaultOptions() Options {
	return Options{
		PageHeight:      297,
		TopMargin:       10,
		BottomMargin:    15,
		MaxWidth:        170,
		LogoWidth:       60,
		FallbackSpacing: 0.6,
	}
}

// LineHeight alto de una línea en mm para un tamaño de fuente en puntos (5 mm a 11 pt).
func LineHeight(size float64) float64 {
	return size * 5 / 11
}

// Layout acumula bloques y mantiene el cursor vertical.
type Layout struct {
	opts     Options
	measurer Measurer
	y        float64
	page     int
	spacing  float64
	fallback bool
	blocks   []Block
}

// New crea un layout vacío con el cursor en el margen superior. Los campos en cero de
// opts toman el valor por defecto.
func New(m Measurer, opts Options) *Layout {
	def := DefaultOptions()
	if opts.PageHeight <= 0 {
		opts.PageHeight = def.PageHeight
	}
	if opts.TopMargin <= 0 {
		opts.TopMargin = def.TopMargin
	}
	if opts.BottomMargin <= 0 {
		opts.BottomMargin = def.BottomMargin
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = def.MaxWidth
	}
	if opts.LogoWidth <= 0 {
		opts.LogoWidth = def.LogoWidth
	}
	if opts.FallbackSpacing <= 0 {
		opts.FallbackSpacing = def.FallbackSpacing
	}
	return &Layout{opts: opts, measurer: m, y: opts.TopMargin, page: 1, spacing: 1}
}

// WithLogo dibuja el logo centrado con el ancho fijo y el alto proporcional a la imagen.
// Sin logo utilizable el documento sigue en modo solo texto con espaciado comprimido.
func (l *Layout) WithLogo(logo *Logo) *Layout {
	if !logo.Usable() {
		l.fallback = true
		l.spacing = l.opts.FallbackSpacing
		return l
	}
	h := float64(logo.Height) * l.opts.LogoWidth / float64(logo.Width)
	l.place(Block{Kind: KindImage, Height: h, Align: AlignCenter, Logo: logo})
	return l
}

// Text agrega un párrafo alineado a la izquierda.
func (l *Layout) Text(text string, size float64, style Style) *Layout {
	return l.text(text, size, style, AlignLeft, 0)
}

// Centered agrega un texto centrado.
func (l *Layout) Centered(text string, size float64, style Style) *Layout {
	return l.text(text, size, style, AlignCenter, 0)
}

// Pair agrega dos textos en columnas de igual ancho (ej: líneas de firma).
func (l *Layout) Pair(left, right string, size float64, style Style) *Layout {
	half := l.opts.MaxWidth / 2
	lines := 1
	if l.measurer != nil {
		for _, t := range []string{left, right} {
			if n := l.measurer.LineCount(t, size, style, half); n > lines {
				lines = n
			}
		}
	}
	l.place(Block{
		Kind:   KindText,
		Text:   left,
		Right:  right,
		Size:   size,
		Style:  style,
		Lines:  lines,
		Height: float64(lines) * LineHeight(size),
	})
	return l
}

// Bullet agrega un ítem de lista con sangría.
func (l *Layout) Bullet(text string, size float64) *Layout {
	return l.text("• "+text, size, StyleNormal, AlignLeft, 5)
}

// Space avanza el cursor h mm (comprimido en modo sin logo).
func (l *Layout) Space(h float64) *Layout {
	if h <= 0 {
		return l
	}
	l.place(Block{Kind: KindSpace, Height: h * l.spacing})
	return l
}

// Rule línea horizontal de separación.
func (l *Layout) Rule() *Layout {
	l.place(Block{Kind: KindRule, Height: 2 * l.spacing})
	return l
}

func (l *Layout) text(text string, size float64, style Style, align Align, indent float64) *Layout {
	lines := 1
	if l.measurer != nil {
		if n := l.measurer.LineCount(text, size, style, l.opts.MaxWidth-indent); n > 1 {
			lines = n
		}
	}
	l.place(Block{
		Kind:   KindText,
		Text:   text,
		Size:   size,
		Style:  style,
		Align:  align,
		Indent: indent,
		Lines:  lines,
		Height: float64(lines) * LineHeight(size),
	})
	return l
}

// place ubica b en el cursor; si no cabe en la página actual emite un salto y lo ubica
// en el tope de la siguiente. Los espacios no se arrastran a una página nueva.
func (l *Layout) place(b Block) {
	bottom := l.opts.PageHeight - l.opts.BottomMargin
	if l.y+b.Height > bottom && l.y > l.opts.TopMargin {
		l.blocks = append(l.blocks, Block{Kind: KindPageBreak, Y: l.y, Page: l.page})
		l.page++
		l.y = l.opts.TopMargin
		if b.Kind == KindSpace {
			return
		}
	}
	b.Y = l.y
	b.Page = l.page
	l.blocks = append(l.blocks, b)
	l.y += b.Height
}

// Y posición actual del cursor.
func (l *Layout) Y() float64 { return l.y }

// Pages número de páginas usadas.
func (l *Layout) Pages() int { return l.page }

// Fallback indica si el documento se armó sin logo.
func (l *Layout) Fallback() bool { return l.fallback }

// Options medidas efectivas.
func (l *Layout) Options() Options { return l.opts }

// Blocks copia de los bloques en orden.
func (l *Layout) Blocks() []Block {
	out := make([]Block, len(l.blocks))
	copy(out, l.blocks)
	return out
}

// Texts textos de los bloques en orden (útil para verificar el contenido).
func (l *Layout) Texts() []string {
	var out []string
	for _, b := range l.blocks {
		if b.Kind == KindText {
			out = append(out, b.Text)
		}
	}
	return out
}
