package listing

import (
	"fmt"

	"github.com/cyclonet/factonet-api/internal/domain"
)

// Page una página de resultados. Page es 1-indexado.
type Page[T any] struct {
	Items      []T
	Page       int
	Size       int
	Total      int
	TotalPages int
}

// TotalPages ceil(n/size).
func TotalPages(n, size int) int {
	if size <= 0 || n <= 0 {
		return 0
	}
	pages := n / size
	if n%size != 0 {
		pages++
	}
	return pages
}

// Paginate devuelve la página page de seq. Una página fuera de [1, TotalPages] no mueve
// la vista: se sirve la página válida más cercana y Page informa cuál fue. Sin
// resultados se sirve la página 1 vacía.
func Paginate[T any](seq []T, page, size int) (Page[T], error) {
	if size <= 0 {
		return Page[T]{}, fmt.Errorf("%w: tamaño de página %d", domain.ErrInvalidInput, size)
	}
	p := Page[T]{Size: size, Total: len(seq), TotalPages: TotalPages(len(seq), size)}
	p.Page = clampPage(page, p.TotalPages)
	if p.Total == 0 {
		p.Items = []T{}
		return p, nil
	}
	start := (p.Page - 1) * size
	end := start + size
	if end > len(seq) {
		end = len(seq)
	}
	p.Items = seq[start:end]
	return p, nil
}

// clampPage lleva page a [1, max(totalPages, 1)] sin multiplicar antes de comparar.
func clampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if totalPages < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}
