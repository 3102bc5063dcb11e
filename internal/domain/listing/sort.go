package listing

import "sort"

// SortByDateDesc ordena de la fecha más reciente a la más antigua. Es estable: filas con la
// misma fecha conservan el orden de origen. Devuelve un slice nuevo.
func SortByDateDesc[T Record](records []T) []T {
	out := make([]T, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ListingDate().After(out[j].ListingDate())
	})
	return out
}
