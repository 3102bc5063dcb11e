package billing

var fieldLabels = map[string]string{
	"iva":           "IVA",
	"profit_margin": "Profit Margin",
	"retefuente":    "Retención en la Fuente",
	"reteica":       "ReteICA",
	"reteiva":       "ReteIVA",
	"discount":      "Descuento",
	"penalty":       "Penalidad",
	"late_fee":      "Intereses de Mora",
	"ica":           "ICA",
	"admin_fee":     "Cuota de Administración",
}

// Label nombre para mostrar de un campo de ajuste. Los campos que no están en el
// diccionario se muestran con su nombre crudo.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}
