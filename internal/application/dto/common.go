package dto

// PageRequest paginación 1-indexada para listados.
type PageRequest struct {
	Page int `query:"page"`
	Size int `query:"size"`
}

// DefaultPage aplica valores por defecto si Page/Size no vienen.
func (p *PageRequest) DefaultPage(size int) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Size <= 0 {
		p.Size = size
	}
	if p.Size > 100 {
		p.Size = 100
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ListFilter filtros de las tablas (query string). Fechas en formato YYYY-MM-DD.
type ListFilter struct {
	Status string `query:"status"`
	Number string `query:"number"`
	Client string `query:"client"`
	From   string `query:"from"`
	To     string `query:"to"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
