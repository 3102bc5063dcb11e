package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
)

// DefaultTablePageSize filas por página de las tablas de facturas y contratos.
const DefaultTablePageSize = 10

// InvoiceHandler maneja las peticiones HTTP de facturación (protegido).
type InvoiceHandler struct {
	uc  *billing.InvoiceUseCase
	pdf *billing.PDFUseCase
}

// NewInvoiceHandler construye el handler.
func NewInvoiceHandler(uc *billing.InvoiceUseCase, pdf *billing.PDFUseCase) *InvoiceHandler {
	return &InvoiceHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      Listar facturas
// @Description  Columnas dinámicas, totales resueltos, filtros y paginación. Si la fuente
// @Description  de datos falla responde 502 con la colección vacía y code=UPSTREAM.
// @Tags         invoices
// @Produce      json
// @Param        status  query  string  false  "estado"
// @Param        number  query  string  false  "número (contiene)"
// @Param        client  query  string  false  "cliente (contiene)"
// @Param        from    query  string  false  "desde YYYY-MM-DD"
// @Param        to      query  string  false  "hasta YYYY-MM-DD"
// @Param        page    query  int     false  "página (1..n)"
// @Param        size    query  int     false  "tamaño de página"
// @Success      200  {object}  dto.InvoiceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.InvoiceListResponse
// @Security     BearerAuth
// @Router       /api/invoices [get]
func (h *InvoiceHandler) List(c *fiber.Ctx) error {
	var f dto.ListFilter
	var p dto.PageRequest
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	if err := c.QueryParser(&p); err != nil {
		return invalidBody(c)
	}
	p.DefaultPage(DefaultTablePageSize)

	list, err := h.uc.List(c.UserContext(), f, p.Page, p.Size)
	if err != nil {
		if isUpstream(err) {
			return c.Status(fiber.StatusBadGateway).JSON(dto.InvoiceListResponse{
				Columns: []dto.ColumnResponse{},
				Items:   []dto.InvoiceResponse{},
				Page:    dto.PageResponse{Page: 1, Size: p.Size},
				Code:    "UPSTREAM",
				Message: "no se pudieron cargar las facturas",
			})
		}
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear factura
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateInvoiceRequest  true  "factura"
// @Success      201  {object}  dto.InvoiceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices [post]
func (h *InvoiceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInvoiceRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	inv, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(inv)
}

// GetByID obtiene una factura con su total resuelto.
// GET /api/invoices/:id
func (h *InvoiceHandler) GetByID(c *fiber.Ctx) error {
	inv, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(inv)
}

// UpdateStatus PATCH /api/invoices/:id/status
func (h *InvoiceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/invoices/:id
func (h *InvoiceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Exportar facturas a Excel
// @Tags         invoices
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status  query  string  false  "estado"
// @Param        number  query  string  false  "número (contiene)"
// @Param        client  query  string  false  "cliente (contiene)"
// @Param        from    query  string  false  "desde YYYY-MM-DD"
// @Param        to      query  string  false  "hasta YYYY-MM-DD"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices/export [get]
func (h *InvoiceHandler) Export(c *fiber.Ctx) error {
	var f dto.ListFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	data, err := h.uc.Export(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment("Facturas.xlsx")
	return c.Send(data)
}

// PDF godoc
// @Summary      Descargar factura en PDF
// @Tags         invoices
// @Produce      application/pdf
// @Param        id  path  string  true  "ID de la factura"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoices/{id}/pdf [get]
func (h *InvoiceHandler) PDF(c *fiber.Ctx) error {
	doc, err := h.pdf.DownloadInvoicePDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc)
}

func sendDocument(c *fiber.Ctx, doc *billing.Document) error {
	c.Attachment(doc.Filename)
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(doc.Content)
}
