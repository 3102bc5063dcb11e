package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
)

// ContractHandler maneja las peticiones HTTP de contratos (protegido).
type ContractHandler struct {
	uc  *billing.ContractUseCase
	pdf *billing.PDFUseCase
}

// NewContractHandler construye el handler.
func NewContractHandler(uc *billing.ContractUseCase, pdf *billing.PDFUseCase) *ContractHandler {
	return &ContractHandler{uc: uc, pdf: pdf}
}

// List godoc
// @Summary      Listar contratos
// @Tags         contracts
// @Produce      json
// @Param        status  query  string  false  "estado"
// @Param        number  query  string  false  "código (contiene)"
// @Param        client  query  string  false  "cliente (contiene)"
// @Param        from    query  string  false  "desde YYYY-MM-DD"
// @Param        to      query  string  false  "hasta YYYY-MM-DD"
// @Param        page    query  int     false  "página (1..n)"
// @Param        size    query  int     false  "tamaño de página"
// @Success      200  {object}  dto.ContractListResponse
// @Failure      502  {object}  dto.ContractListResponse
// @Security     BearerAuth
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
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
			return c.Status(fiber.StatusBadGateway).JSON(dto.ContractListResponse{
				Items:   []dto.ContractResponse{},
				Page:    dto.PageResponse{Page: 1, Size: p.Size},
				Code:    "UPSTREAM",
				Message: "no se pudieron cargar los contratos",
			})
		}
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Create godoc
// @Summary      Crear contrato
// @Description  El contrato nace PENDING; el cliente y el paquete deben existir.
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ContractRequest  true  "términos del contrato"
// @Success      201  {object}  dto.ContractResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.ContractRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ct, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ct)
}

// Update godoc
// @Summary      Editar contrato
// @Description  Reemplaza los términos y descarta el PDF generado. Un contrato ACTIVE no se edita.
// @Tags         contracts
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del contrato"
// @Param        body  body  dto.ContractRequest  true  "términos del contrato"
// @Success      200  {object}  dto.ContractResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.ContractRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	ct, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ct)
}

// GetByID GET /api/contracts/:id
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	ct, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ct)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del contrato
// @Description  Activar exige PDF generado y signed_confirmed=true.
// @Tags         contracts
// @Accept       json
// @Param        id    path  string                   true  "ID del contrato"
// @Param        body  body  dto.UpdateStatusRequest  true  "estado"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/contracts/{id}/status [patch]
func (h *ContractHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status, in.SignedConfirmed); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/contracts/:id (borrado lógico)
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar contrato en PDF
// @Description  Devuelve el documento almacenado o uno generado al vuelo.
// @Tags         contracts
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del contrato"
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/contracts/{id}/pdf [get]
func (h *ContractHandler) DownloadPDF(c *fiber.Ctx) error {
	doc, err := h.pdf.DownloadContractPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return sendDocument(c, doc)
}

// GeneratePDF godoc
// @Summary      Generar y almacenar el PDF del contrato
// @Tags         contracts
// @Produce      application/pdf
// @Param        id  path  string  true  "ID del contrato"
// @Success      201
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/contracts/{id}/pdf [post]
func (h *ContractHandler) GeneratePDF(c *fiber.Ctx) error {
	doc, err := h.pdf.GenerateContractPDF(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	c.Status(fiber.StatusCreated)
	return sendDocument(c, doc)
}
