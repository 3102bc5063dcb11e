package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/application/period"
)

// PeriodHandler maneja períodos de facturación y sus parámetros (protegido).
type PeriodHandler struct {
	uc *period.UseCase
}

// NewPeriodHandler construye el handler.
func NewPeriodHandler(uc *period.UseCase) *PeriodHandler {
	return &PeriodHandler{uc: uc}
}

// ── Períodos ──────────────────────────────────────────────────────────────────

// List godoc
// @Summary      Listar períodos
// @Tags         periods
// @Produce      json
// @Param        page  query  int  false  "página (1..n)"
// @Success      200  {object}  dto.PeriodListResponse
// @Security     BearerAuth
// @Router       /api/periods [get]
func (h *PeriodHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return invalidBody(c)
	}
	p.DefaultPage(period.PeriodPageSize)
	list, err := h.uc.ListPeriods(c.UserContext(), p.Page, p.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// Active GET /api/periods/active
func (h *PeriodHandler) Active(c *fiber.Ctx) error {
	p, err := h.uc.ActivePeriod(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(p)
}

// Create godoc
// @Summary      Crear período o subperíodo
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePeriodRequest  true  "período"
// @Success      201  {object}  dto.PeriodResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/periods [post]
func (h *PeriodHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePeriodRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.CreatePeriod(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Activate POST /api/periods/:id/activate
func (h *PeriodHandler) Activate(c *fiber.Ctx) error {
	if err := h.uc.Activate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Deactivate POST /api/periods/:id/deactivate
func (h *PeriodHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Delete DELETE /api/periods/:id
func (h *PeriodHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeletePeriod(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Parámetros globales ───────────────────────────────────────────────────────

// ListParameters GET /api/parameters
func (h *PeriodHandler) ListParameters(c *fiber.Ctx) error {
	list, err := h.uc.ListParameters(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// CreateParameter POST /api/parameters
func (h *PeriodHandler) CreateParameter(c *fiber.Ctx) error {
	var in dto.CreateParameterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	p, err := h.uc.CreateParameter(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

// ── Parámetros por período ────────────────────────────────────────────────────

// ListPeriodParameters GET /api/periods/:id/parameters
func (h *PeriodHandler) ListPeriodParameters(c *fiber.Ctx) error {
	list, err := h.uc.ListPeriodParameters(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// AttachParameters godoc
// @Summary      Asociar parámetros a un período
// @Tags         periods
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del período"
// @Param        body  body  dto.AttachParametersRequest  true  "valores"
// @Success      201  {array}   dto.PeriodParameterResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/periods/{id}/parameters [post]
func (h *PeriodHandler) AttachParameters(c *fiber.Ctx) error {
	var in dto.AttachParametersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.AttachParameters(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(list)
}

// UpdatePeriodParameter PATCH /api/period-parameters/:id
func (h *PeriodHandler) UpdatePeriodParameter(c *fiber.Ctx) error {
	var in dto.UpdatePeriodParameterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	pp, err := h.uc.UpdatePeriodParameter(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pp)
}

// DetachParameter DELETE /api/period-parameters/:id
func (h *PeriodHandler) DetachParameter(c *fiber.Ctx) error {
	if err := h.uc.DetachParameter(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ── Parámetros de factura ─────────────────────────────────────────────────────

// InvoiceParameters godoc
// @Summary      Parámetros del período activo para facturas
// @Tags         periods
// @Produce      json
// @Param        name       query  string  false  "nombre (contiene)"
// @Param        data_type  query  string  false  "string | number"
// @Param        applied    query  string  false  "applied | not-applied"
// @Param        page       query  int     false  "página (1..n)"
// @Success      200  {object}  dto.PeriodParameterListResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/invoice-parameters [get]
func (h *PeriodHandler) InvoiceParameters(c *fiber.Ctx) error {
	var f dto.ParameterFilter
	if err := c.QueryParser(&f); err != nil {
		return invalidBody(c)
	}
	page := c.QueryInt("page", 1)
	list, err := h.uc.FilterInvoiceParameters(c.UserContext(), f, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// SaveInvoiceParameters PUT /api/invoice-parameters
func (h *PeriodHandler) SaveInvoiceParameters(c *fiber.Ctx) error {
	var in dto.SaveInvoiceParametersRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if err := h.uc.SaveInvoiceParameters(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
