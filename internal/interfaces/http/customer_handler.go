package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/billing"
	"github.com/cyclonet/factonet-api/internal/application/dto"
)

// CustomerHandler maneja las peticiones HTTP de clientes (facturación, protegido).
type CustomerHandler struct {
	uc *billing.CustomerUseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Description  person_type N exige natural_person; J exige legal_entity.
// @Tags         customers
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCustomerRequest  true  "cliente"
// @Success      201  {object}  dto.CustomerResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	customer, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

// List GET /api/customers?page=1&size=10 (también acepta limit en lugar de size)
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var p dto.PageRequest
	if err := c.QueryParser(&p); err != nil {
		return invalidBody(c)
	}
	if p.Size == 0 {
		p.Size = c.QueryInt("limit")
	}
	p.DefaultPage(DefaultTablePageSize)
	list, err := h.uc.List(c.UserContext(), p.Page, p.Size)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}
