package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/cyclonet/factonet-api/internal/application/auth"
	"github.com/cyclonet/factonet-api/internal/application/dto"
	"github.com/cyclonet/factonet-api/internal/domain"
)

// AuthHandler maneja login, sesión y alta de usuarios.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register godoc
// @Summary      Registrar usuario (solo administradores)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "email, password, name, role"
// @Success      201   {object}  dto.UserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	user, err := h.uc.RegisterUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve un JWT atado a una sesión que expira tras el tiempo de inactividad.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	if in.Email == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "email y password son requeridos"})
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrForbidden) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "USER_INACTIVE", Message: "el usuario está inactivo"})
		}
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.uc.Logout(GetSessionID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// Me GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña
// @Description  Cierra las demás sesiones del usuario.
// @Tags         auth
// @Accept       json
// @Param        body  body  dto.ChangePasswordRequest  true  "contraseña actual y nueva"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	err := h.uc.ChangePassword(c.UserContext(), GetUserID(c), GetSessionID(c), in)
	if err != nil {
		// Una contraseña actual errada no debe cerrar la sesión del cliente.
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "WRONG_PASSWORD", Message: "la contraseña actual no es correcta"})
		}
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
