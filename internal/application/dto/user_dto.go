package dto

import "time"

// RegisterRequest alta de usuario por un administrador.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Image    string `json:"image,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	RoleDescription string    `json:"role_description"`
	Image           string    `json:"image,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT y perfil del usuario.
type LoginResponse struct {
	Token              string       `json:"token"`
	IdleTimeoutSeconds int          `json:"idle_timeout_seconds"`
	User               UserResponse `json:"user"`
}

// ChangePasswordRequest cambio de contraseña del usuario autenticado.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}
