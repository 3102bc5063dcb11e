package entity

import (
	"strings"
	"time"
)

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operador"
	RoleClient   = "cliente"
)

var roleDescriptions = map[string]string{
	RoleAdmin:    "Administrador",
	RoleOperator: "Operador de facturación",
	RoleClient:   "Cliente",
}

// User representa un usuario del sistema (operador o cliente).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, operador, cliente
	Image        string // URL de la foto de perfil
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RoleDescription nombre legible del rol.
func (u *User) RoleDescription() string {
	if d, ok := roleDescriptions[u.Role]; ok {
		return d
	}
	return u.Role
}

// DisplayName nombre para el perfil: Name, o el email si no tiene "@", o "Usuario".
func (u *User) DisplayName() string {
	if n := strings.TrimSpace(u.Name); n != "" {
		return n
	}
	if u.Email != "" && !strings.Contains(u.Email, "@") {
		return u.Email
	}
	return "Usuario"
}

// IsActive indica si el usuario puede iniciar sesión.
func (u *User) IsActive() bool { return u.Status == "" || u.Status == "active" }

// IsValidRole indica si role es uno de los roles conocidos.
func IsValidRole(role string) bool {
	_, ok := roleDescriptions[role]
	return ok
}
