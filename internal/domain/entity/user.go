package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleVendedor  = "vendedor"
	RoleBodeguero = "bodeguero"
)

// User es un operador autenticado del sistema. Su ID se propaga como actor a
// toda operación mutadora, únicamente para los campos de auditoría.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
