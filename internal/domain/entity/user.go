package entity

import "time"

// Roles válidos para User.
const (
	RoleEmployee = "employee"
	RoleManager  = "manager"
	RoleAdmin    = "admin"
)

// ValidRole reporta si el rol pertenece al vocabulario cerrado.
func ValidRole(role string) bool {
	return role == RoleEmployee || role == RoleManager || role == RoleAdmin
}

// User representa un usuario de la Mini App. TelegramID es la llave de login
// (único e inmutable); el registro se crea de forma perezosa en el primer
// login verificado.
type User struct {
	ID         int64
	TelegramID string
	Username   string
	FullName   string
	Role       string // employee, manager, admin
	IsActive   bool   // en false el Access Guard rechaza aunque el token siga vigente
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
