package entity

import "time"

// Roles válidos para Account.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Estados de cuenta.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// Account representa un anotador o administrador de la herramienta.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	FullName     string
	Role         string // USER, ADMIN
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si la cuenta tiene rol de administrador.
func (a *Account) IsAdmin() bool { return a != nil && a.Role == RoleAdmin }
