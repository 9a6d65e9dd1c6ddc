package dto

import "time"

// RegisterRequest alta de cuenta (solo administradores).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required,min=3,max=70"`
	Role     string `json:"role" validate:"omitempty,oneof=USER ADMIN"`
}

// AccountResponse salida de una cuenta (sin password).
type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

// AccountListResponse listado de cuentas para el panel de administración.
type AccountListResponse struct {
	Items []AccountResponse `json:"rows"`
	Total int               `json:"total"`
}

// UpdateStatusRequest activa o desactiva una cuenta.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

// ChangePasswordRequest cambio de contraseña de la propia cuenta.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8"`
}
