package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name      string   `json:"name" validate:"required,max=200"`
	Lastname  string   `json:"lastname"`
	Email     string   `json:"email" validate:"required,email"`
	Telefono  string   `json:"telefono"`
	Password  string   `json:"password" validate:"required,min=8"`
	Role      string   `json:"role" validate:"required"`
	ClientIDs []string `json:"client_ids"`
}

// UpdateUserRequest entrada para actualizar un usuario.
// Password vacío conserva el actual; ClientIDs nil no modifica las asignaciones.
type UpdateUserRequest struct {
	Name      string    `json:"name" validate:"required,max=200"`
	Lastname  string    `json:"lastname"`
	Email     string    `json:"email"`
	Telefono  string    `json:"telefono"`
	Password  string    `json:"password"`
	Role      string    `json:"role" validate:"required"`
	ClientIDs *[]string `json:"client_ids,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Lastname    string    `json:"lastname"`
	Email       string    `json:"email"`
	Telefono    string    `json:"telefono"`
	Role        string    `json:"role"`
	ClientCount int       `json:"client_count"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UserDetailResponse usuario con sus clientes asignados.
type UserDetailResponse struct {
	UserResponse
	Clients []ClientSummary `json:"clients"`
}

// SetAssignmentsRequest conjunto completo de clientes asignados (reemplaza el anterior).
type SetAssignmentsRequest struct {
	ClientIDs []string `json:"client_ids"`
}

// AssignmentsResponse resultado de una modificación de asignaciones.
type AssignmentsResponse struct {
	UserID      string   `json:"user_id"`
	ClientIDs   []string `json:"client_ids"`
	ClientCount int      `json:"client_count"`
	Added       int      `json:"added"`
	Removed     int      `json:"removed"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token de sesión y usuario autenticado.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
