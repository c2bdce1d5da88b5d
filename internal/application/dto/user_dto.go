package dto

import "time"

// RegisterRequest entrada para registro: la cuenta queda pendiente de aprobación.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Company  string `json:"company" validate:"omitempty,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse salida de un usuario con su perfil de acceso (sin password).
type UserResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Company      string    `json:"company"`
	Phone        string    `json:"phone"`
	Status       string    `json:"status"`
	Role         string    `json:"role"`
	CanSeePrices bool      `json:"can_see_prices"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// ProfileListRequest filtros del listado de perfiles (admin).
type ProfileListRequest struct {
	Status string `query:"status" validate:"omitempty,oneof=pendiente autorizado"`
	PageRequest
}

// ProfileListResponse lista paginada de perfiles.
type ProfileListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
