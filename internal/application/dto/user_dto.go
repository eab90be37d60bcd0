package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	StoreID  string `json:"store_id" validate:"omitempty,uuid"`
	Name     string `json:"name" validate:"omitempty,max=200"`
	Role     string `json:"role" validate:"omitempty,oneof=admin manager dipendente"`
}

// UpdateUserRequest cambios de un dipendente (solo admin).
type UpdateUserRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	StoreID    *string          `json:"store_id" validate:"omitempty,uuid"`
	Role       *string          `json:"role" validate:"omitempty,oneof=admin manager dipendente"`
	HourlyCost *decimal.Decimal `json:"hourly_cost"`
	Status     *string          `json:"status" validate:"omitempty,oneof=active inactive"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"store_id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	HourlyCost decimal.Decimal `json:"hourly_cost"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
