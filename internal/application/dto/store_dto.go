package dto

import "time"

// CreateStoreRequest entrada para crear un locale.
type CreateStoreRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Address     string `json:"address" validate:"max=300"`
	City        string `json:"city" validate:"max=100"`
	OpeningDate string `json:"opening_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateStoreRequest cambios parciales de un locale.
type UpdateStoreRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	OpeningDate *string `json:"opening_date" validate:"omitempty,datetime=2006-01-02"`
	Active      *bool   `json:"active"`
}

// StoreResponse salida de un locale.
type StoreResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	OpeningDate string    `json:"opening_date,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
