package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShiftRequest alta o modificación de un turno.
type ShiftRequest struct {
	StoreID    string `json:"store_id" validate:"required"`
	EmployeeID string `json:"employee_id" validate:"required"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Role       string `json:"role" validate:"max=100"`
	Notes      string `json:"notes" validate:"max=500"`
}

// MoveShiftRequest reasignación por arrastre en el calendario (día y/o dipendente).
type MoveShiftRequest struct {
	Date       string `json:"date" validate:"omitempty,datetime=2006-01-02"`
	EmployeeID string `json:"employee_id"`
}

// ShiftResponse salida de un turno.
type ShiftResponse struct {
	ID         string          `json:"id"`
	StoreID    string          `json:"store_id"`
	EmployeeID string          `json:"employee_id"`
	Date       string          `json:"date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	Role       string          `json:"role"`
	Notes      string          `json:"notes"`
	Hours      decimal.Decimal `json:"hours"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ShiftSaveResponse turno guardado más los solapamientos detectados (solo aviso).
type ShiftSaveResponse struct {
	Shift     ShiftResponse   `json:"shift"`
	Overlap   bool            `json:"overlap"`
	Conflicts []ShiftResponse `json:"conflicts"`
}

// OverlapCheckResponse resultado de la verificación sin guardar.
type OverlapCheckResponse struct {
	Overlap   bool            `json:"overlap"`
	Conflicts []ShiftResponse `json:"conflicts"`
}

// EmployeeHoursDTO horas y costo de un dipendente en el período.
type EmployeeHoursDTO struct {
	EmployeeID string          `json:"employee_id"`
	Name       string          `json:"name"`
	Shifts     int             `json:"shifts"`
	Hours      decimal.Decimal `json:"hours"`
	Cost       decimal.Decimal `json:"cost"`
}

// EmployeeHoursResponse resumen de horas por dipendente.
type EmployeeHoursResponse struct {
	From       string             `json:"from"`
	To         string             `json:"to"`
	Employees  []EmployeeHoursDTO `json:"employees"`
	TotalHours decimal.Decimal    `json:"total_hours"`
	TotalCost  decimal.Decimal    `json:"total_cost"`
}
