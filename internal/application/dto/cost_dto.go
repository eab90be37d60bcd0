package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// FixedCostRequest alta o modificación de un costo fijo.
type FixedCostRequest struct {
	Name           string          `json:"name" validate:"required,min=1,max=200"`
	Category       string          `json:"category" validate:"max=100"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	AssignmentMode string          `json:"assignment_mode" validate:"required,oneof=singolo multipli tutti"`
	StoreIDs       []string        `json:"store_ids"`
	Active         *bool           `json:"active"`
}

// FixedCostResponse salida de un costo fijo.
type FixedCostResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Category       string          `json:"category"`
	MonthlyAmount  decimal.Decimal `json:"monthly_amount"`
	AssignmentMode string          `json:"assignment_mode"`
	StoreIDs       []string        `json:"store_ids"`
	Active         bool            `json:"active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// CostLineDTO costo fijo imputado a un locale.
type CostLineDTO struct {
	CostID   string          `json:"cost_id"`
	Name     string          `json:"name"`
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// StoreCostReportDTO costos del mes para un locale.
type StoreCostReportDTO struct {
	StoreID     string          `json:"store_id"`
	StoreName   string          `json:"store_name"`
	Revenue     decimal.Decimal `json:"revenue"`
	FixedCosts  decimal.Decimal `json:"fixed_costs"`
	LaborHours  decimal.Decimal `json:"labor_hours"`
	LaborCost   decimal.Decimal `json:"labor_cost"`
	Commissions decimal.Decimal `json:"commissions"`
	TotalCosts  decimal.Decimal `json:"total_costs"`
	CostPct     decimal.Decimal `json:"cost_pct"` // TotalCosts / Revenue * 100
	Margin      decimal.Decimal `json:"margin"`
	Lines       []CostLineDTO   `json:"lines"`
}

// CostReportResponse respuesta de GET /api/costs/report?month=YYYY-MM.
type CostReportResponse struct {
	Month   string               `json:"month"`
	ProRata decimal.Decimal      `json:"pro_rata"`
	Stores  []StoreCostReportDTO `json:"stores"`
	Totals  StoreCostReportDTO   `json:"totals"`
}
