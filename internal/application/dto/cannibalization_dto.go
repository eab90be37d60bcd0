package dto

import "github.com/shopspring/decimal"

// CannibalizationRequest parámetros del análisis.
type CannibalizationRequest struct {
	NewStoreID       string   `json:"new_store_id" query:"new_store_id" validate:"required"`
	ExistingStoreIDs []string `json:"existing_store_ids" query:"existing_store_ids"`
	WindowDays       int      `json:"window_days" query:"window_days" validate:"min=0,max=365"`
}

// StoreImpactDTO impacto sobre un locale existente.
type StoreImpactDTO struct {
	StoreID    string          `json:"store_id"`
	StoreName  string          `json:"store_name"`
	AvgBefore  decimal.Decimal `json:"avg_before"`
	AvgAfter   decimal.Decimal `json:"avg_after"`
	Delta      decimal.Decimal `json:"delta"`
	DeltaPct   decimal.Decimal `json:"delta_pct"`
	DaysBefore int             `json:"days_before"`
	DaysAfter  int             `json:"days_after"`
}

// CannibalizationResponse resultado del análisis.
type CannibalizationResponse struct {
	NewStoreID       string           `json:"new_store_id"`
	NewStoreName     string           `json:"new_store_name"`
	OpeningDate      string           `json:"opening_date"`
	WindowDays       int              `json:"window_days"`
	NewStoreAvgAfter decimal.Decimal  `json:"new_store_avg_after"`
	Stores           []StoreImpactDTO `json:"stores"`
	TotalAvgBefore   decimal.Decimal  `json:"total_avg_before"`
	TotalAvgAfter    decimal.Decimal  `json:"total_avg_after"`
	TotalDelta       decimal.Decimal  `json:"total_delta"`
	TotalDeltaPct    decimal.Decimal  `json:"total_delta_pct"`
}
