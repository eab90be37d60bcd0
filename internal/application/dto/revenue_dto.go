package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RevenueRecordRequest alta o modificación de un registro iPratico.
// Channels usa las claves sourceApp_<canal> tal como las exporta el POS.
type RevenueRecordRequest struct {
	StoreID       string                     `json:"store_id" validate:"required"`
	OrderDate     string                     `json:"order_date" validate:"required,datetime=2006-01-02"`
	TotalRevenue  decimal.Decimal            `json:"total_revenue"`
	TotalOrders   int                        `json:"total_orders" validate:"min=0"`
	DiscountTotal decimal.Decimal            `json:"discount_total"`
	Channels      map[string]decimal.Decimal `json:"channels"`
}

// RevenueImportRequest export iPratico de varios días. Solo se cargan los registros
// cuya order_date cae dentro del período (mismos valores que el selector del dashboard).
type RevenueImportRequest struct {
	Range     string                 `json:"range"`
	StartDate string                 `json:"start_date"`
	EndDate   string                 `json:"end_date"`
	Records   []RevenueRecordRequest `json:"records" validate:"required,min=1"`
}

// RevenueImportResponse resultado de la carga masiva.
type RevenueImportResponse struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Received int      `json:"received"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // fuera del período o con fecha ilegible
	Errors   []string `json:"errors"`
}

// RevenueRecordResponse salida de un registro iPratico.
type RevenueRecordResponse struct {
	ID            string                     `json:"id"`
	StoreID       string                     `json:"store_id"`
	OrderDate     string                     `json:"order_date"`
	TotalRevenue  decimal.Decimal            `json:"total_revenue"`
	TotalOrders   int                        `json:"total_orders"`
	DiscountTotal decimal.Decimal            `json:"discount_total"`
	Channels      map[string]decimal.Decimal `json:"channels"`
	Commission    decimal.Decimal            `json:"commission"`
	CreatedAt     time.Time                  `json:"created_at"`
	UpdatedAt     time.Time                  `json:"updated_at"`
}

// CommissionRuleRequest regla de comisión de una app de delivery.
type CommissionRuleRequest struct {
	AppDelivery string          `json:"app_delivery" validate:"required,min=1,max=100"`
	Percentuale decimal.Decimal `json:"percentuale"`
}

// CommissionRuleResponse salida de una regla de comisión.
type CommissionRuleResponse struct {
	ID          string          `json:"id"`
	AppDelivery string          `json:"app_delivery"`
	Percentuale decimal.Decimal `json:"percentuale"`
}
