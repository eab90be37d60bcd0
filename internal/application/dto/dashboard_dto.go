package dto

import "github.com/shopspring/decimal"

// StoreKPIDTO indicadores de un locale (o del total) en el período.
type StoreKPIDTO struct {
	StoreID         string          `json:"store_id,omitempty"`
	StoreName       string          `json:"store_name,omitempty"`
	Revenue         decimal.Decimal `json:"revenue"`
	Orders          int             `json:"orders"`
	AvgTicket       decimal.Decimal `json:"avg_ticket"`
	Discounts       decimal.Decimal `json:"discounts"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	DeliveryRevenue decimal.Decimal `json:"delivery_revenue"`
	DeliveryPct     decimal.Decimal `json:"delivery_pct"`
	Commissions     decimal.Decimal `json:"commissions"`
	NetRevenue      decimal.Decimal `json:"net_revenue"` // Revenue - Commissions
	LaborHours      decimal.Decimal `json:"labor_hours"`
	LaborCost       decimal.Decimal `json:"labor_cost"`
	LaborPct        decimal.Decimal `json:"labor_pct"`
	AvgDailyRevenue decimal.Decimal `json:"avg_daily_revenue"`
}

// ChannelDTO ventas y comisión por canal.
type ChannelDTO struct {
	Channel    string          `json:"channel"`
	Revenue    decimal.Decimal `json:"revenue"`
	Commission decimal.Decimal `json:"commission"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	From     string        `json:"from"`
	To       string        `json:"to"`
	Days     int           `json:"days"`
	Totals   StoreKPIDTO   `json:"totals"`
	Stores   []StoreKPIDTO `json:"stores"`
	Channels []ChannelDTO  `json:"channels"`
}
