package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Prefijo de los campos de canal en los registros iPratico (sourceApp_glovo, sourceApp_deliveroo...).
const ChannelFieldPrefix = "sourceApp_"

// ChannelInStore canal de venta en sala/asporto; no paga comisión a apps de delivery.
const ChannelInStore = "sourceApp_store"

// RevenueRecord registro diario de ventas proveniente de iPratico (POS).
// Channels mapea el campo sourceApp_<canal> al importe vendido por ese canal.
type RevenueRecord struct {
	ID            string
	StoreID       string
	OrderDate     time.Time
	TotalRevenue  decimal.Decimal
	TotalOrders   int
	DiscountTotal decimal.Decimal
	Channels      map[string]decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
