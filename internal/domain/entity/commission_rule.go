package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CommissionRule porcentaje de comisión que cobra una app de delivery.
// AppDelivery se compara de forma exacta con el nombre del canal capitalizado ("Glovo").
type CommissionRule struct {
	ID          string
	AppDelivery string
	Percentuale decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
