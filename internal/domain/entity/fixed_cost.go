package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Modos de asignación de un costo fijo a los locales.
const (
	AssignSingolo  = "singolo"  // un solo locale
	AssignMultipli = "multipli" // replicado en cada locale seleccionado
	AssignTutti    = "tutti"    // repartido entre todos los locales activos
)

// FixedCost costo fijo mensual (affitto, utenze, software...).
type FixedCost struct {
	ID             string
	Name           string
	Category       string
	MonthlyAmount  decimal.Decimal
	AssignmentMode string
	StoreIDs       []string
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
