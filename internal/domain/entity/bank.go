package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de coincidencia de una Rule sobre la descripción del movimiento.
const (
	MatchContains   = "contains"
	MatchStartsWith = "starts_with"
	MatchRegex      = "regex"
)

// BankTransaction movimiento bancario importado desde el estado de cuenta.
// Amount positivo = entrada (avere), negativo = salida (dare).
type BankTransaction struct {
	ID          string
	StoreID     string
	Account     string
	Date        time.Time
	Amount      decimal.Decimal
	Description string
	Category    string
	RuleID      string
	Reconciled  bool
	BatchID     string
	CreatedAt   time.Time
}

// Rule regla de categorización automática de movimientos bancarios.
// Se aplica la primera regla activa que coincide, por Priority ascendente.
type Rule struct {
	ID        string
	Name      string
	Pattern   string
	MatchType string
	Category  string
	StoreID   string
	Priority  int
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
