package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankTransactionResponse salida de un movimiento bancario.
type BankTransactionResponse struct {
	ID          string          `json:"id"`
	StoreID     string          `json:"store_id"`
	Account     string          `json:"account"`
	Date        string          `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	RuleID      string          `json:"rule_id"`
	Reconciled  bool            `json:"reconciled"`
	BatchID     string          `json:"batch_id"`
	CreatedAt   time.Time       `json:"created_at"`
}

// UpdateBankTransactionRequest categorización manual o conciliación.
type UpdateBankTransactionRequest struct {
	Category   *string `json:"category" validate:"omitempty,max=100"`
	StoreID    *string `json:"store_id"`
	Reconciled *bool   `json:"reconciled"`
}

// BankImportResponse resultado de la importación de un estado de cuenta.
type BankImportResponse struct {
	BatchID     string   `json:"batch_id"`
	Imported    int      `json:"imported"`
	Categorized int      `json:"categorized"`
	Skipped     int      `json:"skipped"`
	Errors      []string `json:"errors"`
}

// ApplyRulesResponse resultado de aplicar las reglas a los movimientos sin categoría.
type ApplyRulesResponse struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
}

// BankSummaryDTO totales de conciliación.
type BankSummaryDTO struct {
	Income        decimal.Decimal            `json:"income"`
	Expenses      decimal.Decimal            `json:"expenses"`
	Net           decimal.Decimal            `json:"net"`
	Count         int                        `json:"count"`
	Uncategorized int                        `json:"uncategorized"`
	Unreconciled  int                        `json:"unreconciled"`
	ByCategory    map[string]decimal.Decimal `json:"by_category"`
}

// BankListResponse movimientos más su resumen.
type BankListResponse struct {
	Items   []BankTransactionResponse `json:"items"`
	Summary BankSummaryDTO            `json:"summary"`
}

// RuleRequest alta o modificación de una regla.
type RuleRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=200"`
	Pattern   string `json:"pattern" validate:"required,min=1,max=300"`
	MatchType string `json:"match_type" validate:"omitempty,oneof=contains starts_with regex"`
	Category  string `json:"category" validate:"required,max=100"`
	StoreID   string `json:"store_id"`
	Priority  int    `json:"priority"`
	Active    *bool  `json:"active"`
}

// RuleResponse salida de una regla.
type RuleResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Pattern   string `json:"pattern"`
	MatchType string `json:"match_type"`
	Category  string `json:"category"`
	StoreID   string `json:"store_id"`
	Priority  int    `json:"priority"`
	Active    bool   `json:"active"`
}
