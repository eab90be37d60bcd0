package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supplier fornitore identificado por partita IVA (CedentePrestatore de la fattura).
type Supplier struct {
	ID        string
	Name      string
	VATNumber string
	TaxCode   string // codice fiscale
	Address   string
	City      string
	Country   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product materia prima comprada a un proveedor. Code es el CodiceArticolo (puede faltar).
type Product struct {
	ID          string
	SupplierID  string
	Code        string
	Name        string
	UnitMeasure string
	LastPrice   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PriceHistory precio unitario observado en una línea de fattura.
type PriceHistory struct {
	ID            string
	ProductID     string
	SupplierID    string
	Price         decimal.Decimal
	Quantity      decimal.Decimal
	InvoiceNumber string
	InvoiceDate   time.Time
	CreatedAt     time.Time
}

// InvoiceImport registro de cada XML importado. Digest es el SHA-256 del XML canonicalizado.
type InvoiceImport struct {
	ID            string
	FileName      string
	FileURL       string
	Digest        string
	SupplierID    string
	InvoiceNumber string
	InvoiceDate   time.Time
	LinesTotal    int
	LinesFailed   int
	CreatedAt     time.Time
}
