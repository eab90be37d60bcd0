package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ImportFatturaRequest entrada de importFattureXML: contenido directo o URL del archivo.
type ImportFatturaRequest struct {
	XMLContent string `json:"xml_content"`
	FileURL    string `json:"file_url" validate:"omitempty,url"`
	FileName   string `json:"file_name" validate:"max=300"`
}

// ImportSupplierDTO proveedor creado o actualizado.
type ImportSupplierDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	VATNumber string `json:"vat_number"`
	Created   bool   `json:"created"`
}

// ImportInvoiceDTO datos generales del documento.
type ImportInvoiceDTO struct {
	Type        string          `json:"type"`
	TypeLabel   string          `json:"type_label"`
	Number      string          `json:"number"`
	Date        string          `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// ImportSummaryDTO contadores de la importación.
type ImportSummaryDTO struct {
	LinesTotal      int `json:"lines_total"`
	ProductsCreated int `json:"products_created"`
	ProductsUpdated int `json:"products_updated"`
	PricesRecorded  int `json:"prices_recorded"`
	Errors          int `json:"errors"`
}

// ImportLineResultDTO resultado por línea de la fattura.
type ImportLineResultDTO struct {
	Line        int             `json:"line"`
	CodeType    string          `json:"code_type,omitempty"`
	Code        string          `json:"code,omitempty"`
	Description string          `json:"description"`
	ProductID   string          `json:"product_id,omitempty"`
	Action      string          `json:"action"` // created | updated | error
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	// Natura solo para líneas sin IVA (N1..N7), con su descripción de catálogo.
	Natura      string `json:"natura,omitempty"`
	NaturaLabel string `json:"natura_label,omitempty"`
	Error       string `json:"error,omitempty"`
}

// ImportFatturaResponse resumen JSON devuelto por importFattureXML.
type ImportFatturaResponse struct {
	Success   bool                  `json:"success"`
	Duplicate bool                  `json:"duplicate"`
	Digest    string                `json:"digest"`
	Supplier  ImportSupplierDTO     `json:"supplier"`
	Invoice   ImportInvoiceDTO      `json:"invoice"`
	Summary   ImportSummaryDTO      `json:"summary"`
	Results   []ImportLineResultDTO `json:"results"`
	Errors    []string              `json:"errors"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	VATNumber string    `json:"vat_number"`
	TaxCode   string    `json:"tax_code"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductResponse salida de una materia prima.
type ProductResponse struct {
	ID          string          `json:"id"`
	SupplierID  string          `json:"supplier_id"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	LastPrice   decimal.Decimal `json:"last_price"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PriceHistoryResponse precio histórico de una materia prima.
type PriceHistoryResponse struct {
	Price         decimal.Decimal `json:"price"`
	Quantity      decimal.Decimal `json:"quantity"`
	InvoiceNumber string          `json:"invoice_number"`
	InvoiceDate   string          `json:"invoice_date"`
}
