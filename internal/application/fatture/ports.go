package fatture

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// Cedente datos del CedentePrestatore (proveedor) tal como vienen en la fattura.
type Cedente struct {
	VATCountry string // IdPaese
	VATNumber  string // IdCodice
	TaxCode    string // CodiceFiscale
	Name       string // Denominazione o Nome + Cognome
	Address    string
	City       string
	PostalCode string
	Province   string
	Country    string
}

// Line línea de DettaglioLinee.
type Line struct {
	Number      int
	CodeType    string // CodiceTipo
	Code        string // CodiceValore
	Description string
	Quantity    decimal.Decimal // 1 si falta
	Unit        string
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	VATRate     decimal.Decimal
	Natura      string
}

// Document fattura ya interpretada. Digest es el SHA-256 hex del XML canonicalizado.
type Document struct {
	Cedente      Cedente
	DocumentType string
	Number       string
	Date         time.Time
	Currency     string
	Total        decimal.Decimal
	Lines        []Line
	Digest       string
}

// InvoiceParser puerto del parser FatturaPA. Devuelve un error que envuelve
// domain.ErrMalformedXML si el contenido no es una fattura válida.
type InvoiceParser interface {
	Parse(raw []byte) (*Document, error)
}

// Fetcher descarga el XML indicado por file_url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Archiver guarda el XML original; devuelve la URL o clave del objeto guardado.
type Archiver interface {
	Archive(ctx context.Context, key string, raw []byte) (string, error)
}

// ImportTxRunner ejecuta fn dentro de una transacción con los repos de materie prime y precios.
// Cada línea de la fattura usa su propia transacción.
type ImportTxRunner interface {
	RunImportLine(ctx context.Context, fn func(products repository.ProductRepository, prices repository.PriceHistoryRepository) error) error
}
