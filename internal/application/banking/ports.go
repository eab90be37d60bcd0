package banking

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// StatementRow movimiento leído del estado de cuenta (positivo = entrada).
type StatementRow struct {
	Line        int
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// StatementReader puerto para leer estados de cuenta (XLSX en producción).
// Las filas inválidas se reportan en rowErrs sin interrumpir la lectura.
type StatementReader interface {
	ReadStatement(r io.Reader) (rows []StatementRow, rowErrs []error, err error)
}
