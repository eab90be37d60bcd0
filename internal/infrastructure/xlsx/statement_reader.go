// Package xlsx lee estados de cuenta bancarios exportados en Excel (excelize).
package xlsx

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/banking"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
)

// headerScanRows filas que se revisan buscando la cabecera (los bancos anteponen datos de la cuenta).
const headerScanRows = 25

var _ banking.StatementReader = (*StatementReader)(nil)

// StatementReader implementa banking.StatementReader sobre la primera hoja del libro.
// Reconoce las cabeceras habituales de los bancos italianos: Data / Data operazione,
// Descrizione / Causale, e Importo o el par Dare/Avere.
type StatementReader struct{}

// NewStatementReader crea el lector.
func NewStatementReader() *StatementReader { return &StatementReader{} }

type columns struct {
	date, desc, amount, dare, avere int
}

// ReadStatement lee los movimientos. Las filas vacías se ignoran; las que no se pueden interpretar
// se devuelven en rowErrs con su número de fila (1-based, como en Excel).
func (r *StatementReader) ReadStatement(in io.Reader) ([]banking.StatementRow, []error, error) {
	f, err := excelize.OpenReader(in)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: archivo XLSX no válido: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, nil, fmt.Errorf("%w: el libro no tiene hojas", domain.ErrInvalidInput)
	}
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja %s: %w", sheet, err)
	}

	headerIdx, cols, ok := findHeader(rows)
	if !ok {
		return nil, nil, fmt.Errorf("%w: no se encontró la cabecera (Data, Descrizione, Importo o Dare/Avere)", domain.ErrInvalidInput)
	}

	var out []banking.StatementRow
	var rowErrs []error
	for i := headerIdx + 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		line := i + 1
		parsed, err := parseRow(row, cols)
		if err != nil {
			rowErrs = append(rowErrs, fmt.Errorf("fila %d: %w", line, err))
			continue
		}
		parsed.Line = line
		out = append(out, parsed)
	}
	return out, rowErrs, nil
}

func findHeader(rows [][]string) (int, columns, bool) {
	for i := 0; i < len(rows) && i < headerScanRows; i++ {
		c := columns{date: -1, desc: -1, amount: -1, dare: -1, avere: -1}
		for j, cell := range rows[i] {
			h := normalizeHeader(cell)
			switch {
			case c.date < 0 && (h == "data" || h == "data operazione" || h == "data contabile" || h == "date"):
				c.date = j
			case c.desc < 0 && (strings.HasPrefix(h, "descrizione") || h == "causale" || h == "description"):
				c.desc = j
			case h == "importo" || h == "importo (eur)" || h == "amount":
				c.amount = j
			case h == "dare" || h == "uscite" || h == "addebiti":
				c.dare = j
			case h == "avere" || h == "entrate" || h == "accrediti":
				c.avere = j
			}
		}
		if c.date >= 0 && c.desc >= 0 && (c.amount >= 0 || (c.dare >= 0 && c.avere >= 0)) {
			return i, c, true
		}
	}
	return 0, columns{}, false
}

func parseRow(row []string, c columns) (banking.StatementRow, error) {
	var out banking.StatementRow
	date, err := parseDate(cellValue(row, c.date))
	if err != nil {
		return out, err
	}
	out.Date = date
	out.Description = strings.Join(strings.Fields(cellValue(row, c.desc)), " ")
	if out.Description == "" {
		return out, errors.New("descrizione vacía")
	}

	if c.amount >= 0 {
		amt, err := parseAmount(cellValue(row, c.amount))
		if err != nil {
			return out, err
		}
		out.Amount = amt
		return out, nil
	}
	dare, err := parseOptionalAmount(cellValue(row, c.dare))
	if err != nil {
		return out, err
	}
	avere, err := parseOptionalAmount(cellValue(row, c.avere))
	if err != nil {
		return out, err
	}
	if dare.IsZero() && avere.IsZero() {
		return out, errors.New("sin importe en Dare ni Avere")
	}
	out.Amount = avere.Abs().Sub(dare.Abs())
	return out, nil
}

var dateLayouts = []string{"02/01/2006", "2/1/2006", "02-01-2006", "02.01.2006", "2006-01-02", "02/01/06"}

// parseDate acepta el número de serie de Excel o una fecha de texto en formato italiano.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, errors.New("fecha vacía")
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, fmt.Errorf("fecha %q: %w", s, err)
		}
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha %q no reconocida", s)
}

// parseAmount acepta "1234.56" (valor crudo de la celda) y "1.234,56" / "-12,50 €" (texto).
func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.NewReplacer("€", "", "EUR", "", " ", "", " ", "").Replace(s)
	if clean == "" {
		return decimal.Zero, errors.New("importe vacío")
	}
	if strings.Contains(clean, ",") {
		clean = strings.ReplaceAll(clean, ".", "")
		clean = strings.Replace(clean, ",", ".", 1)
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("importe %q no válido", s)
	}
	return d.Round(2), nil
}

func parseOptionalAmount(s string) (decimal.Decimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.Zero, nil
	}
	return parseAmount(s)
}

func normalizeHeader(h string) string {
	return strings.ToLower(strings.Join(strings.Fields(h), " "))
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
