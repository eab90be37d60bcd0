package xlsx

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestReadStatement_ImportoColumn(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Banca Intesa - Estratto conto"},
		{"Conto", "IT60X0542811101000000123456"},
		{},
		{"Data operazione", "Data valuta", "Descrizione", "Importo"},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), "01/10/2026", "POS GLOVO   PAYOUT 0925", 1250.4},
		{"02/10/2026", "02/10/2026", "SDD ENEL ENERGIA", "-312,80"},
		{},
		{"03/10/2026", "", "BONIFICO AFFITTO OTTOBRE", "-1.800,00 €"},
	})

	rows, rowErrs, err := NewStatementReader().ReadStatement(buf)
	require.NoError(t, err)
	assert.Empty(t, rowErrs)
	require.Len(t, rows, 3)

	assert.Equal(t, 5, rows[0].Line)
	assert.Equal(t, "2026-10-01", rows[0].Date.Format("2006-01-02"))
	assert.Equal(t, "POS GLOVO PAYOUT 0925", rows[0].Description)
	assert.Equal(t, "1250.4", rows[0].Amount.String())

	assert.Equal(t, "-312.8", rows[1].Amount.String())
	assert.Equal(t, 8, rows[2].Line)
	assert.Equal(t, "-1800", rows[2].Amount.String())
}

func TestReadStatement_DareAvere(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Data", "Causale", "Dare", "Avere"},
		{"05/10/2026", "Versamento contanti", "", "980,00"},
		{"06/10/2026", "Commissioni POS", "12,35", ""},
		{"07/10/2026", "Riga senza importi", "", ""},
		{"fecha mala", "Pagamento", "10", ""},
	})

	rows, rowErrs, err := NewStatementReader().ReadStatement(buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "980", rows[0].Amount.String())
	assert.Equal(t, "-12.35", rows[1].Amount.String())

	require.Len(t, rowErrs, 2)
	assert.Contains(t, rowErrs[0].Error(), "fila 4")
	assert.Contains(t, rowErrs[1].Error(), "fila 5")
}

func TestReadStatement_Errors(t *testing.T) {
	_, _, err := NewStatementReader().ReadStatement(bytes.NewBufferString("no soy un xlsx"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	buf := workbook(t, [][]any{{"Colonna A", "Colonna B"}, {"1", "2"}})
	_, _, err = NewStatementReader().ReadStatement(buf)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseAmount(t *testing.T) {
	cases := map[string]string{
		"1234.56":     "1234.56",
		"1.234,56":    "1234.56",
		"-12,5":       "-12.5",
		"€ 40,00":     "40",
		"0.105":       "0.11",
		"1 000,00":    "1000",
		"-1.800,00 €": "-1800",
	}
	for in, want := range cases {
		got, err := parseAmount(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}
	_, err := parseAmount("abc")
	assert.Error(t, err)
}
