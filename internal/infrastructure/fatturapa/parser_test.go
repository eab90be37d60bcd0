package fatturapa

import (
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
)

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	raw, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return raw
}

func TestParse_FullInvoice(t *testing.T) {
	doc, err := NewParser().Parse(readFixture(t, "IT01234567890_FPR01.xml"))
	require.NoError(t, err)

	assert.Equal(t, "IT", doc.Cedente.VATCountry)
	assert.Equal(t, "00743110157", doc.Cedente.VATNumber)
	assert.Equal(t, "Molino Rossi S.r.l.", doc.Cedente.Name)
	assert.Equal(t, "Via Emilia, 12", doc.Cedente.Address)
	assert.Equal(t, "Milano", doc.Cedente.City)
	assert.Equal(t, "MI", doc.Cedente.Province)

	assert.Equal(t, "TD01", doc.DocumentType)
	assert.Equal(t, "FT-2026/118", doc.Number)
	assert.Equal(t, time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), doc.Date)
	assert.True(t, doc.Total.Equal(decimal.RequireFromString("134.2")))
	assert.Len(t, doc.Digest, 64)

	require.Len(t, doc.Lines, 2)
	first := doc.Lines[0]
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "FAR00", first.Code)
	assert.Equal(t, "Farina tipo 00 sacco 25kg", first.Description, "espacios repetidos normalizados")
	assert.Equal(t, "KGM", first.Unit)
	assert.True(t, first.UnitPrice.Equal(decimal.RequireFromString("18.5")))
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(4)))

	assert.Empty(t, doc.Lines[1].Code)
}

func TestParse_Latin1AndPersonName(t *testing.T) {
	doc, err := NewParser().Parse(readFixture(t, "latin1_nota_credito.xml"))
	require.NoError(t, err)

	assert.Equal(t, "Niccolò Bianchi", doc.Cedente.Name)
	assert.Equal(t, "Forlì", doc.Cedente.City)
	assert.Equal(t, "TD04", doc.DocumentType)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "Caffè in grani", doc.Lines[0].Description)
	assert.Equal(t, 1, doc.Lines[0].Number, "sin NumeroLinea se usa la posición")
	assert.True(t, doc.Lines[0].Quantity.Equal(decimal.NewFromInt(1)), "sin Quantita vale 1")
}

func TestParse_Malformed(t *testing.T) {
	cases := map[string]string{
		"vacío":            "   ",
		"sin cerrar":       "<FatturaElettronica><FatturaElettronicaHeader>",
		"otra raíz":        "<Invoice/>",
		"sin cuerpo":       "<FatturaElettronica><FatturaElettronicaHeader><CedentePrestatore/></FatturaElettronicaHeader></FatturaElettronica>",
		"precio inválido":  `<FatturaElettronica><FatturaElettronicaHeader><CedentePrestatore/></FatturaElettronicaHeader><FatturaElettronicaBody><DatiGenerali><DatiGeneraliDocumento><TipoDocumento>TD01</TipoDocumento></DatiGeneraliDocumento></DatiGenerali><DatiBeniServizi><DettaglioLinee><Descrizione>x</Descrizione><PrezzoUnitario>1,50</PrezzoUnitario></DettaglioLinee></DatiBeniServizi></FatturaElettronicaBody></FatturaElettronica>`,
		"tipo desconocido": `<FatturaElettronica><FatturaElettronicaHeader><CedentePrestatore/></FatturaElettronicaHeader><FatturaElettronicaBody><DatiGenerali><DatiGeneraliDocumento><TipoDocumento>TD99</TipoDocumento></DatiGeneraliDocumento></DatiGenerali></FatturaElettronicaBody></FatturaElettronica>`,
	}
	for name, xml := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewParser().Parse([]byte(xml))
			assert.ErrorIs(t, err, domain.ErrMalformedXML)
		})
	}
}

func TestDigest_CanonicalForm(t *testing.T) {
	a := Digest([]byte(`<root><item id="1"></item></root>`))
	b := Digest([]byte(`<root><item id="1"/></root>`))
	assert.Equal(t, a, b, "elemento vacío y autocerrado son equivalentes en C14N")

	c := Digest([]byte(`<root><item id="2"/></root>`))
	assert.NotEqual(t, a, c)
}

func TestDigest_FallbackOnInvalidXML(t *testing.T) {
	d1 := Digest([]byte("<no-cerrado>"))
	d2 := Digest([]byte("<no-cerrado>"))
	assert.Len(t, d1, 64)
	assert.Equal(t, d1, d2)
}
