// Package fatturapa interpreta el XML de la Fattura Elettronica (FatturaPA 1.2.x) con etree.
// Los prefijos de namespace se ignoran: se compara solo el nombre local de cada elemento.
package fatturapa

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/ucarion/c14n"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Ristoranti-api/internal/application/fatture"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	pkgfatturapa "github.com/jhoicas/Ristoranti-api/pkg/fatturapa"
)

// Parser implementa fatture.InvoiceParser.
type Parser struct{}

// NewParser crea el parser.
func NewParser() *Parser { return &Parser{} }

var _ fatture.InvoiceParser = (*Parser)(nil)

// Parse interpreta la fattura. Solo se importa el primer FatturaElettronicaBody (los lotti
// con varios cuerpos comparten proveedor pero tienen número y fecha propios).
func (p *Parser) Parse(raw []byte) (*fatture.Document, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, fmt.Errorf("%w: contenido vacío", domain.ErrMalformedXML)
	}
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformedXML, err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "FatturaElettronica" {
		return nil, fmt.Errorf("%w: la raíz no es FatturaElettronica", domain.ErrMalformedXML)
	}

	cedente := child(root, "FatturaElettronicaHeader", "CedentePrestatore")
	if cedente == nil {
		return nil, fmt.Errorf("%w: falta CedentePrestatore", domain.ErrMalformedXML)
	}
	body := child(root, "FatturaElettronicaBody")
	if body == nil {
		return nil, fmt.Errorf("%w: falta FatturaElettronicaBody", domain.ErrMalformedXML)
	}
	dgd := child(body, "DatiGenerali", "DatiGeneraliDocumento")
	if dgd == nil {
		return nil, fmt.Errorf("%w: falta DatiGeneraliDocumento", domain.ErrMalformedXML)
	}

	out := &fatture.Document{
		Cedente:      parseCedente(cedente),
		DocumentType: strings.ToUpper(text(dgd, "TipoDocumento")),
		Number:       text(dgd, "Numero"),
		Currency:     text(dgd, "Divisa"),
	}
	if out.DocumentType != "" && !pkgfatturapa.IsKnownDocumentType(out.DocumentType) {
		return nil, fmt.Errorf("%w: TipoDocumento %q desconocido", domain.ErrMalformedXML, out.DocumentType)
	}
	if s := text(dgd, "Data"); s != "" {
		d, err := time.Parse("2006-01-02", s)
		if err != nil {
			return nil, fmt.Errorf("%w: Data %q", domain.ErrMalformedXML, s)
		}
		out.Date = d
	}
	var err error
	if out.Total, err = decimalField(dgd, "ImportoTotaleDocumento"); err != nil {
		return nil, err
	}

	beni := child(body, "DatiBeniServizi")
	if beni != nil {
		for i, dl := range children(beni, "DettaglioLinee") {
			line, err := parseLine(dl, i+1)
			if err != nil {
				return nil, err
			}
			out.Lines = append(out.Lines, line)
		}
	}
	out.Digest = Digest(raw)
	return out, nil
}

func parseCedente(e *etree.Element) fatture.Cedente {
	anag := child(e, "DatiAnagrafici")
	c := fatture.Cedente{
		VATCountry: strings.ToUpper(text(anag, "IdFiscaleIVA", "IdPaese")),
		VATNumber:  text(anag, "IdFiscaleIVA", "IdCodice"),
		TaxCode:    text(anag, "CodiceFiscale"),
	}
	a := child(anag, "Anagrafica")
	c.Name = text(a, "Denominazione")
	if c.Name == "" {
		c.Name = strings.TrimSpace(text(a, "Nome") + " " + text(a, "Cognome"))
	}
	sede := child(e, "Sede")
	addr := text(sede, "Indirizzo")
	if n := text(sede, "NumeroCivico"); n != "" {
		addr += ", " + n
	}
	c.Address = addr
	c.City = text(sede, "Comune")
	c.PostalCode = text(sede, "CAP")
	c.Province = text(sede, "Provincia")
	c.Country = strings.ToUpper(text(sede, "Nazione"))
	return c
}

func parseLine(e *etree.Element, pos int) (fatture.Line, error) {
	l := fatture.Line{
		Number:      pos,
		Description: strings.Join(strings.Fields(text(e, "Descrizione")), " "),
		Unit:        text(e, "UnitaMisura"),
		Natura:      text(e, "Natura"),
	}
	if s := text(e, "NumeroLinea"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return l, fmt.Errorf("%w: NumeroLinea %q", domain.ErrMalformedXML, s)
		}
		l.Number = n
	}
	if ca := child(e, "CodiceArticolo"); ca != nil {
		l.CodeType = text(ca, "CodiceTipo")
		l.Code = text(ca, "CodiceValore")
	}
	var err error
	if l.Quantity, err = decimalField(e, "Quantita"); err != nil {
		return l, err
	}
	if l.Quantity.IsZero() {
		l.Quantity = decimal.NewFromInt(1)
	}
	if l.UnitPrice, err = decimalField(e, "PrezzoUnitario"); err != nil {
		return l, err
	}
	if l.TotalPrice, err = decimalField(e, "PrezzoTotale"); err != nil {
		return l, err
	}
	if l.VATRate, err = decimalField(e, "AliquotaIVA"); err != nil {
		return l, err
	}
	return l, nil
}

// Digest SHA-256 hex del XML canonicalizado (C14N); si no se puede canonicalizar, del contenido tal cual.
// Dos copias del mismo documento con distinto formato o atributos reordenados dan el mismo digest.
func Digest(raw []byte) string {
	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.CharsetReader = charsetReader
	dec.Entity = map[string]string{}
	canon, err := c14n.Canonicalize(dec)
	if err != nil {
		canon = raw
	}
	sum := sha256.Sum256(canon)
	return hex.EncodeToString(sum[:])
}

// charsetReader decodifica las codificaciones de un byte que usan algunos gestionales.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "utf-8", "utf8", "":
		return input, nil
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "iso-8859-15", "latin9":
		return transform.NewReader(input, charmap.ISO8859_15.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("codificación no soportada: %s", label)
}

// child recorre la ruta de nombres locales; nil si algún tramo falta.
func child(e *etree.Element, path ...string) *etree.Element {
	cur := e
	for _, name := range path {
		if cur == nil {
			return nil
		}
		var next *etree.Element
		for _, c := range cur.ChildElements() {
			if c.Tag == name {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}

func children(e *etree.Element, name string) []*etree.Element {
	var out []*etree.Element
	for _, c := range e.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

func text(e *etree.Element, path ...string) string {
	c := child(e, path...)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Text())
}

func decimalField(e *etree.Element, name string) (decimal.Decimal, error) {
	s := text(e, name)
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %s %q no es un número", domain.ErrMalformedXML, name, s)
	}
	return d, nil
}
