// Package fatturapa contiene catálogos y validaciones alineados a las especificaciones
// técnicas de la Fattura Elettronica (FatturaPA / SdI, formato 1.2.x).
package fatturapa

// =============================================================================
// TipoDocumento (2.1.1.1)
// =============================================================================

const (
	TipoFattura           = "TD01"
	TipoAccontoFattura    = "TD02"
	TipoAccontoParcella   = "TD03"
	TipoNotaCredito       = "TD04"
	TipoNotaDebito        = "TD05"
	TipoParcella          = "TD06"
	TipoFatturaDifferitaA = "TD24"
	TipoFatturaDifferitaB = "TD25"
	TipoAcquistiSanMarino = "TD28"
)

// DocumentTypes descripción de cada TipoDocumento admitido por el SdI.
var DocumentTypes = map[string]string{
	"TD01": "Fattura",
	"TD02": "Acconto/anticipo su fattura",
	"TD03": "Acconto/anticipo su parcella",
	"TD04": "Nota di credito",
	"TD05": "Nota di debito",
	"TD06": "Parcella",
	"TD16": "Integrazione fattura reverse charge interno",
	"TD17": "Integrazione/autofattura per acquisto servizi dall'estero",
	"TD18": "Integrazione per acquisto di beni intracomunitari",
	"TD19": "Integrazione/autofattura per acquisto di beni ex art.17 c.2 DPR 633/72",
	"TD20": "Autofattura per regolarizzazione e integrazione delle fatture",
	"TD21": "Autofattura per splafonamento",
	"TD22": "Estrazione beni da Deposito IVA",
	"TD23": "Estrazione beni da Deposito IVA con versamento dell'IVA",
	"TD24": "Fattura differita di cui all'art.21, comma 4, lett. a)",
	"TD25": "Fattura differita di cui all'art.21, comma 4, terzo periodo lett. b)",
	"TD26": "Cessione di beni ammortizzabili e per passaggi interni",
	"TD27": "Fattura per autoconsumo o per cessioni gratuite senza rivalsa",
	"TD28": "Acquisti da San Marino con IVA (fattura cartacea)",
}

// IsKnownDocumentType indica si el código está en el catálogo.
func IsKnownDocumentType(code string) bool {
	_, ok := DocumentTypes[code]
	return ok
}

// IsCreditNote las notas de crédito no representan un precio de compra.
func IsCreditNote(code string) bool {
	return code == TipoNotaCredito
}

// =============================================================================
// Natura (2.2.1.14) - operaciones sin IVA
// =============================================================================

// NaturaCodes códigos de natura vigentes desde 2021.
var NaturaCodes = map[string]string{
	"N1":   "Escluse ex art. 15",
	"N2.1": "Non soggette ad IVA ai sensi degli artt. da 7 a 7-septies",
	"N2.2": "Non soggette - altri casi",
	"N3.1": "Non imponibili - esportazioni",
	"N3.2": "Non imponibili - cessioni intracomunitarie",
	"N3.3": "Non imponibili - cessioni verso San Marino",
	"N3.4": "Non imponibili - operazioni assimilate alle cessioni all'esportazione",
	"N3.5": "Non imponibili - a seguito di dichiarazioni d'intento",
	"N3.6": "Non imponibili - altre operazioni",
	"N4":   "Esenti",
	"N5":   "Regime del margine / IVA non esposta in fattura",
	"N6.1": "Inversione contabile - cessione di rottami",
	"N6.2": "Inversione contabile - cessione di oro e argento",
	"N6.3": "Inversione contabile - subappalto nel settore edile",
	"N6.4": "Inversione contabile - cessione di fabbricati",
	"N6.5": "Inversione contabile - cessione di telefoni cellulari",
	"N6.6": "Inversione contabile - cessione di prodotti elettronici",
	"N6.7": "Inversione contabile - prestazioni comparto edile",
	"N6.8": "Inversione contabile - operazioni settore energetico",
	"N6.9": "Inversione contabile - altri casi",
	"N7":   "IVA assolta in altro stato UE",
}

// =============================================================================
// Unità di misura más frecuentes en facturas de proveedores de restauración.
// UnitaMisura es texto libre en FatturaPA; se normalizan los alias comunes.
// =============================================================================

var unitAliases = map[string]string{
	"KG": "KG", "KGM": "KG", "KILO": "KG", "KILOGRAMMI": "KG",
	"GR": "G", "G": "G", "GRAMMI": "G",
	"LT": "L", "L": "L", "LITRI": "L", "LTR": "L",
	"PZ": "PZ", "NR": "PZ", "N": "PZ", "PEZZI": "PZ", "CAD": "PZ", "C62": "PZ",
	"CF": "CF", "CONF": "CF", "CT": "CT", "CRT": "CT",
}

// NormalizeUnit devuelve la unidad canónica o el valor original en mayúsculas si no hay alias.
func NormalizeUnit(u string) string {
	key := upperTrim(u)
	if canon, ok := unitAliases[key]; ok {
		return canon
	}
	return key
}
