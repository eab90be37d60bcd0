// Package fatture contiene la importación de fatture elettroniche (FatturaPA XML):
// alta o actualización del fornitore, de las materie prime y del histórico de precios.
package fatture

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/jhoicas/Ristoranti-api/pkg/fatturapa"
	"github.com/jhoicas/Ristoranti-api/pkg/logger"
)

// Acciones por línea en la respuesta.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionError   = "error"
)

// ImportUseCase importa una fattura XML. No es atómica: cada línea se confirma por separado
// y los errores por línea se acumulan en la respuesta.
type ImportUseCase struct {
	suppliers repository.SupplierRepository
	imports   repository.InvoiceImportRepository
	txRunner  ImportTxRunner
	parser    InvoiceParser
	fetcher   Fetcher
	archiver  Archiver
	log       *logger.Logger
	now       func() time.Time
}

// NewImportUseCase construye el caso de uso. fetcher y archiver pueden ser nil.
func NewImportUseCase(
	suppliers repository.SupplierRepository,
	imports repository.InvoiceImportRepository,
	txRunner ImportTxRunner,
	parser InvoiceParser,
	fetcher Fetcher,
	archiver Archiver,
	log *logger.Logger,
) *ImportUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportUseCase{
		suppliers: suppliers,
		imports:   imports,
		txRunner:  txRunner,
		parser:    parser,
		fetcher:   fetcher,
		archiver:  archiver,
		log:       log.Component("fatture"),
		now:       time.Now,
	}
}

// Import ejecuta la importación completa.
//
// Errores:
//   - domain.ErrInvalidInput  sin xml_content ni file_url, o sin identificativo del proveedor.
//   - domain.ErrMalformedXML  el XML no se puede interpretar.
//   - otros                   fallos de infraestructura (descarga, base de datos).
func (uc *ImportUseCase) Import(ctx context.Context, in dto.ImportFatturaRequest) (*dto.ImportFatturaResponse, error) {
	raw, err := uc.content(ctx, in)
	if err != nil {
		return nil, err
	}
	doc, err := uc.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	fileName := in.FileName
	if fileName == "" && in.FileURL != "" {
		fileName = path.Base(in.FileURL)
	}
	log := uc.log.WithStr("file", fileName).WithStr("invoice", doc.Number)

	resp := &dto.ImportFatturaResponse{
		Digest: doc.Digest,
		Invoice: dto.ImportInvoiceDTO{
			Type:        doc.DocumentType,
			TypeLabel:   fatturapa.DocumentTypes[doc.DocumentType],
			Number:      doc.Number,
			TotalAmount: doc.Total,
		},
		Results: []dto.ImportLineResultDTO{},
		Errors:  []string{},
	}
	if !doc.Date.IsZero() {
		resp.Invoice.Date = doc.Date.Format("2006-01-02")
	}

	if doc.Digest != "" {
		prev, err := uc.imports.GetByDigest(ctx, doc.Digest)
		if err != nil {
			return nil, fmt.Errorf("fatture: buscar importación previa: %w", err)
		}
		resp.Duplicate = prev != nil
	}

	supplier, created, err := uc.upsertSupplier(ctx, doc.Cedente)
	if err != nil {
		return nil, err
	}
	resp.Supplier = dto.ImportSupplierDTO{ID: supplier.ID, Name: supplier.Name, VATNumber: supplier.VATNumber, Created: created}

	recordPrices := !fatturapa.IsCreditNote(doc.DocumentType)
	resp.Summary.LinesTotal = len(doc.Lines)
	for _, line := range doc.Lines {
		if line.Natura != "" && fatturapa.NaturaCodes[line.Natura] == "" {
			log.Warn().Int("line", line.Number).Str("natura", line.Natura).Msg("natura IVA fuera de catálogo")
		}
		res, err := uc.importLine(ctx, supplier.ID, doc, line, recordPrices)
		if err != nil {
			msg := fmt.Sprintf("línea %d (%s): %v", line.Number, line.Description, err)
			resp.Errors = append(resp.Errors, msg)
			resp.Summary.Errors++
			failed := lineDTO(line)
			failed.Action = ActionError
			failed.Error = err.Error()
			resp.Results = append(resp.Results, failed)
			log.Warn().Err(err).Int("line", line.Number).Msg("línea no importada")
			continue
		}
		switch res.Action {
		case ActionCreated:
			resp.Summary.ProductsCreated++
		case ActionUpdated:
			resp.Summary.ProductsUpdated++
		}
		if res.priceRecorded {
			resp.Summary.PricesRecorded++
		}
		resp.Results = append(resp.Results, res.ImportLineResultDTO)
	}
	resp.Success = resp.Summary.LinesTotal == 0 || resp.Summary.Errors < resp.Summary.LinesTotal

	if !resp.Duplicate {
		if err := uc.record(ctx, fileName, in.FileURL, raw, supplier.ID, doc, resp.Summary); err != nil {
			log.Error().Err(err).Msg("no se pudo registrar la importación")
			resp.Errors = append(resp.Errors, err.Error())
		}
	}

	log.Info().
		Str("supplier_id", supplier.ID).
		Bool("supplier_created", created).
		Bool("duplicate", resp.Duplicate).
		Int("lines", resp.Summary.LinesTotal).
		Int("products_created", resp.Summary.ProductsCreated).
		Int("products_updated", resp.Summary.ProductsUpdated).
		Int("prices_recorded", resp.Summary.PricesRecorded).
		Int("errors", resp.Summary.Errors).
		Msg("fattura importada")
	return resp, nil
}

func (uc *ImportUseCase) content(ctx context.Context, in dto.ImportFatturaRequest) ([]byte, error) {
	if strings.TrimSpace(in.XMLContent) != "" {
		return []byte(in.XMLContent), nil
	}
	if in.FileURL == "" {
		return nil, fmt.Errorf("%w: se requiere xml_content o file_url", domain.ErrInvalidInput)
	}
	if uc.fetcher == nil {
		return nil, fmt.Errorf("%w: descarga por file_url no disponible", domain.ErrInvalidInput)
	}
	raw, err := uc.fetcher.Fetch(ctx, in.FileURL)
	if err != nil {
		return nil, fmt.Errorf("fatture: descargar %s: %w", in.FileURL, err)
	}
	return raw, nil
}

// upsertSupplier busca el proveedor por partita IVA (o codice fiscale si falta) y lo crea o actualiza.
func (uc *ImportUseCase) upsertSupplier(ctx context.Context, c Cedente) (*entity.Supplier, bool, error) {
	vat := fatturapa.NormalizeVAT(c.VATNumber)
	if vat == "" {
		vat = fatturapa.NormalizeVAT(c.TaxCode)
	}
	if vat == "" {
		return nil, false, fmt.Errorf("%w: CedentePrestatore sin IdFiscaleIVA ni CodiceFiscale", domain.ErrInvalidInput)
	}
	if (c.VATCountry == "" || c.VATCountry == "IT") && c.VATNumber != "" {
		if err := fatturapa.ValidatePartitaIVA(vat); err != nil {
			uc.log.Warn().Str("vat", vat).Err(err).Msg("partita IVA no válida, se importa igualmente")
		}
	}
	name := strings.TrimSpace(c.Name)
	if name == "" {
		name = vat
	}
	country := c.Country
	if country == "" {
		country = c.VATCountry
	}

	now := uc.now()
	existing, err := uc.suppliers.GetByVAT(ctx, vat)
	if err != nil {
		return nil, false, fmt.Errorf("fatture: buscar proveedor: %w", err)
	}
	if existing == nil {
		s := &entity.Supplier{
			ID:        uuid.New().String(),
			Name:      name,
			VATNumber: vat,
			TaxCode:   c.TaxCode,
			Address:   c.Address,
			City:      c.City,
			Country:   country,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := uc.suppliers.Create(ctx, s)
		if err == nil {
			return s, true, nil
		}
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, false, fmt.Errorf("fatture: crear proveedor: %w", err)
		}
		// otra importación lo creó en paralelo
		existing, err = uc.suppliers.GetByVAT(ctx, vat)
		if err != nil {
			return nil, false, fmt.Errorf("fatture: releer proveedor: %w", err)
		}
		if existing == nil {
			return nil, false, fmt.Errorf("%w: proveedor %s duplicado pero no encontrado", domain.ErrConflict, vat)
		}
	}
	existing.Name = name
	if c.TaxCode != "" {
		existing.TaxCode = c.TaxCode
	}
	if c.Address != "" {
		existing.Address = c.Address
	}
	if c.City != "" {
		existing.City = c.City
	}
	if country != "" {
		existing.Country = country
	}
	existing.UpdatedAt = now
	if err := uc.suppliers.Update(ctx, existing); err != nil {
		return nil, false, fmt.Errorf("fatture: actualizar proveedor: %w", err)
	}
	return existing, false, nil
}

type lineResult struct {
	dto.ImportLineResultDTO
	priceRecorded bool
}

// importLine crea o actualiza la materia prima y registra el precio, en su propia transacción.
func (uc *ImportUseCase) importLine(ctx context.Context, supplierID string, doc *Document, line Line, recordPrice bool) (*lineResult, error) {
	desc := strings.TrimSpace(line.Description)
	if desc == "" {
		return nil, fmt.Errorf("%w: línea sin descripción", domain.ErrInvalidInput)
	}
	code := strings.TrimSpace(line.Code)
	res := &lineResult{ImportLineResultDTO: lineDTO(line)}
	now := uc.now()

	err := uc.txRunner.RunImportLine(ctx, func(products repository.ProductRepository, prices repository.PriceHistoryRepository) error {
		var p *entity.Product
		var err error
		if code != "" {
			if p, err = products.GetBySupplierAndCode(ctx, supplierID, code); err != nil {
				return err
			}
		}
		if p == nil {
			if p, err = products.GetBySupplierAndName(ctx, supplierID, desc); err != nil {
				return err
			}
		}
		if p == nil {
			p = &entity.Product{
				ID:          uuid.New().String(),
				SupplierID:  supplierID,
				Code:        code,
				Name:        desc,
				UnitMeasure: fatturapa.NormalizeUnit(line.Unit),
				LastPrice:   decimal.Zero,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if recordPrice {
				p.LastPrice = line.UnitPrice
			}
			if err := products.Create(ctx, p); err != nil {
				return err
			}
			res.Action = ActionCreated
		} else {
			if recordPrice {
				p.LastPrice = line.UnitPrice
			}
			if p.Code == "" && code != "" {
				p.Code = code
			}
			if u := fatturapa.NormalizeUnit(line.Unit); u != "" {
				p.UnitMeasure = u
			}
			p.UpdatedAt = now
			if err := products.Update(ctx, p); err != nil {
				return err
			}
			res.Action = ActionUpdated
		}
		res.ProductID = p.ID

		if !recordPrice {
			return nil
		}
		qty := line.Quantity
		if qty.IsZero() {
			qty = decimal.NewFromInt(1)
		}
		inserted, err := prices.Create(ctx, &entity.PriceHistory{
			ID:            uuid.New().String(),
			ProductID:     p.ID,
			SupplierID:    supplierID,
			Price:         line.UnitPrice,
			Quantity:      qty,
			InvoiceNumber: doc.Number,
			InvoiceDate:   doc.Date,
			CreatedAt:     now,
		})
		if err != nil {
			return err
		}
		res.priceRecorded = inserted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// record archiva el XML (si hay Archiver) y guarda el registro de la importación.
func (uc *ImportUseCase) record(ctx context.Context, fileName, fileURL string, raw []byte, supplierID string, doc *Document, sum dto.ImportSummaryDTO) error {
	if uc.archiver != nil {
		key := archiveKey(doc, fileName)
		url, err := uc.archiver.Archive(ctx, key, raw)
		if err != nil {
			return fmt.Errorf("fatture: archivar XML: %w", err)
		}
		if url != "" {
			fileURL = url
		}
	}
	imp := &entity.InvoiceImport{
		ID:            uuid.New().String(),
		FileName:      fileName,
		FileURL:       fileURL,
		Digest:        doc.Digest,
		SupplierID:    supplierID,
		InvoiceNumber: doc.Number,
		InvoiceDate:   doc.Date,
		LinesTotal:    sum.LinesTotal,
		LinesFailed:   sum.Errors,
		CreatedAt:     uc.now(),
	}
	if err := uc.imports.Create(ctx, imp); err != nil {
		return fmt.Errorf("fatture: registrar importación: %w", err)
	}
	return nil
}

// archiveKey fatture/<año>/<partita IVA>/<digest>.xml (el nombre original no es único entre proveedores).
func archiveKey(doc *Document, fileName string) string {
	year := "sin-fecha"
	if !doc.Date.IsZero() {
		year = doc.Date.Format("2006")
	}
	name := doc.Digest
	if name == "" {
		name = strings.TrimSuffix(path.Base(fileName), path.Ext(fileName))
	}
	if name == "" || name == "." {
		name = uuid.New().String()
	}
	vat := fatturapa.NormalizeVAT(doc.Cedente.VATNumber)
	if vat == "" {
		vat = "sconosciuto"
	}
	return fmt.Sprintf("fatture/%s/%s/%s.xml", year, vat, name)
}

// lineDTO datos fiscales de la línea tal como vienen en el XML.
func lineDTO(line Line) dto.ImportLineResultDTO {
	return dto.ImportLineResultDTO{
		Line:        line.Number,
		CodeType:    strings.TrimSpace(line.CodeType),
		Code:        strings.TrimSpace(line.Code),
		Description: strings.TrimSpace(line.Description),
		UnitPrice:   line.UnitPrice,
		TotalPrice:  line.TotalPrice,
		VATRate:     line.VATRate,
		Natura:      line.Natura,
		NaturaLabel: fatturapa.NaturaCodes[line.Natura],
	}
}
