package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var (
	_ repository.SupplierRepository      = (*SupplierRepo)(nil)
	_ repository.InvoiceImportRepository = (*InvoiceImportRepo)(nil)
)

// SupplierRepo fornitori sobre PostgreSQL; vat_number es único.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, name, vat_number, tax_code, address, city, country, created_at, updated_at`

func scanSupplier(row interface{ Scan(...any) error }) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.VATNumber, &s.TaxCode, &s.Address, &s.City, &s.Country, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create persiste un proveedor. Devuelve domain.ErrDuplicate si la partita IVA ya existe.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	query := `
		INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query, s.ID, s.Name, s.VATNumber, s.TaxCode, s.Address, s.City, s.Country, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert supplier: %w", err)
	}
	return nil
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// GetByVAT obtiene un proveedor por partita IVA normalizada.
func (r *SupplierRepo) GetByVAT(ctx context.Context, vat string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM suppliers WHERE vat_number = $1`, vat))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier by vat: %w", err)
	}
	return s, nil
}

// Update actualiza los datos anagráficos del proveedor.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	query := `
		UPDATE suppliers SET name = $2, tax_code = $3, address = $4, city = $5, country = $6, updated_at = $7
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, s.ID, s.Name, s.TaxCode, s.Address, s.City, s.Country, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update supplier: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List proveedores por nombre con paginación.
func (r *SupplierRepo) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	list := []*entity.Supplier{}
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// InvoiceImportRepo registro de XML importados.
type InvoiceImportRepo struct {
	q Querier
}

// NewInvoiceImportRepository construye el adaptador del registro de importaciones.
func NewInvoiceImportRepository(q Querier) *InvoiceImportRepo {
	return &InvoiceImportRepo{q: q}
}

const importColumns = `id, file_name, file_url, digest, supplier_id, invoice_number, invoice_date, lines_total, lines_failed, created_at`

func scanImport(row interface{ Scan(...any) error }) (entity.InvoiceImport, error) {
	var i entity.InvoiceImport
	err := row.Scan(&i.ID, &i.FileName, &i.FileURL, &i.Digest, &i.SupplierID, &i.InvoiceNumber, &i.InvoiceDate,
		&i.LinesTotal, &i.LinesFailed, &i.CreatedAt)
	return i, err
}

// Create registra una importación. Un digest repetido devuelve domain.ErrDuplicate.
func (r *InvoiceImportRepo) Create(ctx context.Context, imp *entity.InvoiceImport) error {
	query := `
		INSERT INTO invoice_imports (` + importColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		imp.ID, imp.FileName, imp.FileURL, imp.Digest, imp.SupplierID, imp.InvoiceNumber, imp.InvoiceDate,
		imp.LinesTotal, imp.LinesFailed, imp.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice import: %w", err)
	}
	return nil
}

// GetByDigest busca una importación previa del mismo XML.
func (r *InvoiceImportRepo) GetByDigest(ctx context.Context, digest string) (*entity.InvoiceImport, error) {
	i, err := scanImport(r.q.QueryRow(ctx, `SELECT `+importColumns+` FROM invoice_imports WHERE digest = $1`, digest))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get invoice import: %w", err)
	}
	return &i, nil
}

// List importaciones más recientes primero.
func (r *InvoiceImportRepo) List(ctx context.Context, limit, offset int) ([]entity.InvoiceImport, error) {
	rows, err := r.q.Query(ctx, `SELECT `+importColumns+` FROM invoice_imports ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoice imports: %w", err)
	}
	defer rows.Close()
	out := []entity.InvoiceImport{}
	for rows.Next() {
		i, err := scanImport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan invoice import: %w", err)
		}
		out = append(out, i)
	}
	return out, rows.Err()
}
