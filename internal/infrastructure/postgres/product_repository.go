package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.PriceHistoryRepository = (*PriceHistoryRepo)(nil)
)

// ProductRepo materie prime por proveedor (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para materie prime. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, supplier_id, code, name, unit_measure, last_price, created_at, updated_at`

func scanProduct(row interface{ Scan(...any) error }) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.SupplierID, &p.Code, &p.Name, &p.UnitMeasure, &p.LastPrice, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste una materia prima. (supplier_id, code) es único cuando code no está vacío.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.SupplierID, p.Code, p.Name, p.UnitMeasure, p.LastPrice, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetBySupplierAndCode busca por CodiceValore del proveedor.
func (r *ProductRepo) GetBySupplierAndCode(ctx context.Context, supplierID, code string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE supplier_id = $1 AND code = $2 AND code <> ''`
	p, err := scanProduct(r.q.QueryRow(ctx, query, supplierID, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by code: %w", err)
	}
	return p, nil
}

// GetBySupplierAndName busca por descripción sin distinguir mayúsculas.
func (r *ProductRepo) GetBySupplierAndName(ctx context.Context, supplierID, name string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE supplier_id = $1 AND lower(name) = lower($2) ORDER BY created_at LIMIT 1`
	p, err := scanProduct(r.q.QueryRow(ctx, query, supplierID, name))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by name: %w", err)
	}
	return p, nil
}

// Update actualiza código, unidad y último precio.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, unit_measure = $4, last_price = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, p.ID, p.Code, p.Name, p.UnitMeasure, p.LastPrice, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListBySupplier materie prime del proveedor por nombre.
func (r *ProductRepo) ListBySupplier(ctx context.Context, supplierID string) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products WHERE supplier_id = $1 ORDER BY name`, supplierID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	list := []*entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// PriceHistoryRepo histórico de precios; único por (product_id, invoice_number, invoice_date).
type PriceHistoryRepo struct {
	q Querier
}

// NewPriceHistoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPriceHistoryRepository(q Querier) *PriceHistoryRepo {
	return &PriceHistoryRepo{q: q}
}

// Create inserta el precio; false si la línea ya estaba registrada.
func (r *PriceHistoryRepo) Create(ctx context.Context, ph *entity.PriceHistory) (bool, error) {
	query := `
		INSERT INTO price_history (id, product_id, supplier_id, price, quantity, invoice_number, invoice_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (product_id, invoice_number, invoice_date) DO NOTHING`
	tag, err := r.q.Exec(ctx, query,
		ph.ID, ph.ProductID, ph.SupplierID, ph.Price, ph.Quantity, ph.InvoiceNumber, ph.InvoiceDate, ph.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("insert price history: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByProduct precios de una materia prima, más recientes primero.
func (r *PriceHistoryRepo) ListByProduct(ctx context.Context, productID string) ([]entity.PriceHistory, error) {
	query := `
		SELECT id, product_id, supplier_id, price, quantity, invoice_number, invoice_date, created_at
		FROM price_history WHERE product_id = $1
		ORDER BY invoice_date DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	defer rows.Close()
	out := []entity.PriceHistory{}
	for rows.Next() {
		var ph entity.PriceHistory
		if err := rows.Scan(&ph.ID, &ph.ProductID, &ph.SupplierID, &ph.Price, &ph.Quantity, &ph.InvoiceNumber, &ph.InvoiceDate, &ph.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		out = append(out, ph)
	}
	return out, rows.Err()
}
