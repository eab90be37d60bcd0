package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var _ repository.RevenueRepository = (*RevenueRepo)(nil)

// RevenueRepo registros iPratico sobre PostgreSQL. Los importes por canal van en una columna jsonb
// ({"sourceApp_glovo": "120.50", ...}).
type RevenueRepo struct {
	q Querier
}

// NewRevenueRepository construye el adaptador de persistencia para ventas.
func NewRevenueRepository(q Querier) *RevenueRepo {
	return &RevenueRepo{q: q}
}

const revenueColumns = `id, store_id, order_date, total_revenue, total_orders, discount_total, channels, created_at, updated_at`

func scanRevenue(row interface{ Scan(...any) error }) (entity.RevenueRecord, error) {
	var rec entity.RevenueRecord
	err := row.Scan(&rec.ID, &rec.StoreID, &rec.OrderDate, &rec.TotalRevenue, &rec.TotalOrders,
		&rec.DiscountTotal, &rec.Channels, &rec.CreatedAt, &rec.UpdatedAt)
	return rec, err
}

// Create persiste un registro de ventas.
func (r *RevenueRepo) Create(ctx context.Context, rec *entity.RevenueRecord) error {
	query := `
		INSERT INTO revenue_records (` + revenueColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.StoreID, rec.OrderDate, rec.TotalRevenue, rec.TotalOrders, rec.DiscountTotal,
		rec.Channels, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert revenue record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *RevenueRepo) GetByID(ctx context.Context, id string) (*entity.RevenueRecord, error) {
	rec, err := scanRevenue(r.q.QueryRow(ctx, `SELECT `+revenueColumns+` FROM revenue_records WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get revenue record: %w", err)
	}
	return &rec, nil
}

// Update actualiza un registro de ventas.
func (r *RevenueRepo) Update(ctx context.Context, rec *entity.RevenueRecord) error {
	query := `
		UPDATE revenue_records SET store_id = $2, order_date = $3, total_revenue = $4, total_orders = $5,
			discount_total = $6, channels = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		rec.ID, rec.StoreID, rec.OrderDate, rec.TotalRevenue, rec.TotalOrders, rec.DiscountTotal, rec.Channels, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update revenue record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un registro de ventas.
func (r *RevenueRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM revenue_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete revenue record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List registros en [From, To] (ambos inclusive) de los locales indicados, por fecha.
func (r *RevenueRepo) List(ctx context.Context, f repository.RevenueFilter) ([]entity.RevenueRecord, error) {
	query := `
		SELECT ` + revenueColumns + `
		FROM revenue_records
		WHERE ($1::text[] IS NULL OR store_id::text = ANY($1::text[]))
		  AND ($2::timestamptz IS NULL OR order_date >= $2::timestamptz)
		  AND ($3::timestamptz IS NULL OR order_date <= $3::timestamptz)
		ORDER BY order_date`
	rows, err := r.q.Query(ctx, query, nullIDs(f.StoreIDs), nullTime(f.From), nullTime(f.To))
	if err != nil {
		return nil, fmt.Errorf("list revenue records: %w", err)
	}
	defer rows.Close()
	out := []entity.RevenueRecord{}
	for rows.Next() {
		rec, err := scanRevenue(rows)
		if err != nil {
			return nil, fmt.Errorf("scan revenue record: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
