package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var (
	_ repository.FixedCostRepository      = (*FixedCostRepo)(nil)
	_ repository.CommissionRuleRepository = (*CommissionRuleRepo)(nil)
)

// FixedCostRepo costos fijos; store_ids es un text[] sin FK (un locale borrado simplemente deja de recibir imputación).
type FixedCostRepo struct {
	q Querier
}

// NewFixedCostRepository construye el adaptador de persistencia para costos fijos.
func NewFixedCostRepository(q Querier) *FixedCostRepo {
	return &FixedCostRepo{q: q}
}

const fixedCostColumns = `id, name, category, monthly_amount, assignment_mode, store_ids, active, created_at, updated_at`

func scanFixedCost(row interface{ Scan(...any) error }) (entity.FixedCost, error) {
	var c entity.FixedCost
	err := row.Scan(&c.ID, &c.Name, &c.Category, &c.MonthlyAmount, &c.AssignmentMode, &c.StoreIDs, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func storeIDsParam(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

// Create persiste un costo fijo.
func (r *FixedCostRepo) Create(ctx context.Context, c *entity.FixedCost) error {
	query := `
		INSERT INTO fixed_costs (` + fixedCostColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Category, c.MonthlyAmount, c.AssignmentMode, storeIDsParam(c.StoreIDs), c.Active, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert fixed cost: %w", err)
	}
	return nil
}

// GetByID obtiene un costo fijo por ID.
func (r *FixedCostRepo) GetByID(ctx context.Context, id string) (*entity.FixedCost, error) {
	c, err := scanFixedCost(r.q.QueryRow(ctx, `SELECT `+fixedCostColumns+` FROM fixed_costs WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get fixed cost: %w", err)
	}
	return &c, nil
}

// Update actualiza un costo fijo.
func (r *FixedCostRepo) Update(ctx context.Context, c *entity.FixedCost) error {
	query := `
		UPDATE fixed_costs SET name = $2, category = $3, monthly_amount = $4, assignment_mode = $5,
			store_ids = $6, active = $7, updated_at = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		c.ID, c.Name, c.Category, c.MonthlyAmount, c.AssignmentMode, storeIDsParam(c.StoreIDs), c.Active, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update fixed cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un costo fijo.
func (r *FixedCostRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM fixed_costs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete fixed cost: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List costos fijos por nombre.
func (r *FixedCostRepo) List(ctx context.Context, activeOnly bool) ([]entity.FixedCost, error) {
	rows, err := r.q.Query(ctx, `SELECT `+fixedCostColumns+` FROM fixed_costs WHERE ($1 = false OR active) ORDER BY name`, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("list fixed costs: %w", err)
	}
	defer rows.Close()
	out := []entity.FixedCost{}
	for rows.Next() {
		c, err := scanFixedCost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan fixed cost: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CommissionRuleRepo porcentajes de comisión por app de delivery.
type CommissionRuleRepo struct {
	q Querier
}

// NewCommissionRuleRepository construye el adaptador para las reglas de comisión.
func NewCommissionRuleRepository(q Querier) *CommissionRuleRepo {
	return &CommissionRuleRepo{q: q}
}

// Create persiste una regla. app_delivery es único.
func (r *CommissionRuleRepo) Create(ctx context.Context, rule *entity.CommissionRule) error {
	query := `
		INSERT INTO commission_rules (id, app_delivery, percentuale, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, rule.ID, rule.AppDelivery, rule.Percentuale, rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert commission rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *CommissionRuleRepo) GetByID(ctx context.Context, id string) (*entity.CommissionRule, error) {
	var c entity.CommissionRule
	err := r.q.QueryRow(ctx,
		`SELECT id, app_delivery, percentuale, created_at, updated_at FROM commission_rules WHERE id = $1`, id,
	).Scan(&c.ID, &c.AppDelivery, &c.Percentuale, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get commission rule: %w", err)
	}
	return &c, nil
}

// Update actualiza una regla.
func (r *CommissionRuleRepo) Update(ctx context.Context, rule *entity.CommissionRule) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE commission_rules SET app_delivery = $2, percentuale = $3, updated_at = $4 WHERE id = $1`,
		rule.ID, rule.AppDelivery, rule.Percentuale, rule.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update commission rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una regla.
func (r *CommissionRuleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM commission_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete commission rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List todas las reglas por nombre de app.
func (r *CommissionRuleRepo) List(ctx context.Context) ([]entity.CommissionRule, error) {
	rows, err := r.q.Query(ctx, `SELECT id, app_delivery, percentuale, created_at, updated_at FROM commission_rules ORDER BY app_delivery`)
	if err != nil {
		return nil, fmt.Errorf("list commission rules: %w", err)
	}
	defer rows.Close()
	out := []entity.CommissionRule{}
	for rows.Next() {
		var c entity.CommissionRule
		if err := rows.Scan(&c.ID, &c.AppDelivery, &c.Percentuale, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan commission rule: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
