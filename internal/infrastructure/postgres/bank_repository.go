package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var (
	_ repository.BankTransactionRepository = (*BankTransactionRepo)(nil)
	_ repository.RuleRepository            = (*RuleRepo)(nil)
)

// BankTransactionRepo movimientos bancarios importados.
type BankTransactionRepo struct {
	q Querier
}

// NewBankTransactionRepository construye el adaptador de movimientos bancarios.
func NewBankTransactionRepository(q Querier) *BankTransactionRepo {
	return &BankTransactionRepo{q: q}
}

const bankTxColumns = `id, COALESCE(store_id::text, ''), account, date, amount, description, category,
	COALESCE(rule_id::text, ''), reconciled, batch_id, created_at`

func scanBankTx(row interface{ Scan(...any) error }) (entity.BankTransaction, error) {
	var t entity.BankTransaction
	err := row.Scan(&t.ID, &t.StoreID, &t.Account, &t.Date, &t.Amount, &t.Description, &t.Category,
		&t.RuleID, &t.Reconciled, &t.BatchID, &t.CreatedAt)
	return t, err
}

// Create persiste un movimiento.
func (r *BankTransactionRepo) Create(ctx context.Context, t *entity.BankTransaction) error {
	query := `
		INSERT INTO bank_transactions (id, store_id, account, date, amount, description, category, rule_id, reconciled, batch_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		t.ID, nullIfEmpty(t.StoreID), t.Account, t.Date, t.Amount, t.Description, t.Category,
		nullIfEmpty(t.RuleID), t.Reconciled, t.BatchID, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *BankTransactionRepo) GetByID(ctx context.Context, id string) (*entity.BankTransaction, error) {
	t, err := scanBankTx(r.q.QueryRow(ctx, `SELECT `+bankTxColumns+` FROM bank_transactions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank transaction: %w", err)
	}
	return &t, nil
}

// UpdateClassification guarda categoría, regla, locale y conciliación.
func (r *BankTransactionRepo) UpdateClassification(ctx context.Context, t *entity.BankTransaction) error {
	query := `
		UPDATE bank_transactions SET category = $2, rule_id = $3, store_id = $4, reconciled = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, t.ID, t.Category, nullIfEmpty(t.RuleID), nullIfEmpty(t.StoreID), t.Reconciled)
	if err != nil {
		return fmt.Errorf("update bank transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List movimientos filtrados, por fecha.
func (r *BankTransactionRepo) List(ctx context.Context, f repository.BankTransactionFilter) ([]entity.BankTransaction, error) {
	query := `
		SELECT ` + bankTxColumns + `
		FROM bank_transactions
		WHERE ($1::uuid IS NULL OR store_id = $1::uuid)
		  AND ($2::text IS NULL OR account = $2::text)
		  AND ($3::text IS NULL OR category = $3::text)
		  AND ($4::date IS NULL OR date >= $4::date)
		  AND ($5::date IS NULL OR date <= $5::date)
		  AND (NOT $6 OR category = '')
		  AND (NOT $7 OR NOT reconciled)
		ORDER BY date, created_at`
	rows, err := r.q.Query(ctx, query,
		nullIfEmpty(f.StoreID), nullIfEmpty(f.Account), nullIfEmpty(f.Category),
		nullTime(f.From), nullTime(f.To), f.OnlyUncategorized, f.OnlyUnreconciled,
	)
	if err != nil {
		return nil, fmt.Errorf("list bank transactions: %w", err)
	}
	defer rows.Close()
	out := []entity.BankTransaction{}
	for rows.Next() {
		t, err := scanBankTx(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// RuleRepo reglas de categorización.
type RuleRepo struct {
	q Querier
}

// NewRuleRepository construye el adaptador de reglas bancarias.
func NewRuleRepository(q Querier) *RuleRepo {
	return &RuleRepo{q: q}
}

const ruleColumns = `id, name, pattern, match_type, category, COALESCE(store_id::text, ''), priority, active, created_at, updated_at`

func scanRule(row interface{ Scan(...any) error }) (entity.Rule, error) {
	var ru entity.Rule
	err := row.Scan(&ru.ID, &ru.Name, &ru.Pattern, &ru.MatchType, &ru.Category, &ru.StoreID, &ru.Priority, &ru.Active, &ru.CreatedAt, &ru.UpdatedAt)
	return ru, err
}

// Create persiste una regla.
func (r *RuleRepo) Create(ctx context.Context, ru *entity.Rule) error {
	query := `
		INSERT INTO bank_rules (id, name, pattern, match_type, category, store_id, priority, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		ru.ID, ru.Name, ru.Pattern, ru.MatchType, ru.Category, nullIfEmpty(ru.StoreID), ru.Priority, ru.Active, ru.CreatedAt, ru.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert bank rule: %w", err)
	}
	return nil
}

// GetByID obtiene una regla por ID.
func (r *RuleRepo) GetByID(ctx context.Context, id string) (*entity.Rule, error) {
	ru, err := scanRule(r.q.QueryRow(ctx, `SELECT `+ruleColumns+` FROM bank_rules WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bank rule: %w", err)
	}
	return &ru, nil
}

// Update actualiza una regla.
func (r *RuleRepo) Update(ctx context.Context, ru *entity.Rule) error {
	query := `
		UPDATE bank_rules SET name = $2, pattern = $3, match_type = $4, category = $5, store_id = $6,
			priority = $7, active = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		ru.ID, ru.Name, ru.Pattern, ru.MatchType, ru.Category, nullIfEmpty(ru.StoreID), ru.Priority, ru.Active, ru.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update bank rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una regla; los movimientos que la referencian quedan con rule_id NULL.
func (r *RuleRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM bank_rules WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete bank rule: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List reglas por prioridad ascendente.
func (r *RuleRepo) List(ctx context.Context) ([]entity.Rule, error) {
	rows, err := r.q.Query(ctx, `SELECT `+ruleColumns+` FROM bank_rules ORDER BY priority, created_at`)
	if err != nil {
		return nil, fmt.Errorf("list bank rules: %w", err)
	}
	defer rows.Close()
	out := []entity.Rule{}
	for rows.Next() {
		ru, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank rule: %w", err)
		}
		out = append(out, ru)
	}
	return out, rows.Err()
}
