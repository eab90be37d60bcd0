package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// BankTransactionFilter criterios de búsqueda de movimientos. Campos vacíos no filtran.
type BankTransactionFilter struct {
	StoreID           string
	Account           string
	Category          string
	From              time.Time
	To                time.Time
	OnlyUncategorized bool
	OnlyUnreconciled  bool
}

// BankTransactionRepository puerto de persistencia para movimientos bancarios.
type BankTransactionRepository interface {
	Create(ctx context.Context, tx *entity.BankTransaction) error
	GetByID(ctx context.Context, id string) (*entity.BankTransaction, error)
	// UpdateClassification guarda categoría, regla, locale y estado de conciliación.
	UpdateClassification(ctx context.Context, tx *entity.BankTransaction) error
	List(ctx context.Context, f BankTransactionFilter) ([]entity.BankTransaction, error)
}

// RuleRepository puerto de persistencia para reglas de categorización.
type RuleRepository interface {
	Create(ctx context.Context, r *entity.Rule) error
	GetByID(ctx context.Context, id string) (*entity.Rule, error)
	Update(ctx context.Context, r *entity.Rule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.Rule, error)
}
