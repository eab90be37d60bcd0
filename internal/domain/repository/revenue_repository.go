package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// RevenueFilter criterios de búsqueda de registros iPratico. Campos vacíos no filtran.
type RevenueFilter struct {
	StoreIDs []string
	From     time.Time
	To       time.Time
}

// RevenueRepository puerto de persistencia para los registros de ventas iPratico.
type RevenueRepository interface {
	Create(ctx context.Context, rec *entity.RevenueRecord) error
	GetByID(ctx context.Context, id string) (*entity.RevenueRecord, error)
	Update(ctx context.Context, rec *entity.RevenueRecord) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f RevenueFilter) ([]entity.RevenueRecord, error)
}

// CommissionRuleRepository puerto para las reglas de comisión de las apps de delivery.
type CommissionRuleRepository interface {
	Create(ctx context.Context, rule *entity.CommissionRule) error
	GetByID(ctx context.Context, id string) (*entity.CommissionRule, error)
	Update(ctx context.Context, rule *entity.CommissionRule) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]entity.CommissionRule, error)
}
