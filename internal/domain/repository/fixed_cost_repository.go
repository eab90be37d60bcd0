package repository

import (
	"context"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// FixedCostRepository puerto de persistencia para los costos fijos.
type FixedCostRepository interface {
	Create(ctx context.Context, cost *entity.FixedCost) error
	GetByID(ctx context.Context, id string) (*entity.FixedCost, error)
	Update(ctx context.Context, cost *entity.FixedCost) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, activeOnly bool) ([]entity.FixedCost, error)
}
