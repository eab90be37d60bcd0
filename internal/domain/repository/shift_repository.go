package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// ShiftFilter criterios de búsqueda de turnos. Campos vacíos no filtran.
type ShiftFilter struct {
	StoreIDs   []string
	EmployeeID string
	From       time.Time
	To         time.Time
}

// ShiftRepository define el puerto de persistencia para los turnos Planday.
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	Update(ctx context.Context, shift *entity.Shift) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f ShiftFilter) ([]entity.Shift, error)
}
