package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// FixedCostUseCase CRUD de costos fijos.
type FixedCostUseCase struct {
	repo repository.FixedCostRepository
}

// NewFixedCostUseCase construye el caso de uso.
func NewFixedCostUseCase(repo repository.FixedCostRepository) *FixedCostUseCase {
	return &FixedCostUseCase{repo: repo}
}

// Create registra un costo fijo.
func (uc *FixedCostUseCase) Create(ctx context.Context, in dto.FixedCostRequest) (*dto.FixedCostResponse, error) {
	if err := validateFixedCost(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.FixedCost{
		ID:             uuid.New().String(),
		Name:           in.Name,
		Category:       in.Category,
		MonthlyAmount:  in.MonthlyAmount,
		AssignmentMode: in.AssignmentMode,
		StoreIDs:       in.StoreIDs,
		Active:         in.Active == nil || *in.Active,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toFixedCostResponse(c), nil
}

// GetByID obtiene un costo fijo.
func (uc *FixedCostUseCase) GetByID(ctx context.Context, id string) (*dto.FixedCostResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return toFixedCostResponse(c), nil
}

// List devuelve los costos fijos.
func (uc *FixedCostUseCase) List(ctx context.Context, activeOnly bool) ([]dto.FixedCostResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FixedCostResponse, 0, len(list))
	for i := range list {
		out = append(out, *toFixedCostResponse(&list[i]))
	}
	return out, nil
}

// Update reemplaza los datos del costo fijo.
func (uc *FixedCostUseCase) Update(ctx context.Context, id string, in dto.FixedCostRequest) (*dto.FixedCostResponse, error) {
	if err := validateFixedCost(in); err != nil {
		return nil, err
	}
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	c.Name = in.Name
	c.Category = in.Category
	c.MonthlyAmount = in.MonthlyAmount
	c.AssignmentMode = in.AssignmentMode
	c.StoreIDs = in.StoreIDs
	if in.Active != nil {
		c.Active = *in.Active
	}
	c.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toFixedCostResponse(c), nil
}

// Delete elimina un costo fijo.
func (uc *FixedCostUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func validateFixedCost(in dto.FixedCostRequest) error {
	if in.MonthlyAmount.IsNegative() {
		return fmt.Errorf("%w: monthly_amount negativo", domain.ErrInvalidInput)
	}
	switch in.AssignmentMode {
	case entity.AssignSingolo:
		if len(in.StoreIDs) != 1 {
			return fmt.Errorf("%w: singolo requiere exactamente un locale", domain.ErrInvalidInput)
		}
	case entity.AssignMultipli:
		if len(in.StoreIDs) == 0 {
			return fmt.Errorf("%w: multipli requiere al menos un locale", domain.ErrInvalidInput)
		}
	case entity.AssignTutti:
	default:
		return fmt.Errorf("%w: assignment_mode %q", domain.ErrInvalidInput, in.AssignmentMode)
	}
	return nil
}

func toFixedCostResponse(c *entity.FixedCost) *dto.FixedCostResponse {
	ids := c.StoreIDs
	if ids == nil {
		ids = []string{}
	}
	return &dto.FixedCostResponse{
		ID:             c.ID,
		Name:           c.Name,
		Category:       c.Category,
		MonthlyAmount:  c.MonthlyAmount,
		AssignmentMode: c.AssignmentMode,
		StoreIDs:       ids,
		Active:         c.Active,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}
