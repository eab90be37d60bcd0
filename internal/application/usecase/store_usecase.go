package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// StoreUseCase aplica reglas de negocio para los locales.
type StoreUseCase struct {
	repo repository.StoreRepository
}

// NewStoreUseCase construye el caso de uso con el puerto de persistencia.
func NewStoreUseCase(repo repository.StoreRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo}
}

// Create registra un nuevo locale activo.
func (uc *StoreUseCase) Create(ctx context.Context, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	opening, err := parseOptionalDate(in.OpeningDate)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Store{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Address:     in.Address,
		City:        in.City,
		OpeningDate: opening,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.Name == "" {
		return nil, fmt.Errorf("%w: nombre requerido", domain.ErrInvalidInput)
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// GetByID obtiene un locale por ID.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(s), nil
}

// List devuelve los locales, opcionalmente solo los activos.
func (uc *StoreUseCase) List(ctx context.Context, activeOnly bool) ([]dto.StoreResponse, error) {
	list, err := uc.repo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

// Update aplica cambios parciales.
func (uc *StoreUseCase) Update(ctx context.Context, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.City != nil {
		s.City = *in.City
	}
	if in.OpeningDate != nil {
		opening, err := parseOptionalDate(*in.OpeningDate)
		if err != nil {
			return nil, err
		}
		s.OpeningDate = opening
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toStoreResponse(s), nil
}

// Delete elimina un locale.
func (uc *StoreUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// ActiveIDs devuelve los IDs de los locales activos.
func ActiveIDs(stores []*entity.Store) []string {
	ids := make([]string, 0, len(stores))
	for _, s := range stores {
		if s.Active {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

func parseOptionalDate(s string) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, ok := period.ParseDate(s)
	if !ok {
		return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, s)
	}
	t = period.StartOfDay(t)
	return &t, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	out := &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
	if s.OpeningDate != nil {
		out.OpeningDate = s.OpeningDate.Format("2006-01-02")
	}
	return out
}
