package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ristoranti-api/internal/application/auth"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios y dipendenti.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// List devuelve los usuarios de un locale (vacío = todos).
func (uc *UserUseCase) List(ctx context.Context, storeID string) ([]dto.UserResponse, error) {
	users, err := uc.repo.List(ctx, storeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *auth.ToUserResponse(u))
	}
	return out, nil
}

// Update modifica nombre, locale, ruolo, costo orario o estado.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.StoreID != nil {
		user.StoreID = *in.StoreID
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.HourlyCost != nil {
		if in.HourlyCost.IsNegative() {
			return nil, fmt.Errorf("%w: hourly_cost negativo", domain.ErrInvalidInput)
		}
		user.HourlyCost = *in.HourlyCost
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return auth.ToUserResponse(user), nil
}

// Delete elimina un usuario.
func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
