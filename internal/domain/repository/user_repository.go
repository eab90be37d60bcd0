package repository

import (
	"context"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User/dipendente.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// List devuelve los usuarios de un locale; storeID vacío = todos.
	List(ctx context.Context, storeID string) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
}
