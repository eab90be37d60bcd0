package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// storeGetter es el contrato mínimo que necesita el middleware para verificar el locale.
// Lo implementa cualquier repository.StoreRepository.
type storeGetter interface {
	GetByID(ctx context.Context, id string) (*entity.Store, error)
}

// RequireActiveStore bloquea a manager y dipendenti cuyo locale fue desactivado o eliminado.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalStoreID y LocalRole).
//
// Comportamiento:
//   - admin o usuario sin locale: pasa sin consultar.
//   - 403 Forbidden: locale inexistente o inactivo.
//   - 503 Service Unavailable: fallo de infraestructura al consultar la DB.
func RequireActiveStore(stores storeGetter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		storeID := GetStoreID(c)
		if GetRole(c) == entity.RoleAdmin || storeID == "" {
			return c.Next()
		}
		store, err := stores.GetByID(c.Context(), storeID)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "STORE_CHECK_FAILED",
				Message: "no se pudo verificar el locale, intente más tarde",
			})
		}
		if store == nil || !store.Active {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "STORE_INACTIVE",
				Message: "el locale del usuario no está activo",
			})
		}
		return c.Next()
	}
}
