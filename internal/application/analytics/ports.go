package analytics

import (
	"context"
	"time"
)

// SummaryCache puerto de caché para resúmenes ya calculados (Redis en producción).
// Get devuelve false si la clave no existe o expiró.
type SummaryCache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}
