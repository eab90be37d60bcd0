package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
)

// periodFromQuery lee range/start_date/end_date/store_ids del selector de período.
func periodFromQuery(c *fiber.Ctx, now time.Time) (period.Window, []string, error) {
	var q dto.PeriodQuery
	if err := c.QueryParser(&q); err != nil {
		return period.Window{}, nil, fmt.Errorf("%w: parámetros de período", domain.ErrInvalidInput)
	}
	w, err := period.ParseRange(q.Range, q.StartDate, q.EndDate, now)
	if err != nil {
		return period.Window{}, nil, err
	}
	return w, splitIDs(q.StoreIDs...), nil
}

// splitIDs acepta tanto ?store_ids=a&store_ids=b como ?store_ids=a,b.
func splitIDs(values ...string) []string {
	var out []string
	for _, v := range values {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				out = append(out, id)
			}
		}
	}
	return out
}

// dateQuery fecha opcional en query; vacía devuelve time.Time{}.
func dateQuery(c *fiber.Ctx, key string) (time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return time.Time{}, nil
	}
	t, ok := period.ParseDate(raw)
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %s=%q no es una fecha válida", domain.ErrInvalidInput, key, raw)
	}
	return t, nil
}

// endOfDayQuery como dateQuery pero lleva la fecha al final del día (rango inclusivo).
func endOfDayQuery(c *fiber.Ctx, key string) (time.Time, error) {
	t, err := dateQuery(c, key)
	if err != nil || t.IsZero() {
		return t, err
	}
	return period.EndOfDay(t), nil
}
