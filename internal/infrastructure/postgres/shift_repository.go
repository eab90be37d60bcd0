package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo turnos Planday sobre PostgreSQL. start_time/end_time se guardan como texto "HH:MM".
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de persistencia para turnos.
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, store_id, employee_id, date, start_time, end_time, role, notes, created_at, updated_at`

func scanShift(row interface{ Scan(...any) error }) (entity.Shift, error) {
	var s entity.Shift
	err := row.Scan(&s.ID, &s.StoreID, &s.EmployeeID, &s.Date, &s.StartTime, &s.EndTime, &s.Role, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

// Create persiste un turno.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	query := `
		INSERT INTO shifts (` + shiftColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.StoreID, s.EmployeeID, s.Date, s.StartTime, s.EndTime, s.Role, s.Notes, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shift: %w", err)
	}
	return nil
}

// GetByID obtiene un turno por ID.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	s, err := scanShift(r.q.QueryRow(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	return &s, nil
}

// Update actualiza un turno (incluye el cambio de día o de dipendente al moverlo).
func (r *ShiftRepo) Update(ctx context.Context, s *entity.Shift) error {
	query := `
		UPDATE shifts SET store_id = $2, employee_id = $3, date = $4, start_time = $5, end_time = $6,
			role = $7, notes = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.StoreID, s.EmployeeID, s.Date, s.StartTime, s.EndTime, s.Role, s.Notes, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un turno.
func (r *ShiftRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM shifts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List turnos filtrados, ordenados por fecha y hora de inicio. From/To se comparan por día.
func (r *ShiftRepo) List(ctx context.Context, f repository.ShiftFilter) ([]entity.Shift, error) {
	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE ($1::text[] IS NULL OR store_id::text = ANY($1::text[]))
		  AND ($2::uuid IS NULL OR employee_id = $2::uuid)
		  AND ($3::date IS NULL OR date >= $3::date)
		  AND ($4::date IS NULL OR date <= $4::date)
		ORDER BY date, start_time`
	rows, err := r.q.Query(ctx, query, nullIDs(f.StoreIDs), nullIfEmpty(f.EmployeeID), nullTime(f.From), nullTime(f.To))
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	defer rows.Close()
	out := []entity.Shift{}
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
