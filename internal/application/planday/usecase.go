// Package planday contiene los casos de uso del calendario de turnos:
// alta, modificación, arrastre, control de solapamientos, horas por dipendente
// y cuadro semanal en PDF.
package planday

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Ristoranti-api/internal/application/dto"
	"github.com/jhoicas/Ristoranti-api/internal/domain"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
	domplanday "github.com/jhoicas/Ristoranti-api/internal/domain/planday"
	"github.com/jhoicas/Ristoranti-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ShiftUseCase gestiona los turnos. Los solapamientos no bloquean el guardado:
// se devuelven como aviso junto al turno guardado.
type ShiftUseCase struct {
	shiftRepo repository.ShiftRepository
	userRepo  repository.UserRepository
	storeRepo repository.StoreRepository
	pdf       SchedulePDFGenerator
}

// NewShiftUseCase construye el caso de uso.
func NewShiftUseCase(
	shiftRepo repository.ShiftRepository,
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	pdf SchedulePDFGenerator,
) *ShiftUseCase {
	return &ShiftUseCase{shiftRepo: shiftRepo, userRepo: userRepo, storeRepo: storeRepo, pdf: pdf}
}

// Create guarda el turno y devuelve los conflictos detectados.
func (uc *ShiftUseCase) Create(ctx context.Context, in dto.ShiftRequest) (*dto.ShiftSaveResponse, error) {
	shift, err := shiftFromRequest(in)
	if err != nil {
		return nil, err
	}
	conflicts, err := uc.conflicts(ctx, shift)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	shift.ID = uuid.New().String()
	shift.CreatedAt = now
	shift.UpdatedAt = now
	if err := uc.shiftRepo.Create(ctx, &shift); err != nil {
		return nil, fmt.Errorf("planday: crear turno: %w", err)
	}
	return saveResponse(shift, conflicts), nil
}

// Update reemplaza el turno indicado.
func (uc *ShiftUseCase) Update(ctx context.Context, id string, in dto.ShiftRequest) (*dto.ShiftSaveResponse, error) {
	current, err := uc.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrNotFound
	}
	shift, err := shiftFromRequest(in)
	if err != nil {
		return nil, err
	}
	shift.ID = current.ID
	shift.CreatedAt = current.CreatedAt
	shift.UpdatedAt = time.Now()
	conflicts, err := uc.conflicts(ctx, shift)
	if err != nil {
		return nil, err
	}
	if err := uc.shiftRepo.Update(ctx, &shift); err != nil {
		return nil, fmt.Errorf("planday: actualizar turno: %w", err)
	}
	return saveResponse(shift, conflicts), nil
}

// Move reasigna el turno a otro día y/o dipendente (arrastre en el calendario).
func (uc *ShiftUseCase) Move(ctx context.Context, id string, in dto.MoveShiftRequest) (*dto.ShiftSaveResponse, error) {
	shift, err := uc.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift == nil {
		return nil, domain.ErrNotFound
	}
	if in.Date != "" {
		d, ok := period.ParseDate(in.Date)
		if !ok {
			return nil, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
		}
		shift.Date = period.StartOfDay(d)
	}
	if in.EmployeeID != "" {
		shift.EmployeeID = in.EmployeeID
	}
	shift.UpdatedAt = time.Now()
	conflicts, err := uc.conflicts(ctx, *shift)
	if err != nil {
		return nil, err
	}
	if err := uc.shiftRepo.Update(ctx, shift); err != nil {
		return nil, fmt.Errorf("planday: mover turno: %w", err)
	}
	return saveResponse(*shift, conflicts), nil
}

// Check devuelve los conflictos del turno sin guardarlo. id vacío = turno nuevo.
func (uc *ShiftUseCase) Check(ctx context.Context, id string, in dto.ShiftRequest) (*dto.OverlapCheckResponse, error) {
	shift, err := shiftFromRequest(in)
	if err != nil {
		return nil, err
	}
	shift.ID = id
	conflicts, err := uc.conflicts(ctx, shift)
	if err != nil {
		return nil, err
	}
	return &dto.OverlapCheckResponse{Overlap: len(conflicts) > 0, Conflicts: toShiftResponses(conflicts)}, nil
}

// GetByID obtiene un turno.
func (uc *ShiftUseCase) GetByID(ctx context.Context, id string) (*dto.ShiftResponse, error) {
	s, err := uc.shiftRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := toShiftResponse(*s)
	return &out, nil
}

// List devuelve los turnos que cumplen el filtro.
func (uc *ShiftUseCase) List(ctx context.Context, f repository.ShiftFilter) ([]dto.ShiftResponse, error) {
	shifts, err := uc.shiftRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toShiftResponses(shifts), nil
}

// Delete elimina un turno.
func (uc *ShiftUseCase) Delete(ctx context.Context, id string) error {
	return uc.shiftRepo.Delete(ctx, id)
}

// EmployeeHours resume horas y costo por dipendente en el período.
func (uc *ShiftUseCase) EmployeeHours(ctx context.Context, storeIDs []string, w period.Window) (*dto.EmployeeHoursResponse, error) {
	shifts, err := uc.shiftRepo.List(ctx, repository.ShiftFilter{StoreIDs: storeIDs, From: w.Start, To: w.End})
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	counts := make(map[string]int)
	for _, s := range shifts {
		counts[s.EmployeeID]++
	}
	resp := &dto.EmployeeHoursResponse{
		From:       w.Start.Format("2006-01-02"),
		To:         w.End.Format("2006-01-02"),
		Employees:  []dto.EmployeeHoursDTO{},
		TotalHours: decimal.Zero,
		TotalCost:  decimal.Zero,
	}
	for empID, hours := range domplanday.HoursByEmployee(shifts) {
		row := dto.EmployeeHoursDTO{EmployeeID: empID, Shifts: counts[empID], Hours: hours.Round(2), Cost: decimal.Zero}
		if u, ok := byID[empID]; ok {
			row.Name = u.Name
			row.Cost = hours.Mul(u.HourlyCost).Round(2)
		}
		resp.Employees = append(resp.Employees, row)
		resp.TotalHours = resp.TotalHours.Add(hours)
		resp.TotalCost = resp.TotalCost.Add(row.Cost)
	}
	sort.Slice(resp.Employees, func(i, j int) bool { return resp.Employees[i].Name < resp.Employees[j].Name })
	resp.TotalHours = resp.TotalHours.Round(2)
	return resp, nil
}

// WeeklySchedulePDF genera el cuadro de turnos de la semana que contiene day.
func (uc *ShiftUseCase) WeeklySchedulePDF(ctx context.Context, storeID string, day time.Time) ([]byte, string, error) {
	store, err := uc.storeRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, "", err
	}
	if store == nil {
		return nil, "", domain.ErrNotFound
	}
	sched, err := uc.WeeklySchedule(ctx, store, day)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.pdf.GenerateSchedulePDF(ctx, sched)
	if err != nil {
		return nil, "", fmt.Errorf("planday: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("turni_%s_%s.pdf", slug(store.Name), sched.WeekStart.Format("2006-01-02"))
	return pdf, filename, nil
}

// WeeklySchedule arma las filas del cuadro semanal (un dipendente por fila).
func (uc *ShiftUseCase) WeeklySchedule(ctx context.Context, store *entity.Store, day time.Time) (*WeeklySchedule, error) {
	// Las fechas de los turnos son días de calendario en UTC: la semana se arma
	// sobre el mismo día de calendario, sin importar la zona horaria de day.
	days := domplanday.WeekDays(time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC))
	w := period.Custom(days[0], days[6])
	col := make(map[string]int, len(days))
	for i, d := range days {
		col[d.Format("2006-01-02")] = i
	}
	shifts, err := uc.shiftRepo.List(ctx, repository.ShiftFilter{StoreIDs: []string{store.ID}, From: w.Start, To: w.End})
	if err != nil {
		return nil, err
	}
	users, err := uc.userRepo.List(ctx, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}

	rows := make(map[string]*ScheduleRow)
	total := decimal.Zero
	for _, s := range shifts {
		idx, ok := col[s.DateKey()]
		if !ok {
			continue
		}
		row, ok := rows[s.EmployeeID]
		if !ok {
			name := names[s.EmployeeID]
			if name == "" {
				name = s.EmployeeID
			}
			row = &ScheduleRow{Employee: name, Hours: decimal.Zero}
			rows[s.EmployeeID] = row
		}
		label := s.StartTime + "-" + s.EndTime
		if s.Role != "" {
			label += " " + s.Role
		}
		row.Days[idx] = append(row.Days[idx], label)
		h := domplanday.Duration(s)
		row.Hours = row.Hours.Add(h)
		total = total.Add(h)
	}

	out := &WeeklySchedule{StoreName: store.Name, WeekStart: days[0], Days: days, TotalHours: total}
	for _, r := range rows {
		out.Rows = append(out.Rows, *r)
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].Employee < out.Rows[j].Employee })
	return out, nil
}

// conflicts carga los turnos del mismo dipendente ese día y aplica CheckOverlap.
func (uc *ShiftUseCase) conflicts(ctx context.Context, shift entity.Shift) ([]entity.Shift, error) {
	day := period.Custom(shift.Date, shift.Date)
	existing, err := uc.shiftRepo.List(ctx, repository.ShiftFilter{EmployeeID: shift.EmployeeID, From: day.Start, To: day.End})
	if err != nil {
		return nil, fmt.Errorf("planday: turnos existentes: %w", err)
	}
	_, conflicts := domplanday.CheckOverlap(shift, existing)
	return conflicts, nil
}

func shiftFromRequest(in dto.ShiftRequest) (entity.Shift, error) {
	d, ok := period.ParseDate(in.Date)
	if !ok {
		return entity.Shift{}, fmt.Errorf("%w: fecha %q", domain.ErrInvalidInput, in.Date)
	}
	start, err := domplanday.ParseClock(in.StartTime)
	if err != nil {
		return entity.Shift{}, fmt.Errorf("%w: start_time: %v", domain.ErrInvalidInput, err)
	}
	end, err := domplanday.ParseClock(in.EndTime)
	if err != nil {
		return entity.Shift{}, fmt.Errorf("%w: end_time: %v", domain.ErrInvalidInput, err)
	}
	return entity.Shift{
		StoreID:    in.StoreID,
		EmployeeID: in.EmployeeID,
		Date:       period.StartOfDay(d),
		StartTime:  domplanday.FormatClock(start),
		EndTime:    domplanday.FormatClock(end),
		Role:       in.Role,
		Notes:      in.Notes,
	}, nil
}

func saveResponse(s entity.Shift, conflicts []entity.Shift) *dto.ShiftSaveResponse {
	return &dto.ShiftSaveResponse{
		Shift:     toShiftResponse(s),
		Overlap:   len(conflicts) > 0,
		Conflicts: toShiftResponses(conflicts),
	}
}

func toShiftResponses(list []entity.Shift) []dto.ShiftResponse {
	out := make([]dto.ShiftResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toShiftResponse(s))
	}
	return out
}

func toShiftResponse(s entity.Shift) dto.ShiftResponse {
	return dto.ShiftResponse{
		ID:         s.ID,
		StoreID:    s.StoreID,
		EmployeeID: s.EmployeeID,
		Date:       s.DateKey(),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Role:       s.Role,
		Notes:      s.Notes,
		Hours:      domplanday.Duration(s).Round(2),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '_'
	}, s)
}
