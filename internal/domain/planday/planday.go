// Package planday contiene la lógica compartida del calendario de turnos:
// franjas horarias, solapamientos por dipendente y horas trabajadas.
package planday

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

const minutesPerDay = 24 * 60

// ParseClock convierte "HH:MM" (o "HH:MM:SS") en minutos desde medianoche. "24:00" = 1440.
func ParseClock(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, fmt.Errorf("planday: hora inválida %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("planday: hora inválida %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("planday: minutos inválidos %q", s)
	}
	if h < 0 || h > 24 || m < 0 || m > 59 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("planday: hora fuera de rango %q", s)
	}
	return h*60 + m, nil
}

// FormatClock inverso de ParseClock.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Span devuelve [inicio, fin) en minutos. Si fin <= inicio el turno cruza la medianoche.
func Span(s entity.Shift) (start, end int, err error) {
	start, err = ParseClock(s.StartTime)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(s.EndTime)
	if err != nil {
		return 0, 0, err
	}
	if end <= start {
		end += minutesPerDay
	}
	return start, end, nil
}

// CheckOverlap compara el turno candidato con los turnos del mismo dipendente en el mismo día.
// Hay solapamiento si nuevoInicio < otroFin && nuevoFin > otroInicio (franjas semiabiertas).
// Es solo un aviso: el caller decide si guardar igualmente.
func CheckOverlap(candidate entity.Shift, existing []entity.Shift) (bool, []entity.Shift) {
	newStart, newEnd, err := Span(candidate)
	if err != nil {
		return false, nil
	}
	day := candidate.DateKey()
	var conflicts []entity.Shift
	for _, other := range existing {
		if other.EmployeeID != candidate.EmployeeID || other.DateKey() != day {
			continue
		}
		if candidate.ID != "" && other.ID == candidate.ID {
			continue
		}
		otherStart, otherEnd, err := Span(other)
		if err != nil {
			continue
		}
		if newStart < otherEnd && newEnd > otherStart {
			conflicts = append(conflicts, other)
		}
	}
	return len(conflicts) > 0, conflicts
}

// Duration horas del turno (0 si las horas no son válidas).
func Duration(s entity.Shift) decimal.Decimal {
	start, end, err := Span(s)
	if err != nil {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(end - start)).Div(decimal.NewFromInt(60))
}

// HoursByEmployee suma las horas de los turnos por dipendente.
func HoursByEmployee(shifts []entity.Shift) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, s := range shifts {
		out[s.EmployeeID] = out[s.EmployeeID].Add(Duration(s))
	}
	return out
}

// HoursByStore suma las horas de los turnos por locale.
func HoursByStore(shifts []entity.Shift) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, s := range shifts {
		out[s.StoreID] = out[s.StoreID].Add(Duration(s))
	}
	return out
}

// WeekStart lunes 00:00 de la semana de t.
func WeekStart(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// WeekDays los siete días (lunes a domingo) de la semana de t.
func WeekDays(t time.Time) []time.Time {
	start := WeekStart(t)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}
