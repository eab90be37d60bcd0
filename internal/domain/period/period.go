// Package period calcula ventanas de fechas [desde, hasta] para los filtros de los dashboards
// (últimos 7/30/90/365 días o rango personalizado) y filtra registros por fecha.
package period

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Presets rangos rápidos ofrecidos en los filtros.
var Presets = []int{7, 30, 90, 365}

// DefaultPreset rango usado cuando el cliente no envía ninguno.
const DefaultPreset = 30

// RangeCustom valor del selector para rango con fechas explícitas.
const RangeCustom = "custom"

var (
	ErrUnknownRange   = errors.New("period: rango desconocido")
	ErrInvalidBounds  = errors.New("period: fechas de inicio/fin inválidas")
	ErrReversedBounds = errors.New("period: la fecha de fin es anterior a la de inicio")
)

// Window intervalo cerrado [Start, End]. Ambos extremos incluidos.
type Window struct {
	Start time.Time
	End   time.Time
}

// Preset ventana de los últimos `days` días: desde el inicio del día now-days hasta el fin de hoy.
func Preset(days int, now time.Time) Window {
	return Window{
		Start: StartOfDay(now).AddDate(0, 0, -days),
		End:   EndOfDay(now),
	}
}

// Custom ventana explícita, extendida a días completos.
func Custom(start, end time.Time) Window {
	return Window{Start: StartOfDay(start), End: EndOfDay(end)}
}

// ParseRange construye la ventana a partir de los parámetros del selector de la UI:
// rangeValue = "7" | "30" | "90" | "365" | "custom" (vacío = 30).
func ParseRange(rangeValue, start, end string, now time.Time) (Window, error) {
	rangeValue = strings.TrimSpace(rangeValue)
	if rangeValue == "" {
		rangeValue = strconv.Itoa(DefaultPreset)
	}
	if rangeValue == RangeCustom {
		s, ok := ParseDateIn(start, now.Location())
		e, ok2 := ParseDateIn(end, now.Location())
		if !ok || !ok2 {
			return Window{}, ErrInvalidBounds
		}
		if e.Before(s) {
			return Window{}, ErrReversedBounds
		}
		return Custom(s, e), nil
	}
	days, err := strconv.Atoi(rangeValue)
	if err != nil || !isPreset(days) {
		return Window{}, fmt.Errorf("%w: %q", ErrUnknownRange, rangeValue)
	}
	return Preset(days, now), nil
}

func isPreset(days int) bool {
	for _, p := range Presets {
		if p == days {
			return true
		}
	}
	return false
}

// Contains indica si t cae dentro de la ventana (extremos incluidos).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Days número de días calendario cubiertos por la ventana.
func (w Window) Days() int {
	if w.End.Before(w.Start) {
		return 0
	}
	s := StartOfDay(w.Start)
	e := StartOfDay(w.End.In(w.Start.Location()))
	return int(e.Sub(s).Hours()/24+0.5) + 1
}

// String representación legible, ej. "[2026-09-19, 2026-10-19]".
func (w Window) String() string {
	return "[" + w.Start.Format("2006-01-02") + ", " + w.End.Format("2006-01-02") + "]"
}

// StartOfDay 00:00:00 del día de t en su zona horaria.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay 23:59:59.999999999 del día de t.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02/01/2006",
}

// ParseDate interpreta las fechas que llegan en los registros (UTC para formatos sin zona).
func ParseDate(s string) (time.Time, bool) {
	return ParseDateIn(s, time.UTC)
}

// ParseDateIn como ParseDate pero usando loc para formatos sin zona horaria.
func ParseDateIn(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Filter conserva los elementos cuya fecha (texto) es válida y cae en la ventana.
// Las fechas no interpretables se descartan sin error.
func Filter[T any](items []T, w Window, dateOf func(T) string) []T {
	loc := w.Start.Location()
	out := make([]T, 0, len(items))
	for _, it := range items {
		t, ok := ParseDateIn(dateOf(it), loc)
		if ok && w.Contains(t) {
			out = append(out, it)
		}
	}
	return out
}

// FilterTime igual que Filter para registros con fecha tipada; la fecha cero se descarta.
func FilterTime[T any](items []T, w Window, dateOf func(T) time.Time) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		t := dateOf(it)
		if !t.IsZero() && w.Contains(t) {
			out = append(out, it)
		}
	}
	return out
}
