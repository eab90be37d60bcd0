package planday

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ScheduleRow fila del cuadro semanal: un dipendente con sus turnos por día (lunes a domingo).
type ScheduleRow struct {
	Employee string
	Days     [7][]string // "09:00-15:00 cassiere"
	Hours    decimal.Decimal
}

// WeeklySchedule datos del cuadro de turnos semanal de un locale.
type WeeklySchedule struct {
	StoreName  string
	WeekStart  time.Time
	Days       []time.Time
	Rows       []ScheduleRow
	TotalHours decimal.Decimal
}

// SchedulePDFGenerator puerto de salida para generar el PDF del cuadro semanal.
type SchedulePDFGenerator interface {
	GenerateSchedulePDF(ctx context.Context, schedule *WeeklySchedule) ([]byte, error)
}
