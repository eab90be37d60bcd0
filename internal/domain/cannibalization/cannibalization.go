// Package cannibalization mide la caída de ventas de los locales existentes tras la apertura
// de un nuevo locale cercano, comparando la media diaria antes y después de la apertura.
package cannibalization

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
)

// DefaultWindowDays días de cada lado de la apertura si no se indica otro valor.
const DefaultWindowDays = 30

var hundred = decimal.NewFromInt(100)

// StoreImpact comparación antes/después para un locale existente.
type StoreImpact struct {
	StoreID    string
	AvgBefore  decimal.Decimal
	AvgAfter   decimal.Decimal
	Delta      decimal.Decimal
	DeltaPct   decimal.Decimal
	DaysBefore int // días con ventas en la ventana previa
	DaysAfter  int
}

// Result análisis completo.
type Result struct {
	NewStoreID       string
	OpeningDate      time.Time
	WindowDays       int
	Before           period.Window
	After            period.Window
	NewStoreAvgAfter decimal.Decimal
	Stores           []StoreImpact
	TotalAvgBefore   decimal.Decimal
	TotalAvgAfter    decimal.Decimal
	TotalDelta       decimal.Decimal
	TotalDeltaPct    decimal.Decimal
}

// Windows ventanas [apertura-N, apertura-1] y [apertura, apertura+N-1].
func Windows(opening time.Time, windowDays int) (before, after period.Window) {
	open := period.StartOfDay(opening)
	before = period.Custom(open.AddDate(0, 0, -windowDays), open.AddDate(0, 0, -1))
	after = period.Custom(open, open.AddDate(0, 0, windowDays-1))
	return before, after
}

// Analyze calcula el impacto para cada locale existente. La media diaria se calcula sobre
// los días que tienen registros (varios registros del mismo día se suman).
func Analyze(newStoreID string, opening time.Time, windowDays int, existing []string, records []entity.RevenueRecord) Result {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}
	before, after := Windows(opening, windowDays)
	res := Result{
		NewStoreID:  newStoreID,
		OpeningDate: period.StartOfDay(opening),
		WindowDays:  windowDays,
		Before:      before,
		After:       after,
	}

	byStore := make(map[string][]entity.RevenueRecord)
	for _, r := range records {
		byStore[r.StoreID] = append(byStore[r.StoreID], r)
	}

	res.NewStoreAvgAfter, _ = dailyAverage(byStore[newStoreID], after)

	for _, storeID := range existing {
		if storeID == newStoreID {
			continue
		}
		avgBefore, daysBefore := dailyAverage(byStore[storeID], before)
		avgAfter, daysAfter := dailyAverage(byStore[storeID], after)
		delta := avgAfter.Sub(avgBefore)
		res.Stores = append(res.Stores, StoreImpact{
			StoreID:    storeID,
			AvgBefore:  avgBefore.Round(2),
			AvgAfter:   avgAfter.Round(2),
			Delta:      delta.Round(2),
			DeltaPct:   pct(delta, avgBefore),
			DaysBefore: daysBefore,
			DaysAfter:  daysAfter,
		})
		res.TotalAvgBefore = res.TotalAvgBefore.Add(avgBefore)
		res.TotalAvgAfter = res.TotalAvgAfter.Add(avgAfter)
	}
	res.TotalDelta = res.TotalAvgAfter.Sub(res.TotalAvgBefore).Round(2)
	res.TotalDeltaPct = pct(res.TotalAvgAfter.Sub(res.TotalAvgBefore), res.TotalAvgBefore)
	res.TotalAvgBefore = res.TotalAvgBefore.Round(2)
	res.TotalAvgAfter = res.TotalAvgAfter.Round(2)
	res.NewStoreAvgAfter = res.NewStoreAvgAfter.Round(2)
	return res
}

func dailyAverage(records []entity.RevenueRecord, w period.Window) (decimal.Decimal, int) {
	perDay := make(map[string]decimal.Decimal)
	for _, r := range period.FilterTime(records, w, func(r entity.RevenueRecord) time.Time { return r.OrderDate }) {
		key := r.OrderDate.Format("2006-01-02")
		perDay[key] = perDay[key].Add(r.TotalRevenue)
	}
	if len(perDay) == 0 {
		return decimal.Zero, 0
	}
	sum := decimal.Zero
	for _, v := range perDay {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(perDay)))), len(perDay)
}

func pct(delta, base decimal.Decimal) decimal.Decimal {
	if base.IsZero() {
		return decimal.Zero
	}
	return delta.Div(base).Mul(hundred).Round(2)
}
