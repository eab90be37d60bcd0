// Package costs reparte los costos fijos mensuales entre los locales,
// con prorrateo por días transcurridos cuando el mes consultado es el actual.
package costs

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

// DaysInMonth número de días del mes de t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

// ProRata fracción del mes a imputar:
//   - mes actual: min(hoy.día, díasDelMes) / díasDelMes
//   - mes pasado: 1
//   - mes futuro: 0
func ProRata(month, today time.Time) decimal.Decimal {
	mk := month.Year()*12 + int(month.Month())
	tk := today.Year()*12 + int(today.Month())
	switch {
	case mk < tk:
		return decimal.NewFromInt(1)
	case mk > tk:
		return decimal.Zero
	}
	dim := DaysInMonth(month)
	elapsed := today.Day()
	if elapsed > dim {
		elapsed = dim
	}
	return decimal.NewFromInt(int64(elapsed)).Div(decimal.NewFromInt(int64(dim)))
}

// Allocate importe imputado a cada locale para un costo fijo en el mes dado.
//   - singolo:  todo al primer locale seleccionado
//   - multipli: el importe completo replicado en cada locale seleccionado
//   - tutti:    el importe dividido entre los locales activos
func Allocate(c entity.FixedCost, month, today time.Time, activeStoreIDs []string) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	if !c.Active {
		return out
	}
	base := c.MonthlyAmount.Mul(ProRata(month, today))
	switch c.AssignmentMode {
	case entity.AssignSingolo:
		if len(c.StoreIDs) > 0 && c.StoreIDs[0] != "" {
			out[c.StoreIDs[0]] = base
		}
	case entity.AssignMultipli:
		for _, id := range unique(c.StoreIDs) {
			out[id] = base
		}
	case entity.AssignTutti:
		stores := unique(activeStoreIDs)
		if len(stores) == 0 {
			return out
		}
		share := base.Div(decimal.NewFromInt(int64(len(stores))))
		for _, id := range stores {
			out[id] = share
		}
	}
	return out
}

// Line costo imputado a un locale.
type Line struct {
	CostID   string
	Name     string
	Category string
	Amount   decimal.Decimal
}

// StoreAllocation total de costos fijos de un locale con su detalle.
type StoreAllocation struct {
	StoreID string
	Total   decimal.Decimal
	Lines   []Line
}

// Summarize aplica Allocate a todos los costos y agrupa por locale (orden por StoreID).
func Summarize(fixed []entity.FixedCost, month, today time.Time, activeStoreIDs []string) []StoreAllocation {
	byStore := make(map[string]*StoreAllocation)
	for _, c := range fixed {
		for storeID, amount := range Allocate(c, month, today, activeStoreIDs) {
			sa, ok := byStore[storeID]
			if !ok {
				sa = &StoreAllocation{StoreID: storeID}
				byStore[storeID] = sa
			}
			sa.Total = sa.Total.Add(amount)
			sa.Lines = append(sa.Lines, Line{CostID: c.ID, Name: c.Name, Category: c.Category, Amount: amount})
		}
	}
	out := make([]StoreAllocation, 0, len(byStore))
	for _, sa := range byStore {
		out = append(out, *sa)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StoreID < out[j].StoreID })
	return out
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
