package costs_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain/costs"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

var (
	september = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	sept15    = time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func TestProRata_MesActualMitad(t *testing.T) {
	pr := costs.ProRata(september, sept15)
	assert.True(t, d("0.5").Equal(pr), pr.String())

	c := entity.FixedCost{ID: "affitto", MonthlyAmount: d("1000"), AssignmentMode: entity.AssignSingolo, StoreIDs: []string{"s1"}, Active: true}
	alloc := costs.Allocate(c, september, sept15, nil)
	assert.True(t, d("500").Equal(alloc["s1"]), alloc["s1"].String())
}

func TestProRata_MesPasadoCompleto(t *testing.T) {
	c := entity.FixedCost{MonthlyAmount: d("1000"), AssignmentMode: entity.AssignSingolo, StoreIDs: []string{"s1"}, Active: true}
	alloc := costs.Allocate(c, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), sept15, nil)
	assert.True(t, d("1000").Equal(alloc["s1"]))
}

func TestProRata_MesFuturoCero(t *testing.T) {
	assert.True(t, costs.ProRata(time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), sept15).IsZero())
}

func TestAllocate_Modos(t *testing.T) {
	past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	active := []string{"s1", "s2", "s3", "s4"}

	tutti := entity.FixedCost{MonthlyAmount: d("1200"), AssignmentMode: entity.AssignTutti, Active: true}
	got := costs.Allocate(tutti, past, sept15, active)
	require.Len(t, got, 4)
	for _, id := range active {
		assert.True(t, d("300").Equal(got[id]), id)
	}

	multipli := entity.FixedCost{MonthlyAmount: d("200"), AssignmentMode: entity.AssignMultipli, StoreIDs: []string{"s1", "s3", "s1"}, Active: true}
	got = costs.Allocate(multipli, past, sept15, active)
	require.Len(t, got, 2)
	assert.True(t, d("200").Equal(got["s1"]))
	assert.True(t, d("200").Equal(got["s3"]))

	inactive := entity.FixedCost{MonthlyAmount: d("200"), AssignmentMode: entity.AssignTutti}
	assert.Empty(t, costs.Allocate(inactive, past, sept15, active))

	assert.Empty(t, costs.Allocate(tutti, past, sept15, nil), "sin locali activos no hay reparto")
}

func TestSummarize(t *testing.T) {
	past := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	fixed := []entity.FixedCost{
		{ID: "a", Name: "Affitto", MonthlyAmount: d("1000"), AssignmentMode: entity.AssignSingolo, StoreIDs: []string{"s2"}, Active: true},
		{ID: "b", Name: "Software", MonthlyAmount: d("100"), AssignmentMode: entity.AssignTutti, Active: true},
	}
	out := costs.Summarize(fixed, past, sept15, []string{"s1", "s2"})
	require.Len(t, out, 2)
	assert.Equal(t, "s1", out[0].StoreID)
	assert.True(t, d("50").Equal(out[0].Total))
	assert.True(t, d("1050").Equal(out[1].Total))
	assert.Len(t, out[1].Lines, 2)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, costs.DaysInMonth(time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 29, costs.DaysInMonth(time.Date(2028, 2, 10, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 31, costs.DaysInMonth(time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)))
}
