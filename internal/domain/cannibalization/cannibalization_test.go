package cannibalization_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain/cannibalization"
	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
)

var opening = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func rev(store string, daysFromOpening int, amount int64) entity.RevenueRecord {
	return entity.RevenueRecord{
		StoreID:      store,
		OrderDate:    opening.AddDate(0, 0, daysFromOpening),
		TotalRevenue: decimal.NewFromInt(amount),
	}
}

func TestAnalyze_CaidaDelVeintePorCiento(t *testing.T) {
	records := []entity.RevenueRecord{
		rev("centro", -2, 1000), rev("centro", -1, 1000),
		rev("centro", 0, 800), rev("centro", 1, 800),
		rev("centro", -40, 99999), // fuera de la ventana
		rev("nuovo", 0, 600), rev("nuovo", 1, 400),
	}
	res := cannibalization.Analyze("nuovo", opening, 30, []string{"centro", "nuovo"}, records)

	require.Len(t, res.Stores, 1, "el nuevo locale no se compara consigo mismo")
	c := res.Stores[0]
	assert.Equal(t, "centro", c.StoreID)
	assert.True(t, decimal.NewFromInt(1000).Equal(c.AvgBefore))
	assert.True(t, decimal.NewFromInt(800).Equal(c.AvgAfter))
	assert.True(t, decimal.NewFromInt(-200).Equal(c.Delta))
	assert.True(t, decimal.NewFromInt(-20).Equal(c.DeltaPct), c.DeltaPct.String())
	assert.Equal(t, 2, c.DaysBefore)
	assert.True(t, decimal.NewFromInt(500).Equal(res.NewStoreAvgAfter))
	assert.True(t, decimal.NewFromInt(-20).Equal(res.TotalDeltaPct))
}

func TestAnalyze_SumaRegistrosDelMismoDia(t *testing.T) {
	records := []entity.RevenueRecord{rev("a", -1, 300), rev("a", -1, 200), rev("a", 3, 500)}
	res := cannibalization.Analyze("n", opening, 7, []string{"a"}, records)
	assert.True(t, decimal.NewFromInt(500).Equal(res.Stores[0].AvgBefore))
	assert.True(t, res.Stores[0].Delta.IsZero())
}

func TestAnalyze_SinDatosPrevios(t *testing.T) {
	res := cannibalization.Analyze("n", opening, 0, []string{"a"}, []entity.RevenueRecord{rev("a", 1, 500)})
	assert.Equal(t, cannibalization.DefaultWindowDays, res.WindowDays)
	assert.True(t, res.Stores[0].DeltaPct.IsZero(), "sin base previa el porcentaje es 0")
}

func TestWindows(t *testing.T) {
	before, after := cannibalization.Windows(opening, 30)
	assert.Equal(t, 30, before.Days())
	assert.Equal(t, 30, after.Days())
	assert.False(t, before.Contains(opening))
	assert.True(t, after.Contains(opening))
}
