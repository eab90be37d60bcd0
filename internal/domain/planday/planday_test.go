package planday_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain/entity"
	"github.com/jhoicas/Ristoranti-api/internal/domain/planday"
)

var day = time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)

func shift(id, emp string, date time.Time, start, end string) entity.Shift {
	return entity.Shift{ID: id, StoreID: "s1", EmployeeID: emp, Date: date, StartTime: start, EndTime: end}
}

func TestCheckOverlap_Solapados(t *testing.T) {
	existing := []entity.Shift{shift("a", "mario", day, "09:00", "13:00")}
	overlap, conflicts := planday.CheckOverlap(shift("", "mario", day, "12:00", "17:00"), existing)
	assert.True(t, overlap)
	require.Len(t, conflicts, 1)
	assert.Equal(t, "a", conflicts[0].ID)
}

func TestCheckOverlap_Contiguos(t *testing.T) {
	existing := []entity.Shift{shift("a", "mario", day, "09:00", "12:00")}
	overlap, conflicts := planday.CheckOverlap(shift("", "mario", day, "12:00", "17:00"), existing)
	assert.False(t, overlap)
	assert.Empty(t, conflicts)
}

func TestCheckOverlap_IgnoraOtrosDipendentiYDias(t *testing.T) {
	existing := []entity.Shift{
		shift("a", "luigi", day, "09:00", "13:00"),
		shift("b", "mario", day.AddDate(0, 0, 1), "09:00", "13:00"),
		shift("c", "mario", day, "xx", "13:00"),
	}
	overlap, _ := planday.CheckOverlap(shift("", "mario", day, "10:00", "11:00"), existing)
	assert.False(t, overlap)
}

func TestCheckOverlap_IgnoraElMismoTurno(t *testing.T) {
	existing := []entity.Shift{shift("a", "mario", day, "09:00", "13:00")}
	overlap, _ := planday.CheckOverlap(shift("a", "mario", day, "10:00", "14:00"), existing)
	assert.False(t, overlap, "al editar un turno no debe chocar consigo mismo")
}

func TestCheckOverlap_CruceMedianoche(t *testing.T) {
	existing := []entity.Shift{shift("a", "mario", day, "22:00", "02:00")}
	overlap, _ := planday.CheckOverlap(shift("", "mario", day, "23:30", "23:59"), existing)
	assert.True(t, overlap)
}

func TestParseClock(t *testing.T) {
	m, err := planday.ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, m)

	m, err = planday.ParseClock("24:00")
	require.NoError(t, err)
	assert.Equal(t, 1440, m)

	for _, bad := range []string{"", "9", "25:00", "24:30", "10:75", "ab:cd"} {
		_, err := planday.ParseClock(bad)
		assert.Error(t, err, bad)
	}
	assert.Equal(t, "07:05", planday.FormatClock(425))
}

func TestHours(t *testing.T) {
	shifts := []entity.Shift{
		shift("a", "mario", day, "09:00", "13:30"),
		shift("b", "mario", day.AddDate(0, 0, 1), "18:00", "00:00"),
		shift("c", "luigi", day, "10:00", "12:00"),
	}
	byEmp := planday.HoursByEmployee(shifts)
	assert.True(t, decimal.NewFromFloat(10.5).Equal(byEmp["mario"]), byEmp["mario"].String())
	assert.True(t, decimal.NewFromInt(2).Equal(byEmp["luigi"]))
	assert.True(t, decimal.NewFromFloat(12.5).Equal(planday.HoursByStore(shifts)["s1"]))
}

func TestWeekDays(t *testing.T) {
	// 2026-10-22 es jueves
	days := planday.WeekDays(time.Date(2026, 10, 22, 15, 0, 0, 0, time.UTC))
	require.Len(t, days, 7)
	assert.Equal(t, time.Monday, days[0].Weekday())
	assert.Equal(t, 19, days[0].Day())
	assert.Equal(t, time.Sunday, days[6].Weekday())
}
