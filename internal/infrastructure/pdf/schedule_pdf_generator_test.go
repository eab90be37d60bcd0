package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
)

func TestGenerateSchedulePDF(t *testing.T) {
	monday := time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)
	days := make([]time.Time, 7)
	for i := range days {
		days[i] = monday.AddDate(0, 0, i)
	}
	var giulia planday.ScheduleRow
	giulia.Employee = "Giulia Esposito"
	giulia.Days[0] = []string{"09:00-15:00 cassiere"}
	giulia.Days[4] = []string{"11:00-14:30 sala", "18:00-23:00 sala"}
	giulia.Hours = decimal.RequireFromString("14.5")

	s := &planday.WeeklySchedule{
		StoreName:  "Pizzeria Navigli",
		WeekStart:  monday,
		Days:       days,
		Rows:       []planday.ScheduleRow{giulia, {Employee: "Marco Ferri", Hours: decimal.Zero}},
		TotalHours: decimal.RequireFromString("14.5"),
	}

	out, err := NewMarotoSchedulePDFGenerator().GenerateSchedulePDF(context.Background(), s)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSchedulePDF_EmptyWeek(t *testing.T) {
	s := &planday.WeeklySchedule{StoreName: "Osteria Brera", WeekStart: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)}
	out, err := NewMarotoSchedulePDFGenerator().GenerateSchedulePDF(context.Background(), s)
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = NewMarotoSchedulePDFGenerator().GenerateSchedulePDF(context.Background(), nil)
	assert.Error(t, err)
}
