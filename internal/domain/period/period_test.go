package period_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ristoranti-api/internal/domain/period"
)

type rec struct {
	id   string
	date string
}

var now = time.Date(2026, 10, 19, 15, 30, 0, 0, time.UTC)

func TestPreset30_IncluyeBordes(t *testing.T) {
	w := period.Preset(30, now)
	records := []rec{
		{"borde-inicio", "2026-09-19"},
		{"fuera-antes", "2026-09-18"},
		{"hoy", "2026-10-19"},
		{"mañana", "2026-10-20"},
		{"rfc3339", "2026-10-01T10:00:00Z"},
		{"basura", "no-es-fecha"},
		{"vacio", ""},
	}
	got := period.Filter(records, w, func(r rec) string { return r.date })

	ids := make([]string, 0, len(got))
	for _, r := range got {
		ids = append(ids, r.id)
	}
	assert.Equal(t, []string{"borde-inicio", "hoy", "rfc3339"}, ids)
}

func TestFilter_FechasInvalidasSiempreExcluidas(t *testing.T) {
	w := period.Preset(365, now)
	got := period.Filter([]rec{{"a", "31/31/2026"}, {"b", "2026-13-01"}}, w, func(r rec) string { return r.date })
	assert.Empty(t, got)
}

func TestParseRange(t *testing.T) {
	w, err := period.ParseRange("", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, period.Preset(30, now), w)

	w, err = period.ParseRange("7", "", "", now)
	require.NoError(t, err)
	assert.Equal(t, 8, w.Days(), "7 días atrás más hoy")

	w, err = period.ParseRange("custom", "2026-10-01", "2026-10-10", now)
	require.NoError(t, err)
	assert.Equal(t, 10, w.Days())
	assert.True(t, w.Contains(time.Date(2026, 10, 10, 23, 0, 0, 0, time.UTC)))

	_, err = period.ParseRange("15", "", "", now)
	assert.ErrorIs(t, err, period.ErrUnknownRange)

	_, err = period.ParseRange("custom", "2026-10-10", "2026-10-01", now)
	assert.ErrorIs(t, err, period.ErrReversedBounds)

	_, err = period.ParseRange("custom", "ayer", "", now)
	assert.ErrorIs(t, err, period.ErrInvalidBounds)
}

func TestFilterTime_DescartaFechaCero(t *testing.T) {
	w := period.Preset(7, now)
	dates := []time.Time{{}, now.AddDate(0, 0, -1), now.AddDate(0, 0, -10)}
	got := period.FilterTime(dates, w, func(t time.Time) time.Time { return t })
	assert.Len(t, got, 1)
}

func TestParseDate_Formatos(t *testing.T) {
	for _, s := range []string{"2026-10-19", "2026-10-19T08:00:00Z", "2026-10-19 08:00:00", "19/10/2026"} {
		d, ok := period.ParseDate(s)
		assert.True(t, ok, s)
		assert.Equal(t, 19, d.Day(), s)
	}
}
