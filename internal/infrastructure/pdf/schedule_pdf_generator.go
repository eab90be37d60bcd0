// Package pdf genera el cuadro semanal de turnos Planday en PDF con Maroto v2.
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────┐
//	│  HEADER: Locale + semana                    │  Ore totali         │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  TABLA: Dipendente | Lun | Mar | ... | Dom | Ore                 │
//	│  ──────────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación                                     │
//	└──────────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Ristoranti-api/internal/application/planday"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 29, Blue: 24}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 245, Green: 240, Blue: 235}
)

// Rejilla: 4 columnas para el dipendente, 2 por día, 2 para las horas.
const (
	gridSize     = 20
	employeeCols = 4
	dayCols      = 2
	hoursCols    = 2
	lineHeight   = 3.6
)

var dayNames = [7]string{"Lun", "Mar", "Mer", "Gio", "Ven", "Sab", "Dom"}

// ── Generator ─────────────────────────────────────────────────────────────────

var _ planday.SchedulePDFGenerator = (*MarotoSchedulePDFGenerator)(nil)

// MarotoSchedulePDFGenerator implementa planday.SchedulePDFGenerator usando Maroto v2.
type MarotoSchedulePDFGenerator struct {
	now func() time.Time
}

// NewMarotoSchedulePDFGenerator construye el generador.
func NewMarotoSchedulePDFGenerator() *MarotoSchedulePDFGenerator {
	return &MarotoSchedulePDFGenerator{now: time.Now}
}

// GenerateSchedulePDF genera el PDF del cuadro semanal y devuelve sus bytes.
func (g *MarotoSchedulePDFGenerator) GenerateSchedulePDF(_ context.Context, s *planday.WeeklySchedule) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("pdf: cuadro de turnos vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithMaxGridSize(gridSize).
		WithLeftMargin(8).WithRightMargin(8).
		WithTopMargin(8).WithBottomMargin(8).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Turni "+s.StoreName, true).
		WithAuthor("Ristoranti", true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow(s))
	m.AddRows(scheduleRows(s)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(g.now()))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar cuadro de turnos: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(s *planday.WeeklySchedule) core.Row {
	weekEnd := s.WeekStart.AddDate(0, 0, 6)
	return row.New(16).Add(
		col.New(14).Add(
			text.New(s.StoreName, props.Text{
				Style: fontstyle.Bold, Size: 14, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Turni dal %s al %s", s.WeekStart.Format("02/01/2006"), weekEnd.Format("02/01/2006")), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("ORE TOTALI", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(s.TotalHours.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
		),
	)
}

func tableHeaderRow(s *planday.WeeklySchedule) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	cols := []core.Col{h("Dipendente", employeeCols, align.Left)}
	for i := 0; i < 7; i++ {
		label := dayNames[i]
		if i < len(s.Days) {
			label += " " + s.Days[i].Format("02/01")
		}
		cols = append(cols, h(label, dayCols, align.Center))
	}
	cols = append(cols, h("Ore", hoursCols, align.Right))
	return row.New(8).Add(cols...)
}

// scheduleRows una fila por dipendente; la altura crece con el día que más turnos tiene.
func scheduleRows(s *planday.WeeklySchedule) []core.Row {
	if len(s.Rows) == 0 {
		return []core.Row{row.New(10).Add(col.New(gridSize).Add(
			text.New("Nessun turno pianificato per questa settimana.", props.Text{
				Size: 9, Align: align.Center, Color: colorGray, Top: 3,
			}),
		))}
	}
	out := make([]core.Row, 0, len(s.Rows))
	for i, r := range s.Rows {
		maxLines := 1
		for _, day := range r.Days {
			if len(day) > maxLines {
				maxLines = len(day)
			}
		}
		cols := []core.Col{col.New(employeeCols).Add(text.New(r.Employee, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1, Left: 1,
		}))}
		for _, day := range r.Days {
			c := col.New(dayCols)
			for j, shift := range day {
				c.Add(text.New(shift, props.Text{
					Size: 6.5, Align: align.Center, Top: 1 + float64(j)*lineHeight,
				}))
			}
			cols = append(cols, c)
		}
		cols = append(cols, col.New(hoursCols).Add(text.New(r.Hours.StringFixed(2), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})))

		rw := row.New(2 + float64(maxLines)*lineHeight).Add(cols...)
		if i%2 == 1 {
			rw.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		out = append(out, rw)
	}
	return out
}

func footerRow(now time.Time) core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New("Generato il "+now.Format("02/01/2006 15:04"), props.Text{
			Size: 6.5, Color: colorGray, Top: 2, Align: align.Right,
		}),
	))
}
