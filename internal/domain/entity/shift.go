package entity

import "time"

// Shift es un turno Planday: locale, día, franja horaria, ruolo y dipendente asignado.
// StartTime y EndTime se guardan como "HH:MM" tal como los ingresa el calendario.
type Shift struct {
	ID         string
	StoreID    string
	EmployeeID string
	Date       time.Time // solo fecha (00:00 UTC)
	StartTime  string
	EndTime    string
	Role       string // ruolo: cassiere, pizzaiolo, rider...
	Notes      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DateKey fecha del turno en formato 2006-01-02.
func (s Shift) DateKey() string {
	return s.Date.Format("2006-01-02")
}
