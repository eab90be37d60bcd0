package entity

import "time"

// Store representa un punto vendita (locale) de la cadena.
// OpeningDate alimenta el análisis de cannibalizzazione.
type Store struct {
	ID          string
	Name        string
	Address     string
	City        string
	OpeningDate *time.Time
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
