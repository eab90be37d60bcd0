package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleDipendente = "dipendente"
)

// User representa un usuario/dipendente. StoreID es el locale principal.
type User struct {
	ID           string
	StoreID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	HourlyCost   decimal.Decimal // costo aziendale por hora, para el costo del personal
	Status       string          // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
