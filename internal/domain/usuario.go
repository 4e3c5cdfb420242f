package domain

import "time"

// Usuario represents a managed person record.
type Usuario struct {
	ID         int64
	Nombre     string
	Apellido   string
	Fechanac   time.Time
	ActiveUser bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
