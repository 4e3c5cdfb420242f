package validation

import (
	"errors"
	"strings"
	"time"
)

var (
	// ErrNombreRequerido is returned when the first name is empty.
	ErrNombreRequerido = errors.New("el nombre es obligatorio")
	// ErrApellidoRequerido is returned when the surname is empty.
	ErrApellidoRequerido = errors.New("el apellido es obligatorio")
	// ErrFechaRequerida is returned when the birthdate is empty.
	ErrFechaRequerida = errors.New("la fecha de nacimiento es obligatoria")
	// ErrFechaInvalida is returned when the birthdate does not parse as a date.
	ErrFechaInvalida = errors.New("formato de fecha inválido")
	// ErrNombreCorto is returned when the trimmed first name is too short.
	ErrNombreCorto = errors.New("el nombre debe tener al menos 2 caracteres")
	// ErrApellidoCorto is returned when the trimmed surname is too short.
	ErrApellidoCorto = errors.New("el apellido debe tener al menos 2 caracteres")
	// ErrFechaFutura is returned when the birthdate lies in the future.
	ErrFechaFutura = errors.New("la fecha de nacimiento no puede ser futura")
	// ErrFechaAntigua is returned when the birthdate precedes 1900-01-01.
	ErrFechaAntigua = errors.New("la fecha de nacimiento no puede ser anterior a 1900")
)

// MinNombreLen is the minimum trimmed length for nombre and apellido,
// enforced by the form layer only.
const MinNombreLen = 2

// FechaMinima is the earliest accepted birthdate.
var FechaMinima = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// Nombre checks the first name as the API does: required, nothing more.
func Nombre(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrNombreRequerido
	}
	return nil
}

// Apellido checks the surname as the API does: required, nothing more.
func Apellido(s string) error {
	if strings.TrimSpace(s) == "" {
		return ErrApellidoRequerido
	}
	return nil
}

// NombreLen applies the form-only minimum length rule.
func NombreLen(s string) error {
	if len([]rune(strings.TrimSpace(s))) < MinNombreLen {
		return ErrNombreCorto
	}
	return nil
}

// ApellidoLen applies the form-only minimum length rule.
func ApellidoLen(s string) error {
	if len([]rune(strings.TrimSpace(s))) < MinNombreLen {
		return ErrApellidoCorto
	}
	return nil
}

// Fecha parses a birthdate string. The canonical wire format is
// YYYY-MM-DD; full RFC3339 timestamps are accepted as well.
func Fecha(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrFechaRequerida
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC().Truncate(24 * time.Hour), nil
	}
	return time.Time{}, ErrFechaInvalida
}

// FechaRango applies the form-only range rule: not after today, not
// before 1900-01-01.
func FechaRango(t, now time.Time) error {
	if t.After(now) {
		return ErrFechaFutura
	}
	if t.Before(FechaMinima) {
		return ErrFechaAntigua
	}
	return nil
}
