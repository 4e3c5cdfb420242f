package form

import (
	"context"
	"errors"
	"strings"
	"time"

	"usuarios-admin/internal/client"
	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/validation"
)

// ErrValidation is returned by Submit when the draft fails field validation.
var ErrValidation = errors.New("el formulario contiene errores")

// State is the form lifecycle phase.
type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
)

// Values are the draft field values. Text fields stay untrimmed until
// submission.
type Values struct {
	Nombre     string
	Apellido   string
	Fechanac   string
	ActiveUser bool
}

// SubmitFunc sends a validated draft, typically Controller.Create or
// Controller.Update.
type SubmitFunc func(ctx context.Context, payload client.UsuarioPayload) error

// Form holds the draft state for a single create/edit session.
type Form struct {
	original *domain.Usuario
	values   Values
	errors   map[string]string
	state    State
	now      func() time.Time
}

// New returns a blank form for creating a usuario.
func New() *Form {
	return &Form{
		values: Values{ActiveUser: true},
		errors: map[string]string{},
		state:  StateEditing,
		now:    time.Now,
	}
}

// NewEdit returns a form prefilled with an existing record.
func NewEdit(usuario domain.Usuario) *Form {
	f := New()
	f.original = &usuario
	f.values = valuesFrom(usuario)
	return f
}

func valuesFrom(usuario domain.Usuario) Values {
	return Values{
		Nombre:     usuario.Nombre,
		Apellido:   usuario.Apellido,
		Fechanac:   usuario.Fechanac.Format(time.DateOnly),
		ActiveUser: usuario.ActiveUser,
	}
}

// SetNombre updates the draft and clears the field's error, mirroring the
// clear-on-keystroke behavior of the form UI.
func (f *Form) SetNombre(s string) {
	f.values.Nombre = s
	delete(f.errors, "nombre")
}

func (f *Form) SetApellido(s string) {
	f.values.Apellido = s
	delete(f.errors, "apellido")
}

func (f *Form) SetFechanac(s string) {
	f.values.Fechanac = s
	delete(f.errors, "fechanac")
}

func (f *Form) SetActiveUser(active bool) {
	f.values.ActiveUser = active
}

// Validate applies the full form-side rule set: required fields, minimum
// name length, date parse and the 1900..today range.
func (f *Form) Validate() bool {
	f.errors = map[string]string{}

	if err := validation.Nombre(f.values.Nombre); err != nil {
		f.errors["nombre"] = err.Error()
	} else if err := validation.NombreLen(f.values.Nombre); err != nil {
		f.errors["nombre"] = err.Error()
	}

	if err := validation.Apellido(f.values.Apellido); err != nil {
		f.errors["apellido"] = err.Error()
	} else if err := validation.ApellidoLen(f.values.Apellido); err != nil {
		f.errors["apellido"] = err.Error()
	}

	if fechanac, err := validation.Fecha(f.values.Fechanac); err != nil {
		f.errors["fechanac"] = err.Error()
	} else if err := validation.FechaRango(fechanac, f.now()); err != nil {
		f.errors["fechanac"] = err.Error()
	}

	return len(f.errors) == 0
}

// Submit validates the draft and, if clean, sends it. A successful create
// clears the form; a successful edit keeps it populated. On failure the
// values stay intact.
func (f *Form) Submit(ctx context.Context, send SubmitFunc) error {
	if !f.Validate() {
		return ErrValidation
	}

	f.state = StateSubmitting
	defer func() { f.state = StateEditing }()

	active := f.values.ActiveUser
	payload := client.UsuarioPayload{
		Nombre:     strings.TrimSpace(f.values.Nombre),
		Apellido:   strings.TrimSpace(f.values.Apellido),
		Fechanac:   strings.TrimSpace(f.values.Fechanac),
		ActiveUser: &active,
	}

	if err := send(ctx, payload); err != nil {
		return err
	}

	if f.original == nil {
		f.values = Values{ActiveUser: true}
	}
	return nil
}

// Reset restores the original record's values when editing, or blank
// defaults when creating.
func (f *Form) Reset() {
	if f.original != nil {
		f.values = valuesFrom(*f.original)
	} else {
		f.values = Values{ActiveUser: true}
	}
	f.errors = map[string]string{}
}

func (f *Form) Values() Values { return f.values }

func (f *Form) State() State { return f.state }

// Errors returns the per-field validation messages keyed by field name.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}
