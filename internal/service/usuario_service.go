package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/repository"
	"usuarios-admin/internal/validation"
)

var (
	// ErrInvalidInput indicates a missing required field or an unparseable date.
	ErrInvalidInput = errors.New("datos de usuario inválidos")
	// ErrNotFound indicates that no usuario matches the requested id.
	ErrNotFound = errors.New("usuario no encontrado")
)

// UsuarioInput carries the mutable fields of a usuario. ActiveUser is a
// pointer so that an omitted flag can be told apart from an explicit false.
type UsuarioInput struct {
	Nombre     string
	Apellido   string
	Fechanac   string
	ActiveUser *bool
}

// UsuarioService covers the CRUD lifecycle of usuarios.
type UsuarioService interface {
	List(ctx context.Context) ([]domain.Usuario, error)
	Get(ctx context.Context, id int64) (*domain.Usuario, error)
	Create(ctx context.Context, input UsuarioInput) (*domain.Usuario, error)
	Update(ctx context.Context, id int64, input UsuarioInput) (*domain.Usuario, error)
	Delete(ctx context.Context, id int64) error
}

type usuarioService struct {
	usuarios repository.UsuarioRepository
}

func NewUsuarioService(usuarios repository.UsuarioRepository) UsuarioService {
	return &usuarioService{usuarios: usuarios}
}

func (s *usuarioService) List(ctx context.Context) ([]domain.Usuario, error) {
	return s.usuarios.List(ctx)
}

func (s *usuarioService) Get(ctx context.Context, id int64) (*domain.Usuario, error) {
	usuario, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return usuario, nil
}

func (s *usuarioService) Create(ctx context.Context, input UsuarioInput) (*domain.Usuario, error) {
	fechanac, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	usuario := &domain.Usuario{
		Nombre:     strings.TrimSpace(input.Nombre),
		Apellido:   strings.TrimSpace(input.Apellido),
		Fechanac:   fechanac,
		ActiveUser: true,
	}
	if input.ActiveUser != nil {
		usuario.ActiveUser = *input.ActiveUser
	}

	if _, err := s.usuarios.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario, nil
}

func (s *usuarioService) Update(ctx context.Context, id int64, input UsuarioInput) (*domain.Usuario, error) {
	existente, err := s.usuarios.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fechanac, err := validateInput(input)
	if err != nil {
		return nil, err
	}

	existente.Nombre = strings.TrimSpace(input.Nombre)
	existente.Apellido = strings.TrimSpace(input.Apellido)
	existente.Fechanac = fechanac
	// an omitted flag keeps the stored value, unlike Create
	if input.ActiveUser != nil {
		existente.ActiveUser = *input.ActiveUser
	}

	if err := s.usuarios.Update(ctx, existente); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return existente, nil
}

func (s *usuarioService) Delete(ctx context.Context, id int64) error {
	if err := s.usuarios.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func validateInput(input UsuarioInput) (time.Time, error) {
	if err := validation.Nombre(input.Nombre); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := validation.Apellido(input.Apellido); err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	fechanac, err := validation.Fecha(input.Fechanac)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	return fechanac, nil
}
