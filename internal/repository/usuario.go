package repository

import (
	"context"
	"errors"

	"usuarios-admin/internal/domain"
)

// ErrNotFound is returned when no record matches the requested id.
var ErrNotFound = errors.New("usuario no encontrado")

// UsuarioRepository defines persistence operations for Usuario entities.
type UsuarioRepository interface {
	Init(ctx context.Context) error
	Create(ctx context.Context, usuario *domain.Usuario) (int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Usuario, error)
	List(ctx context.Context) ([]domain.Usuario, error)
	Update(ctx context.Context, usuario *domain.Usuario) error
	Delete(ctx context.Context, id int64) error
}
