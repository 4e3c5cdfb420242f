package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/repository"
)

func newTestRepo(t *testing.T) repository.UsuarioRepository {
	t.Helper()

	db, err := Open(filepath.Join(t.TempDir(), "usuarios.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := NewUsuarioRepository(db)
	require.NoError(t, repo.Init(context.Background()))
	return repo
}

func nuevoUsuario(nombre, apellido string) *domain.Usuario {
	return &domain.Usuario{
		Nombre:     nombre,
		Apellido:   apellido,
		Fechanac:   time.Date(1990, time.May, 1, 0, 0, 0, 0, time.UTC),
		ActiveUser: true,
	}
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id1, err := repo.Create(ctx, nuevoUsuario("Ana", "Lopez"))
	require.NoError(t, err)
	id2, err := repo.Create(ctx, nuevoUsuario("Luis", "Garcia"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestGetByID(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, nuevoUsuario("Ana", "Lopez"))
	require.NoError(t, err)

	usuario, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ana", usuario.Nombre)
	assert.Equal(t, "Lopez", usuario.Apellido)
	assert.True(t, usuario.ActiveUser)
	assert.Equal(t, "1990-05-01", usuario.Fechanac.Format(time.DateOnly))
	assert.False(t, usuario.CreatedAt.IsZero())

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestListOrdersByIDDescending(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, nuevoUsuario("Ana", "Lopez"))
	require.NoError(t, err)
	_, err = repo.Create(ctx, nuevoUsuario("Luis", "Garcia"))
	require.NoError(t, err)

	usuarios, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, usuarios, 2)
	assert.Equal(t, int64(2), usuarios[0].ID)
	assert.Equal(t, int64(1), usuarios[1].ID)
}

func TestUpdate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	usuario := nuevoUsuario("Ana", "Lopez")
	_, err := repo.Create(ctx, usuario)
	require.NoError(t, err)

	usuario.Nombre = "Ana María"
	usuario.ActiveUser = false
	require.NoError(t, repo.Update(ctx, usuario))

	stored, err := repo.GetByID(ctx, usuario.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana María", stored.Nombre)
	assert.False(t, stored.ActiveUser)

	missing := nuevoUsuario("Nadie", "Nunca")
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	id, err := repo.Create(ctx, nuevoUsuario("Ana", "Lopez"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, id))

	_, err = repo.GetByID(ctx, id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// second delete of the same id reports not found, not success
	assert.ErrorIs(t, repo.Delete(ctx, id), repository.ErrNotFound)
}
