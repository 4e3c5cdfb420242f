package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"usuarios-admin/internal/domain"
	"usuarios-admin/internal/repository"
)

const createUsuariosTable = `
CREATE TABLE IF NOT EXISTS usuarios (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	nombre TEXT NOT NULL,
	apellido TEXT NOT NULL,
	fechanac DATETIME NOT NULL,
	active_user INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME NOT NULL,
	updated_at DATETIME NOT NULL
);
`

type UsuarioRepository struct {
	db *sql.DB
}

func NewUsuarioRepository(db *sql.DB) repository.UsuarioRepository {
	return &UsuarioRepository{db: db}
}

func (r *UsuarioRepository) Init(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, createUsuariosTable); err != nil {
		return fmt.Errorf("create usuarios table: %w", err)
	}
	return nil
}

func (r *UsuarioRepository) Create(ctx context.Context, usuario *domain.Usuario) (int64, error) {
	now := time.Now().UTC()
	usuario.CreatedAt = now
	usuario.UpdatedAt = now

	res, err := r.db.ExecContext(ctx, `
INSERT INTO usuarios (nombre, apellido, fechanac, active_user, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)`,
		usuario.Nombre,
		usuario.Apellido,
		usuario.Fechanac.UTC(),
		usuario.ActiveUser,
		usuario.CreatedAt,
		usuario.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert usuario: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("usuario last insert id: %w", err)
	}
	usuario.ID = id
	return id, nil
}

func (r *UsuarioRepository) GetByID(ctx context.Context, id int64) (*domain.Usuario, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, nombre, apellido, fechanac, active_user, created_at, updated_at
FROM usuarios
WHERE id = ?`,
		id,
	)
	return scanUsuario(row)
}

func (r *UsuarioRepository) List(ctx context.Context) ([]domain.Usuario, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, nombre, apellido, fechanac, active_user, created_at, updated_at
FROM usuarios
ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("query usuarios: %w", err)
	}
	defer rows.Close()

	var usuarios []domain.Usuario
	for rows.Next() {
		usuario, err := scanUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, *usuario)
	}

	return usuarios, rows.Err()
}

func (r *UsuarioRepository) Update(ctx context.Context, usuario *domain.Usuario) error {
	usuario.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
UPDATE usuarios
SET nombre=?, apellido=?, fechanac=?, active_user=?, updated_at=?
WHERE id=?`,
		usuario.Nombre,
		usuario.Apellido,
		usuario.Fechanac.UTC(),
		usuario.ActiveUser,
		usuario.UpdatedAt,
		usuario.ID,
	)
	if err != nil {
		return fmt.Errorf("update usuario: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("usuario update rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UsuarioRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM usuarios WHERE id=?`, id)
	if err != nil {
		return fmt.Errorf("delete usuario: %w", err)
	}
	aff, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("usuario delete rows affected: %w", err)
	}
	if aff == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUsuario(row interface {
	Scan(dest ...any) error
}) (*domain.Usuario, error) {
	var usuario domain.Usuario
	if err := row.Scan(
		&usuario.ID,
		&usuario.Nombre,
		&usuario.Apellido,
		&usuario.Fechanac,
		&usuario.ActiveUser,
		&usuario.CreatedAt,
		&usuario.UpdatedAt,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan usuario: %w", err)
	}
	return &usuario, nil
}
