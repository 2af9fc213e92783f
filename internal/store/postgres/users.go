package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/clubworks/clubd/internal/model"
	"github.com/clubworks/clubd/internal/store"
)

// userColumns is the column list used for SELECT statements on the users table.
const userColumns = `id, name, email, permissions, roles, secret_hash, created_at, updated_at`

// userRepo implements store.UserRepository against PostgreSQL.
type userRepo struct {
	db executor
}

// Compile-time check that userRepo implements store.UserRepository.
var _ store.UserRepository = (*userRepo)(nil)

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (
			id, name, email, permissions, roles, secret_hash,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8
		)`,
		u.ID,
		u.Name,
		u.Email,
		jsonbPermissions(u.Permissions),
		jsonbRoles(u.Roles),
		u.SecretHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Get(ctx context.Context, id string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *userRepo) GetBySecretHash(ctx context.Context, hash string) (*model.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE secret_hash = $1`, hash)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by secret: %w", err)
	}
	return u, nil
}

func (r *userRepo) List(ctx context.Context) ([]*model.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
