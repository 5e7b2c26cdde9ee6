package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/atikxb/manufacturing-company-server-side/internal/domain"
)

type UserRepository struct {
	store
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{store: store{pool: pool}}
}

// Upsert inserts a user or refreshes the profile of an existing one. Role is
// preserved on update so re-login never demotes an admin.
func (r *UserRepository) Upsert(ctx context.Context, user domain.User) (domain.User, error) {
	const stmt = `
INSERT INTO users (email, name, role, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (email) DO UPDATE
SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
RETURNING email, name, role, created_at, updated_at`

	var u domain.User
	err := r.queryRow(ctx, stmt, user.Email, user.Name, user.Role, user.CreatedAt).
		Scan(&u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const query = `
SELECT email, name, role, created_at, updated_at
FROM users
WHERE email = $1`

	var u domain.User
	err := r.queryRow(ctx, query, email).
		Scan(&u.Email, &u.Name, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) SetRole(ctx context.Context, email string, role domain.Role) error {
	const stmt = `UPDATE users SET role = $2, updated_at = NOW() WHERE email = $1`

	tag, err := r.exec(ctx, stmt, email, role)
	if err != nil {
		return fmt.Errorf("set role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
