// Package user implements the user repository using PostgreSQL.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a user. ErrAlreadyExists on a username collision.
func (r *Repo) Create(ctx context.Context, u domain.User) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	err := q.QueryRow(ctx, `
INSERT INTO users (id, username, password_hash, first_name, last_name, role)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING created_at`,
		u.ID, u.Username, u.PasswordHash, u.FirstName, u.LastName, string(u.Role)).
		Scan(&u.CreatedAt)
	if err != nil {
		return domain.User{}, postgres.MapError(err, fmt.Sprintf("user %s", u.Username))
	}
	return u, nil
}

const selectUser = `
SELECT id, username, password_hash, first_name, last_name, role, created_at
FROM users`

// GetByUsername returns a user by their unique username.
func (r *Repo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		u    domain.User
		role string
	)
	err := q.QueryRow(ctx, selectUser+` WHERE username = $1`, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.CreatedAt)
	if err != nil {
		return domain.User{}, postgres.MapError(err, fmt.Sprintf("user %s", username))
	}
	u.Role = domain.UserRole(role)
	return u, nil
}

// GetByID returns a user by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var (
		u    domain.User
		role string
	)
	err := q.QueryRow(ctx, selectUser+` WHERE id = $1`, id).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &role, &u.CreatedAt)
	if err != nil {
		return domain.User{}, postgres.MapError(err, fmt.Sprintf("user %s", id))
	}
	u.Role = domain.UserRole(role)
	return u, nil
}
