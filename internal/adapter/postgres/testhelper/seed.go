package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a regular user and returns the filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleUser)
}

// SeedSuperadmin creates a superadmin user.
func SeedSuperadmin(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	return seedUserWithRole(t, pool, domain.UserRoleSuperadmin)
}

func seedUserWithRole(t *testing.T, pool *pgxpool.Pool, role domain.UserRole) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:           uuid.New(),
		Username:     "engineer-" + suffix,
		PasswordHash: "$2a$10$test-hash-" + suffix,
		FirstName:    "Test",
		LastName:     "Engineer " + suffix,
		Role:         role,
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO users (id, username, password_hash, first_name, last_name, role)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at`,
		user.ID, user.Username, user.PasswordHash, user.FirstName, user.LastName, string(user.Role),
	).Scan(&user.CreatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedDesign creates a valve design owned by userID.
func SeedDesign(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID) domain.Design {
	t.Helper()
	ctx := context.Background()

	d := domain.Design{
		ID:     uuid.New(),
		UserID: userID,
		Name:   "design-" + uniqueSuffix(),
		Data:   []byte(`{"nps_in": "2", "asme_class": "600"}`),
	}

	err := pool.QueryRow(ctx,
		`INSERT INTO valve_designs (id, user_id, name, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at, updated_at`,
		d.ID, d.UserID, d.Name, d.Data,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		t.Fatalf("testhelper: SeedDesign insert: %v", err)
	}

	return d
}
