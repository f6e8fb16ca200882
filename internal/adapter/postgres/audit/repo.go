// Package audit implements the audit log repository using PostgreSQL.
// The log is append-only: entries are inserted, never updated or deleted.
package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Repo provides audit log persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new audit repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const createQuery = `
INSERT INTO audit_logs (actor_user_id, actor_username, actor_role, action, entity_type, entity_id, name, details, ip_addr)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, created_at`

// Create appends an audit entry. When called inside RunInTx the entry
// commits or rolls back together with the mutation it describes.
func (r *Repo) Create(ctx context.Context, e domain.AuditEntry) (domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	err := q.QueryRow(ctx, createQuery,
		e.ActorUserID, e.ActorUsername, string(e.ActorRole), string(e.Action),
		string(e.EntityType), e.EntityID, e.Name, e.Details, e.IP,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return domain.AuditEntry{}, postgres.MapError(err, "audit_entry")
	}
	return e, nil
}

// Log appends an audit entry without returning it. Satisfies the services'
// auditLogger interfaces.
func (r *Repo) Log(ctx context.Context, e domain.AuditEntry) error {
	_, err := r.Create(ctx, e)
	return err
}

const selectColumns = `
SELECT id, created_at, actor_user_id, actor_username, actor_role, action, entity_type, entity_id, name, details, ip_addr
FROM audit_logs`

// ListByEntity returns the change history for one entity, newest first.
func (r *Repo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectColumns+`
WHERE entity_type = $1 AND entity_id = $2
ORDER BY created_at DESC, id DESC
LIMIT $3`, string(entityType), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit_entries by entity: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListByActor returns entries produced by one user, newest first.
func (r *Repo) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectColumns+`
WHERE actor_user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`, actorID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list audit_entries by actor: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// ListRecent returns the latest entries across all actors, newest first.
func (r *Repo) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, selectColumns+`
ORDER BY created_at DESC, id DESC
LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list recent audit_entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows pgx.Rows) ([]domain.AuditEntry, error) {
	var out []domain.AuditEntry
	for rows.Next() {
		var (
			e      domain.AuditEntry
			role   string
			action string
			etype  string
		)
		if err := rows.Scan(&e.ID, &e.CreatedAt, &e.ActorUserID, &e.ActorUsername,
			&role, &action, &etype, &e.EntityID, &e.Name, &e.Details, &e.IP); err != nil {
			return nil, fmt.Errorf("scan audit_entry: %w", err)
		}
		e.ActorRole = domain.UserRole(role)
		e.Action = domain.AuditAction(action)
		e.EntityType = domain.EntityType(etype)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit_entries: %w", err)
	}
	return out, nil
}
