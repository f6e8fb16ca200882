// Package design implements the valve design repository using PostgreSQL.
// Designs are the parent records calculation sheets attach to.
package design

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Repo provides valve design persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new design repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a design and returns it with generated fields filled in.
func (r *Repo) Create(ctx context.Context, d domain.Design) (domain.Design, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	err := q.QueryRow(ctx, `
INSERT INTO valve_designs (id, user_id, name, data)
VALUES ($1, $2, $3, $4)
RETURNING created_at, updated_at`, d.ID, d.UserID, d.Name, d.Data).
		Scan(&d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Design{}, postgres.MapError(err, "valve_design")
	}
	return d, nil
}

// Get returns one design scoped to its owner.
func (r *Repo) Get(ctx context.Context, id, userID uuid.UUID) (domain.Design, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var d domain.Design
	err := q.QueryRow(ctx, `
SELECT id, user_id, name, data, created_at, updated_at
FROM valve_designs
WHERE id = $1 AND user_id = $2`, id, userID).
		Scan(&d.ID, &d.UserID, &d.Name, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Design{}, postgres.MapError(err, fmt.Sprintf("valve_design %s", id))
	}
	return d, nil
}

// ListByUser returns the owner's designs, newest updated first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.RecordSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := q.Query(ctx, `
SELECT id, name, created_at, updated_at
FROM valve_designs
WHERE user_id = $1
ORDER BY updated_at DESC, created_at DESC
LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list valve_designs: %w", err)
	}
	defer rows.Close()

	var out []domain.RecordSummary
	for rows.Next() {
		var s domain.RecordSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan valve_design: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate valve_designs: %w", err)
	}
	return out, nil
}

// Update applies a partial update scoped to the owner and returns the
// updated design.
func (r *Repo) Update(ctx context.Context, id, userID uuid.UUID, patch domain.DesignUpdateParams) (domain.Design, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Update("valve_designs").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, user_id, name, data, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
	}
	if patch.Data != nil {
		b = b.Set("data", patch.Data)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Design{}, fmt.Errorf("build valve_design update: %w", err)
	}

	var d domain.Design
	err = q.QueryRow(ctx, query, args...).
		Scan(&d.ID, &d.UserID, &d.Name, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.Design{}, postgres.MapError(err, fmt.Sprintf("valve_design %s", id))
	}
	return d, nil
}

// Delete removes a design scoped to its owner. Attached calculation records
// keep their rows; the foreign key sets design_id to NULL.
func (r *Repo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, `DELETE FROM valve_designs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return postgres.MapError(err, fmt.Sprintf("valve_design %s", id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("valve_design %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ListAll returns designs across all users with owner and headline figures
// from the payload. Superadmin only; the service enforces the role.
func (r *Repo) ListAll(ctx context.Context, f domain.DesignListFilter) ([]domain.DesignOverview, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Select(
		"vd.id",
		"u.username",
		"vd.name",
		"vd.data->>'nps_in'",
		"vd.data->>'asme_class'",
		"vd.data->'calculated'->>'body_wall_thickness_mm'",
		"vd.data->'calculated'->>'bore_diameter_mm'",
		"vd.data->'calculated'->>'face_to_face_mm'",
		"vd.created_at",
		"vd.updated_at",
	).
		From("valve_designs vd").
		Join("users u ON u.id = vd.user_id").
		OrderBy("vd.updated_at DESC", "vd.created_at DESC").
		Limit(uint64(f.Limit)).
		PlaceholderFormat(sq.Dollar)
	if f.UsernameLike != "" {
		b = b.Where(sq.ILike{"u.username": "%" + f.UsernameLike + "%"})
	}
	if f.NameLike != "" {
		b = b.Where(sq.ILike{"vd.name": "%" + f.NameLike + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build valve_design listing: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all valve_designs: %w", err)
	}
	defer rows.Close()

	var out []domain.DesignOverview
	for rows.Next() {
		var o domain.DesignOverview
		if err := rows.Scan(&o.ID, &o.Username, &o.Name, &o.NPS, &o.ASMEClass,
			&o.WallMM, &o.BoreMM, &o.FaceToFace, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan valve_design overview: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate valve_design overviews: %w", err)
	}
	return out, nil
}

// GetWithUser returns any user's design joined with the owner's username.
// Superadmin only; the service enforces the role.
func (r *Repo) GetWithUser(ctx context.Context, id uuid.UUID) (domain.DesignWithUser, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)

	var d domain.DesignWithUser
	err := q.QueryRow(ctx, `
SELECT vd.id, vd.user_id, u.username, vd.name, vd.data, vd.created_at, vd.updated_at
FROM valve_designs vd
JOIN users u ON u.id = vd.user_id
WHERE vd.id = $1`, id).
		Scan(&d.ID, &d.UserID, &d.Username, &d.Name, &d.Data, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return domain.DesignWithUser{}, postgres.MapError(err, fmt.Sprintf("valve_design %s", id))
	}
	return d, nil
}
