// Package record implements the calculation record repository using
// PostgreSQL. Every DC sheet type persists to its own table of identical
// shape; the repository resolves the table from the calc type.
package record

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// recordTables maps each DC sheet type to its table. The valve data sheet
// lives in valve_designs and is handled by the design repository.
var recordTables = map[domain.CalcType]string{
	domain.CalcTypeDC001:  "dc001_records",
	domain.CalcTypeDC001A: "dc001a_records",
	domain.CalcTypeDC002:  "dc002_records",
	domain.CalcTypeDC002A: "dc002a_records",
	domain.CalcTypeDC003:  "dc003_records",
	domain.CalcTypeDC004:  "dc004_records",
	domain.CalcTypeDC005:  "dc005_records",
	domain.CalcTypeDC005A: "dc005a_records",
	domain.CalcTypeDC006:  "dc006_records",
	domain.CalcTypeDC006A: "dc006a_records",
	domain.CalcTypeDC0071: "dc007_1_records",
	domain.CalcTypeDC0072: "dc007_2_records",
	domain.CalcTypeDC008:  "dc008_records",
	domain.CalcTypeDC010:  "dc010_records",
	domain.CalcTypeDC011:  "dc011_records",
	domain.CalcTypeDC012:  "dc012_records",
}

func tableFor(t domain.CalcType) (string, error) {
	table, ok := recordTables[t]
	if !ok {
		return "", fmt.Errorf("calc type %q has no record table: %w", t, domain.ErrValidation)
	}
	return table, nil
}

// Repo provides calculation record persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new record repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a record and returns it with generated fields filled in.
func (r *Repo) Create(ctx context.Context, rec domain.Record) (domain.Record, error) {
	table, err := tableFor(rec.Type)
	if err != nil {
		return domain.Record{}, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
INSERT INTO %s (id, user_id, design_id, name, data)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at`, table)

	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	err = q.QueryRow(ctx, query, rec.ID, rec.UserID, rec.DesignID, rec.Name, rec.Data).
		Scan(&rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.Record{}, postgres.MapError(err, table)
	}
	return rec, nil
}

// Get returns one record scoped to its owner.
func (r *Repo) Get(ctx context.Context, t domain.CalcType, id, userID uuid.UUID) (domain.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return domain.Record{}, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
SELECT id, user_id, design_id, name, data, created_at, updated_at
FROM %s
WHERE id = $1 AND user_id = $2`, table)

	rec := domain.Record{Type: t}
	err = q.QueryRow(ctx, query, id, userID).
		Scan(&rec.ID, &rec.UserID, &rec.DesignID, &rec.Name, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.Record{}, postgres.MapError(err, fmt.Sprintf("%s %s", table, id))
	}
	return rec, nil
}

// ListByUser returns the owner's records, newest updated first.
func (r *Repo) ListByUser(ctx context.Context, t domain.CalcType, userID uuid.UUID, limit int) ([]domain.RecordSummary, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
SELECT id, design_id, name, created_at, updated_at
FROM %s
WHERE user_id = $1
ORDER BY updated_at DESC, created_at DESC
LIMIT $2`, table)

	rows, err := q.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.RecordSummary
	for rows.Next() {
		var s domain.RecordSummary
		if err := rows.Scan(&s.ID, &s.DesignID, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}
	return out, nil
}

// Update applies a partial update scoped to the owner and returns the
// updated record.
func (r *Repo) Update(ctx context.Context, t domain.CalcType, id, userID uuid.UUID, patch domain.RecordUpdateParams) (domain.Record, error) {
	table, err := tableFor(t)
	if err != nil {
		return domain.Record{}, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Update(table).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING id, user_id, design_id, name, data, created_at, updated_at").
		PlaceholderFormat(sq.Dollar)
	if patch.Name != nil {
		b = b.Set("name", *patch.Name)
	}
	if patch.Data != nil {
		b = b.Set("data", patch.Data)
	}
	switch {
	case patch.ClearDesignID:
		b = b.Set("design_id", nil)
	case patch.DesignID != nil:
		b = b.Set("design_id", *patch.DesignID)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return domain.Record{}, fmt.Errorf("build %s update: %w", table, err)
	}

	rec := domain.Record{Type: t}
	err = q.QueryRow(ctx, query, args...).
		Scan(&rec.ID, &rec.UserID, &rec.DesignID, &rec.Name, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.Record{}, postgres.MapError(err, fmt.Sprintf("%s %s", table, id))
	}
	return rec, nil
}

// Delete removes a record scoped to its owner. ErrNotFound when nothing
// matched.
func (r *Repo) Delete(ctx context.Context, t domain.CalcType, id, userID uuid.UUID) error {
	table, err := tableFor(t)
	if err != nil {
		return err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := q.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, table), id, userID)
	if err != nil {
		return postgres.MapError(err, fmt.Sprintf("%s %s", table, id))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s %s: %w", table, id, domain.ErrNotFound)
	}
	return nil
}

// ListAll returns records of one sheet type across all users with their
// owners, newest updated first.
func (r *Repo) ListAll(ctx context.Context, t domain.CalcType, f domain.RecordListFilter) ([]domain.RecordOverview, error) {
	table, err := tableFor(t)
	if err != nil {
		return nil, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	b := sq.Select("r.id", "u.username", "r.design_id", "r.name", "r.created_at", "r.updated_at").
		From(table + " r").
		Join("users u ON u.id = r.user_id").
		OrderBy("r.updated_at DESC", "r.created_at DESC").
		Limit(uint64(f.Limit)).
		PlaceholderFormat(sq.Dollar)
	if f.UsernameLike != "" {
		b = b.Where(sq.ILike{"u.username": "%" + f.UsernameLike + "%"})
	}
	if f.NameLike != "" {
		b = b.Where(sq.ILike{"r.name": "%" + f.NameLike + "%"})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s listing: %w", table, err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list all %s: %w", table, err)
	}
	defer rows.Close()

	var out []domain.RecordOverview
	for rows.Next() {
		var o domain.RecordOverview
		if err := rows.Scan(&o.ID, &o.Username, &o.DesignID, &o.Name, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan %s overview: %w", table, err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s overviews: %w", table, err)
	}
	return out, nil
}

// GetWithUser returns any user's record with its owner, unscoped.
func (r *Repo) GetWithUser(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.RecordWithUser, error) {
	table, err := tableFor(t)
	if err != nil {
		return domain.RecordWithUser{}, err
	}
	q := postgres.QuerierFromCtx(ctx, r.pool)

	query := fmt.Sprintf(`
SELECT r.id, r.user_id, u.username, r.design_id, r.name, r.data, r.created_at, r.updated_at
FROM %s r
JOIN users u ON u.id = r.user_id
WHERE r.id = $1`, table)

	rec := domain.RecordWithUser{Record: domain.Record{Type: t}}
	err = q.QueryRow(ctx, query, id).
		Scan(&rec.ID, &rec.UserID, &rec.Username, &rec.DesignID, &rec.Name, &rec.Data, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		return domain.RecordWithUser{}, postgres.MapError(err, fmt.Sprintf("%s %s", table, id))
	}
	return rec, nil
}
