package record_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/record"
	"github.com/mkuznecov/valvecalc-backend/internal/adapter/postgres/testhelper"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

func newRepo(t *testing.T) (*record.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return record.New(pool), pool
}

func buildRecord(userID uuid.UUID, t domain.CalcType) domain.Record {
	return domain.Record{
		UserID: userID,
		Type:   t,
		Name:   "sheet-" + uuid.New().String()[:8],
		Data:   []byte(`{"dm_mm": 62.3, "q_n_mm": 2.5}`),
	}
}

func TestRepo_CreateAndGet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC001))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil || created.CreatedAt.IsZero() {
		t.Errorf("Create should fill generated fields: %+v", created)
	}

	got, err := repo.Get(ctx, domain.CalcTypeDC001, created.ID, owner.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != created.Name {
		t.Errorf("Name = %q, want %q", got.Name, created.Name)
	}
	if string(got.Data) == "" {
		t.Error("Data should round-trip")
	}
}

func TestRepo_OwnerScoping(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC002))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.Get(ctx, domain.CalcTypeDC002, created.ID, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Get across owners: expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, domain.CalcTypeDC002, created.ID, other.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("Delete across owners: expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ListNewestUpdatedFirst(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	first, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC011))
	if err != nil {
		t.Fatalf("Create first: %v", err)
	}
	second, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC011))
	if err != nil {
		t.Fatalf("Create second: %v", err)
	}

	// Touch the first record so it becomes the most recently updated.
	name := "touched"
	if _, err := repo.Update(ctx, domain.CalcTypeDC011, first.ID, owner.ID, domain.RecordUpdateParams{Name: &name}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	list, err := repo.ListByUser(ctx, domain.CalcTypeDC011, owner.ID, 50)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("len(list) = %d, want 2", len(list))
	}
	if list[0].ID != first.ID || list[1].ID != second.ID {
		t.Errorf("order = [%s %s], want updated-first [%s %s]", list[0].ID, list[1].ID, first.ID, second.ID)
	}
}

func TestRepo_UpdatePatchSemantics(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	design := testhelper.SeedDesign(t, pool, owner.ID)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC008))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Attach to a design without touching name or data.
	updated, err := repo.Update(ctx, domain.CalcTypeDC008, created.ID, owner.ID,
		domain.RecordUpdateParams{DesignID: &design.ID})
	if err != nil {
		t.Fatalf("Update attach: %v", err)
	}
	if updated.DesignID == nil || *updated.DesignID != design.ID {
		t.Errorf("DesignID = %v, want %s", updated.DesignID, design.ID)
	}
	if updated.Name != created.Name {
		t.Errorf("Name changed unexpectedly: %q", updated.Name)
	}

	// Detach again.
	detached, err := repo.Update(ctx, domain.CalcTypeDC008, created.ID, owner.ID,
		domain.RecordUpdateParams{ClearDesignID: true})
	if err != nil {
		t.Fatalf("Update detach: %v", err)
	}
	if detached.DesignID != nil {
		t.Errorf("DesignID = %v, want nil", detached.DesignID)
	}
}

func TestRepo_DeleteThenGet(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC012))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Delete(ctx, domain.CalcTypeDC012, created.ID, owner.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, domain.CalcTypeDC012, created.ID, owner.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRepo_ValveTypeHasNoTable(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	_, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeValve))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected ErrValidation for the valve type, got %v", err)
	}
}

func TestRepo_ResaveIdenticalValuesBumpsUpdatedAt(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC004))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Resave the exact stored values; the row must still count as touched.
	updated, err := repo.Update(ctx, domain.CalcTypeDC004, created.ID, owner.ID, domain.RecordUpdateParams{
		Name: &created.Name,
		Data: created.Data,
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("UpdatedAt = %v, want after %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if updated.Name != created.Name {
		t.Errorf("Name = %q, want unchanged %q", updated.Name, created.Name)
	}
	if updated.CreatedAt != created.CreatedAt {
		t.Errorf("CreatedAt = %v, want unchanged %v", updated.CreatedAt, created.CreatedAt)
	}
}

func TestRepo_ListAllCrossesOwners(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)
	other := testhelper.SeedUser(t, pool)

	if _, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC006)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(ctx, buildRecord(other.ID, domain.CalcTypeDC006)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	list, err := repo.ListAll(ctx, domain.CalcTypeDC006, domain.RecordListFilter{Limit: 100})
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(list) < 2 {
		t.Fatalf("len(list) = %d, want at least 2", len(list))
	}

	filtered, err := repo.ListAll(ctx, domain.CalcTypeDC006, domain.RecordListFilter{
		UsernameLike: owner.Username,
		Limit:        100,
	})
	if err != nil {
		t.Fatalf("ListAll filtered: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Username != owner.Username {
		t.Errorf("filtered = %+v, want only %s's record", filtered, owner.Username)
	}
}

func TestRepo_GetWithUserIgnoresOwnerScope(t *testing.T) {
	t.Parallel()
	repo, pool := newRepo(t)
	ctx := context.Background()
	owner := testhelper.SeedUser(t, pool)

	created, err := repo.Create(ctx, buildRecord(owner.ID, domain.CalcTypeDC008))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetWithUser(ctx, domain.CalcTypeDC008, created.ID)
	if err != nil {
		t.Fatalf("GetWithUser: %v", err)
	}
	if got.UserID != owner.ID || got.Username != owner.Username {
		t.Errorf("owner = %s/%s, want %s/%s", got.UserID, got.Username, owner.ID, owner.Username)
	}

	if _, err := repo.GetWithUser(ctx, domain.CalcTypeDC008, uuid.New()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing record: expected ErrNotFound, got %v", err)
	}
}
