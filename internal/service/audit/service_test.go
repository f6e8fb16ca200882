package audit

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/config"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// ---------------------------------------------------------------------------
// Manual mocks (moq-style with func fields)
// ---------------------------------------------------------------------------

type mockAuditRepo struct {
	ListByEntityFunc func(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error)
	ListByActorFunc  func(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error)
	ListRecentFunc   func(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error)
}

func (m *mockAuditRepo) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error) {
	return m.ListByEntityFunc(ctx, entityType, entityID, limit)
}

func (m *mockAuditRepo) ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error) {
	return m.ListByActorFunc(ctx, actorID, limit, offset)
}

func (m *mockAuditRepo) ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error) {
	return m.ListRecentFunc(ctx, limit, offset)
}

type mockUserRepo struct {
	role domain.UserRole
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	role := m.role
	if role == "" {
		role = domain.UserRoleUser
	}
	return domain.User{ID: id, Username: "engineer", Role: role}, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTestService(entries *mockAuditRepo, role domain.UserRole) *Service {
	if entries == nil {
		entries = &mockAuditRepo{}
	}
	cfg := config.AuditConfig{DefaultPageSize: 50, MaxPageSize: 500}
	return NewService(slog.Default(), entries, &mockUserRepo{role: role}, cfg)
}

func authedCtx(userID uuid.UUID) context.Context {
	return ctxutil.WithUserID(context.Background(), userID)
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestListByEntity_RequiresSuperadmin(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAuditRepo{
		ListByEntityFunc: func(context.Context, domain.EntityType, uuid.UUID, int) ([]domain.AuditEntry, error) {
			t.Fatal("repo must not be reached without the superadmin role")
			return nil, nil
		},
	}, domain.UserRoleUser)

	_, err := svc.ListByEntity(authedCtx(uuid.New()), domain.EntityTypeCalcRecord, uuid.New(), Page{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListByEntity_Superadmin(t *testing.T) {
	t.Parallel()

	entityID := uuid.New()
	svc := newTestService(&mockAuditRepo{
		ListByEntityFunc: func(_ context.Context, et domain.EntityType, id uuid.UUID, limit int) ([]domain.AuditEntry, error) {
			if et != domain.EntityTypeValveDesign || id != entityID {
				t.Errorf("query = %s/%s", et, id)
			}
			if limit != 50 {
				t.Errorf("limit = %d, want default 50", limit)
			}
			return []domain.AuditEntry{{ID: 1}}, nil
		},
	}, domain.UserRoleSuperadmin)

	entries, err := svc.ListByEntity(authedCtx(uuid.New()), domain.EntityTypeValveDesign, entityID, Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestListByEntity_Validation(t *testing.T) {
	t.Parallel()
	svc := newTestService(nil, domain.UserRoleSuperadmin)

	_, err := svc.ListByEntity(authedCtx(uuid.New()), "widget", uuid.New(), Page{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown entity type: expected ErrValidation, got %v", err)
	}
	_, err = svc.ListByEntity(authedCtx(uuid.New()), domain.EntityTypeCalcRecord, uuid.Nil, Page{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("nil entity id: expected ErrValidation, got %v", err)
	}
}

func TestListByActor_SelfAllowed(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	svc := newTestService(&mockAuditRepo{
		ListByActorFunc: func(_ context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error) {
			if actorID != userID {
				t.Errorf("actor = %s, want %s", actorID, userID)
			}
			return nil, nil
		},
	}, domain.UserRoleUser)

	if _, err := svc.ListByActor(authedCtx(userID), userID, Page{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListByActor_OtherUserForbidden(t *testing.T) {
	t.Parallel()
	svc := newTestService(nil, domain.UserRoleUser)

	_, err := svc.ListByActor(authedCtx(uuid.New()), uuid.New(), Page{})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestListByActor_SuperadminCrossesUsers(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAuditRepo{
		ListByActorFunc: func(context.Context, uuid.UUID, int, int) ([]domain.AuditEntry, error) {
			return []domain.AuditEntry{{ID: 7}}, nil
		},
	}, domain.UserRoleSuperadmin)

	entries, err := svc.ListByActor(authedCtx(uuid.New()), uuid.New(), Page{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestListRecent_ClampsPage(t *testing.T) {
	t.Parallel()

	svc := newTestService(&mockAuditRepo{
		ListRecentFunc: func(_ context.Context, limit, offset int) ([]domain.AuditEntry, error) {
			if limit != 500 {
				t.Errorf("limit = %d, want clamped 500", limit)
			}
			if offset != 0 {
				t.Errorf("offset = %d, want clamped 0", offset)
			}
			return nil, nil
		},
	}, domain.UserRoleSuperadmin)

	if _, err := svc.ListRecent(authedCtx(uuid.New()), Page{Limit: 99999, Offset: -5}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestListRecent_Unauthenticated(t *testing.T) {
	t.Parallel()
	svc := newTestService(nil, domain.UserRoleSuperadmin)

	_, err := svc.ListRecent(context.Background(), Page{})
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}
