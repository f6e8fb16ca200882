// Package design implements valve design use cases: per-user CRUD over the
// parent records that calculation sheets attach to, plus the superadmin
// views that cross user boundaries.
package design

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// designRepo defines the design repository interface needed by the design service.
type designRepo interface {
	Create(ctx context.Context, d domain.Design) (domain.Design, error)
	Get(ctx context.Context, id, userID uuid.UUID) (domain.Design, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.RecordSummary, error)
	Update(ctx context.Context, id, userID uuid.UUID, patch domain.DesignUpdateParams) (domain.Design, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
	ListAll(ctx context.Context, f domain.DesignListFilter) ([]domain.DesignOverview, error)
	GetWithUser(ctx context.Context, id uuid.UUID) (domain.DesignWithUser, error)
}

// userRepo resolves the acting user for audit attribution and role checks.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// auditLogger defines the audit log interface needed by the design service.
type auditLogger interface {
	Log(ctx context.Context, e domain.AuditEntry) error
}

// txManager defines the transaction manager interface needed by the design service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultListLimit = 200

// Service provides valve design operations.
type Service struct {
	log     *slog.Logger
	designs designRepo
	users   userRepo
	audit   auditLogger
	tx      txManager
}

// NewService creates a new design service instance.
func NewService(
	logger *slog.Logger,
	designs designRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "design"),
		designs: designs,
		users:   users,
		audit:   audit,
		tx:      tx,
	}
}

// actor resolves the authenticated user for audit attribution.
func (s *Service) actor(ctx context.Context) (domain.User, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.User{}, domain.ErrUnauthorized
	}
	actor, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return domain.User{}, fmt.Errorf("resolve actor: %w", err)
	}
	return actor, nil
}

// superadmin resolves the actor and rejects non-superadmins. The role check
// runs against the stored user, not the token claim, so demotions take
// effect immediately.
func (s *Service) superadmin(ctx context.Context) (domain.User, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return domain.User{}, err
	}
	if !actor.Role.IsSuperadmin() {
		return domain.User{}, domain.ErrForbidden
	}
	return actor, nil
}

// auditEntry builds an audit entry for a valve design mutation.
func auditEntry(ctx context.Context, actor domain.User, action domain.AuditAction, entityID uuid.UUID, name string, details json.RawMessage) domain.AuditEntry {
	id := entityID
	n := name
	e := domain.AuditEntry{
		ActorUserID:   &actor.ID,
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    domain.EntityTypeValveDesign,
		EntityID:      &id,
		Name:          &n,
		Details:       details,
	}
	if ip := ctxutil.ClientIPFromCtx(ctx); ip != "" {
		e.IP = &ip
	}
	return e
}
