// Package audit implements read access to the append-only audit log.
// Writing happens inside the mutating services; this package only serves
// the trail back out.
package audit

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/config"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// auditRepo defines the audit log read interface needed by this service.
type auditRepo interface {
	ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditEntry, error)
	ListByActor(ctx context.Context, actorID uuid.UUID, limit, offset int) ([]domain.AuditEntry, error)
	ListRecent(ctx context.Context, limit, offset int) ([]domain.AuditEntry, error)
}

// userRepo resolves the acting user for role checks.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// Service provides audit trail reads.
type Service struct {
	log     *slog.Logger
	entries auditRepo
	users   userRepo
	cfg     config.AuditConfig
}

// NewService creates a new audit service instance.
func NewService(logger *slog.Logger, entries auditRepo, users userRepo, cfg config.AuditConfig) *Service {
	return &Service{
		log:     logger.With("service", "audit"),
		entries: entries,
		users:   users,
		cfg:     cfg,
	}
}

// Page holds limit/offset pagination for audit listings. Zero values take
// the configured defaults.
type Page struct {
	Limit  int
	Offset int
}

func (s *Service) clamp(p Page) Page {
	if p.Limit <= 0 {
		p.Limit = s.cfg.DefaultPageSize
	}
	if p.Limit > s.cfg.MaxPageSize {
		p.Limit = s.cfg.MaxPageSize
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// actor resolves the authenticated user.
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

// ListByEntity returns the history of one entity, newest first.
// Superadmin only.
func (s *Service) ListByEntity(ctx context.Context, entityType domain.EntityType, entityID uuid.UUID, p Page) ([]domain.AuditEntry, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	var errs domain.ValidationError
	if !entityType.IsValid() {
		errs.Add("entity_type", "unknown entity type %q", entityType)
	}
	if entityID == uuid.Nil {
		errs.Add("entity_id", "required")
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	p = s.clamp(p)
	entries, err := s.entries.ListByEntity(ctx, entityType, entityID, p.Limit)
	if err != nil {
		return nil, fmt.Errorf("audit.ListByEntity: %w", err)
	}
	return entries, nil
}

// ListByActor returns one user's actions, newest first. Users may read
// their own trail; reading another user's requires superadmin.
func (s *Service) ListByActor(ctx context.Context, actorID uuid.UUID, p Page) ([]domain.AuditEntry, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if actorID == uuid.Nil {
		return nil, domain.NewValidationError("actor_id", "required")
	}
	if actorID != actor.ID && !actor.Role.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	p = s.clamp(p)
	entries, err := s.entries.ListByActor(ctx, actorID, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("audit.ListByActor: %w", err)
	}
	return entries, nil
}

// ListRecent returns the newest entries across all actors. Superadmin only.
func (s *Service) ListRecent(ctx context.Context, p Page) ([]domain.AuditEntry, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsSuperadmin() {
		return nil, domain.ErrForbidden
	}

	p = s.clamp(p)
	entries, err := s.entries.ListRecent(ctx, p.Limit, p.Offset)
	if err != nil {
		return nil, fmt.Errorf("audit.ListRecent: %w", err)
	}
	return entries, nil
}
