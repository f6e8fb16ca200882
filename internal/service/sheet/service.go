// Package sheet implements calculation sheet use cases: running the
// closed-form calculations and managing saved per-user records.
package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// recordRepo defines the calculation record repository interface needed by
// the sheet service.
type recordRepo interface {
	Create(ctx context.Context, r domain.Record) (domain.Record, error)
	Get(ctx context.Context, t domain.CalcType, id, userID uuid.UUID) (domain.Record, error)
	ListByUser(ctx context.Context, t domain.CalcType, userID uuid.UUID, limit int) ([]domain.RecordSummary, error)
	Update(ctx context.Context, t domain.CalcType, id, userID uuid.UUID, patch domain.RecordUpdateParams) (domain.Record, error)
	Delete(ctx context.Context, t domain.CalcType, id, userID uuid.UUID) error
	ListAll(ctx context.Context, t domain.CalcType, f domain.RecordListFilter) ([]domain.RecordOverview, error)
	GetWithUser(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.RecordWithUser, error)
}

// designRepo is used to verify design ownership when attaching records.
type designRepo interface {
	Get(ctx context.Context, id, userID uuid.UUID) (domain.Design, error)
}

// userRepo resolves the acting user for audit attribution.
type userRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// auditLogger defines the audit log interface needed by the sheet service.
type auditLogger interface {
	Log(ctx context.Context, e domain.AuditEntry) error
}

// txManager defines the transaction manager interface needed by the sheet service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const defaultListLimit = 200

// Service provides calculation sheet operations.
type Service struct {
	log     *slog.Logger
	records recordRepo
	designs designRepo
	users   userRepo
	audit   auditLogger
	tx      txManager
}

// NewService creates a new sheet service instance.
func NewService(
	logger *slog.Logger,
	records recordRepo,
	designs designRepo,
	users userRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		log:     logger.With("service", "sheet"),
		records: records,
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

// auditEntry builds an audit entry for a calculation record mutation.
func auditEntry(ctx context.Context, actor domain.User, action domain.AuditAction, entityID uuid.UUID, name string, details json.RawMessage) domain.AuditEntry {
	id := entityID
	n := name
	e := domain.AuditEntry{
		ActorUserID:   &actor.ID,
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    domain.EntityTypeCalcRecord,
		EntityID:      &id,
		Name:          &n,
		Details:       details,
	}
	if ip := ctxutil.ClientIPFromCtx(ctx); ip != "" {
		e.IP = &ip
	}
	return e
}

// updateDetails summarizes what an update changed: the rename (if any) and
// the names of the top-level payload keys whose values differ. Returns nil
// when nothing changed.
func updateDetails(old, updated domain.Record) json.RawMessage {
	out := make(map[string]any)
	if old.Name != updated.Name {
		out["name"] = map[string]string{"old": old.Name, "new": updated.Name}
	}
	if keys := domain.ChangedTopLevelKeys(old.Data, updated.Data); len(keys) > 0 {
		out["data_changed"] = keys
	}
	if oldID, newID := old.DesignID, updated.DesignID; (oldID == nil) != (newID == nil) ||
		(oldID != nil && newID != nil && *oldID != *newID) {
		out["design_id"] = map[string]any{"old": uuidOrNil(oldID), "new": uuidOrNil(newID)}
	}
	if len(out) == 0 {
		return nil
	}
	raw, err := json.Marshal(out)
	if err != nil {
		return nil
	}
	return raw
}

func uuidOrNil(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}
