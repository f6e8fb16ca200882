// Package auth implements registration and password login.
package auth

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/config"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// userRepo defines the user repository interface needed by the auth service.
type userRepo interface {
	Create(ctx context.Context, u domain.User) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
}

// auditLogger defines the audit log interface needed by the auth service.
type auditLogger interface {
	Log(ctx context.Context, e domain.AuditEntry) error
}

// txManager defines the transaction manager interface needed by the auth service.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// jwtManager defines the token issuing interface needed by the auth service.
type jwtManager interface {
	GenerateAccessToken(userID uuid.UUID, role string) (string, error)
}

// Service implements auth operations.
type Service struct {
	log   *slog.Logger
	users userRepo
	audit auditLogger
	tx    txManager
	jwt   jwtManager
	cfg   config.AuthConfig
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	users userRepo,
	audit auditLogger,
	tx txManager,
	jwt jwtManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:   logger.With("service", "auth"),
		users: users,
		audit: audit,
		tx:    tx,
		jwt:   jwt,
		cfg:   cfg,
	}
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	AccessToken string
	User        domain.User
}

// actorEntry builds an audit entry attributed to the given user, with the
// caller's IP when the transport put one in the context.
func actorEntry(ctx context.Context, actor domain.User, action domain.AuditAction, details json.RawMessage) domain.AuditEntry {
	e := domain.AuditEntry{
		ActorUserID:   &actor.ID,
		ActorUsername: actor.Username,
		ActorRole:     actor.Role,
		Action:        action,
		EntityType:    domain.EntityTypeUser,
		EntityID:      &actor.ID,
		Details:       details,
	}
	if ip := ctxutil.ClientIPFromCtx(ctx); ip != "" {
		e.IP = &ip
	}
	return e
}
