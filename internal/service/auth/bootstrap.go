package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// EnsureBootstrapAdmin creates the configured superadmin account on startup
// if it does not exist yet. No-op when no bootstrap admin is configured.
func (s *Service) EnsureBootstrapAdmin(ctx context.Context) error {
	username := domain.NormalizeUsername(s.cfg.BootstrapAdminUsername)
	if username == "" {
		return nil
	}

	_, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("auth.EnsureBootstrapAdmin get user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.BootstrapAdminPassword), s.cfg.PasswordHashCost)
	if err != nil {
		return fmt.Errorf("auth.EnsureBootstrapAdmin hash password: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		admin, createErr := s.users.Create(txCtx, domain.User{
			ID:           uuid.New(),
			Username:     username,
			PasswordHash: string(hash),
			Role:         domain.UserRoleSuperadmin,
		})
		if createErr != nil {
			return fmt.Errorf("create user: %w", createErr)
		}
		if auditErr := s.audit.Log(txCtx, actorEntry(ctx, admin, domain.AuditActionRegister, nil)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		// A concurrent replica may have won the race.
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil
		}
		return fmt.Errorf("auth.EnsureBootstrapAdmin: %w", err)
	}

	s.log.InfoContext(ctx, "bootstrap superadmin created", slog.String("username", username))
	return nil
}
