package design

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Delete removes one of the authenticated user's designs. Attached
// calculation records survive and are detached by the schema.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.designs.Get(txCtx, id, actor.ID)
		if getErr != nil {
			return fmt.Errorf("get design: %w", getErr)
		}

		if deleteErr := s.designs.Delete(txCtx, id, actor.ID); deleteErr != nil {
			return fmt.Errorf("delete design: %w", deleteErr)
		}

		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionDelete, id, old.Name, nil)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("design.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "design deleted",
		slog.String("user_id", actor.ID.String()),
		slog.String("design_id", id.String()),
	)

	return nil
}
