package design

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Create persists a new valve design for the authenticated user.
func (s *Service) Create(ctx context.Context, input CreateInput) (domain.Design, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return domain.Design{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Design{}, err
	}
	name := domain.NormalizeRecordName(input.Name, domain.CalcTypeValve)

	var created domain.Design
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.designs.Create(txCtx, domain.Design{
			UserID: actor.ID,
			Name:   name,
			Data:   input.Data,
		})
		if createErr != nil {
			return fmt.Errorf("create design: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionCreate, created.ID, created.Name, nil)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return domain.Design{}, fmt.Errorf("design.Create: %w", err)
	}

	s.log.InfoContext(ctx, "design created",
		slog.String("user_id", actor.ID.String()),
		slog.String("design_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
