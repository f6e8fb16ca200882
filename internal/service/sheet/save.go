package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Save persists a new named calculation record for the authenticated user.
// When a design ID is given, the design must belong to the same user.
func (s *Service) Save(ctx context.Context, input SaveInput) (domain.Record, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return domain.Record{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Record{}, err
	}
	name := domain.NormalizeRecordName(input.Name, input.Type)

	if input.DesignID != nil {
		if _, err := s.designs.Get(ctx, *input.DesignID, actor.ID); err != nil {
			return domain.Record{}, fmt.Errorf("attach design %s: %w", *input.DesignID, err)
		}
	}

	var created domain.Record
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var createErr error
		created, createErr = s.records.Create(txCtx, domain.Record{
			UserID:   actor.ID,
			DesignID: input.DesignID,
			Type:     input.Type,
			Name:     name,
			Data:     input.Data,
		})
		if createErr != nil {
			return fmt.Errorf("create record: %w", createErr)
		}

		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionCreate, created.ID, created.Name, nil)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return domain.Record{}, fmt.Errorf("sheet.Save: %w", err)
	}

	s.log.InfoContext(ctx, "record saved",
		slog.String("user_id", actor.ID.String()),
		slog.String("type", input.Type.String()),
		slog.String("record_id", created.ID.String()),
		slog.String("name", created.Name),
	)

	return created, nil
}
