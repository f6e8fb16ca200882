package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Delete removes one of the authenticated user's saved records. The audit
// entry keeps the record's last name so deletions stay traceable.
func (s *Service) Delete(ctx context.Context, t domain.CalcType, id uuid.UUID) error {
	actor, err := s.actor(ctx)
	if err != nil {
		return err
	}

	var errs domain.ValidationError
	validateRecordType(&errs, t)
	if id == uuid.Nil {
		errs.Add("id", "required")
	}
	if err := errs.OrNil(); err != nil {
		return err
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.records.Get(txCtx, t, id, actor.ID)
		if getErr != nil {
			return fmt.Errorf("get record: %w", getErr)
		}

		if deleteErr := s.records.Delete(txCtx, t, id, actor.ID); deleteErr != nil {
			return fmt.Errorf("delete record: %w", deleteErr)
		}

		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionDelete, id, old.Name, nil)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sheet.Delete: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted",
		slog.String("user_id", actor.ID.String()),
		slog.String("type", t.String()),
		slog.String("record_id", id.String()),
	)

	return nil
}
