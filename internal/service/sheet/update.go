package sheet

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Update applies a partial update to one of the authenticated user's records.
// The audit entry carries a compact diff of what changed; no entry is written
// when the update was a no-op.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Record, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return domain.Record{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Record{}, err
	}

	patch := domain.RecordUpdateParams{
		Data:          input.Data,
		DesignID:      input.DesignID,
		ClearDesignID: input.ClearDesignID,
	}
	if input.Name != nil {
		name := domain.NormalizeRecordName(*input.Name, input.Type)
		patch.Name = &name
	}

	if input.DesignID != nil {
		if _, err := s.designs.Get(ctx, *input.DesignID, actor.ID); err != nil {
			return domain.Record{}, fmt.Errorf("attach design %s: %w", *input.DesignID, err)
		}
	}

	var updated domain.Record
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		// Fetch old state inside the transaction for an accurate diff.
		old, getErr := s.records.Get(txCtx, input.Type, input.ID, actor.ID)
		if getErr != nil {
			return fmt.Errorf("get record: %w", getErr)
		}

		var updateErr error
		updated, updateErr = s.records.Update(txCtx, input.Type, input.ID, actor.ID, patch)
		if updateErr != nil {
			return fmt.Errorf("update record: %w", updateErr)
		}

		if details := updateDetails(old, updated); details != nil {
			if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionUpdate, updated.ID, updated.Name, details)); auditErr != nil {
				return fmt.Errorf("audit log: %w", auditErr)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Record{}, fmt.Errorf("sheet.Update: %w", err)
	}

	s.log.InfoContext(ctx, "record updated",
		slog.String("user_id", actor.ID.String()),
		slog.String("type", input.Type.String()),
		slog.String("record_id", input.ID.String()),
	)

	return updated, nil
}
