package design

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Update applies a partial update to one of the authenticated user's
// designs. The audit entry carries a compact diff; no entry is written when
// the update was a no-op.
func (s *Service) Update(ctx context.Context, input UpdateInput) (domain.Design, error) {
	actor, err := s.actor(ctx)
	if err != nil {
		return domain.Design{}, err
	}

	if err := input.Validate(); err != nil {
		return domain.Design{}, err
	}

	patch := domain.DesignUpdateParams{Data: input.Data}
	if input.Name != nil {
		name := domain.NormalizeRecordName(*input.Name, domain.CalcTypeValve)
		patch.Name = &name
	}

	var updated domain.Design
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.designs.Get(txCtx, input.ID, actor.ID)
		if getErr != nil {
			return fmt.Errorf("get design: %w", getErr)
		}

		var updateErr error
		updated, updateErr = s.designs.Update(txCtx, input.ID, actor.ID, patch)
		if updateErr != nil {
			return fmt.Errorf("update design: %w", updateErr)
		}

		if details := updateDetails(old, updated); details != nil {
			if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionUpdate, updated.ID, updated.Name, details)); auditErr != nil {
				return fmt.Errorf("audit log: %w", auditErr)
			}
		}
		return nil
	})
	if err != nil {
		return domain.Design{}, fmt.Errorf("design.Update: %w", err)
	}

	s.log.InfoContext(ctx, "design updated",
		slog.String("user_id", actor.ID.String()),
		slog.String("design_id", input.ID.String()),
	)

	return updated, nil
}

// updateDetails summarizes what a design update changed. Returns nil when
// nothing changed.
func updateDetails(old, updated domain.Design) json.RawMessage {
	out := make(map[string]any)
	if old.Name != updated.Name {
		out["name"] = map[string]string{"old": old.Name, "new": updated.Name}
	}
	if keys := domain.ChangedTopLevelKeys(old.Data, updated.Data); len(keys) > 0 {
		out["data_changed"] = keys
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
