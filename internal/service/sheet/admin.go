package sheet

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// AdminListInput narrows the superadmin record listing.
type AdminListInput struct {
	Username string
	Name     string
	Limit    int
}

// ListAll returns records of one sheet type across all users with their
// owners. Superadmin only.
func (s *Service) ListAll(ctx context.Context, t domain.CalcType, input AdminListInput) ([]domain.RecordOverview, error) {
	if _, err := s.superadmin(ctx); err != nil {
		return nil, err
	}

	var errs domain.ValidationError
	validateRecordType(&errs, t)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	list, err := s.records.ListAll(ctx, t, domain.RecordListFilter{
		UsernameLike: strings.TrimSpace(input.Username),
		NameLike:     strings.TrimSpace(input.Name),
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("sheet.ListAll: %w", err)
	}
	return list, nil
}

// DeleteAny removes any user's record regardless of owner. Superadmin only.
// The audit entry records whose record was removed.
func (s *Service) DeleteAny(ctx context.Context, t domain.CalcType, id uuid.UUID) error {
	actor, err := s.superadmin(ctx)
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
		old, getErr := s.records.GetWithUser(txCtx, t, id)
		if getErr != nil {
			return fmt.Errorf("get record: %w", getErr)
		}

		if deleteErr := s.records.Delete(txCtx, t, id, old.UserID); deleteErr != nil {
			return fmt.Errorf("delete record: %w", deleteErr)
		}

		details, _ := json.Marshal(map[string]string{"owner": old.Username})
		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionDelete, id, old.Name, details)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("sheet.DeleteAny: %w", err)
	}

	s.log.InfoContext(ctx, "record deleted by superadmin",
		slog.String("actor_id", actor.ID.String()),
		slog.String("type", t.String()),
		slog.String("record_id", id.String()),
	)

	return nil
}
