package design

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// AdminListInput narrows the superadmin design listing.
type AdminListInput struct {
	Username string
	Name     string
	Limit    int
}

// ListAll returns designs across all users with owner and headline figures.
// Superadmin only.
func (s *Service) ListAll(ctx context.Context, input AdminListInput) ([]domain.DesignOverview, error) {
	if _, err := s.superadmin(ctx); err != nil {
		return nil, err
	}

	limit := input.Limit
	if limit <= 0 || limit > defaultListLimit {
		limit = defaultListLimit
	}

	list, err := s.designs.ListAll(ctx, domain.DesignListFilter{
		UsernameLike: strings.TrimSpace(input.Username),
		NameLike:     strings.TrimSpace(input.Name),
		Limit:        limit,
	})
	if err != nil {
		return nil, fmt.Errorf("design.ListAll: %w", err)
	}
	return list, nil
}

// DeleteAny removes any user's design regardless of owner. Superadmin only.
// The audit entry records whose design was removed.
func (s *Service) DeleteAny(ctx context.Context, id uuid.UUID) error {
	actor, err := s.superadmin(ctx)
	if err != nil {
		return err
	}
	if id == uuid.Nil {
		return domain.NewValidationError("id", "required")
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		old, getErr := s.designs.GetWithUser(txCtx, id)
		if getErr != nil {
			return fmt.Errorf("get design: %w", getErr)
		}

		if deleteErr := s.designs.Delete(txCtx, id, old.UserID); deleteErr != nil {
			return fmt.Errorf("delete design: %w", deleteErr)
		}

		details, _ := json.Marshal(map[string]string{"owner": old.Username})
		if auditErr := s.audit.Log(txCtx, auditEntry(ctx, actor, domain.AuditActionDelete, id, old.Name, details)); auditErr != nil {
			return fmt.Errorf("audit log: %w", auditErr)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("design.DeleteAny: %w", err)
	}

	s.log.InfoContext(ctx, "design deleted by superadmin",
		slog.String("actor_id", actor.ID.String()),
		slog.String("design_id", id.String()),
	)

	return nil
}

// GetAny returns any user's design with its owner. Superadmin only.
func (s *Service) GetAny(ctx context.Context, id uuid.UUID) (domain.DesignWithUser, error) {
	if _, err := s.superadmin(ctx); err != nil {
		return domain.DesignWithUser{}, err
	}
	if id == uuid.Nil {
		return domain.DesignWithUser{}, domain.NewValidationError("id", "required")
	}

	d, err := s.designs.GetWithUser(ctx, id)
	if err != nil {
		return domain.DesignWithUser{}, fmt.Errorf("design.GetAny: %w", err)
	}
	return d, nil
}
