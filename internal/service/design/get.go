package design

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// Get returns one of the authenticated user's designs with its payload.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (domain.Design, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Design{}, domain.ErrUnauthorized
	}
	if id == uuid.Nil {
		return domain.Design{}, domain.NewValidationError("id", "required")
	}

	d, err := s.designs.Get(ctx, id, userID)
	if err != nil {
		return domain.Design{}, fmt.Errorf("design.Get: %w", err)
	}
	return d, nil
}

// List returns the authenticated user's designs, newest updated first,
// without payloads.
func (s *Service) List(ctx context.Context) ([]domain.RecordSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	list, err := s.designs.ListByUser(ctx, userID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("design.List: %w", err)
	}
	return list, nil
}
