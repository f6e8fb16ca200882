package sheet

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
	"github.com/mkuznecov/valvecalc-backend/pkg/ctxutil"
)

// Get returns one of the authenticated user's saved records with its payload.
func (s *Service) Get(ctx context.Context, t domain.CalcType, id uuid.UUID) (domain.Record, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Record{}, domain.ErrUnauthorized
	}

	var errs domain.ValidationError
	validateRecordType(&errs, t)
	if id == uuid.Nil {
		errs.Add("id", "required")
	}
	if err := errs.OrNil(); err != nil {
		return domain.Record{}, err
	}

	rec, err := s.records.Get(ctx, t, id, userID)
	if err != nil {
		return domain.Record{}, fmt.Errorf("sheet.Get: %w", err)
	}
	return rec, nil
}

// List returns the authenticated user's saved records of type t, newest
// updated first, without payloads.
func (s *Service) List(ctx context.Context, t domain.CalcType) ([]domain.RecordSummary, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	var errs domain.ValidationError
	validateRecordType(&errs, t)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	list, err := s.records.ListByUser(ctx, t, userID, defaultListLimit)
	if err != nil {
		return nil, fmt.Errorf("sheet.List: %w", err)
	}
	return list, nil
}
