package sheet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mkuznecov/valvecalc-backend/internal/calc"
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Compute runs the calculation sheet t over the given input payload and
// returns the marshaled results. Stateless: nothing is persisted.
func (s *Service) Compute(ctx context.Context, t domain.CalcType, payload json.RawMessage) (json.RawMessage, error) {
	if !t.IsValid() {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown calc type %q", t))
	}
	if len(payload) == 0 {
		return nil, domain.NewValidationError("payload", "required")
	}

	result, err := calc.Compute(t, payload)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Defaults returns the prefilled input payload for the calculation sheet t,
// the values a fresh sheet opens with.
func (s *Service) Defaults(ctx context.Context, t domain.CalcType) (json.RawMessage, error) {
	if !t.IsValid() {
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown calc type %q", t))
	}
	return calc.DefaultInput(t)
}
