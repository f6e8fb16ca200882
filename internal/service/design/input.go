package design

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// CreateInput holds parameters for creating a valve design.
type CreateInput struct {
	Name string
	Data json.RawMessage
}

// Validate validates the create input.
func (i CreateInput) Validate() error {
	var errs domain.ValidationError
	validatePayload(&errs, i.Data, true)
	return errs.OrNil()
}

// UpdateInput holds parameters for updating a valve design. Nil fields are
// left untouched.
type UpdateInput struct {
	ID   uuid.UUID
	Name *string
	Data json.RawMessage
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs domain.ValidationError

	if i.ID == uuid.Nil {
		errs.Add("id", "required")
	}
	if i.Name == nil && i.Data == nil {
		errs.Add("update", "no fields to update")
	}
	validatePayload(&errs, i.Data, false)

	return errs.OrNil()
}

func validatePayload(errs *domain.ValidationError, data json.RawMessage, required bool) {
	if data == nil {
		if required {
			errs.Add("data", "required")
		}
		return
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		errs.Add("data", "must be a JSON object")
	}
}
