package sheet

import (
	"encoding/json"

	"github.com/google/uuid"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// SaveInput holds parameters for saving a new calculation record.
type SaveInput struct {
	Type     domain.CalcType
	Name     string
	Data     json.RawMessage
	DesignID *uuid.UUID
}

// Validate validates the save input.
func (i SaveInput) Validate() error {
	var errs domain.ValidationError

	validateRecordType(&errs, i.Type)
	validatePayload(&errs, i.Data, true)

	return errs.OrNil()
}

// UpdateInput holds parameters for updating a saved calculation record.
// Nil fields are left untouched; ClearDesignID detaches the record from its
// parent design.
type UpdateInput struct {
	Type          domain.CalcType
	ID            uuid.UUID
	Name          *string
	Data          json.RawMessage
	DesignID      *uuid.UUID
	ClearDesignID bool
}

// Validate validates the update input.
func (i UpdateInput) Validate() error {
	var errs domain.ValidationError

	validateRecordType(&errs, i.Type)
	if i.ID == uuid.Nil {
		errs.Add("id", "required")
	}
	if i.Name == nil && i.Data == nil && i.DesignID == nil && !i.ClearDesignID {
		errs.Add("update", "no fields to update")
	}
	if i.DesignID != nil && i.ClearDesignID {
		errs.Add("design_id", "cannot both set and clear")
	}
	validatePayload(&errs, i.Data, false)

	return errs.OrNil()
}

func validateRecordType(errs *domain.ValidationError, t domain.CalcType) {
	if !t.IsValid() {
		errs.Add("type", "unknown calc type %q", t)
		return
	}
	// Valve sheets are stored as designs, not records.
	if t == domain.CalcTypeValve {
		errs.Add("type", "valve sheets are saved as designs")
	}
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
