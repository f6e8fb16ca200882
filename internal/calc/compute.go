package calc

import (
	"encoding/json"
	"fmt"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// Compute dispatches a raw JSON input to the sheet identified by t and
// returns the marshaled result. Unknown types and malformed payloads map to
// ErrValidation.
func Compute(t domain.CalcType, payload []byte) (json.RawMessage, error) {
	switch t {
	case domain.CalcTypeValve:
		return run(payload, ComputeValve)
	case domain.CalcTypeDC001:
		return run(payload, ComputeDC001)
	case domain.CalcTypeDC001A:
		return run(payload, ComputeDC001A)
	case domain.CalcTypeDC002:
		return run(payload, ComputeDC002)
	case domain.CalcTypeDC002A:
		return run(payload, ComputeDC002A)
	case domain.CalcTypeDC003:
		return run(payload, ComputeDC003)
	case domain.CalcTypeDC004:
		return run(payload, ComputeDC004)
	case domain.CalcTypeDC005:
		return run(payload, ComputeDC005)
	case domain.CalcTypeDC005A:
		return run(payload, ComputeDC005A)
	case domain.CalcTypeDC006:
		return run(payload, ComputeDC006)
	case domain.CalcTypeDC006A:
		return run(payload, ComputeDC006A)
	case domain.CalcTypeDC0071:
		return run(payload, ComputeDC0071)
	case domain.CalcTypeDC0072:
		return run(payload, ComputeDC0072)
	case domain.CalcTypeDC008:
		return run(payload, ComputeDC008)
	case domain.CalcTypeDC010:
		return run(payload, ComputeDC010)
	case domain.CalcTypeDC011:
		return run(payload, ComputeDC011)
	case domain.CalcTypeDC012:
		return run(payload, ComputeDC012)
	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown calc type %q", t))
	}
}

// DefaultInput returns the marshaled sheet defaults for t.
func DefaultInput(t domain.CalcType) (json.RawMessage, error) {
	var in any
	switch t {
	case domain.CalcTypeValve:
		in = DefaultValveInput()
	case domain.CalcTypeDC001:
		in = DefaultDC001Input()
	case domain.CalcTypeDC001A:
		in = DefaultDC001AInput()
	case domain.CalcTypeDC002:
		in = DefaultDC002Input()
	case domain.CalcTypeDC002A:
		in = DefaultDC002AInput()
	case domain.CalcTypeDC003:
		in = DefaultDC003Input()
	case domain.CalcTypeDC004:
		in = DefaultDC004Input()
	case domain.CalcTypeDC005:
		in = DefaultDC005Input()
	case domain.CalcTypeDC005A:
		in = DefaultDC005AInput()
	case domain.CalcTypeDC006:
		in = DefaultDC006Input()
	case domain.CalcTypeDC006A:
		in = DefaultDC006AInput()
	case domain.CalcTypeDC0071:
		in = DefaultDC0071Input()
	case domain.CalcTypeDC0072:
		in = DefaultDC0072Input()
	case domain.CalcTypeDC008:
		in = DefaultDC008Input()
	case domain.CalcTypeDC010:
		in = DefaultDC010Input()
	case domain.CalcTypeDC011:
		in = DefaultDC011Input()
	case domain.CalcTypeDC012:
		in = DefaultDC012Input()
	default:
		return nil, domain.NewValidationError("type", fmt.Sprintf("unknown calc type %q", t))
	}
	return json.Marshal(in)
}

func run[I, R any](payload []byte, compute func(I) (R, error)) (json.RawMessage, error) {
	var in I
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, domain.NewValidationError("payload", "invalid JSON: "+err.Error())
	}
	res, err := compute(in)
	if err != nil {
		return nil, err
	}
	return json.Marshal(res)
}
