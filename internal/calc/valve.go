package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// ValveInput is the Valve Data sheet: the master parameters every other
// sheet defaults from.
type ValveInput struct {
	NPS          float64 `json:"nps_in"`
	Class        int     `json:"asme_class"`
	BodyMaterial string  `json:"body_material"`
	// AllowableMPa overrides the material preset when positive.
	AllowableMPa         float64 `json:"allowable_mpa,omitempty"`
	CorrosionAllowanceMM float64 `json:"corrosion_allowance_mm"`
}

// ValveResult carries the derived master parameters.
type ValveResult struct {
	PressureMPa float64 `json:"operating_pressure_mpa"`
	BoreMM      float64 `json:"bore_diameter_mm"`
	// FaceToFaceMM is nil when ASME B16.10 does not tabulate the size.
	FaceToFaceMM *float64 `json:"face_to_face_mm,omitempty"`
	AllowableMPa float64  `json:"allowable_mpa"`
	// WallThicknessMM is nil when 2S-P <= 0 and no wall can satisfy the
	// pressure equation.
	WallThicknessMM *float64 `json:"body_wall_thickness_mm,omitempty"`
}

// DefaultValveInput returns the sheet defaults: a 2in class 600 valve with
// an A350 LF2 body and 3 mm corrosion allowance.
func DefaultValveInput() ValveInput {
	return ValveInput{
		NPS:                  2.0,
		Class:                600,
		BodyMaterial:         "A350 LF2",
		CorrosionAllowanceMM: 3.0,
	}
}

// ComputeValve derives rated pressure, bore, face-to-face and the minimum
// body wall thickness t = P*D/(2S-P) + CA.
func ComputeValve(in ValveInput) (ValveResult, error) {
	var ve domain.ValidationError
	if in.NPS <= 0 {
		ve.Add("nps_in", "must be positive, got %g", in.NPS)
	}
	pressure, classKnown := asmeRatingMPa[in.Class]
	if !classKnown {
		ve.Add("asme_class", "unknown ASME class %d", in.Class)
	}
	allowable := in.AllowableMPa
	if allowable == 0 {
		preset, ok := bodyAllowableMPa[in.BodyMaterial]
		if !ok {
			ve.Add("body_material", "unknown material %q and no allowable override", in.BodyMaterial)
		}
		allowable = preset
	}
	if allowable < 0 {
		ve.Add("allowable_mpa", "must be positive, got %g", allowable)
	}
	if in.CorrosionAllowanceMM < 0 {
		ve.Add("corrosion_allowance_mm", "must not be negative, got %g", in.CorrosionAllowanceMM)
	}
	if err := ve.OrNil(); err != nil {
		return ValveResult{}, err
	}

	bore, ok := npsBoreMM[in.NPS]
	if !ok {
		bore = math.Round(in.NPS*25.4*10) / 10
	}

	res := ValveResult{
		PressureMPa:  pressure,
		BoreMM:       bore,
		AllowableMPa: allowable,
	}
	if f2f, ok := faceToFaceMM[npsClass{in.NPS, in.Class}]; ok {
		res.FaceToFaceMM = &f2f
	}
	if denom := 2*allowable - pressure; allowable > 0 && denom > 0 {
		t := pressure*bore/denom + in.CorrosionAllowanceMM
		res.WallThicknessMM = &t
	}
	return res, nil
}
