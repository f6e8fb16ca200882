package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC001AInput is the self-relieving seat check: the pressure acting on the
// relief annulus must overcome the spring load so the seat vents the body
// cavity on its own.
type DC001AInput struct {
	DtsMM   float64 `json:"dts_mm"`   // trunnion side seal diameter
	DcMM    float64 `json:"dc_mm"`    // bore diameter
	PoMPa   float64 `json:"po_mpa"`   // cavity overpressure
	FSpring float64 `json:"f_molle_n"` // total spring load opposing relief
}

// DC001AResult reports the relief force balance.
type DC001AResult struct {
	AreaMM2 float64 `json:"area_mm2"`
	SRN     float64 `json:"sr_n"` // self-relieving force
	Check   Verdict `json:"check"`
}

// DefaultDC001AInput returns the sheet defaults. DcMM normally comes from
// the Valve Data bore and FSpring from the DC001 real packing load.
func DefaultDC001AInput() DC001AInput {
	return DC001AInput{
		DtsMM:   71.0,
		DcMM:    51.0,
		PoMPa:   10.21,
		FSpring: 787.1,
	}
}

// ComputeDC001A evaluates SR = 1.33*Po*A over the annulus between Dts and
// Dc. VERIFIED when SR is at least the spring load.
func ComputeDC001A(in DC001AInput) (DC001AResult, error) {
	var ve domain.ValidationError
	if in.DcMM <= 0 || in.DtsMM <= in.DcMM {
		ve.Add("dts_mm", "need Dts > Dc > 0, got Dts=%g Dc=%g", in.DtsMM, in.DcMM)
	}
	if in.PoMPa <= 0 {
		ve.Add("po_mpa", "must be positive, got %g", in.PoMPa)
	}
	if in.FSpring <= 0 {
		ve.Add("f_molle_n", "must be positive, got %g", in.FSpring)
	}
	if err := ve.OrNil(); err != nil {
		return DC001AResult{}, err
	}

	area := math.Pi / 4 * (in.DtsMM*in.DtsMM - in.DcMM*in.DcMM)
	sr := 1.33 * in.PoMPa * area
	return DC001AResult{
		AreaMM2: area,
		SRN:     sr,
		Check:   verdictOf(sr >= in.FSpring),
	}, nil
}
