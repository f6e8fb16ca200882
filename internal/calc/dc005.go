package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC005Input is the gland flange bolting sheet at operating conditions.
// The pressure acts on the ring between the gland seal and the stem.
type DC005Input struct {
	GMM      float64 `json:"g_mm"`      // gland seal diameter
	GStemMM  float64 `json:"gstem_mm"`  // stem diameter
	PaMPa    float64 `json:"pa_mpa"`
	NBolts   int     `json:"n_bolts"`
	Material string  `json:"bolt_material"`
}

// DC005Result is the annular pressure load plus the shared bolt sizing.
type DC005Result struct {
	RingAreaMM2 float64    `json:"ring_area_mm2"`
	HN          float64    `json:"h_n"`
	Sizing      BoltSizing `json:"sizing"`
}

// DefaultDC005Input returns the sheet defaults.
func DefaultDC005Input() DC005Input {
	return DC005Input{
		GMM:      64.5,
		GStemMM:  27.85,
		PaMPa:    10.21,
		NBolts:   6,
		Material: "A193 B7",
	}
}

// ComputeDC005 sizes the gland bolts from the annular hydrostatic load
// H = pi/4*(G^2 - Gstem^2)*Pa.
func ComputeDC005(in DC005Input) (DC005Result, error) {
	allowable, err := validateGlandBolting(in, glandBoltAllowableMPa)
	if err != nil {
		return DC005Result{}, err
	}

	ringArea := math.Pi / 4 * (in.GMM*in.GMM - in.GStemMM*in.GStemMM)
	h := ringArea * in.PaMPa
	return DC005Result{
		RingAreaMM2: ringArea,
		HN:          h,
		Sizing:      sizeBolts(h, allowable, in.NBolts, glandBolts),
	}, nil
}

func validateGlandBolting(in DC005Input, allowables map[string]float64) (float64, error) {
	var ve domain.ValidationError
	if in.GStemMM <= 0 || in.GMM <= in.GStemMM {
		ve.Add("g_mm", "need G > Gstem > 0, got G=%g Gstem=%g", in.GMM, in.GStemMM)
	}
	if in.PaMPa <= 0 {
		ve.Add("pa_mpa", "must be positive, got %g", in.PaMPa)
	}
	if in.NBolts < 1 {
		ve.Add("n_bolts", "must be at least 1, got %d", in.NBolts)
	}
	allowable, ok := allowables[in.Material]
	if !ok {
		ve.Add("bolt_material", "unknown material %q", in.Material)
	}
	if err := ve.OrNil(); err != nil {
		return 0, err
	}
	return allowable, nil
}
