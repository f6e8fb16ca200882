package calc

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC002Input is the body-closure bolting sheet at operating conditions.
type DC002Input struct {
	GMM      float64 `json:"g_mm"` // seal gasket reaction diameter
	PaMPa    float64 `json:"pa_mpa"`
	NBolts   int     `json:"n_bolts"`
	Material string  `json:"bolt_material"`
}

// DC002Result is the hydrostatic end load plus the shared bolt sizing.
type DC002Result struct {
	HN     float64    `json:"h_n"` // hydrostatic end load
	Sizing BoltSizing `json:"sizing"`
}

// DefaultDC002Input returns the sheet defaults. PaMPa normally comes from
// the Valve Data operating pressure.
func DefaultDC002Input() DC002Input {
	return DC002Input{
		GMM:      122.7,
		PaMPa:    10.21,
		NBolts:   6,
		Material: "A193 B7M",
	}
}

// ComputeDC002 sizes the body-closure bolts: H = 0.785*G^2*Pa, required
// area Am = H/S, smallest catalog bolt covering Am/n.
func ComputeDC002(in DC002Input) (DC002Result, error) {
	allowable, err := validateClosureBolting(in.GMM, in.PaMPa, in.NBolts, in.Material, closureBoltAllowableMPa)
	if err != nil {
		return DC002Result{}, err
	}

	h := 0.785 * in.GMM * in.GMM * in.PaMPa
	return DC002Result{
		HN:     h,
		Sizing: sizeBolts(h, allowable, in.NBolts, closureBolts),
	}, nil
}

func validateClosureBolting(g, pa float64, n int, material string, allowables map[string]float64) (float64, error) {
	var ve domain.ValidationError
	if g <= 0 {
		ve.Add("g_mm", "must be positive, got %g", g)
	}
	if pa <= 0 {
		ve.Add("pa_mpa", "must be positive, got %g", pa)
	}
	if n < 1 {
		ve.Add("n_bolts", "must be at least 1, got %d", n)
	}
	allowable, ok := allowables[material]
	if !ok {
		ve.Add("bolt_material", "unknown material %q", material)
	}
	if err := ve.OrNil(); err != nil {
		return 0, err
	}
	return allowable, nil
}
