package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC006Input is the closure flange stress sheet (ASME VIII div.1 app.2) at
// operating conditions.
type DC006Input struct {
	PaMPa        float64 `json:"pa_mpa"`
	FTMM         float64 `json:"ft_mm"`   // flange thickness
	ISGDMM       float64 `json:"isgd_mm"` // internal seal gasket diameter
	ESGDMM       float64 `json:"esgd_mm"` // external seal gasket diameter
	BcdMM        float64 `json:"bcd_mm"`  // bolt circle diameter
	Gasket       string  `json:"gasket"`
	// MOverride and YOverride replace the gasket preset when positive.
	MOverride    float64 `json:"m_override,omitempty"`
	YOverride    float64 `json:"y_override_mpa,omitempty"`
	AllowableMPa float64 `json:"allowable_mpa"`
}

// DC006Result carries the app.2 gasket geometry, bolt loads and flange
// stresses.
type DC006Result struct {
	NMM     float64 `json:"n_mm"`  // gasket width
	B0MM    float64 `json:"b0_mm"` // basic seating width
	BMM     float64 `json:"b_mm"`  // effective seating width
	GMM     float64 `json:"g_mm"`  // load reaction diameter
	HN      float64 `json:"h_n"`
	HpN     float64 `json:"hp_n"`
	Wm1N    float64 `json:"wm1_n"`
	Wm2N    float64 `json:"wm2_n"`
	K       float64 `json:"k"`
	Sf1MPa  float64 `json:"sf1_mpa"`
	Sf2MPa  float64 `json:"sf2_mpa"`
	SfMPa   float64 `json:"sf_mpa"`
	Check   Verdict `json:"check"`
}

// DefaultDC006Input returns the sheet defaults (graphite gasket, A350 LF2
// flange allowable).
func DefaultDC006Input() DC006Input {
	return DC006Input{
		PaMPa:        10.21,
		FTMM:         23,
		ISGDMM:       113.9,
		ESGDMM:       122.7,
		BcdMM:        142,
		Gasket:       "GRAPHITE",
		AllowableMPa: 161,
	}
}

// ComputeDC006 evaluates the flange stress at the given pressure.
func ComputeDC006(in DC006Input) (DC006Result, error) {
	return flangeStress(in, in.PaMPa)
}

func flangeStress(in DC006Input, pressure float64) (DC006Result, error) {
	var ve domain.ValidationError
	if pressure <= 0 {
		ve.Add("pa_mpa", "must be positive, got %g", pressure)
	}
	if in.FTMM <= 0 {
		ve.Add("ft_mm", "must be positive, got %g", in.FTMM)
	}
	if in.ISGDMM <= 0 || in.ESGDMM <= in.ISGDMM {
		ve.Add("esgd_mm", "need ESGD > ISGD > 0, got ESGD=%g ISGD=%g", in.ESGDMM, in.ISGDMM)
	}
	if in.BcdMM <= 0 {
		ve.Add("bcd_mm", "must be positive, got %g", in.BcdMM)
	}
	factors, gasketKnown := gasketFactors[in.Gasket]
	m, y := factors.M, factors.Y
	if in.MOverride > 0 {
		m = in.MOverride
	}
	if in.YOverride > 0 {
		y = in.YOverride
	}
	if !gasketKnown && (m <= 0 || y <= 0) {
		ve.Add("gasket", "unknown gasket %q and no m/y overrides", in.Gasket)
	}
	if in.AllowableMPa <= 0 {
		ve.Add("allowable_mpa", "must be positive, got %g", in.AllowableMPa)
	}
	if err := ve.OrNil(); err != nil {
		return DC006Result{}, err
	}

	n := (in.ESGDMM - in.ISGDMM) / 2
	b0 := n / 2
	b := b0
	g := in.ESGDMM - 2*b

	h := math.Pi / 4 * g * g * pressure
	hp := 2 * b * math.Pi * g * m * pressure
	wm1 := h + hp
	wm2 := math.Pi * b * g * y

	k := 2 / math.Pi * (1 - 0.67*in.ESGDMM/in.BcdMM)
	sf1 := k * wm1 / (in.FTMM * in.FTMM)
	sf2 := k * wm2 / (in.FTMM * in.FTMM)
	sf := max(sf1, sf2)

	return DC006Result{
		NMM:    n,
		B0MM:   b0,
		BMM:    b,
		GMM:    g,
		HN:     h,
		HpN:    hp,
		Wm1N:   wm1,
		Wm2N:   wm2,
		K:      k,
		Sf1MPa: sf1,
		Sf2MPa: sf2,
		SfMPa:  sf,
		Check:  verdictOf(sf <= in.AllowableMPa),
	}, nil
}
