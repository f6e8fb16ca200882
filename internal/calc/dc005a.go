package calc

import "math"

// DC005AInput is the gland flange bolting sheet at hydrostatic test
// conditions (1.5x pressure, allowable 0.83*Sy).
type DC005AInput struct {
	GMM      float64 `json:"g_mm"`
	GStemMM  float64 `json:"gstem_mm"`
	PaMPa    float64 `json:"pa_mpa"` // rating pressure; the test applies 1.5x
	NBolts   int     `json:"n_bolts"`
	Material string  `json:"bolt_material"`
}

// DC005AResult mirrors DC005Result with the test-condition figures.
type DC005AResult struct {
	TestPressureMPa float64    `json:"pa_test_mpa"`
	RingAreaMM2     float64    `json:"ring_area_mm2"`
	HN              float64    `json:"h_n"`
	Sizing          BoltSizing `json:"sizing"`
}

// DefaultDC005AInput returns the sheet defaults.
func DefaultDC005AInput() DC005AInput {
	return DC005AInput{
		GMM:      64.5,
		GStemMM:  27.85,
		PaMPa:    10.21,
		NBolts:   6,
		Material: "A193 B7",
	}
}

// ComputeDC005A runs the DC005 chain at 1.5x pressure against 0.83*Sy.
func ComputeDC005A(in DC005AInput) (DC005AResult, error) {
	op := DC005Input(in)
	yield, err := validateGlandBolting(op, boltYieldMPa)
	if err != nil {
		return DC005AResult{}, err
	}

	paTest := 1.5 * in.PaMPa
	allowable := 0.83 * yield
	ringArea := math.Pi / 4 * (in.GMM*in.GMM - in.GStemMM*in.GStemMM)
	h := ringArea * paTest
	return DC005AResult{
		TestPressureMPa: paTest,
		RingAreaMM2:     ringArea,
		HN:              h,
		Sizing:          sizeBolts(h, allowable, in.NBolts, glandBolts),
	}, nil
}
