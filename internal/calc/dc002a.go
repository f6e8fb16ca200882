package calc

// DC002AInput is the body-closure bolting sheet at hydrostatic test
// conditions: test pressure is 1.5x the rating and the bolt allowable is
// taken as 0.83 of the material's yield strength.
type DC002AInput struct {
	GMM      float64 `json:"g_mm"`
	PaMPa    float64 `json:"pa_mpa"` // rating pressure; the test applies 1.5x
	NBolts   int     `json:"n_bolts"`
	Material string  `json:"bolt_material"`
}

// DC002AResult mirrors DC002Result with the test-condition figures.
type DC002AResult struct {
	TestPressureMPa float64    `json:"pa_test_mpa"`
	HN              float64    `json:"h_n"`
	Sizing          BoltSizing `json:"sizing"`
}

// DefaultDC002AInput returns the sheet defaults.
func DefaultDC002AInput() DC002AInput {
	return DC002AInput{
		GMM:      122.7,
		PaMPa:    10.21,
		NBolts:   6,
		Material: "A193 B7M",
	}
}

// ComputeDC002A runs the DC002 chain at 1.5x pressure against 0.83*Sy.
func ComputeDC002A(in DC002AInput) (DC002AResult, error) {
	yield, err := validateClosureBolting(in.GMM, in.PaMPa, in.NBolts, in.Material, boltYieldMPa)
	if err != nil {
		return DC002AResult{}, err
	}

	paTest := 1.5 * in.PaMPa
	allowable := 0.83 * yield
	h := 0.785 * in.GMM * in.GMM * paTest
	return DC002AResult{
		TestPressureMPa: paTest,
		HN:              h,
		Sizing:          sizeBolts(h, allowable, in.NBolts, closureBolts),
	}, nil
}
