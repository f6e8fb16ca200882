package calc

// DC006AInput is the closure flange stress sheet at hydrostatic test
// conditions: same app.2 chain as DC006 run at 1.5x the rating pressure.
type DC006AInput struct {
	DC006Input
}

// DC006AResult adds the applied test pressure to the flange figures.
type DC006AResult struct {
	TestPressureMPa float64 `json:"pa_test_mpa"`
	DC006Result
}

// DefaultDC006AInput returns the sheet defaults.
func DefaultDC006AInput() DC006AInput {
	return DC006AInput{DC006Input: DefaultDC006Input()}
}

// ComputeDC006A evaluates the flange stress at 1.5x the rating pressure.
func ComputeDC006A(in DC006AInput) (DC006AResult, error) {
	paTest := 1.5 * in.PaMPa
	res, err := flangeStress(in.DC006Input, paTest)
	if err != nil {
		return DC006AResult{}, err
	}
	return DC006AResult{TestPressureMPa: paTest, DC006Result: res}, nil
}
