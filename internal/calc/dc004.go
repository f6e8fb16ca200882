package calc

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC004Input is the seat ring thickness sheet: the hoop equation at design
// and at hydrostatic test pressure.
type DC004Input struct {
	PMPa   float64 `json:"p_mpa"`  // design pressure
	DiMM   float64 `json:"di_mm"`  // seat ring inner diameter
	SaMPa  float64 `json:"sa_mpa"` // allowable at design temperature
	SmMPa  float64 `json:"sm_mpa"` // allowable at ambient (test)
	RealMM float64 `json:"real_t_mm"`
}

// DC004Result reports both required thicknesses. A nil thickness means the
// corresponding denominator 2*(S - 0.6*P) was not positive and no wall can
// satisfy the equation; the check then fails.
type DC004Result struct {
	TestPressureMPa float64  `json:"pt_mpa"`
	TDesignMM       *float64 `json:"t_design_mm,omitempty"`
	TTestMM         *float64 `json:"t_test_mm,omitempty"`
	RequiredMM      *float64 `json:"required_t_mm,omitempty"`
	RealMM          float64  `json:"real_t_mm"`
	Check           Verdict  `json:"check"`
}

// DefaultDC004Input returns the sheet defaults for an F316 seat ring.
func DefaultDC004Input() DC004Input {
	return DC004Input{
		PMPa:   10.21,
		DiMM:   51,
		SaMPa:  138,
		SmMPa:  138,
		RealMM: 6.90,
	}
}

// ComputeDC004 requires real thickness >= max of the design and test
// requirements, with test pressure PT = 1.1*P.
func ComputeDC004(in DC004Input) (DC004Result, error) {
	var ve domain.ValidationError
	if in.PMPa <= 0 {
		ve.Add("p_mpa", "must be positive, got %g", in.PMPa)
	}
	if in.DiMM <= 0 {
		ve.Add("di_mm", "must be positive, got %g", in.DiMM)
	}
	if in.SaMPa <= 0 {
		ve.Add("sa_mpa", "must be positive, got %g", in.SaMPa)
	}
	if in.SmMPa <= 0 {
		ve.Add("sm_mpa", "must be positive, got %g", in.SmMPa)
	}
	if in.RealMM <= 0 {
		ve.Add("real_t_mm", "must be positive, got %g", in.RealMM)
	}
	if err := ve.OrNil(); err != nil {
		return DC004Result{}, err
	}

	pt := 1.1 * in.PMPa
	res := DC004Result{
		TestPressureMPa: pt,
		RealMM:          in.RealMM,
	}
	if denom := 2 * (in.SaMPa - 0.6*in.PMPa); denom > 0 {
		t := in.PMPa * in.DiMM / denom
		res.TDesignMM = &t
	}
	if denom := 2 * (in.SmMPa - 0.6*pt); denom > 0 {
		t := pt * in.DiMM / denom
		res.TTestMM = &t
	}

	if res.TDesignMM == nil || res.TTestMM == nil {
		res.Check = NotVerified
		return res, nil
	}
	req := max(*res.TDesignMM, *res.TTestMM)
	res.RequiredMM = &req
	res.Check = verdictOf(in.RealMM >= req)
	return res, nil
}
