package calc

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC0071Input is the body wall thickness sheet (ASME B16.34).
type DC0071Input struct {
	NPS                  float64 `json:"nps_in"`
	Class                int     `json:"asme_class"`
	BodyIDMM             float64 `json:"body_id_mm"`
	TBodyMM              float64 `json:"t_body_mm"`
	TBodyTopMM           float64 `json:"t_body_top_mm"`
	CorrosionAllowanceMM float64 `json:"corrosion_allowance_mm"`
}

// DC0071Result checks the actual body walls against the B16.34 minimum,
// bare and with corrosion allowance added.
type DC0071Result struct {
	TmMM        float64 `json:"tm_mm"`
	TmCAMM      float64 `json:"tm_ca_mm"`
	BodyCheck   Verdict `json:"body_check"`
	TopCheck    Verdict `json:"top_check"`
	BodyCACheck Verdict `json:"body_ca_check"`
	TopCACheck  Verdict `json:"top_ca_check"`
	Check       Verdict `json:"check"`
}

// DefaultDC0071Input returns the sheet defaults.
func DefaultDC0071Input() DC0071Input {
	return DC0071Input{
		NPS:                  2.0,
		Class:                600,
		BodyIDMM:             98,
		TBodyMM:              43.5,
		TBodyTopMM:           34,
		CorrosionAllowanceMM: 3,
	}
}

// ComputeDC0071 looks up the B16.34 minimum wall for (NPS, class) and
// verifies both wall sections. The overall verdict requires all four
// checks.
func ComputeDC0071(in DC0071Input) (DC0071Result, error) {
	var ve domain.ValidationError
	if in.NPS <= 0 {
		ve.Add("nps_in", "must be positive, got %g", in.NPS)
	}
	if in.Class <= 0 {
		ve.Add("asme_class", "must be positive, got %d", in.Class)
	}
	if in.TBodyMM <= 0 {
		ve.Add("t_body_mm", "must be positive, got %g", in.TBodyMM)
	}
	if in.TBodyTopMM <= 0 {
		ve.Add("t_body_top_mm", "must be positive, got %g", in.TBodyTopMM)
	}
	if in.CorrosionAllowanceMM < 0 {
		ve.Add("corrosion_allowance_mm", "must not be negative, got %g", in.CorrosionAllowanceMM)
	}
	if err := ve.OrNil(); err != nil {
		return DC0071Result{}, err
	}

	tm, ok := b1634MinWallMM[npsClass{in.NPS, in.Class}]
	if !ok {
		tm = defaultB1634MinWallMM
	}
	tmCA := tm + in.CorrosionAllowanceMM

	res := DC0071Result{
		TmMM:        tm,
		TmCAMM:      tmCA,
		BodyCheck:   verdictOf(in.TBodyMM >= tm),
		TopCheck:    verdictOf(in.TBodyTopMM >= tm),
		BodyCACheck: verdictOf(in.TBodyMM >= tmCA),
		TopCACheck:  verdictOf(in.TBodyTopMM >= tmCA),
	}
	res.Check = verdictOf(res.BodyCheck.OK() && res.TopCheck.OK() &&
		res.BodyCACheck.OK() && res.TopCACheck.OK())
	return res, nil
}

// DC0072Input is the body openings reinforcement sheet. TmMM normally comes
// from the DC007-1 minimum wall with corrosion allowance.
type DC0072Input struct {
	TmMM     float64 `json:"tm_mm"`
	FPrimeMM float64 `json:"f_prime_mm"`  // wall section f'
	FGMM     float64 `json:"fg_prime_mm"` // combined section f' + g'
	EMM      float64 `json:"e_mm"`        // edge section e
}

// DC0072Result verifies the opening sections against fractions of tm.
type DC0072Result struct {
	ReqFMM  float64 `json:"req_f_mm"`
	ReqFGMM float64 `json:"req_fg_mm"`
	ReqEMM  float64 `json:"req_e_mm"`
	FCheck  Verdict `json:"f_check"`
	FGCheck Verdict `json:"fg_check"`
	ECheck  Verdict `json:"e_check"`
	Check   Verdict `json:"check"`
}

// DefaultDC0072Input returns the sheet defaults (tm = 12.7 + 3 mm CA).
func DefaultDC0072Input() DC0072Input {
	return DC0072Input{
		TmMM:     15.7,
		FPrimeMM: 14.1,
		FGMM:     27.8,
		EMM:      20.7,
	}
}

// ComputeDC0072 requires f' >= 0.25*tm, f'+g' >= 1.00*tm and e >= 0.25*tm.
func ComputeDC0072(in DC0072Input) (DC0072Result, error) {
	var ve domain.ValidationError
	if in.TmMM <= 0 {
		ve.Add("tm_mm", "must be positive, got %g", in.TmMM)
	}
	if in.FPrimeMM <= 0 {
		ve.Add("f_prime_mm", "must be positive, got %g", in.FPrimeMM)
	}
	if in.FGMM <= 0 {
		ve.Add("fg_prime_mm", "must be positive, got %g", in.FGMM)
	}
	if in.EMM <= 0 {
		ve.Add("e_mm", "must be positive, got %g", in.EMM)
	}
	if err := ve.OrNil(); err != nil {
		return DC0072Result{}, err
	}

	res := DC0072Result{
		ReqFMM:  0.25 * in.TmMM,
		ReqFGMM: 1.00 * in.TmMM,
		ReqEMM:  0.25 * in.TmMM,
	}
	res.FCheck = verdictOf(in.FPrimeMM >= res.ReqFMM)
	res.FGCheck = verdictOf(in.FGMM >= res.ReqFGMM)
	res.ECheck = verdictOf(in.EMM >= res.ReqEMM)
	res.Check = verdictOf(res.FCheck.OK() && res.FGCheck.OK() && res.ECheck.OK())
	return res, nil
}
