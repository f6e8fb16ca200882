package calc

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC008Input is the ball sizing sheet.
type DC008Input struct {
	Class    int     `json:"asme_class"`
	DBallMM  float64 `json:"d_ball_mm"`
	BoreMM   float64 `json:"b_mm"`
	HMM      float64 `json:"h_mm"` // ball wall height at bore
	SyMPa    float64 `json:"sy_mpa"`
	PrMPa    float64 `json:"pr_mpa"` // rating pressure
	AlphaDeg float64 `json:"alpha_deg"`
}

// DC008Result reports the three ball sizing checks. St1a is nil when the
// net wall T = H - B/2 is not positive.
type DC008Result struct {
	Band          string   `json:"class_band"`
	ReqSyMPa      float64  `json:"req_sy_mpa"`
	ReqDiaRatio   float64  `json:"req_db_ratio"`
	TMM           float64  `json:"t_mm"`
	DiaRatio      float64  `json:"db_ratio"`
	St1aMPa       *float64 `json:"st1a_mpa,omitempty"`
	AllowableMPa  float64  `json:"allowable_mpa"` // 2/3 * Sy
	YieldCheck    Verdict  `json:"yield_check"`
	DiaRatioCheck Verdict  `json:"ratio_check"`
	StressCheck   Verdict  `json:"stress_check"`
	Check         Verdict  `json:"check"`
}

// DefaultDC008Input returns the sheet defaults.
func DefaultDC008Input() DC008Input {
	return DC008Input{
		Class:    600,
		DBallMM:  88.95,
		BoreMM:   51,
		HMM:      32.5,
		SyMPa:    205,
		PrMPa:    10.21,
		AlphaDeg: 45,
	}
}

// ComputeDC008 checks the ball yield strength and diameter ratio against
// the class band requirements and the wall stress
// St1a = Pr*(0.5*B/T + 0.6) against 2/3 of the yield.
func ComputeDC008(in DC008Input) (DC008Result, error) {
	var ve domain.ValidationError
	if in.Class <= 0 {
		ve.Add("asme_class", "must be positive, got %d", in.Class)
	}
	if in.DBallMM <= 0 {
		ve.Add("d_ball_mm", "must be positive, got %g", in.DBallMM)
	}
	if in.BoreMM <= 0 {
		ve.Add("b_mm", "must be positive, got %g", in.BoreMM)
	}
	if in.HMM <= 0 {
		ve.Add("h_mm", "must be positive, got %g", in.HMM)
	}
	if in.SyMPa <= 0 {
		ve.Add("sy_mpa", "must be positive, got %g", in.SyMPa)
	}
	if in.PrMPa <= 0 {
		ve.Add("pr_mpa", "must be positive, got %g", in.PrMPa)
	}
	if err := ve.OrNil(); err != nil {
		return DC008Result{}, err
	}

	band := ballClassBand(in.Class)
	res := DC008Result{
		Band:         band,
		ReqSyMPa:     ballRequiredYieldMPa[band],
		ReqDiaRatio:  ballRequiredDiaRatio[band],
		TMM:          in.HMM - in.BoreMM/2,
		DiaRatio:     in.DBallMM / in.BoreMM,
		AllowableMPa: 2.0 / 3.0 * in.SyMPa,
	}
	res.YieldCheck = verdictOf(in.SyMPa >= res.ReqSyMPa)
	res.DiaRatioCheck = verdictOf(res.DiaRatio >= res.ReqDiaRatio)

	if res.TMM > 0 {
		st1a := in.PrMPa * (0.5*(in.BoreMM/res.TMM) + 0.6)
		res.St1aMPa = &st1a
		res.StressCheck = verdictOf(st1a <= res.AllowableMPa)
	} else {
		res.StressCheck = NotVerified
	}
	res.Check = verdictOf(res.YieldCheck.OK() && res.DiaRatioCheck.OK() && res.StressCheck.OK())
	return res, nil
}
