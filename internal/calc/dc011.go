package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC011Input is the flow coefficient sheet.
type DC011Input struct {
	InnerBoreMM float64 `json:"inner_bore_mm"`
	SeatBoreMM  float64 `json:"seat_bore_mm"`
	ThetaDeg    float64 `json:"theta_deg"`     // tapering angle
	TaperLenMM  float64 `json:"taper_len_mm"`  // ignored when theta is zero
	NPS         float64 `json:"nps_in"`        // selects friction factor f_t
	K1          float64 `json:"k1"`            // resistance coeff, straight bore
	K2          float64 `json:"k2"`            // resistance coeff, tapered bore
}

// DC011Result reports the resistance build-up and Cv (gpm at 1 psi, water).
type DC011Result struct {
	Beta     float64 `json:"beta"`
	ThetaRad float64 `json:"theta_rad"`
	Ft       float64 `json:"ft"`
	KLocal   float64 `json:"k_local"`
	KFric    float64 `json:"k_fric"`
	KTotal   float64 `json:"k_total"`
	DIn      float64 `json:"d_in"`
	Cv       float64 `json:"cv_gpm_at_1psi"`
}

// DefaultDC011Input returns the sheet defaults for a 2in full bore.
func DefaultDC011Input() DC011Input {
	return DC011Input{
		InnerBoreMM: 51,
		SeatBoreMM:  51,
		ThetaDeg:    0,
		NPS:         2.0,
		K1:          0.057,
		K2:          0.057,
	}
}

// ComputeDC011 evaluates Cv = 29.9*d_in^2/sqrt(K). The local coefficient is
// K1 for a straight bore and K2 for a tapered one; taper friction
// f_t*(L/D) is added only when the taper has both angle and length.
func ComputeDC011(in DC011Input) (DC011Result, error) {
	var ve domain.ValidationError
	if in.InnerBoreMM <= 0 {
		ve.Add("inner_bore_mm", "must be positive, got %g", in.InnerBoreMM)
	}
	if in.SeatBoreMM <= 0 {
		ve.Add("seat_bore_mm", "must be positive, got %g", in.SeatBoreMM)
	}
	if in.ThetaDeg < 0 {
		ve.Add("theta_deg", "must not be negative, got %g", in.ThetaDeg)
	}
	if in.TaperLenMM < 0 {
		ve.Add("taper_len_mm", "must not be negative, got %g", in.TaperLenMM)
	}
	ft, ok := frictionFactorFor(in.NPS)
	if !ok {
		ve.Add("nps_in", "no friction factor tabulated for NPS %g", in.NPS)
	}
	if in.K1 <= 0 {
		ve.Add("k1", "must be positive, got %g", in.K1)
	}
	if in.K2 <= 0 {
		ve.Add("k2", "must be positive, got %g", in.K2)
	}
	if err := ve.OrNil(); err != nil {
		return DC011Result{}, err
	}

	kLocal := in.K1
	if in.ThetaDeg != 0 {
		kLocal = in.K2
	}
	kFric := 0.0
	if in.ThetaDeg > 0 && in.TaperLenMM > 0 {
		kFric = ft * (in.TaperLenMM / in.InnerBoreMM)
	}
	kTotal := kLocal + kFric

	dIn := in.InnerBoreMM / 25.4
	return DC011Result{
		Beta:     in.SeatBoreMM / in.InnerBoreMM,
		ThetaRad: in.ThetaDeg * math.Pi / 180,
		Ft:       ft,
		KLocal:   kLocal,
		KFric:    kFric,
		KTotal:   kTotal,
		DIn:      dIn,
		Cv:       29.9 * dIn * dIn / math.Sqrt(kTotal),
	}, nil
}
