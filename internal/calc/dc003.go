package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC003Input is the trunnion bearing stress sheet.
type DC003Input struct {
	DbMM     float64 `json:"db_mm"` // bearing diameter
	HbMM     float64 `json:"hb_mm"` // bearing height
	DtMM     float64 `json:"dt_mm"` // trunnion seal diameter
	PMPa     float64 `json:"p_mpa"` // differential pressure
	Material string  `json:"bearing_material"`
}

// DC003Result reports the bearing stress against the material limits.
type DC003Result struct {
	SbMM2  float64       `json:"sb_mm2"` // projected bearing surface
	BBSMPa float64       `json:"bbs_mpa"`
	Limits BearingLimits `json:"limits"`
	Check  Verdict       `json:"check"`
}

// DefaultDC003Input returns the sheet defaults.
func DefaultDC003Input() DC003Input {
	return DC003Input{
		DbMM:     40,
		HbMM:     7,
		DtMM:     71,
		PMPa:     10.21,
		Material: "SS316 + FRICTION COATED",
	}
}

// ComputeDC003 evaluates BBS = pi*P*Dt^2 / (8*Sb) against the dynamic
// allowable of the bearing material.
func ComputeDC003(in DC003Input) (DC003Result, error) {
	var ve domain.ValidationError
	if in.DbMM <= 0 {
		ve.Add("db_mm", "must be positive, got %g", in.DbMM)
	}
	if in.HbMM <= 0 {
		ve.Add("hb_mm", "must be positive, got %g", in.HbMM)
	}
	if in.DtMM <= 0 {
		ve.Add("dt_mm", "must be positive, got %g", in.DtMM)
	}
	if in.PMPa <= 0 {
		ve.Add("p_mpa", "must be positive, got %g", in.PMPa)
	}
	limits, ok := bearingMaterials[in.Material]
	if !ok {
		ve.Add("bearing_material", "unknown material %q", in.Material)
	}
	if err := ve.OrNil(); err != nil {
		return DC003Result{}, err
	}

	sb := math.Pi * in.DbMM * in.HbMM
	bbs := math.Pi * in.PMPa * in.DtMM * in.DtMM / (8 * sb)
	return DC003Result{
		SbMM2:  sb,
		BBSMPa: bbs,
		Limits: limits,
		Check:  verdictOf(bbs <= limits.DynamicMPa),
	}, nil
}
