package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC001Input is the seat spring and seat insert sheet.
type DC001Input struct {
	// Spring check.
	DmMM    float64 `json:"dm_mm"`  // ball/seat contact diameter
	QNPerMM float64 `json:"q_n_mm"` // load per length unit
	Z       float64 `json:"z"`      // correction factor
	PN      float64 `json:"p_n"`    // load at theoric packing, per spring
	F       float64 `json:"f_mm"`   // theoric spring arrow
	// NSprings overrides the computed spring count when positive.
	NSprings int `json:"nma,omitempty"`

	// Seat insert check.
	InsertMaterial string  `json:"insert_material"`
	DeMM           float64 `json:"de_mm"` // external insert diameter
	DiMM           float64 `json:"di_mm"` // internal insert diameter
	DcMM           float64 `json:"dc_mm"` // seat/closure seal diameter
	PaMPa          float64 `json:"pa_mpa"`
}

// DC001Result carries both the spring check and the insert check.
type DC001Result struct {
	FmN         float64 `json:"fm_n"`  // theoric spring load
	Nm          float64 `json:"nm"`    // springs requested
	PrN         float64 `json:"pr_n"`  // load at real packing
	Nmr         float64 `json:"nmr"`   // springs real
	NSprings    int     `json:"nma"`   // springs in the project
	C1Effective float64 `json:"c1_effective"`
	SpringCheck Verdict `json:"spring_check"`

	DcsMM     float64 `json:"dcs_mm"` // insert medium diameter
	FN        float64 `json:"f_n"`    // linear load on insert
	QMPa      float64 `json:"q_mpa"`  // insert resistance
	YMaxMPa   float64 `json:"y_max_mpa"`
	SeatCheck Verdict `json:"seat_check"`
}

// DefaultDC001Input returns the sheet defaults. PaMPa normally comes from
// the Valve Data sheet's operating pressure.
func DefaultDC001Input() DC001Input {
	return DC001Input{
		DmMM:           62.3,
		QNPerMM:        2.5,
		Z:              1.0,
		PN:             1020,
		F:              2.19,
		InsertMaterial: "PTFE",
		DeMM:           66.74,
		DiMM:           57.86,
		DcMM:           62.3,
		PaMPa:          10.21,
	}
}

// ComputeDC001 runs the spring load check (VERIFIED when the real packing
// load Pr reaches the theoric load Fm) and the seat insert resistance check
// (OK when the specific load Q stays below the material's Y_max).
func ComputeDC001(in DC001Input) (DC001Result, error) {
	var ve domain.ValidationError
	if in.DmMM <= 0 {
		ve.Add("dm_mm", "must be positive, got %g", in.DmMM)
	}
	if in.QNPerMM <= 0 {
		ve.Add("q_n_mm", "must be positive, got %g", in.QNPerMM)
	}
	if in.Z <= 0 {
		ve.Add("z", "must be positive, got %g", in.Z)
	}
	if in.PN <= 0 {
		ve.Add("p_n", "must be positive, got %g", in.PN)
	}
	if in.F <= 0.5 {
		ve.Add("f_mm", "must exceed 0.5 mm, got %g", in.F)
	}
	yMax, matKnown := seatInsertMaxQ[in.InsertMaterial]
	if !matKnown {
		ve.Add("insert_material", "unknown material %q", in.InsertMaterial)
	}
	if in.DiMM <= 0 || in.DeMM <= in.DiMM {
		ve.Add("de_mm", "need De > Di > 0, got De=%g Di=%g", in.DeMM, in.DiMM)
	}
	if in.DcMM <= 0 {
		ve.Add("dc_mm", "must be positive, got %g", in.DcMM)
	}
	if in.PaMPa <= 0 {
		ve.Add("pa_mpa", "must be positive, got %g", in.PaMPa)
	}
	if in.NSprings < 0 {
		ve.Add("nma", "must not be negative, got %d", in.NSprings)
	}
	if err := ve.OrNil(); err != nil {
		return DC001Result{}, err
	}

	fm := math.Pi * in.DmMM * in.QNPerMM * in.Z
	nm := fm / in.PN
	pr := in.PN * (in.F - 0.5) / in.F
	nmr := fm / pr

	nSprings := in.NSprings
	if nSprings == 0 {
		nSprings = max(1, int(math.Ceil(nmr)))
	}

	res := DC001Result{
		FmN:         fm,
		Nm:          nm,
		PrN:         pr,
		Nmr:         nmr,
		NSprings:    nSprings,
		C1Effective: pr / (math.Pi * in.DmMM),
		SpringCheck: verdictOf(pr >= fm),
	}

	dcs := (in.DeMM + 2*in.DiMM) / 3
	mean := (in.DeMM + in.DiMM) / 2
	f := (in.DcMM*in.DcMM-mean*mean)*1.1*in.PaMPa*math.Pi/4 + pr
	q := f * 4 / ((in.DeMM*in.DeMM - in.DiMM*in.DiMM) * math.Pi)

	res.DcsMM = dcs
	res.FN = f
	res.QMPa = q
	res.YMaxMPa = yMax
	res.SeatCheck = verdictOf(q < yMax)
	return res, nil
}
