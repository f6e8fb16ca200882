package calc

import (
	"math"

	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC010Input is the break-to-open torque sheet (single piston effect).
type DC010Input struct {
	PoMPa    float64 `json:"po_mpa"`    // operating pressure
	DBallMM  float64 `json:"d_ball_mm"` // ball diameter
	DcMM     float64 `json:"dc_mm"`     // external seal diameter
	DmMM     float64 `json:"dm_mm"`     // contact diameter
	DbMM     float64 `json:"db_mm"`     // ball bushing diameter
	B1MM     float64 `json:"b1_mm"`     // seat friction radius
	PrN      float64 `json:"pr_n"`      // spring force per spring
	NSprings int     `json:"nma"`
	F1       float64 `json:"f1"` // friction ball/bushing
	F2       float64 `json:"f2"` // friction ball/seat
}

// DC010Result breaks the total torque into its three contributions [N*m].
type DC010Result struct {
	FbN     float64 `json:"fb_n"`
	MtbNm   float64 `json:"mtb_nm"`
	FmN     float64 `json:"fm_n"`
	MtmNm   float64 `json:"mtm_nm"`
	FiN     float64 `json:"fi_n"`
	MtiNm   float64 `json:"mti_nm"`
	Tbb1Nm  float64 `json:"tbb1_nm"`
}

// DefaultDC010Input returns the sheet defaults. Pressure, diameters, spring
// force and count normally come from Valve Data, DC008, DC001A and DC001.
func DefaultDC010Input() DC010Input {
	return DC010Input{
		PoMPa:    10.21,
		DBallMM:  88.95,
		DcMM:     71.0,
		DmMM:     62.3,
		DbMM:     40,
		B1MM:     31.74,
		PrN:      787.1,
		NSprings: 1,
		F1:       0.03,
		F2:       0.15,
	}
}

// ComputeDC010 sums the torque from differential pressure on the ball hubs,
// the spring load on two seats and the piston effect.
func ComputeDC010(in DC010Input) (DC010Result, error) {
	var ve domain.ValidationError
	if in.PoMPa <= 0 {
		ve.Add("po_mpa", "must be positive, got %g", in.PoMPa)
	}
	if in.DBallMM <= 0 {
		ve.Add("d_ball_mm", "must be positive, got %g", in.DBallMM)
	}
	if in.DmMM <= 0 || in.DcMM < in.DmMM {
		ve.Add("dc_mm", "need Dc >= Dm > 0, got Dc=%g Dm=%g", in.DcMM, in.DmMM)
	}
	if in.DbMM <= 0 {
		ve.Add("db_mm", "must be positive, got %g", in.DbMM)
	}
	if in.PrN <= 0 {
		ve.Add("pr_n", "must be positive, got %g", in.PrN)
	}
	if in.NSprings < 1 {
		ve.Add("nma", "must be at least 1, got %d", in.NSprings)
	}
	if in.F1 <= 0 {
		ve.Add("f1", "must be positive, got %g", in.F1)
	}
	if in.F2 <= 0 {
		ve.Add("f2", "must be positive, got %g", in.F2)
	}
	if err := ve.OrNil(); err != nil {
		return DC010Result{}, err
	}

	fb := math.Pi * in.DcMM * in.DcMM / 4 * in.PoMPa
	mtb := fb * in.F1 * in.DbMM / 2 // N*mm

	fm := in.PrN * float64(in.NSprings)
	mtm := 2 * fm * in.F2 * 0.91 * (in.DBallMM / 2)

	fi := math.Pi * (in.DcMM*in.DcMM - in.DmMM*in.DmMM) / 4 * in.PoMPa
	mti := fi * in.F2 * 0.91 * (in.DBallMM / 2)

	return DC010Result{
		FbN:    fb,
		MtbNm:  mtb / 1000,
		FmN:    fm,
		MtmNm:  mtm / 1000,
		FiN:    fi,
		MtiNm:  mti / 1000,
		Tbb1Nm: (mtb + mtm + mti) / 1000,
	}, nil
}
