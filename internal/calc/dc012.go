package calc

import (
	"github.com/mkuznecov/valvecalc-backend/internal/domain"
)

// DC012Input is the lifting lug (eye bolt) sheet.
type DC012Input struct {
	MassKg   float64 `json:"mass_kg"`
	NBolts   int     `json:"n_bolts"`
	Thread   string  `json:"thread"`
	AngleDeg float64 `json:"angle_deg"` // 0 or 45
	Material string  `json:"lug_material"`
}

// DC012Result reports the rated load check and the tensile stress check.
type DC012Result struct {
	PerBoltKg    float64     `json:"per_bolt_kg"`
	RatedKg      float64     `json:"rated_kg"`
	RatedCheck   Verdict     `json:"rated_check"`
	StressMPa    float64     `json:"es_mpa"`
	Material     LugMaterial `json:"material"`
	StressCheck  Verdict     `json:"stress_check"`
	Check        Verdict     `json:"check"`
}

// DefaultDC012Input returns the sheet defaults.
func DefaultDC012Input() DC012Input {
	return DC012Input{
		MassKg:   41,
		NBolts:   4,
		Thread:   "M10",
		AngleDeg: 0,
		Material: "C15",
	}
}

// ComputeDC012 checks the per-bolt load against the catalog rating for the
// lifting angle and the tensile stress Es = m*g/(N*A) against the lug
// material allowable.
func ComputeDC012(in DC012Input) (DC012Result, error) {
	var ve domain.ValidationError
	if in.MassKg <= 0 {
		ve.Add("mass_kg", "must be positive, got %g", in.MassKg)
	}
	if in.NBolts < 1 {
		ve.Add("n_bolts", "must be at least 1, got %d", in.NBolts)
	}
	var bolt EyeBolt
	found := false
	for _, b := range eyeBolts {
		if b.Thread == in.Thread {
			bolt = b
			found = true
			break
		}
	}
	if !found {
		ve.Add("thread", "unknown thread %q", in.Thread)
	}
	if in.AngleDeg != 0 && in.AngleDeg != 45 {
		ve.Add("angle_deg", "must be 0 or 45, got %g", in.AngleDeg)
	}
	material, matKnown := lugMaterials[in.Material]
	if !matKnown {
		ve.Add("lug_material", "unknown material %q", in.Material)
	}
	rated := bolt.RatedKg0
	if in.AngleDeg == 45 {
		rated = bolt.RatedKg45
	}
	if found && rated == 0 {
		ve.Add("thread", "no catalog rating for %s at %g degrees", in.Thread, in.AngleDeg)
	}
	if err := ve.OrNil(); err != nil {
		return DC012Result{}, err
	}

	perBolt := in.MassKg / float64(in.NBolts)
	stress := in.MassKg * 9.81 / (float64(in.NBolts) * bolt.AreaMM)

	res := DC012Result{
		PerBoltKg:   perBolt,
		RatedKg:     rated,
		RatedCheck:  verdictOf(perBolt <= rated),
		StressMPa:   stress,
		Material:    material,
		StressCheck: verdictOf(stress <= material.AllowableMPa),
	}
	res.Check = verdictOf(res.RatedCheck.OK() && res.StressCheck.OK())
	return res, nil
}
