package calc

// BoltSizing is the shared tail of the bolting sheets: given the total bolt
// load and the allowable stress, size the bolts from a catalog and verify
// the effective stress.
type BoltSizing struct {
	LoadN        float64 `json:"wm1_n"`      // total bolt load
	AmMM2        float64 `json:"am_mm2"`     // required total bolt area
	PerBoltMM2   float64 `json:"a_req_mm2"`  // required area per bolt
	Bolt         Bolt    `json:"bolt"`       // selected catalog bolt
	Fallback     bool    `json:"fallback"`   // no catalog bolt was large enough
	AbMM2        float64 `json:"ab_mm2"`     // actual total bolt area
	StressMPa    float64 `json:"sa_eff_mpa"` // effective bolt stress
	AllowableMPa float64 `json:"s_mpa"`
	Check        Verdict `json:"check"`
}

// sizeBolts picks the smallest catalog bolt whose tensile area covers the
// per-bolt requirement. When even the largest bolt is too small it is still
// selected and the result is flagged as a fallback.
func sizeBolts(loadN, allowableMPa float64, n int, catalog []Bolt) BoltSizing {
	am := loadN / allowableMPa
	perBolt := am / float64(n)

	chosen := catalog[len(catalog)-1]
	fallback := true
	for _, b := range catalog {
		if b.AreaMM >= perBolt {
			chosen = b
			fallback = false
			break
		}
	}

	ab := chosen.AreaMM * float64(n)
	stress := loadN / ab
	return BoltSizing{
		LoadN:        loadN,
		AmMM2:        am,
		PerBoltMM2:   perBolt,
		Bolt:         chosen,
		Fallback:     fallback,
		AbMM2:        ab,
		StressMPa:    stress,
		AllowableMPa: allowableMPa,
		Check:        verdictOf(stress <= allowableMPa),
	}
}
