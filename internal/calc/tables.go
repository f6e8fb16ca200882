package calc

// Lookup tables shared by the calculation sheets. All values come from the
// engineering sheets (ASME B16.34, ASME VIII div.1 app.2, vendor catalogs)
// and are fixed at compile time.

// asmeRatingMPa maps ASME pressure class to rated pressure at ambient [MPa].
var asmeRatingMPa = map[int]float64{
	150:  2.55,
	300:  5.10,
	600:  10.20,
	900:  15.30,
	1500: 25.50,
	2500: 42.50,
}

// npsBoreMM maps nominal pipe size [in] to full bore diameter [mm].
// Sizes outside the table fall back to round(nps*25.4, 1).
var npsBoreMM = map[float64]float64{
	0.5:  15,
	0.75: 20,
	1.0:  25,
	1.5:  40,
	2.0:  51,
	3.0:  78,
	4.0:  102,
	6.0:  154,
	8.0:  202,
	10.0: 254,
	12.0: 303,
}

type npsClass struct {
	NPS   float64
	Class int
}

// faceToFaceMM maps (NPS, class) to ASME B16.10 face-to-face length [mm].
var faceToFaceMM = map[npsClass]float64{
	{2.0, 600}: 295,
}

// bodyAllowableMPa maps body material to allowable stress at ambient [MPa].
var bodyAllowableMPa = map[string]float64{
	"A350 LF2": 138,
	"SS316":    137,
	"Duplex":   240,
}

// seatInsertMaxQ maps seat insert material to max allowed specific load [MPa].
var seatInsertMaxQ = map[string]float64{
	"PTFE":            9,
	"PTFE Reinforced": 12,
	"NYLON 12 G":      60,
	"PCTFE (KELF)":    60,
	"PEEK":            90,
	"DELVON V":        60,
}

// Bolt defines one catalog bolt with its tensile stress area [mm^2].
type Bolt struct {
	Name   string  `json:"name"`
	AreaMM float64 `json:"area_mm2"`
}

// closureBolts is the body-closure bolt catalog (DC002/DC002A), ordered by
// increasing area. UNC areas are catalog in^2 values converted to mm^2.
var closureBolts = []Bolt{
	{`1/2" UNC`, 0.1599 * 645.16},
	{`5/8" UNC`, 0.2260 * 645.16},
	{"M16", 157},
	{`3/4" UNC`, 0.3340 * 645.16},
	{"M20", 245},
	{`7/8" UNC`, 0.4620 * 645.16},
	{"M24", 353},
	{`1" UNC`, 0.6060 * 645.16},
}

// glandBolts is the gland flange bolt catalog (DC005/DC005A).
var glandBolts = []Bolt{
	{"M10", 58},
	{"M12", 84.3},
	{`1/2" UNC`, 0.1599 * 645.16},
	{`5/8" UNC`, 0.2260 * 645.16},
	{"M16", 157},
	{`3/4" UNC`, 0.3340 * 645.16},
	{"M20", 245},
	{`7/8" UNC`, 0.4620 * 645.16},
	{"M24", 353},
	{`1" UNC`, 0.6060 * 645.16},
}

// closureBoltAllowableMPa maps closure bolt material to allowable stress [MPa].
var closureBoltAllowableMPa = map[string]float64{
	"A193 B7M": 138,
	"A193 B7":  172,
	"A320 L7":  138,
}

// boltYieldMPa maps bolt material to minimum yield strength [MPa], used by
// the hydrostatic test sheets (allowable = 0.83*Sy).
var boltYieldMPa = map[string]float64{
	"A193 B7M": 550,
	"A193 B7":  860,
	"A320 L7":  620,
}

// glandBoltAllowableMPa maps gland bolt material to allowable stress [MPa].
var glandBoltAllowableMPa = map[string]float64{
	"A193 B7":             172,
	"A193 B7M":            138,
	"A320 L7":             172,
	"A193 B16":            172,
	"A320 B8 d<18":        152,
	"A320 B8 20<=d<24":    159,
	"A320 B8 26<=d<30":    145,
	"A320 B8 d=32":        138,
	"A320 B8M d<18":       152,
	"A320 B8M 20<=d<24":   152,
	"A320 B8M 26<=d<30":   131,
	"A320 B8M d=32":       124,
	"A453 Gr.660A":        179,
}

// BearingLimits holds allowable bearing stresses [MPa] and the temperature
// limit [degC] for a trunnion bearing material.
type BearingLimits struct {
	StaticMPa  float64 `json:"static_mpa"`
	DynamicMPa float64 `json:"dynamic_mpa"`
	MaxTempC   float64 `json:"max_temp_c"`
}

var bearingMaterials = map[string]BearingLimits{
	"SS316 + FRICTION COATED":       {420, 140, 150},
	"INCONEL 625 + FRICTION COATED": {240, 140, 150},
	"MILD STEEL + FRICTION COATED":  {210, 140, 150},
	"INCONEL 625 HT":                {280, 140, 300},
	"SS316 HT":                      {240, 140, 300},
}

// GasketFactors holds the ASME app.2 gasket factor m and unit seating load y.
type GasketFactors struct {
	M float64 `json:"m"`
	Y float64 `json:"y_mpa"`
}

var gasketFactors = map[string]GasketFactors{
	"GRAPHITE": {2, 5},
	"PTFE":     {3, 14},
	"Non-asb.": {2.5, 7},
}

// b1634MinWallMM maps (NPS, class) to ASME B16.34 minimum wall thickness [mm].
var b1634MinWallMM = map[npsClass]float64{
	{2.0, 600}: 12.7,
}

// defaultB1634MinWallMM is used when the (NPS, class) pair is not tabulated.
const defaultB1634MinWallMM = 12.7

// ballClassBand maps an ASME class to its ball sizing requirement band.
func ballClassBand(class int) string {
	switch {
	case class <= 600:
		return "150-600"
	case class <= 900:
		return "900"
	case class <= 1500:
		return "1500"
	default:
		return "2500"
	}
}

// ballRequiredYieldMPa maps class band to minimum ball yield strength [MPa].
var ballRequiredYieldMPa = map[string]float64{
	"150-600": 170,
	"900":     205,
	"1500":    250,
	"2500":    300,
}

// ballRequiredDiaRatio maps class band to minimum ball-to-bore diameter ratio.
var ballRequiredDiaRatio = map[string]float64{
	"150-600": 1.50,
	"900":     1.55,
	"1500":    1.60,
	"2500":    1.70,
}

// pipeFrictionFactors is the turbulent friction factor f_t by nominal pipe
// size [in], from the Crane resistance tables. Ordered by size.
var pipeFrictionFactors = []struct {
	NPS float64
	Ft  float64
}{
	{0.50, 0.027}, {0.75, 0.025}, {1.00, 0.023}, {1.25, 0.022},
	{1.50, 0.021}, {2.00, 0.019}, {2.50, 0.018}, {3.00, 0.018},
	{4.00, 0.017}, {5.00, 0.016}, {6.00, 0.015}, {8.00, 0.014},
	{10.0, 0.014}, {12.0, 0.013}, {14.0, 0.013}, {16.0, 0.013},
	{18.0, 0.012}, {20.0, 0.012},
}

// frictionFactorFor returns f_t for the given NPS, false when not tabulated.
func frictionFactorFor(nps float64) (float64, bool) {
	for _, row := range pipeFrictionFactors {
		if row.NPS == nps {
			return row.Ft, true
		}
	}
	return 0, false
}

// EyeBolt describes one metric eye bolt row of the lifting lug sheet:
// tensile stress area [mm^2] and rated loads [kg] for axial (0 deg) and
// 45 deg lifting. A zero rated load means the catalog gives no rating.
type EyeBolt struct {
	Thread     string  `json:"thread"`
	AreaMM     float64 `json:"area_mm2"`
	RatedKg0   float64 `json:"rated_kg_0"`
	RatedKg45  float64 `json:"rated_kg_45"`
}

var eyeBolts = []EyeBolt{
	{"M8", 36, 140, 95},
	{"M10", 58, 230, 170},
	{"M12", 84, 340, 240},
	{"M16", 157, 700, 500},
	{"M20", 245, 1200, 830},
	{"M24", 353, 1800, 1270},
	{"M30", 561, 3600, 2600},
	{"M36", 817, 5100, 3700},
	{"M42", 1120, 7000, 5000},
	{"M48", 1470, 8600, 6100},
	{"M56", 2030, 0, 8300},
}

// LugMaterial holds lifting lug material properties [MPa].
type LugMaterial struct {
	TensileMPa   float64 `json:"tensile_mpa"`
	YieldMPa     float64 `json:"yield_mpa"`
	AllowableMPa float64 `json:"allowable_mpa"`
}

var lugMaterials = map[string]LugMaterial{
	"C15": {540, 295, 73.75},
}
