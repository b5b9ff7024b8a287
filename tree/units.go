package tree

// RecognizedUnits is the fixed list from spec §6. Number.Unit is either
// empty or one of these; the parser attaches no other suffix to a Number
// as its unit, leaving an unrecognized suffix for the next term.
var RecognizedUnits = map[string]bool{
	"%": true, "px": true, "em": true, "pc": true, "ex": true, "in": true,
	"deg": true, "ms": true, "pt": true, "cm": true, "mm": true, "ch": true,
	"rem": true, "vw": true, "vh": true, "vmin": true, "vmax": true, "vm": true,
	"grad": true, "rad": true, "fr": true, "gr": true, "Hz": true, "kHz": true,
	"dpi": true, "dpcm": true, "dppx": true, "s": true,
}

// unitClass groups units that can be converted into one another.
// Resolves the spec's open question on angle/length conversion: we
// implement a conversion table for five families (absolute length,
// angle, time, frequency, resolution) and reject any other mismatched
// pair with IncompatibleUnits rather than silently proceeding.
type unitClass int

const (
	classNone unitClass = iota
	classLength
	classAngle
	classTime
	classFrequency
	classResolution
	classOther
)

// unitTable gives each unit's family and a factor expressing one unit of
// it in terms of the family's canonical base unit (px for length, deg for angle, s for
// time, Hz for frequency, dpi for resolution).
var unitTable = map[string]struct {
	class  unitClass
	factor float64
}{
	"px": {classLength, 1},
	"cm": {classLength, 96.0 / 2.54},
	"mm": {classLength, 96.0 / 25.4},
	"in": {classLength, 96},
	"pt": {classLength, 96.0 / 72.0},
	"pc": {classLength, 16},

	"deg":  {classAngle, 1},
	"grad": {classAngle, 0.9},
	"rad":  {classAngle, 180 / 3.141592653589793},
	"turn": {classAngle, 360},

	"s":  {classTime, 1},
	"ms": {classTime, 0.001},

	"hz":  {classFrequency, 1},
	"khz": {classFrequency, 1000},

	"dpi":  {classResolution, 1},
	"dpcm": {classResolution, 2.54},
	"dppx": {classResolution, 96},
}

// ConvertUnit exposes convertUnit for the convert() builtin in the
// functions package, which needs the same length/angle/time/frequency/
// resolution conversion table Number.Operate and Condition.compareNodes
// already use.
func ConvertUnit(value float64, from, to string) (float64, bool) {
	return convertUnit(value, from, to)
}

func classifyUnit(u string) (unitClass, float64) {
	if u == "" {
		return classNone, 0
	}
	if e, ok := unitTable[u]; ok {
		return e.class, e.factor
	}
	if e, ok := unitTable[lower(u)]; ok {
		return e.class, e.factor
	}
	return classOther, 0
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 32
		}
	}
	return string(b)
}

// convertUnit converts value from unit `from` to unit `to`, returning ok
// = false when the two units are not members of the same convertible
// family (caller should then raise IncompatibleUnits).
func convertUnit(value float64, from, to string) (float64, bool) {
	if from == to {
		return value, true
	}
	cf, ff := classifyUnit(from)
	ct, ft := classifyUnit(to)
	if cf == classNone || ct == classNone || cf != ct || cf == classOther {
		return 0, false
	}
	base := value * ff
	return base / ft, true
}
