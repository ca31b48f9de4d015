package internal

// Defaults for automatic sizing. The ratio is an engineering constant, not a
// derived one: a pick contributing less than a tenth of the first pick's
// coverage is treated as redundant.
const (
	DefaultGainRatio = 0.1
	DefaultWindow    = 1
)

// SaturationPolicy controls when automatic selection stops. Selection ends
// once the marginal gain has stayed below GainRatio times the first pick's
// gain for Window consecutive picks; those trailing picks are dropped from
// the result.
type SaturationPolicy struct {
	GainRatio float64
	Window    int
}

func (p SaturationPolicy) normalized() SaturationPolicy {
	if p.GainRatio <= 0 {
		p.GainRatio = DefaultGainRatio
	}
	if p.Window < 1 {
		p.Window = DefaultWindow
	}
	return p
}

// saturationDetector tracks the decay of accepted marginal gains during one
// automatic selection call.
type saturationDetector struct {
	policy SaturationPolicy
	first  float64
	below  int
}

func newSaturationDetector(policy SaturationPolicy) *saturationDetector {
	return &saturationDetector{policy: policy.normalized()}
}

// observe records an accepted pick's gain and reports whether selection has
// saturated. The first pick establishes the baseline and never saturates.
func (d *saturationDetector) observe(gain float64) bool {
	if d.first == 0 {
		d.first = gain
		return false
	}

	if gain < d.policy.GainRatio*d.first {
		d.below++
	} else {
		d.below = 0
	}

	return d.below >= d.policy.Window
}

// trailing reports how many of the most recent picks were below threshold
// and should be trimmed from the result once saturation triggers.
func (d *saturationDetector) trailing() int {
	return d.below
}
