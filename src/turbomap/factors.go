package turbomap

// ScaleFactors is a snapshot of four independent multiplicative adjustments:
// corrected flow, pressure ratio, efficiency and corrected speed. Instances
// are immutable once built; producing a scaled versus unscaled view requires
// constructing a new ScaleFactors rather than mutating shared state. The
// zero value is deliberately invalid so an unconfigured snapshot cannot be
// mistaken for identity scaling.
type ScaleFactors struct {
	flow  float64
	pr    float64
	eta   float64
	speed float64
}

// NewScaleFactors builds a validated snapshot. Each factor must be finite
// and strictly positive; anything else fails with InvalidScaleFactorError.
func NewScaleFactors(flow, pr, eta, speed float64) (ScaleFactors, error) {
	for _, f := range []struct {
		axis string
		v    float64
	}{
		{"flow", flow},
		{"pressure-ratio", pr},
		{"efficiency", eta},
		{"speed", speed},
	} {
		if !isFinite(f.v) || f.v <= 0 {
			return ScaleFactors{}, &InvalidScaleFactorError{Axis: f.axis, Value: f.v}
		}
	}
	return ScaleFactors{flow: flow, pr: pr, eta: eta, speed: speed}, nil
}

// Identity returns the no-op scaling (all factors 1.0). An unscaled map
// rendered with Identity is value-identical to the raw table.
func Identity() ScaleFactors {
	return ScaleFactors{flow: 1, pr: 1, eta: 1, speed: 1}
}

func (f ScaleFactors) Flow() float64          { return f.flow }
func (f ScaleFactors) PressureRatio() float64 { return f.pr }
func (f ScaleFactors) Efficiency() float64    { return f.eta }
func (f ScaleFactors) Speed() float64         { return f.speed }

// IsIdentity reports whether every factor equals exactly 1.0.
func (f ScaleFactors) IsIdentity() bool {
	return f.flow == 1 && f.pr == 1 && f.eta == 1 && f.speed == 1
}

// validate re-checks the invariant so a zero-value ScaleFactors smuggled in
// without NewScaleFactors is caught at apply time.
func (f ScaleFactors) validate() error {
	_, err := NewScaleFactors(f.flow, f.pr, f.eta, f.speed)
	return err
}
