package turbomap

// DesignPoint is a single (Wc, PR, Eta) reference condition supplied by the
// cycle solver, in the map's native units.
type DesignPoint struct {
	Wc  float64
	PR  float64
	Eta float64
}

// OperatingCurve is a sequence of steady-state operating conditions supplied
// by the cycle solver. The three component sequences are parallel and the
// caller's ordering is preserved as-is: it defines the drawn path.
type OperatingCurve struct {
	Wc  []float64
	PR  []float64
	Eta []float64
}

// Validate fails with ShapeMismatchError when the component sequences
// disagree in length.
func (c *OperatingCurve) Validate() error {
	if len(c.Wc) != len(c.PR) || len(c.Wc) != len(c.Eta) {
		return &ShapeMismatchError{FlowLen: len(c.Wc), PRLen: len(c.PR), EtaLen: len(c.Eta)}
	}
	return nil
}

// Len returns the number of operating conditions.
func (c *OperatingCurve) Len() int { return len(c.Wc) }

// Overlay bundles the solver-supplied comparison data for one render call.
// Either member may be nil. The map and table objects never retain it.
type Overlay struct {
	DesignPoint *DesignPoint
	Curve       *OperatingCurve
}
