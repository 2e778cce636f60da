package turbomap

import "fmt"

// MalformedMapError reports a structurally invalid map source: mismatched
// per-line sequence lengths, an empty speed-line set, or non-finite samples.
// Construction of a SpeedLineTable (or parsing a map file) fails with this
// error and the caller must not proceed to scale or render.
type MalformedMapError struct {
	Line   int // 1-based line in the source file when known, 0 otherwise
	Reason string
}

func (e *MalformedMapError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed map (line %d): %s", e.Line, e.Reason)
	}
	return "malformed map: " + e.Reason
}

// InvalidScaleFactorError reports a scale factor that is zero, negative or
// non-finite. Such factors are physically meaningless and are rejected
// outright rather than clamped or substituted.
type InvalidScaleFactorError struct {
	Axis  string
	Value float64
}

func (e *InvalidScaleFactorError) Error() string {
	return fmt.Sprintf("invalid %s scale factor %v: must be finite and > 0", e.Axis, e.Value)
}

// ShapeMismatchError reports overlay data whose flow, pressure-ratio and
// efficiency sequences disagree in length. It is fatal only to the overlay
// operation that received the data; previously rendered state is unaffected.
type ShapeMismatchError struct {
	FlowLen, PRLen, EtaLen int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("overlay shape mismatch: flow=%d pr=%d eta=%d values", e.FlowLen, e.PRLen, e.EtaLen)
}
