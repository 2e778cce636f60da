package turbomap

import (
	"fmt"
	"math"
)

// SpeedLineTable holds parsed map data: one row per corrected-speed value,
// each row carrying parallel corrected-flow, pressure-ratio and efficiency
// samples along that speed line. Tables are immutable after construction;
// scaling always produces a new ScaledMap and never touches the source.
type SpeedLineTable struct {
	speeds []float64
	flow   [][]float64
	pr     [][]float64
	eta    [][]float64
}

// NewSpeedLineTable validates and deep-copies the given map data. It fails
// with MalformedMapError when the outer or per-line sequence lengths are
// mismatched, when no speed line is present, or when any value is NaN or
// infinite. Per-line sample counts may differ between lines.
func NewSpeedLineTable(speeds []float64, flow, pr, eta [][]float64) (*SpeedLineTable, error) {
	if len(speeds) == 0 {
		return nil, &MalformedMapError{Reason: "no speed lines"}
	}
	if len(flow) != len(speeds) || len(pr) != len(speeds) || len(eta) != len(speeds) {
		return nil, &MalformedMapError{Reason: fmt.Sprintf(
			"speed-line count mismatch: %d speeds, %d flow, %d pr, %d eta lines",
			len(speeds), len(flow), len(pr), len(eta))}
	}
	for i, s := range speeds {
		if !isFinite(s) {
			return nil, &MalformedMapError{Reason: fmt.Sprintf("speed line %d: non-finite speed value %v", i, s)}
		}
		if len(flow[i]) != len(pr[i]) || len(flow[i]) != len(eta[i]) {
			return nil, &MalformedMapError{Reason: fmt.Sprintf(
				"speed line %d: sample count mismatch: flow=%d pr=%d eta=%d",
				i, len(flow[i]), len(pr[i]), len(eta[i]))}
		}
		if len(flow[i]) == 0 {
			return nil, &MalformedMapError{Reason: fmt.Sprintf("speed line %d: no samples", i)}
		}
		for _, seq := range []struct {
			name string
			vals []float64
		}{{"flow", flow[i]}, {"pressure-ratio", pr[i]}, {"efficiency", eta[i]}} {
			for j, v := range seq.vals {
				if !isFinite(v) {
					return nil, &MalformedMapError{Reason: fmt.Sprintf(
						"speed line %d: non-finite %s sample %v at index %d", i, seq.name, v, j)}
				}
			}
		}
	}
	return &SpeedLineTable{
		speeds: append([]float64(nil), speeds...),
		flow:   copyLines(flow),
		pr:     copyLines(pr),
		eta:    copyLines(eta),
	}, nil
}

// LineCount returns the number of speed lines.
func (t *SpeedLineTable) LineCount() int { return len(t.speeds) }

// SpeedValue returns the corrected-speed value of line i.
// It panics when i is out of [0, LineCount()).
func (t *SpeedLineTable) SpeedValue(i int) float64 {
	t.mustIndex(i)
	return t.speeds[i]
}

// FlowValues returns a copy of the corrected-flow samples of line i.
func (t *SpeedLineTable) FlowValues(i int) []float64 {
	t.mustIndex(i)
	return append([]float64(nil), t.flow[i]...)
}

// PressureRatioValues returns a copy of the pressure-ratio samples of line i.
func (t *SpeedLineTable) PressureRatioValues(i int) []float64 {
	t.mustIndex(i)
	return append([]float64(nil), t.pr[i]...)
}

// EfficiencyValues returns a copy of the efficiency samples of line i.
func (t *SpeedLineTable) EfficiencyValues(i int) []float64 {
	t.mustIndex(i)
	return append([]float64(nil), t.eta[i]...)
}

// SampleCount returns the number of samples along line i.
func (t *SpeedLineTable) SampleCount(i int) int {
	t.mustIndex(i)
	return len(t.flow[i])
}

func (t *SpeedLineTable) mustIndex(i int) {
	if i < 0 || i >= len(t.speeds) {
		panic(fmt.Sprintf("turbomap: speed line index %d out of range [0,%d)", i, len(t.speeds)))
	}
}

func copyLines(lines [][]float64) [][]float64 {
	out := make([][]float64, len(lines))
	for i, l := range lines {
		out[i] = append([]float64(nil), l...)
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
