package turbomap

import "fmt"

// ScaledMap is a presentation view of a SpeedLineTable with a ScaleFactors
// snapshot applied to every value: flow samples by the flow factor, pressure
// ratios by the pressure-ratio factor, efficiencies by the efficiency factor
// and the speed-line labels by the speed factor. The shape of the source
// table is preserved exactly; only magnitudes change. ScaledMap shares no
// state with the source table and is meant to be recomputed per render.
type ScaledMap struct {
	factors ScaleFactors
	speeds  []float64
	flow    [][]float64
	pr      [][]float64
	eta     [][]float64
	surge   *SurgeLine
}

// Apply produces the scaled view of table under factors. The operation is
// pure and deterministic; the source table is never mutated. An invalid
// (e.g. zero-value) ScaleFactors fails with InvalidScaleFactorError.
func Apply(table *SpeedLineTable, factors ScaleFactors) (*ScaledMap, error) {
	return ApplyWithSurge(table, nil, factors)
}

// ApplyWithSurge is Apply plus scaling of an optional compressor surge line
// (flow and pressure-ratio factors only, matching its two components).
func ApplyWithSurge(table *SpeedLineTable, surge *SurgeLine, factors ScaleFactors) (*ScaledMap, error) {
	if table == nil {
		return nil, fmt.Errorf("turbomap: nil table")
	}
	if err := factors.validate(); err != nil {
		return nil, err
	}
	n := table.LineCount()
	m := &ScaledMap{
		factors: factors,
		speeds:  make([]float64, n),
		flow:    make([][]float64, n),
		pr:      make([][]float64, n),
		eta:     make([][]float64, n),
	}
	for i := 0; i < n; i++ {
		m.speeds[i] = table.SpeedValue(i) * factors.speed
		m.flow[i] = scaleAll(table.FlowValues(i), factors.flow)
		m.pr[i] = scaleAll(table.PressureRatioValues(i), factors.pr)
		m.eta[i] = scaleAll(table.EfficiencyValues(i), factors.eta)
	}
	if surge != nil {
		m.surge = &SurgeLine{
			flow: scaleAll(surge.FlowValues(), factors.flow),
			pr:   scaleAll(surge.PressureRatioValues(), factors.pr),
		}
	}
	return m, nil
}

// LineCount returns the number of speed lines, identical to the source table.
func (m *ScaledMap) LineCount() int { return len(m.speeds) }

// SpeedValue returns the scaled corrected-speed label of line i.
func (m *ScaledMap) SpeedValue(i int) float64 {
	m.mustIndex(i)
	return m.speeds[i]
}

// FlowValues returns a copy of the scaled corrected-flow samples of line i.
func (m *ScaledMap) FlowValues(i int) []float64 {
	m.mustIndex(i)
	return append([]float64(nil), m.flow[i]...)
}

// PressureRatioValues returns a copy of the scaled pressure-ratio samples of line i.
func (m *ScaledMap) PressureRatioValues(i int) []float64 {
	m.mustIndex(i)
	return append([]float64(nil), m.pr[i]...)
}

// EfficiencyValues returns a copy of the scaled efficiency samples of line i.
func (m *ScaledMap) EfficiencyValues(i int) []float64 {
	m.mustIndex(i)
	return append([]float64(nil), m.eta[i]...)
}

// Surge returns the scaled surge line, or nil when the map has none.
func (m *ScaledMap) Surge() *SurgeLine { return m.surge }

// Factors returns the snapshot this view was produced with.
func (m *ScaledMap) Factors() ScaleFactors { return m.factors }

// Scaled reports whether non-identity factors were applied. Renders must
// label scaled and raw output differently; conflating the two has been a
// real defect in earlier map tooling.
func (m *ScaledMap) Scaled() bool { return !m.factors.IsIdentity() }

func (m *ScaledMap) mustIndex(i int) {
	if i < 0 || i >= len(m.speeds) {
		panic(fmt.Sprintf("turbomap: speed line index %d out of range [0,%d)", i, len(m.speeds)))
	}
}

func scaleAll(vals []float64, factor float64) []float64 {
	out := make([]float64, len(vals))
	for j, v := range vals {
		out[j] = v * factor
	}
	return out
}
