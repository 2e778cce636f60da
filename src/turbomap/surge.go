package turbomap

import "fmt"

// SurgeLine is the optional stability limit carried by compressor maps:
// parallel corrected-flow and pressure-ratio samples tracing the surge
// boundary. It has no efficiency component and no speed association.
type SurgeLine struct {
	flow []float64
	pr   []float64
}

// NewSurgeLine validates and copies the surge boundary samples.
func NewSurgeLine(flow, pr []float64) (*SurgeLine, error) {
	if len(flow) != len(pr) {
		return nil, &MalformedMapError{Reason: fmt.Sprintf(
			"surge line sample count mismatch: flow=%d pr=%d", len(flow), len(pr))}
	}
	if len(flow) == 0 {
		return nil, &MalformedMapError{Reason: "surge line has no samples"}
	}
	for j := range flow {
		if !isFinite(flow[j]) || !isFinite(pr[j]) {
			return nil, &MalformedMapError{Reason: fmt.Sprintf(
				"surge line: non-finite sample at index %d", j)}
		}
	}
	return &SurgeLine{
		flow: append([]float64(nil), flow...),
		pr:   append([]float64(nil), pr...),
	}, nil
}

// FlowValues returns a copy of the corrected-flow samples.
func (s *SurgeLine) FlowValues() []float64 { return append([]float64(nil), s.flow...) }

// PressureRatioValues returns a copy of the pressure-ratio samples.
func (s *SurgeLine) PressureRatioValues() []float64 { return append([]float64(nil), s.pr...) }

// Len returns the number of surge samples.
func (s *SurgeLine) Len() int { return len(s.flow) }
