// Package maprender composes a two-panel visual of a scaled turbomachinery
// map: flow vs. efficiency on top, flow vs. pressure ratio below, sharing
// one corrected-flow axis. Solver overlays (operating line, design point)
// are drawn over the base speed lines. Charts are built with go-chart and
// materialized as PNG-backed images.
package maprender

import (
	"errors"
	"fmt"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/wvisser1958/GSPy/src/turbomap"
)

var (
	// ErrAlreadyRendered signals a second RenderBase call on the same
	// renderer instance; the call is rejected before any drawing happens.
	ErrAlreadyRendered = errors.New("maprender: base map already rendered")
	// ErrNoBaseMap signals an overlay or finalize call before RenderBase.
	ErrNoBaseMap = errors.New("maprender: no base map rendered")
	// ErrFinalized signals any mutation attempted after Finalize.
	ErrFinalized = errors.New("maprender: renderer already finalized")
)

type renderState int

const (
	stateEmpty renderState = iota
	stateBase
	stateFinalized
)

// Options controls panel geometry and decoration.
type Options struct {
	Width      int  // per-panel pixel width, default 900
	Height     int  // per-panel pixel height, default 360
	ShowLegend bool // per-speed-line legend on the efficiency panel
}

// Renderer owns the panel state for one figure. It is not safe for
// concurrent use; callers needing parallel renders hold one Renderer each.
// Lifecycle: Empty -> BaseRendered -> Finalized. Render operations are
// additive; Reset is the only way back to Empty.
type Renderer struct {
	kind turbomap.Kind
	opts Options

	state        renderState
	topSeries    []chart.Series // flow vs. efficiency
	bottomSeries []chart.Series // flow vs. pressure ratio
	flowMin      float64
	flowMax      float64
	scaled       bool
	factors      turbomap.ScaleFactors
	journal      []string
}

// New returns an empty renderer for a map of the given kind.
func New(kind turbomap.Kind, opts Options) *Renderer {
	if opts.Width <= 0 {
		opts.Width = 900
	}
	if opts.Height <= 0 {
		opts.Height = 360
	}
	r := &Renderer{kind: kind, opts: opts}
	r.resetState()
	return r
}

func (r *Renderer) resetState() {
	r.state = stateEmpty
	r.topSeries = nil
	r.bottomSeries = nil
	r.flowMin = math.MaxFloat64
	r.flowMax = -math.MaxFloat64
	r.scaled = false
	r.factors = turbomap.Identity()
	r.journal = nil
}

// Reset discards all panel state and returns the renderer to Empty.
func (r *Renderer) Reset() { r.resetState() }

// Journal returns the ordered names of everything drawn so far, one entry
// per draw call. Intended for tests and debug logging.
func (r *Renderer) Journal() []string {
	return append([]string(nil), r.journal...)
}

// RenderBase draws one curve per speed line in each panel, in the map's
// native line order. Line identity (and any legend) therefore stays stable
// across repeated renders with different scale factors. Valid only from
// Empty; a second call fails with ErrAlreadyRendered.
func (r *Renderer) RenderBase(m *turbomap.ScaledMap) error {
	switch r.state {
	case stateFinalized:
		return ErrFinalized
	case stateBase:
		return ErrAlreadyRendered
	}
	if m == nil {
		return fmt.Errorf("maprender: nil scaled map")
	}
	for i := 0; i < m.LineCount(); i++ {
		name := fmt.Sprintf("Nc=%s", formatSpeed(m.SpeedValue(i)))
		xs := m.FlowValues(i)
		etas := m.EfficiencyValues(i)
		prs := m.PressureRatioValues(i)
		xs, etas = padSingle(xs, etas)
		_, prs = padSingle(m.FlowValues(i), prs)
		r.observeFlow(xs)
		st := speedLineStyle()
		r.topSeries = append(r.topSeries, chart.ContinuousSeries{Name: name, XValues: xs, YValues: etas, Style: st})
		r.bottomSeries = append(r.bottomSeries, chart.ContinuousSeries{Name: name, XValues: xs, YValues: prs, Style: st})
		r.journal = append(r.journal, "base:"+name)
	}
	if sl := m.Surge(); sl != nil {
		xs := sl.FlowValues()
		prs := sl.PressureRatioValues()
		xs, prs = padSingle(xs, prs)
		r.observeFlow(xs)
		r.bottomSeries = append(r.bottomSeries, chart.ContinuousSeries{
			Name: "Surge line", XValues: xs, YValues: prs, Style: surgeLineStyle(),
		})
		r.journal = append(r.journal, "surge")
	}
	r.scaled = m.Scaled()
	r.factors = m.Factors()
	r.state = stateBase
	turbomap.Debugf("maprender: base map drawn: %d speed lines, scaled=%v", m.LineCount(), r.scaled)
	return nil
}

// RenderOperatingCurve draws the solver's steady-state series as one
// connected path per panel, in the supplied order, visually distinct from
// the base speed lines. A shape mismatch aborts only this call; the base
// map and earlier overlays are unaffected.
func (r *Renderer) RenderOperatingCurve(c *turbomap.OperatingCurve) error {
	switch r.state {
	case stateFinalized:
		return ErrFinalized
	case stateEmpty:
		return ErrNoBaseMap
	}
	if c == nil {
		return fmt.Errorf("maprender: nil operating curve")
	}
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Len() == 0 {
		return fmt.Errorf("maprender: empty operating curve")
	}
	xs := append([]float64(nil), c.Wc...)
	etas := append([]float64(nil), c.Eta...)
	prs := append([]float64(nil), c.PR...)
	xs, etas = padSingle(xs, etas)
	_, prs = padSingle(append([]float64(nil), c.Wc...), prs)
	r.observeFlow(xs)
	st := operatingLineStyle()
	r.topSeries = append(r.topSeries, chart.ContinuousSeries{Name: "Operating line", XValues: xs, YValues: etas, Style: st})
	r.bottomSeries = append(r.bottomSeries, chart.ContinuousSeries{Name: "Operating line", XValues: xs, YValues: prs, Style: st})
	r.journal = append(r.journal, fmt.Sprintf("operating-curve:n=%d", c.Len()))
	return nil
}

// RenderDesignPoint draws a single marker per panel, distinct from both the
// base map and the operating line.
func (r *Renderer) RenderDesignPoint(p turbomap.DesignPoint) error {
	switch r.state {
	case stateFinalized:
		return ErrFinalized
	case stateEmpty:
		return ErrNoBaseMap
	}
	for _, v := range []float64{p.Wc, p.PR, p.Eta} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("maprender: non-finite design point value %v", v)
		}
	}
	r.observeFlow([]float64{p.Wc})
	st := designPointStyle()
	r.topSeries = append(r.topSeries, chart.ContinuousSeries{Name: "Design point", XValues: []float64{p.Wc}, YValues: []float64{p.Eta}, Style: st})
	r.bottomSeries = append(r.bottomSeries, chart.ContinuousSeries{Name: "Design point", XValues: []float64{p.Wc}, YValues: []float64{p.PR}, Style: st})
	r.journal = append(r.journal, "design-point")
	return nil
}

// Finalize fixes titles and labels and materializes the panels. The title
// always states whether the map is scaled or raw; conflating the two has
// mislabeled real analyses before, so this is treated as a correctness
// requirement rather than decoration. After Finalize the renderer accepts
// no further mutation (use Reset for a fresh figure).
func (r *Renderer) Finalize(title string) (*Panels, error) {
	switch r.state {
	case stateFinalized:
		return nil, ErrFinalized
	case stateEmpty:
		return nil, ErrNoBaseMap
	}
	if title == "" {
		title = r.kind.TitlePrefix()
	}
	if r.scaled {
		title += " (scaled to DP)"
	} else {
		title += " (unscaled)"
	}
	xr := flowAxisRange(r.flowMin, r.flowMax)

	top := chart.Chart{
		Title:      title,
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 28, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "Corrected mass flow", Range: xr},
		YAxis:      chart.YAxis{Name: "Efficiency [-]"},
		Series:     r.topSeries,
	}
	if r.opts.ShowLegend {
		top.Elements = []chart.Renderable{chart.Legend(&top)}
	}
	bottom := chart.Chart{
		Width:      r.opts.Width,
		Height:     r.opts.Height,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 24}},
		XAxis:      chart.XAxis{Name: "Corrected mass flow", Range: &chart.ContinuousRange{Min: xr.Min, Max: xr.Max}},
		YAxis:      chart.YAxis{Name: "Pressure ratio [-]"},
		Series:     r.bottomSeries,
	}

	topImg, err := renderToImage(&top)
	if err != nil {
		return nil, fmt.Errorf("render efficiency panel: %w", err)
	}
	bottomImg, err := renderToImage(&bottom)
	if err != nil {
		return nil, fmt.Errorf("render pressure-ratio panel: %w", err)
	}
	combined := stackVertical(topImg, bottomImg)
	if r.scaled {
		f := r.factors
		combined = drawCaption(combined, fmt.Sprintf(
			"SF: Wc=%.6g PR=%.6g Eta=%.6g Nc=%.6g", f.Flow(), f.PressureRatio(), f.Efficiency(), f.Speed()))
	}
	r.state = stateFinalized
	return &Panels{Top: topImg, Bottom: bottomImg, Combined: combined, Title: title}, nil
}

func (r *Renderer) observeFlow(xs []float64) {
	for _, x := range xs {
		if x < r.flowMin {
			r.flowMin = x
		}
		if x > r.flowMax {
			r.flowMax = x
		}
	}
}

// padSingle duplicates a lone sample with a tiny x offset so go-chart has a
// non-degenerate series to draw (it needs at least two x values).
func padSingle(xs, ys []float64) ([]float64, []float64) {
	if len(xs) != 1 {
		return xs, ys
	}
	dx := math.Abs(xs[0]) * 1e-9
	if dx == 0 {
		dx = 1e-9
	}
	return []float64{xs[0], xs[0] + dx}, []float64{ys[0], ys[0]}
}

func formatSpeed(v float64) string {
	return fmt.Sprintf("%.6g", v)
}
