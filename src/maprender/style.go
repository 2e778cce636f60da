package maprender

import (
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	colorNavy   = drawing.Color{R: 0, G: 0, B: 128, A: 255}
	colorMarker = drawing.Color{R: 255, G: 200, B: 0, A: 255}
)

// speedLineStyle: thin dashed black, the traditional look of map speed lines.
func speedLineStyle() chart.Style {
	return chart.Style{
		StrokeWidth:     1.0,
		StrokeColor:     chart.ColorBlack,
		StrokeDashArray: []float64{3.0, 3.0},
	}
}

// surgeLineStyle: solid red, clearly separated from the dashed speed lines.
func surgeLineStyle() chart.Style {
	return chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: chart.ColorRed,
	}
}

// operatingLineStyle: solid navy, distinct from base lines and surge line.
func operatingLineStyle() chart.Style {
	return chart.Style{
		StrokeWidth: 1.5,
		StrokeColor: colorNavy,
	}
}

// designPointStyle renders a marker only, no connecting line.
func designPointStyle() chart.Style {
	return chart.Style{
		StrokeWidth: 0,
		DotWidth:    6,
		DotColor:    colorMarker,
	}
}

// flowAxisRange pads the observed corrected-flow extent so curves do not
// touch the panel border, keeping both panels on the identical x range.
func flowAxisRange(min, max float64) *chart.ContinuousRange {
	if min > max {
		// nothing observed; give go-chart a harmless default
		return &chart.ContinuousRange{Min: 0, Max: 1}
	}
	span := max - min
	if span <= 0 {
		span = math.Abs(max)
		if span == 0 {
			span = 1
		}
	}
	pad := span * 0.05
	return &chart.ContinuousRange{Min: min - pad, Max: max + pad}
}
