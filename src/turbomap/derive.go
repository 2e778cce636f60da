package turbomap

// DesignValues is one full (Nc, Wc, PR, Eta) operating condition, used when
// deriving scale factors that anchor a generic map to a specific engine.
type DesignValues struct {
	Nc  float64
	Wc  float64
	PR  float64
	Eta float64
}

// FactorsForDesignPoint derives the multiplicative factors that move the
// map's own design-point sample onto the engine's design values:
// factor = engine value / map value, per axis. The result composes with
// Apply so that the scaled map passes exactly through the engine design
// point. Zero or negative map values yield non-positive or non-finite
// ratios and fail with InvalidScaleFactorError.
func FactorsForDesignPoint(mapPoint, engine DesignValues) (ScaleFactors, error) {
	return NewScaleFactors(
		engine.Wc/mapPoint.Wc,
		engine.PR/mapPoint.PR,
		engine.Eta/mapPoint.Eta,
		engine.Nc/mapPoint.Nc,
	)
}
