package analyzer

// CurveAnalyzer defines the main interface for characteristic-curve analysis
type CurveAnalyzer interface {
	// BuildCurve pairs step-wedge and film density series into a curve
	// anchored at the given log-exposure reference
	BuildCurve(logExposureRef float64, stepWedge, film []float64) Curve

	// Analyze computes all curve metrics under the given options
	Analyze(curve Curve, options AnalysisOptions) CurveAnalysis
}

// MetricsCalculator handles the individual curve metric computations
type MetricsCalculator interface {
	FindLinearRegion(curve Curve, windowSize int, correlationThreshold float64) (*LinearRegion, error)
	ContrastIndex(region LinearRegion) float64
	AverageGradient(curve Curve, minDensity, lowerOffset, upperOffset float64) *float64
}

// SpeedPointLocator locates the exposure at which density reaches the speed
// target. Implementations live in the strategy package; behavior at sparse
// or boundary data differs between them.
type SpeedPointLocator interface {
	Locate(curve Curve, targetDensity float64) float64
	Name() string
}
