package analyzer

// AnalysisOptions provides flexible configuration for curve analysis
type AnalysisOptions struct {
	// Sliding-window regression
	WindowSize           int
	CorrelationThreshold float64

	// Reference densities
	MinDensity float64

	// Density offsets above Dmin for the speed target and the gradient span
	SpeedPointOffset    float64
	GradientUpperOffset float64
}

// DefaultOptions returns default analysis options
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		WindowSize:           11,
		CorrelationThreshold: 0.98,
		MinDensity:           0.0,
		SpeedPointOffset:     0.1,
		GradientUpperOffset:  0.6,
	}
}

// CompactWindowOptions returns options with the shorter 7-sample window,
// which favors shorter, often steeper linear matches on an S-shaped curve
func CompactWindowOptions() AnalysisOptions {
	opts := DefaultOptions()
	opts.WindowSize = 7
	return opts
}

// WithWindowSize sets a custom regression window size
func (opts AnalysisOptions) WithWindowSize(windowSize int) AnalysisOptions {
	opts.WindowSize = windowSize
	return opts
}

// WithMinDensity sets the film's minimum density (Dmin)
func (opts AnalysisOptions) WithMinDensity(minDensity float64) AnalysisOptions {
	opts.MinDensity = minDensity
	return opts
}
