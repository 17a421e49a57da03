package repository

// DensitySeries is one measurement file's density column in row order.
// Row index corresponds to the measurement step.
type DensitySeries struct {
	Path      string
	Densities []float64
}

// Count returns the number of measurements in the series
func (s *DensitySeries) Count() int {
	return len(s.Densities)
}

// DensityRepository defines the interface for density measurement access
type DensityRepository interface {
	// Load reads a density measurement series from a tabular file
	Load(path string) (*DensitySeries, error)
}
