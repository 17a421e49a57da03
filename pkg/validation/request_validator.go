package validation

import (
	"fmt"
	"math"
	"strings"
)

// AnalysisInput is the user-supplied portion of a run that needs checking
// before any file is touched. Dmax is an explicit optional: nil means
// "derive from the data", and a present value is honored even at 0.0 —
// zero is never treated as unset.
type AnalysisInput struct {
	StepWedgePath string
	FilmPath      string
	FilmName      string
	EV            float64
	ExposureTime  float64
	MinDensity    float64
	MaxDensity    *float64
	WindowSize    int
}

// ValidateInput checks an analysis request for usable values
func ValidateInput(in AnalysisInput) error {
	if strings.TrimSpace(in.StepWedgePath) == "" {
		return fmt.Errorf("step wedge file path is required")
	}
	if strings.TrimSpace(in.FilmPath) == "" {
		return fmt.Errorf("film file path is required")
	}
	if strings.TrimSpace(in.FilmName) == "" {
		return fmt.Errorf("film name is required")
	}
	if math.IsNaN(in.EV) || math.IsInf(in.EV, 0) {
		return fmt.Errorf("exposure value must be finite (got %g)", in.EV)
	}
	if in.ExposureTime <= 0 {
		return fmt.Errorf("exposure time must be > 0 (got %g)", in.ExposureTime)
	}
	if in.MinDensity < 0 {
		return fmt.Errorf("dmin must be >= 0 (got %g)", in.MinDensity)
	}
	if in.MaxDensity != nil && *in.MaxDensity <= in.MinDensity {
		return fmt.Errorf("dmax must exceed dmin (got dmax=%g, dmin=%g)", *in.MaxDensity, in.MinDensity)
	}
	if in.WindowSize < 2 {
		return fmt.Errorf("window size must be >= 2 (got %d)", in.WindowSize)
	}
	return nil
}
