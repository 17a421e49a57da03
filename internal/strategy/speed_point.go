package strategy

import (
	"fmt"
	"math"

	"go-densitometer/internal/analyzer"
	apperrors "go-densitometer/internal/errors"
)

// Strategy names accepted in configuration
const (
	NearestName      = "nearest"
	InterpolatedName = "interpolated"
)

// NearestSampleStrategy picks the measured sample whose density is closest
// to the target and uses its exposure directly
type NearestSampleStrategy struct{}

// NewNearestSampleStrategy creates a new nearest-sample locator
func NewNearestSampleStrategy() analyzer.SpeedPointLocator {
	return &NearestSampleStrategy{}
}

// Locate returns the exposure of the sample nearest the target density
func (s *NearestSampleStrategy) Locate(curve analyzer.Curve, targetDensity float64) float64 {
	idx := curve.NearestDensityIndex(targetDensity)
	if idx < 0 {
		return 0
	}
	return curve[idx].LogExposure
}

// Name returns the strategy name
func (s *NearestSampleStrategy) Name() string {
	return NearestName
}

// InterpolatedStrategy locates the density crossing between the bracketing
// samples. The curve is scanned in measurement order: the first sample at or
// above the target and the last sample below it bracket the crossing, and
// the exposure is interpolated between them along log10 of the exposure
// axis, matching the log scale the rest of the analysis works in. When no
// bracket exists the nearest sample is used instead.
type InterpolatedStrategy struct {
	fallback NearestSampleStrategy
}

// NewInterpolatedStrategy creates a new interpolating locator
func NewInterpolatedStrategy() analyzer.SpeedPointLocator {
	return &InterpolatedStrategy{}
}

// Locate returns the exposure at which density reaches the target
func (s *InterpolatedStrategy) Locate(curve analyzer.Curve, targetDensity float64) float64 {
	idxAbove := -1
	for i := range curve {
		if curve[i].Density >= targetDensity {
			idxAbove = i
			break
		}
	}
	idxBelow := -1
	for i := len(curve) - 1; i >= 0; i-- {
		if curve[i].Density < targetDensity {
			idxBelow = i
			break
		}
	}

	if idxAbove < 0 || idxBelow < 0 {
		return s.fallback.Locate(curve, targetDensity)
	}

	x1, y1 := curve[idxBelow].LogExposure, curve[idxBelow].Density
	x2, y2 := curve[idxAbove].LogExposure, curve[idxAbove].Density
	if x1 == x2 {
		// Coincident exposures leave nothing to interpolate along
		return x1
	}
	if x1 > 0 && x2 > 0 {
		lx1, lx2 := math.Log10(x1), math.Log10(x2)
		return math.Pow(10, lx1+(targetDensity-y1)*(lx2-lx1)/(y2-y1))
	}
	return x1 + (targetDensity-y1)*(x2-x1)/(y2-y1)
}

// Name returns the strategy name
func (s *InterpolatedStrategy) Name() string {
	return InterpolatedName
}

// Resolve returns the locator registered under the given name
func Resolve(name string) (analyzer.SpeedPointLocator, error) {
	switch name {
	case NearestName:
		return NewNearestSampleStrategy(), nil
	case InterpolatedName:
		return NewInterpolatedStrategy(), nil
	default:
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("unknown speed point strategy %q (want %q or %q)", name, NearestName, InterpolatedName), nil)
	}
}
