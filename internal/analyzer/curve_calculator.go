package analyzer

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	apperrors "go-densitometer/internal/errors"
)

// curveCalculator implements MetricsCalculator using Gonum statistics
type curveCalculator struct{}

// NewCurveCalculator creates a new curve metrics calculator
func NewCurveCalculator() MetricsCalculator {
	return &curveCalculator{}
}

// FindLinearRegion locates the most linear contiguous window of the curve.
// The curve is stably sorted by log exposure, the exposure axis is taken to
// log10 space, and a simple linear regression is fitted over every window of
// windowSize consecutive samples. The window with the highest |r| wins (the
// first such window on ties) and qualifies only when |r| exceeds the
// correlation threshold.
//
// Returns (nil, nil) when fewer than windowSize samples exist or when no
// window clears the threshold; both are reported absences, not failures.
// Returns a domain error when any log exposure is not strictly positive,
// since log10 is undefined there.
func (cc *curveCalculator) FindLinearRegion(curve Curve, windowSize int, correlationThreshold float64) (*LinearRegion, error) {
	if len(curve) < windowSize {
		return nil, nil
	}

	// Stable sort keeps tied exposures in measurement order so reruns are
	// reproducible sample for sample.
	sorted := make(Curve, len(curve))
	copy(sorted, curve)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LogExposure < sorted[j].LogExposure
	})

	logX := make([]float64, len(sorted))
	densities := make([]float64, len(sorted))
	for i, s := range sorted {
		if s.LogExposure <= 0 {
			return nil, apperrors.NewDomainError(
				fmt.Sprintf("log exposure must be positive, got %g at sample %d", s.LogExposure, i), nil)
		}
		logX[i] = math.Log10(s.LogExposure)
		densities[i] = s.Density
	}

	bestR := 0.0
	bestStart := -1
	for i := 0; i+windowSize <= len(sorted); i++ {
		r := stat.Correlation(logX[i:i+windowSize], densities[i:i+windowSize], nil)
		if math.IsNaN(r) {
			// Degenerate window: zero variance on one axis
			continue
		}
		if math.Abs(r) > math.Abs(bestR) {
			bestR = r
			bestStart = i
		}
	}

	if bestStart < 0 || math.Abs(bestR) <= correlationThreshold {
		return nil, nil
	}

	return &LinearRegion{
		A: sorted[bestStart],
		B: sorted[bestStart+windowSize-1],
		R: bestR,
	}, nil
}

// ContrastIndex computes the slope between the winning window's endpoints
// in (log exposure, density) space
func (cc *curveCalculator) ContrastIndex(region LinearRegion) float64 {
	return (region.B.Density - region.A.Density) / (region.B.LogExposure - region.A.LogExposure)
}

// AverageGradient computes the slope between the samples nearest to
// minDensity+lowerOffset and minDensity+upperOffset. Nearest lookup runs
// over the curve in its original measurement order. Returns nil when both
// targets resolve to the same sample or when the two samples share an
// exposure, since no slope can be determined.
func (cc *curveCalculator) AverageGradient(curve Curve, minDensity, lowerOffset, upperOffset float64) *float64 {
	i1 := curve.NearestDensityIndex(minDensity + lowerOffset)
	i2 := curve.NearestDensityIndex(minDensity + upperOffset)
	if i1 < 0 || i2 < 0 || i1 == i2 {
		return nil
	}

	dx := curve[i2].LogExposure - curve[i1].LogExposure
	if dx == 0 {
		return nil
	}
	grad := (curve[i2].Density - curve[i1].Density) / dx
	return &grad
}
