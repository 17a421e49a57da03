package models

import (
	"fmt"
	"strings"
)

// Sample is one point on a characteristic curve: the effective log exposure
// behind a step-wedge patch paired with the measured film density.
type Sample struct {
	LogExposure float64 `json:"log_exposure"`
	Density     float64 `json:"density"`
}

// Curve is an ordered sequence of samples. Order follows the measurement
// rows of the input files unless a consumer explicitly sorts a copy.
type Curve []Sample

// NearestDensityIndex returns the index of the sample whose density is
// closest to target by absolute difference. The first such index wins on
// ties. Returns -1 for an empty curve.
func (c Curve) NearestDensityIndex(target float64) int {
	best := -1
	bestDiff := 0.0
	for i, s := range c {
		diff := s.Density - target
		if diff < 0 {
			diff = -diff
		}
		if best < 0 || diff < bestDiff {
			best = i
			bestDiff = diff
		}
	}
	return best
}

// MinDensity returns the smallest density on the curve, or 0 for an empty curve.
func (c Curve) MinDensity() float64 {
	if len(c) == 0 {
		return 0
	}
	min := c[0].Density
	for _, s := range c[1:] {
		if s.Density < min {
			min = s.Density
		}
	}
	return min
}

// MaxDensity returns the largest density on the curve, or 0 for an empty curve.
func (c Curve) MaxDensity() float64 {
	if len(c) == 0 {
		return 0
	}
	max := c[0].Density
	for _, s := range c[1:] {
		if s.Density > max {
			max = s.Density
		}
	}
	return max
}

// LinearRegion is the most linear contiguous window found on a sorted curve,
// bounded by its first and last samples and tagged with the correlation
// coefficient of the window's regression fit.
type LinearRegion struct {
	A Sample  `json:"a"`
	B Sample  `json:"b"`
	R float64 `json:"r"`
}

// SpeedPoint is the exposure at which density first reaches the ISO speed
// target (Dmin + 0.1), with the speed rating derived from it.
type SpeedPoint struct {
	LogExposure float64 `json:"log_exposure"`
	Density     float64 `json:"density"`
	ISO         int     `json:"iso"`
}

// GradientVerdict classifies an average gradient against the acceptable
// ISO contrast band.
type GradientVerdict string

const (
	GradientTooLow  GradientVerdict = "too_low"
	GradientOK      GradientVerdict = "ok"
	GradientTooHigh GradientVerdict = "too_high"
)

// Label returns the human-readable form used on charts and in summaries.
func (v GradientVerdict) Label() string {
	switch v {
	case GradientTooLow:
		return "Too Low"
	case GradientTooHigh:
		return "Too High"
	default:
		return "OK"
	}
}

// CurveAnalysis holds the engine's metrics for one curve. Optional fields
// are nil when the corresponding condition could not be determined; the
// Warnings slice explains each absence in human-readable form.
type CurveAnalysis struct {
	Curve           Curve         `json:"curve"`
	Region          *LinearRegion `json:"region,omitempty"`
	ContrastIndex   *float64      `json:"contrast_index,omitempty"`
	SpeedPoint      SpeedPoint    `json:"speed_point"`
	AverageGradient *float64      `json:"average_gradient,omitempty"`
	Warnings        []string      `json:"warnings,omitempty"`
}

// Report is the complete result of one densitometry run, consumed by the
// chart renderer and by callers wanting the raw numbers. It is a plain
// record so any rendering surface can consume it.
type Report struct {
	FilmName     string  `json:"film_name"`
	EV           float64 `json:"ev"`
	ExposureTime float64 `json:"exposure_time_sec"`

	// LogExposureRef anchors the curve's x axis (Log E of the unattenuated exposure).
	LogExposureRef float64 `json:"log_exposure_ref"`

	// Measurement bookkeeping: raw row counts per input and the truncated
	// count actually analyzed.
	StepWedgeCount int `json:"step_wedge_count"`
	FilmCount      int `json:"film_count"`
	UsedCount      int `json:"used_count"`

	// MinDensity and MaxDensity are the resolved toe/shoulder reference
	// densities (explicit values, or data-derived for an unset Dmax).
	MinDensity float64 `json:"min_density"`
	MaxDensity float64 `json:"max_density"`

	Curve           Curve           `json:"curve"`
	Region          *LinearRegion   `json:"region,omitempty"`
	ContrastIndex   *float64        `json:"contrast_index,omitempty"`
	SpeedPoint      SpeedPoint      `json:"speed_point"`
	AverageGradient *float64        `json:"average_gradient,omitempty"`
	GradientVerdict GradientVerdict `json:"gradient_verdict,omitempty"`

	Warnings []string `json:"warnings,omitempty"`
}

// SummaryLine renders the single-line diagnostic summary shown under the
// chart. Metrics that could not be computed are omitted.
func (r *Report) SummaryLine() string {
	parts := make([]string, 0, 3)
	if r.ContrastIndex != nil {
		parts = append(parts, fmt.Sprintf("Contrast Index: %.2f", *r.ContrastIndex))
	}
	parts = append(parts, fmt.Sprintf("ISO Speed: %d", r.SpeedPoint.ISO))
	if r.AverageGradient != nil {
		parts = append(parts, fmt.Sprintf("Avg. Gradient: %.2f (%s)", *r.AverageGradient, r.GradientVerdict.Label()))
	}
	return strings.Join(parts, "    ")
}
