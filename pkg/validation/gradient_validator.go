package validation

import (
	"go-densitometer/pkg/models"
)

// GradientBand defines the acceptable average-gradient range for normal
// pictorial development per the ISO contrast criterion
type GradientBand struct {
	Min float64
	Max float64
}

// DefaultGradientBand returns the standard acceptable band
func DefaultGradientBand() GradientBand {
	return GradientBand{
		Min: 0.62,
		Max: 0.70,
	}
}

// GradientValidator classifies average gradients against a band
type GradientValidator struct {
	band GradientBand
}

// NewGradientValidator creates a validator with the default band
func NewGradientValidator() *GradientValidator {
	return &GradientValidator{
		band: DefaultGradientBand(),
	}
}

// NewGradientValidatorWithBand creates a validator with a custom band
func NewGradientValidatorWithBand(band GradientBand) *GradientValidator {
	return &GradientValidator{
		band: band,
	}
}

// Classify returns the verdict for an average gradient
func (gv *GradientValidator) Classify(gradient float64) models.GradientVerdict {
	switch {
	case gradient < gv.band.Min:
		return models.GradientTooLow
	case gradient > gv.band.Max:
		return models.GradientTooHigh
	default:
		return models.GradientOK
	}
}

// InRange reports whether the gradient falls inside the band
func (gv *GradientValidator) InRange(gradient float64) bool {
	return gradient >= gv.band.Min && gradient <= gv.band.Max
}

// Band returns the validator's band
func (gv *GradientValidator) Band() GradientBand {
	return gv.band
}
