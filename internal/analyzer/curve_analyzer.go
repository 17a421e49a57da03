package analyzer

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	apperrors "go-densitometer/internal/errors"
	"go-densitometer/internal/logger"
)

// speedConstant backs the ISO rating out of the speed-point exposure:
// ISO = speedConstant / 10^logE.
const speedConstant = 800.0

// curveAnalyzer implements CurveAnalyzer with a single calculator and a
// configured speed-point locator
type curveAnalyzer struct {
	calculator MetricsCalculator
	speedPoint SpeedPointLocator
}

// NewCurveAnalyzer creates a new characteristic-curve analyzer
func NewCurveAnalyzer(calculator MetricsCalculator, speedPoint SpeedPointLocator) CurveAnalyzer {
	return &curveAnalyzer{
		calculator: calculator,
		speedPoint: speedPoint,
	}
}

// BuildCurve pairs the two density series into a characteristic curve.
// Both series are truncated to the shorter one; each step wedge density
// attenuates the reference exposure, so LogExposure[i] = ref - stepWedge[i].
// No sorting happens here: downstream metrics that need measurement order
// rely on it.
func (ca *curveAnalyzer) BuildCurve(logExposureRef float64, stepWedge, film []float64) Curve {
	n := len(stepWedge)
	if len(film) < n {
		n = len(film)
	}

	curve := make(Curve, n)
	for i := 0; i < n; i++ {
		curve[i] = Sample{
			LogExposure: logExposureRef - stepWedge[i],
			Density:     film[i],
		}
	}
	return curve
}

// Analyze computes every curve metric the options ask for. Conditions that
// leave a metric undeterminable degrade the result and append a warning;
// they never abort the analysis.
func (ca *curveAnalyzer) Analyze(curve Curve, options AnalysisOptions) CurveAnalysis {
	result := CurveAnalysis{Curve: curve}

	if len(curve) < options.WindowSize {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("not enough data points: need at least %d, got %d", options.WindowSize, len(curve)))
	} else {
		region, err := ca.calculator.FindLinearRegion(curve, options.WindowSize, options.CorrelationThreshold)
		switch {
		case err != nil:
			// Domain failure only poisons the regression search; the
			// remaining metrics don't re-apply log10 to the exposure axis.
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("linear region search failed: %v", err))
			if !apperrors.IsType(err, apperrors.ErrorTypeDomain) {
				logger.WithError(err).Warn("Unexpected linear region failure")
			}
		case region == nil:
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("could not find a linear region of %d points with |r| > %g",
					options.WindowSize, options.CorrelationThreshold))
		default:
			result.Region = region
			ci := ca.calculator.ContrastIndex(*region)
			result.ContrastIndex = &ci
			logger.WithFields(logrus.Fields{
				"r_squared":      region.R * region.R,
				"window_size":    options.WindowSize,
				"contrast_index": ci,
			}).Debug("Linear region fit")
		}
	}

	targetDensity := options.MinDensity + options.SpeedPointOffset
	logE := ca.speedPoint.Locate(curve, targetDensity)
	result.SpeedPoint = SpeedPoint{
		LogExposure: logE,
		Density:     targetDensity,
		ISO:         int(speedConstant / math.Pow(10, logE)),
	}

	grad := ca.calculator.AverageGradient(curve, options.MinDensity, options.SpeedPointOffset, options.GradientUpperOffset)
	if grad == nil {
		result.Warnings = append(result.Warnings,
			"could not find two distinct points for average gradient")
	} else {
		result.AverageGradient = grad
	}

	return result
}
