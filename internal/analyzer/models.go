package analyzer

import (
	"go-densitometer/pkg/models"
)

// Engine types are aliases to the shared models so the renderer and any
// other consumer speak the same records the engine produces.
type (
	Sample        = models.Sample
	Curve         = models.Curve
	LinearRegion  = models.LinearRegion
	SpeedPoint    = models.SpeedPoint
	CurveAnalysis = models.CurveAnalysis
)
