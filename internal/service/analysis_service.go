package service

import (
	"github.com/sirupsen/logrus"

	"go-densitometer/internal/analyzer"
	apperrors "go-densitometer/internal/errors"
	"go-densitometer/internal/logger"
	"go-densitometer/internal/render"
	"go-densitometer/internal/repository"
	"go-densitometer/pkg/models"
	"go-densitometer/pkg/validation"
)

// AnalysisRequest describes one densitometry run
type AnalysisRequest struct {
	StepWedgePath string
	FilmPath      string
	FilmName      string
	EV            float64
	ExposureTime  float64

	// MinDensity is the film's Dmin; MaxDensity is nil when the shoulder
	// reference should be derived from the measured data.
	MinDensity float64
	MaxDensity *float64

	// OutputPath receives the rendered chart; empty skips rendering.
	OutputPath string

	Options analyzer.AnalysisOptions
}

// AnalysisService runs a complete densitometry analysis
type AnalysisService interface {
	Run(request AnalysisRequest) (*models.Report, error)
}

// analysisService implements AnalysisService over a repository, an engine,
// and a renderer
type analysisService struct {
	densityRepo repository.DensityRepository
	analyzer    analyzer.CurveAnalyzer
	gradient    *validation.GradientValidator
	renderer    render.ChartRenderer
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	densityRepo repository.DensityRepository,
	curveAnalyzer analyzer.CurveAnalyzer,
	renderer render.ChartRenderer,
) AnalysisService {
	return &analysisService{
		densityRepo: densityRepo,
		analyzer:    curveAnalyzer,
		gradient:    validation.NewGradientValidator(),
		renderer:    renderer,
	}
}

// Run loads both measurement series, analyzes the characteristic curve, and
// renders the diagnostic chart. Input and I/O failures are fatal and happen
// before any chart is produced; metric absences degrade the report instead.
func (s *analysisService) Run(request AnalysisRequest) (*models.Report, error) {
	if err := validation.ValidateInput(validation.AnalysisInput{
		StepWedgePath: request.StepWedgePath,
		FilmPath:      request.FilmPath,
		FilmName:      request.FilmName,
		EV:            request.EV,
		ExposureTime:  request.ExposureTime,
		MinDensity:    request.MinDensity,
		MaxDensity:    request.MaxDensity,
		WindowSize:    request.Options.WindowSize,
	}); err != nil {
		return nil, apperrors.NewValidationError("invalid analysis request", err)
	}

	stepWedge, err := s.densityRepo.Load(request.StepWedgePath)
	if err != nil {
		return nil, err
	}
	film, err := s.densityRepo.Load(request.FilmPath)
	if err != nil {
		return nil, err
	}

	logExposureRef := analyzer.LogExposureReference(request.EV, request.ExposureTime)
	curve := s.analyzer.BuildCurve(logExposureRef, stepWedge.Densities, film.Densities)

	logger.WithFields(logrus.Fields{
		"step_wedge_measurements": stepWedge.Count(),
		"film_measurements":       film.Count(),
		"used_measurements":       len(curve),
		"log_exposure_ref":        logExposureRef,
	}).Info("Built characteristic curve")

	options := request.Options.WithMinDensity(request.MinDensity)
	analysis := s.analyzer.Analyze(curve, options)
	for _, warning := range analysis.Warnings {
		logger.Warn(warning)
	}

	report := s.buildReport(request, logExposureRef, stepWedge.Count(), film.Count(), analysis)

	if request.OutputPath != "" {
		if err := s.renderer.Render(report, request.OutputPath); err != nil {
			return nil, err
		}
		logger.WithField("output", request.OutputPath).Info("Chart rendered")
	}

	return report, nil
}

func (s *analysisService) buildReport(
	request AnalysisRequest,
	logExposureRef float64,
	stepWedgeCount, filmCount int,
	analysis models.CurveAnalysis,
) *models.Report {
	report := &models.Report{
		FilmName:        request.FilmName,
		EV:              request.EV,
		ExposureTime:    request.ExposureTime,
		LogExposureRef:  logExposureRef,
		StepWedgeCount:  stepWedgeCount,
		FilmCount:       filmCount,
		UsedCount:       len(analysis.Curve),
		MinDensity:      request.MinDensity,
		Curve:           analysis.Curve,
		Region:          analysis.Region,
		ContrastIndex:   analysis.ContrastIndex,
		SpeedPoint:      analysis.SpeedPoint,
		AverageGradient: analysis.AverageGradient,
		Warnings:        analysis.Warnings,
	}

	// Shoulder reference: explicit Dmax when given, measured maximum otherwise
	if request.MaxDensity != nil {
		report.MaxDensity = *request.MaxDensity
	} else {
		report.MaxDensity = analysis.Curve.MaxDensity()
	}

	if analysis.AverageGradient != nil {
		report.GradientVerdict = s.gradient.Classify(*analysis.AverageGradient)
	}
	return report
}
