package container

import (
	"go-densitometer/internal/analyzer"
	"go-densitometer/internal/config"
	"go-densitometer/internal/render"
	"go-densitometer/internal/repository"
	"go-densitometer/internal/service"
	"go-densitometer/internal/strategy"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	densityRepo     repository.DensityRepository
	curveAnalyzer   analyzer.CurveAnalyzer
	renderer        render.ChartRenderer
	analysisService service.AnalysisService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config) (*Container, error) {
	// Build dependency graph
	densityRepo := repository.NewCSVDensityRepository()

	speedPoint, err := strategy.Resolve(cfg.SpeedPointStrategy)
	if err != nil {
		return nil, err
	}
	curveAnalyzer := analyzer.NewCurveAnalyzer(analyzer.NewCurveCalculator(), speedPoint)

	renderer := render.NewChartRenderer()
	analysisService := service.NewAnalysisService(densityRepo, curveAnalyzer, renderer)

	return &Container{
		config:          cfg,
		densityRepo:     densityRepo,
		curveAnalyzer:   curveAnalyzer,
		renderer:        renderer,
		analysisService: analysisService,
	}, nil
}

// AnalysisService returns the configured analysis service
func (c *Container) AnalysisService() service.AnalysisService {
	return c.analysisService
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}
