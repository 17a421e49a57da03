package cli

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"go-densitometer/internal/analyzer"
	"go-densitometer/internal/config"
	"go-densitometer/internal/container"
	apperrors "go-densitometer/internal/errors"
	"go-densitometer/internal/logger"
	"go-densitometer/internal/service"
)

// NewApp builds the densitometer command-line application. Environment
// configuration supplies the defaults; flags override per run.
func NewApp(cfg *config.Config) *cli.App {
	return &cli.App{
		Name:  "densitometer",
		Usage: "compute film characteristic-curve metrics and render a diagnostic chart",
		Flags: []cli.Flag{
			&cli.Float64Flag{
				Name:     "ev",
				Usage:    "exposure value (EV) of the test exposure",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "exposure-time",
				Aliases:  []string{"t"},
				Usage:    "exposure time in seconds",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "step-wedge",
				Aliases:  []string{"s"},
				Usage:    "path to the step wedge CSV file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "film",
				Aliases:  []string{"f"},
				Usage:    "path to the test film CSV file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "name",
				Aliases:  []string{"n"},
				Usage:    "name of the test film",
				Required: true,
			},
			&cli.Float64Flag{
				Name:     "dmin",
				Aliases:  []string{"d"},
				Usage:    "minimum density of the film (honored even at 0.0)",
				Required: true,
			},
			&cli.Float64Flag{
				Name:    "dmax",
				Aliases: []string{"dx"},
				Usage:   "maximum density of the film (defaults to the measured maximum)",
			},
			&cli.IntFlag{
				Name:  "window-size",
				Usage: "regression window size for the linear region search",
				Value: cfg.WindowSize,
			},
			&cli.StringFlag{
				Name:  "speed-point",
				Usage: "speed point strategy: interpolated or nearest",
				Value: cfg.SpeedPointStrategy,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "chart output file (png or svg); defaults to <name>.png",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level: debug, info, warn, error",
				Value: cfg.LogLevel,
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, cfg)
		},
	}
}

func run(c *cli.Context, cfg *config.Config) error {
	logger.SetLevel(c.String("log-level"))

	runCfg := *cfg
	runCfg.SpeedPointStrategy = c.String("speed-point")
	cont, err := container.NewContainer(&runCfg)
	if err != nil {
		return cli.Exit(err.Error(), apperrors.GetExitCode(err))
	}

	request := service.AnalysisRequest{
		StepWedgePath: c.String("step-wedge"),
		FilmPath:      c.String("film"),
		FilmName:      c.String("name"),
		EV:            c.Float64("ev"),
		ExposureTime:  c.Float64("exposure-time"),
		MinDensity:    c.Float64("dmin"),
		OutputPath:    outputPath(c),
		Options:       analyzer.DefaultOptions().WithWindowSize(c.Int("window-size")),
	}
	// dmax stays nil unless given; a literal 0.0 counts as given
	if c.IsSet("dmax") {
		dmax := c.Float64("dmax")
		request.MaxDensity = &dmax
	}

	report, err := cont.AnalysisService().Run(request)
	if err != nil {
		return cli.Exit(err.Error(), apperrors.GetExitCode(err))
	}

	fmt.Fprintln(c.App.Writer, report.SummaryLine())
	fmt.Fprintf(c.App.Writer, "Plot generated for %s with EV: %g and exposure time: %gs\n",
		report.FilmName, report.EV, report.ExposureTime)
	return nil
}

func outputPath(c *cli.Context) string {
	if out := c.String("output"); out != "" {
		return out
	}
	return c.String("name") + ".png"
}
