package service_test

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-densitometer/internal/analyzer"
	"go-densitometer/internal/config"
	"go-densitometer/internal/container"
	apperrors "go-densitometer/internal/errors"
	"go-densitometer/internal/service"
)

func newTestService(t *testing.T, strategy string) service.AnalysisService {
	t.Helper()
	c, err := container.NewContainer(&config.Config{
		WindowSize:         11,
		SpeedPointStrategy: strategy,
		LogLevel:           "error",
	})
	require.NoError(t, err)
	return c.AnalysisService()
}

func writeDensityCSV(t *testing.T, name string, densities []float64) string {
	t.Helper()
	var sb strings.Builder
	sb.WriteString("density\n")
	for _, d := range densities {
		fmt.Fprintf(&sb, "%.6f\n", d)
	}
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

// logisticFixture builds a 20-step wedge and a matching S-shaped film
// response: wedge densities 0.1..2.0 attenuate an EV 6, 1/100s exposure,
// and the film density follows a logistic curve of the effective exposure.
func logisticFixture(t *testing.T) (wedgePath, filmPath string, wedge, film []float64) {
	t.Helper()
	ref := analyzer.LogExposureReference(6, 0.01)
	wedge = make([]float64, 20)
	film = make([]float64, 20)
	for i := range wedge {
		wedge[i] = 0.1 * float64(i+1)
		x := ref - wedge[i]
		film[i] = 0.1 + 2.0/(1.0+math.Exp(-3.0*(x-2.4)))
	}
	return writeDensityCSV(t, "wedge.csv", wedge), writeDensityCSV(t, "film.csv", film), wedge, film
}

func TestRun_EndToEnd(t *testing.T) {
	svc := newTestService(t, "interpolated")
	wedgePath, filmPath, wedge, film := logisticFixture(t)
	chartPath := filepath.Join(t.TempDir(), "chart.png")

	report, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: wedgePath,
		FilmPath:      filmPath,
		FilmName:      "Test Film",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.1,
		OutputPath:    chartPath,
		Options:       analyzer.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 20, report.StepWedgeCount)
	assert.Equal(t, 20, report.FilmCount)
	assert.Equal(t, 20, report.UsedCount)
	assert.Equal(t, 0.1, report.MinDensity)

	// Hand-computed reference from the interpolation formula: the first
	// sample at or above the target and the last below it bracket the
	// crossing, interpolated along log10 of the exposure axis.
	ref := analyzer.LogExposureReference(6, 0.01)
	target := 0.1 + 0.1
	idxAbove, idxBelow := -1, -1
	for i, d := range film {
		if d >= target {
			idxAbove = i
			break
		}
	}
	for i := len(film) - 1; i >= 0; i-- {
		if film[i] < target {
			idxBelow = i
			break
		}
	}
	require.GreaterOrEqual(t, idxAbove, 0)
	require.GreaterOrEqual(t, idxBelow, 0)
	x1, y1 := ref-wedge[idxBelow], film[idxBelow]
	x2, y2 := ref-wedge[idxAbove], film[idxAbove]
	logE := math.Pow(10, math.Log10(x1)+(target-y1)*(math.Log10(x2)-math.Log10(x1))/(y2-y1))
	expectedISO := int(800 / math.Pow(10, logE))

	assert.InDelta(t, expectedISO, report.SpeedPoint.ISO, 1)
	assert.InDelta(t, target, report.SpeedPoint.Density, 1e-12)

	require.NotNil(t, report.AverageGradient)
	assert.NotEmpty(t, report.GradientVerdict)

	// Dmax was not given, so the shoulder reference is the measured maximum
	maxFilm := film[0]
	for _, d := range film {
		if d > maxFilm {
			maxFilm = d
		}
	}
	assert.InDelta(t, maxFilm, report.MaxDensity, 1e-6)

	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestRun_DminZeroIsHonored(t *testing.T) {
	svc := newTestService(t, "interpolated")
	wedgePath, filmPath, _, _ := logisticFixture(t)

	report, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: wedgePath,
		FilmPath:      filmPath,
		FilmName:      "Test Film",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.0,
		Options:       analyzer.DefaultOptions(),
	})
	require.NoError(t, err)

	// A zero Dmin is a real value, never "unset": the speed target is 0.1
	assert.InDelta(t, 0.1, report.SpeedPoint.Density, 1e-12)
	assert.Equal(t, 0.0, report.MinDensity)
}

func TestRun_ExplicitDmax(t *testing.T) {
	svc := newTestService(t, "nearest")
	wedgePath, filmPath, _, _ := logisticFixture(t)

	dmax := 2.5
	report, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: wedgePath,
		FilmPath:      filmPath,
		FilmName:      "Test Film",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.1,
		MaxDensity:    &dmax,
		Options:       analyzer.DefaultOptions(),
	})
	require.NoError(t, err)
	assert.Equal(t, 2.5, report.MaxDensity)
}

func TestRun_TruncatesMismatchedSeries(t *testing.T) {
	svc := newTestService(t, "interpolated")
	wedgePath := writeDensityCSV(t, "wedge.csv", []float64{0.1, 0.2, 0.3, 0.4, 0.5})
	filmPath := writeDensityCSV(t, "film.csv", []float64{0.15, 0.35, 0.80})

	report, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: wedgePath,
		FilmPath:      filmPath,
		FilmName:      "Short Film",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.1,
		Options:       analyzer.DefaultOptions(),
	})
	require.NoError(t, err)

	assert.Equal(t, 5, report.StepWedgeCount)
	assert.Equal(t, 3, report.FilmCount)
	assert.Equal(t, 3, report.UsedCount)

	// Too few samples for the regression window: degraded, not failed
	assert.Nil(t, report.ContrastIndex)
	assert.NotEmpty(t, report.Warnings)
}

func TestRun_MissingFilmFile(t *testing.T) {
	svc := newTestService(t, "interpolated")
	wedgePath := writeDensityCSV(t, "wedge.csv", []float64{0.1, 0.2})

	_, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: wedgePath,
		FilmPath:      filepath.Join(t.TempDir(), "missing.csv"),
		FilmName:      "Test Film",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.1,
		Options:       analyzer.DefaultOptions(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestRun_InvalidRequest(t *testing.T) {
	svc := newTestService(t, "interpolated")

	_, err := svc.Run(service.AnalysisRequest{
		StepWedgePath: "wedge.csv",
		FilmPath:      "film.csv",
		FilmName:      "",
		EV:            6,
		ExposureTime:  0.01,
		MinDensity:    0.1,
		Options:       analyzer.DefaultOptions(),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.Equal(t, apperrors.ExitUsage, apperrors.GetExitCode(err))
}
