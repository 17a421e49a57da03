package render

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "go-densitometer/internal/errors"
	"go-densitometer/internal/logger"
	"go-densitometer/pkg/models"
)

// ChartRenderer draws the diagnostic chart for a finished report
type ChartRenderer interface {
	// Render writes the chart to the given file; format follows the extension
	Render(report *models.Report, outputPath string) error
}

var (
	curveColor  = color.RGBA{B: 255, A: 255}
	regionColor = color.RGBA{R: 255, A: 255}
	speedColor  = color.RGBA{R: 255, G: 165, A: 255}
	refColor    = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

// chartRenderer implements ChartRenderer with gonum/plot
type chartRenderer struct{}

// NewChartRenderer creates a new chart renderer
func NewChartRenderer() ChartRenderer {
	return &chartRenderer{}
}

// Render draws the characteristic curve with its annotations: the measured
// response, the winning linear region, the speed-point marker, toe/shoulder
// reference lines, and the metric summary under the x axis.
func (cr *chartRenderer) Render(report *models.Report, outputPath string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Film Characteristic Curve\nEV: %g, Exposure Time: %gs\n%s",
		report.EV, report.ExposureTime, report.FilmName)
	p.Y.Label.Text = "Density"
	p.X.Label.Text = fmt.Sprintf("Log E (lux-seconds)\n\n%s", report.SummaryLine())
	p.Add(plotter.NewGrid())

	// The x axis is logarithmic like the reference charts, but a log scale
	// cannot hold non-positive exposures; fall back to linear if any exist.
	if positiveExposures(report.Curve) {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	} else {
		logger.Warn("Non-positive exposures on curve, falling back to a linear x axis")
	}

	if err := cr.addCurve(p, report.Curve); err != nil {
		return apperrors.NewRenderError("failed to plot film response", err)
	}
	if report.Region != nil {
		if err := cr.addRegion(p, report.Region); err != nil {
			return apperrors.NewRenderError("failed to plot contrast index region", err)
		}
	}
	if err := cr.addSpeedPoint(p, report.SpeedPoint); err != nil {
		return apperrors.NewRenderError("failed to plot speed point", err)
	}
	if err := cr.addReferenceLines(p, report); err != nil {
		return apperrors.NewRenderError("failed to plot reference lines", err)
	}

	if err := p.Save(14*vg.Inch, 10*vg.Inch, outputPath); err != nil {
		return apperrors.NewRenderError(fmt.Sprintf("failed to save chart to %s", outputPath), err)
	}
	return nil
}

func (cr *chartRenderer) addCurve(p *plot.Plot, curve models.Curve) error {
	xys := make(plotter.XYs, len(curve))
	for i, s := range curve {
		xys[i].X = s.LogExposure
		xys[i].Y = s.Density
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	line.Color = curveColor
	points.Shape = draw.CircleGlyph{}
	points.Color = curveColor
	p.Add(line, points)
	p.Legend.Add("Film Response", line, points)
	return nil
}

func (cr *chartRenderer) addRegion(p *plot.Plot, region *models.LinearRegion) error {
	seg, err := plotter.NewLine(plotter.XYs{
		{X: region.A.LogExposure, Y: region.A.Density},
		{X: region.B.LogExposure, Y: region.B.Density},
	})
	if err != nil {
		return err
	}
	seg.Color = regionColor
	seg.Width = vg.Points(2)
	p.Add(seg)
	p.Legend.Add("Contrast Index Region", seg)
	return nil
}

func (cr *chartRenderer) addSpeedPoint(p *plot.Plot, sp models.SpeedPoint) error {
	xy := plotter.XYs{{X: sp.LogExposure, Y: sp.Density}}

	marker, err := plotter.NewScatter(xy)
	if err != nil {
		return err
	}
	marker.GlyphStyle = draw.GlyphStyle{
		Color:  speedColor,
		Radius: vg.Points(5),
		Shape:  draw.CircleGlyph{},
	}
	p.Add(marker)
	p.Legend.Add("ISO Speed Point", marker)

	labels, err := plotter.NewLabels(plotter.XYLabels{
		XYs:    xy,
		Labels: []string{fmt.Sprintf("Speed Point (LogE=%.2f, D=%.2f)", sp.LogExposure, sp.Density)},
	})
	if err != nil {
		return err
	}
	labels.Offset = vg.Point{X: vg.Points(8), Y: vg.Points(-8)}
	p.Add(labels)
	return nil
}

// addReferenceLines draws the dashed toe and shoulder lines at the resolved
// minimum and maximum densities across the curve's exposure span
func (cr *chartRenderer) addReferenceLines(p *plot.Plot, report *models.Report) error {
	minX, maxX := exposureSpan(report.Curve)
	for _, ref := range []struct {
		name    string
		density float64
	}{
		{"Toe", report.MinDensity},
		{"Shoulder", report.MaxDensity},
	} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: minX, Y: ref.density},
			{X: maxX, Y: ref.density},
		})
		if err != nil {
			return err
		}
		line.Color = refColor
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(ref.name, line)
	}
	return nil
}

func positiveExposures(curve models.Curve) bool {
	for _, s := range curve {
		if s.LogExposure <= 0 {
			return false
		}
	}
	return len(curve) > 0
}

func exposureSpan(curve models.Curve) (min, max float64) {
	if len(curve) == 0 {
		return 0, 1
	}
	min, max = curve[0].LogExposure, curve[0].LogExposure
	for _, s := range curve[1:] {
		if s.LogExposure < min {
			min = s.LogExposure
		}
		if s.LogExposure > max {
			max = s.LogExposure
		}
	}
	return min, max
}
