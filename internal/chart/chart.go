package chart

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/KaramelBytes/gdpfit/internal/utils"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	Title  = "GDP per Capita vs Life Expectancy"
	XLabel = "GDP per Capita ($)"
	YLabel = "Life Expectancy (years)"
)

// Canvas size of the rendered figure.
const (
	Width  = 10 * vg.Inch
	Height = 6 * vg.Inch
)

var (
	pointColor = color.NRGBA{R: 31, G: 119, B: 180, A: 178}
	lineColor  = color.NRGBA{R: 255, A: 255}
	gridColor  = color.NRGBA{A: 77}
)

// Spec describes one scatter-with-fit figure.
type Spec struct {
	Xs, Ys    []float64
	Predicted []float64
}

// Build assembles the plot. Predicted values are joined in the order given,
// so the fitted line follows the table rather than being re-sorted by x.
func Build(s Spec) (*plot.Plot, error) {
	if len(s.Xs) != len(s.Ys) || len(s.Xs) != len(s.Predicted) {
		return nil, fmt.Errorf("chart: mismatched series lengths %d/%d/%d", len(s.Xs), len(s.Ys), len(s.Predicted))
	}
	if len(s.Xs) == 0 {
		return nil, errors.New("chart: no observations to plot")
	}
	points, fitted := series(s)

	p := plot.New()
	p.Title.Text = Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = XLabel
	p.Y.Label.Text = YLabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Horizontal.Color = gridColor
	p.Add(grid)

	scatter, err := plotter.NewScatter(points)
	if err != nil {
		return nil, fmt.Errorf("chart: scatter: %w", err)
	}
	scatter.GlyphStyle.Color = pointColor
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(4)
	p.Add(scatter)

	line, err := plotter.NewLine(fitted)
	if err != nil {
		return nil, fmt.Errorf("chart: regression line: %w", err)
	}
	line.LineStyle.Color = lineColor
	line.LineStyle.Width = vg.Points(2)
	p.Add(line)
	return p, nil
}

func series(s Spec) (points, fitted plotter.XYs) {
	points = make(plotter.XYs, len(s.Xs))
	fitted = make(plotter.XYs, len(s.Xs))
	for i := range s.Xs {
		points[i].X, points[i].Y = s.Xs[i], s.Ys[i]
		fitted[i].X, fitted[i].Y = s.Xs[i], s.Predicted[i]
	}
	return points, fitted
}

// Render draws the figure and writes it as a PNG at path. The file is only
// replaced once the full image has been encoded.
func Render(s Spec, path string) error {
	p, err := Build(s)
	if err != nil {
		return err
	}
	w, err := p.WriterTo(Width, Height, "png")
	if err != nil {
		return fmt.Errorf("chart: encode: %w", err)
	}
	if err := utils.SafeWriteTo(path, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}
