package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"github.com/alexiusacademia/gopyramid/internal/experiment"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrNothingToPlot is returned when no point has a finite error sum.
var ErrNothingToPlot = errors.New("no finite error sums to plot")

// ExportSweepPlot exports a scatter of error sum against height/base ratio
// with the reference and winner highlighted. The image format follows the
// file extension (png, svg, pdf, ...).
func ExportSweepPlot(points []experiment.Point, reference, winner experiment.Point, filename string) error {
	xys := finiteXYs(points)
	if len(xys) == 0 {
		return ErrNothingToPlot
	}

	p := plot.New()
	p.Title.Text = "Pyramid Ratio Sweep"
	p.X.Label.Text = "Height / base length"
	p.Y.Label.Text = "Error sum"
	p.Y.Scale = plot.LogScale{}
	p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	p.Add(plotter.NewGrid())

	all, err := plotter.NewScatter(xys)
	if err != nil {
		return err
	}
	all.GlyphStyle.Shape = draw.CircleGlyph{}
	all.GlyphStyle.Radius = vg.Points(1)
	all.GlyphStyle.Color = color.RGBA{R: 100, G: 149, B: 237, A: 120}
	p.Add(all)
	p.Legend.Add("candidates", all)

	if ref := finiteXYs([]experiment.Point{reference}); len(ref) == 1 {
		mark, err := plotter.NewScatter(ref)
		if err != nil {
			return err
		}
		mark.GlyphStyle.Shape = draw.TriangleGlyph{}
		mark.GlyphStyle.Radius = vg.Points(5)
		mark.GlyphStyle.Color = color.RGBA{R: 255, G: 0, B: 0, A: 255}
		p.Add(mark)
		p.Legend.Add(fmt.Sprintf("reference %s", reference.Candidate), mark)
	}

	if best := finiteXYs([]experiment.Point{winner}); len(best) == 1 {
		mark, err := plotter.NewScatter(best)
		if err != nil {
			return err
		}
		mark.GlyphStyle.Shape = draw.RingGlyph{}
		mark.GlyphStyle.Radius = vg.Points(5)
		mark.GlyphStyle.Color = color.RGBA{R: 0, G: 128, B: 0, A: 255}
		p.Add(mark)
		p.Legend.Add(fmt.Sprintf("winner %s", winner.Candidate), mark)
	}
	p.Legend.Top = true

	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	return p.Save(8*vg.Inch, 6*vg.Inch, filename)
}

// finiteXYs drops points with an infinite or NaN error sum and floors the
// rest for the log axis.
func finiteXYs(points []experiment.Point) plotter.XYs {
	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if math.IsInf(pt.ErrorSum, 0) || math.IsNaN(pt.ErrorSum) {
			continue
		}
		if math.IsInf(pt.HeightToBase, 0) || math.IsNaN(pt.HeightToBase) {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.HeightToBase, Y: math.Max(pt.ErrorSum, errorFloor)})
	}
	return xys
}
