package report

import (
	"fmt"
	"image/color"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/nmrqc/nmrqc/internal/peaks"
	"github.com/nmrqc/nmrqc/internal/spectrum"
)

// Overlay renders the observed and predicted spectra on one plot with
// the matched observed peaks marked, and saves it as PNG. The x axis
// runs from high to low chemical shift, the NMR plotting convention.
func Overlay(observed, predicted spectrum.Spectrum, m peaks.Matching, path string) error {
	p := plot.New()
	p.Title.Text = "Sample vs Predicted Spectrum"
	p.X.Label.Text = "Chemical Shift (ppm)"
	p.Y.Label.Text = "Normalized Intensity"
	p.X.Tick.Marker = invertedTicks{}

	obsLine, err := plotter.NewLine(negatedXYs(observed))
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	obsLine.Color = color.Black
	p.Add(obsLine)
	p.Legend.Add("Sample", obsLine)

	predLine, err := plotter.NewLine(negatedXYs(predicted))
	if err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	predLine.Color = color.RGBA{B: 255, A: 255}
	p.Add(predLine)
	p.Legend.Add("Predicted", predLine)

	if len(m.Pairs) > 0 {
		pts := make(plotter.XYs, len(m.Pairs))
		for i, pair := range m.Pairs {
			pts[i].X = -pair.Observed.Shift
			pts[i].Y = pair.Observed.Height
		}
		marks, err := plotter.NewScatter(pts)
		if err != nil {
			return fmt.Errorf("overlay: %w", err)
		}
		marks.GlyphStyle.Shape = draw.RingGlyph{}
		marks.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		p.Add(marks)
		p.Legend.Add("Matched", marks)
	}

	p.Legend.Top = true
	return p.Save(10*vg.Inch, 5*vg.Inch, path)
}

// negatedXYs mirrors the shift axis so that chemical shift decreases
// left to right once the ticks are relabelled.
func negatedXYs(s spectrum.Spectrum) plotter.XYs {
	xys := make(plotter.XYs, s.Len())
	for i, pt := range s.Points {
		xys[i].X = -pt.Shift
		xys[i].Y = pt.Intensity
	}
	return xys
}

// invertedTicks relabels default ticks with the sign flipped back, so
// the mirrored axis reads in positive ppm.
type invertedTicks struct{}

func (invertedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := plot.DefaultTicks{}.Ticks(min, max)
	for i, t := range ticks {
		if t.Label != "" {
			ticks[i].Label = strconv.FormatFloat(-t.Value, 'g', -1, 64)
		}
	}
	return ticks
}
