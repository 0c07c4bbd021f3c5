// Package render draws filtered reaction series as a focal plane map:
// rho on the x axis, one row per reaction, every state labelled.
package render

import (
	"io"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/wildstyl3r/spsplot/internal/spsplot"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

const labelOffset = 0.1 // [in] above the marker

type Figure struct {
	Title          string
	RhoMin, RhoMax float64 // [cm]
	Units          spsplot.Units
	Width, Height  float64 // [in]
	Format         string
}

// FileFormat is the image encoding used by WriteTo callers, png by default.
func (f Figure) FileFormat() string {
	if f.Format == "" {
		return "png"
	}
	return f.Format
}

// Plot builds the figure for series. Reactions without states in the window
// keep their row but get no legend entry.
func (f Figure) Plot(series []spsplot.Series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = f.Title
	p.X.Label.Text = "rho (" + f.unit() + ")"
	p.Y.Label.Text = "Reaction Index"
	if !math.IsInf(f.RhoMin, 0) && !math.IsInf(f.RhoMax, 0) {
		p.X.Min, p.X.Max = f.rho(f.RhoMin), f.rho(f.RhoMax)
	} else if lo, hi, ok := utils.MinMax(allRhos(series), math.IsNaN); ok {
		margin := math.Max(0.05*(hi-lo), 1)
		p.X.Min, p.X.Max = f.rho(lo-margin), f.rho(hi+margin)
	}
	p.Y.Min, p.Y.Max = -1, float64(len(series))

	ticks := make([]plot.Tick, 0, len(series))
	for _, s := range series {
		ticks = append(ticks, plot.Tick{Value: float64(s.Index), Label: strconv.Itoa(s.Index)})
		if len(s.Points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(s.Points))
		labels := make([]string, len(s.Points))
		for i, point := range s.Points {
			xys[i] = plotter.XY{X: f.rho(point.Rho), Y: float64(s.Index)}
			labels[i] = point.Label
		}

		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Color = plotutil.Color(s.Index)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(3)

		text, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
		if err != nil {
			return nil, err
		}
		text.Offset = vg.Point{Y: labelOffset * vg.Inch}

		p.Add(scatter, text)
		p.Legend.Add(s.Name, scatter)
	}
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)
	p.Add(plotter.NewGrid())
	return p, nil
}

func allRhos(series []spsplot.Series) []float64 {
	var rhos []float64
	for _, s := range series {
		for _, point := range s.Points {
			rhos = append(rhos, point.Rho)
		}
	}
	return rhos
}

func (f Figure) unit() string {
	if f.Units.Rho == "" {
		return spsplot.Centimeters.Rho
	}
	return f.Units.Rho
}

func (f Figure) rho(v float64) float64 {
	if f.Units.Convert == nil {
		return v
	}
	return f.Units.Convert(v)
}

// Save writes the figure to path, the format following its extension.
func (f Figure) Save(series []spsplot.Series, path string) error {
	p, err := f.Plot(series)
	if err != nil {
		return err
	}
	return p.Save(vg.Length(f.Width)*vg.Inch, vg.Length(f.Height)*vg.Inch, path)
}

// WriteTo encodes the figure as format ("png", "svg", "pdf", ...).
func (f Figure) WriteTo(w io.Writer, series []spsplot.Series, format string) error {
	p, err := f.Plot(series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(vg.Length(f.Width)*vg.Inch, vg.Length(f.Height)*vg.Inch, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
