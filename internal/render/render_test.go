package render

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/spsplot/internal/spsplot"
)

var testSeries = []spsplot.Series{
	{Index: 0, Name: "28Si(2H,1H)29Si", Points: []spsplot.Point{
		{Rho: 81.0856, Excitation: 1.273, Label: "1.273"},
		{Rho: 79.8175, Excitation: 2.028, Label: "2.028"},
	}},
	{Index: 1, Name: "27Al(3He,2H)28Si", Points: []spsplot.Point{}},
}

func TestPlot(t *testing.T) {
	f := Figure{RhoMin: 75, RhoMax: 82, Width: 8, Height: 6}
	p, err := f.Plot(testSeries)
	require.NoError(t, err)

	assert.Equal(t, 75.0, p.X.Min)
	assert.Equal(t, 82.0, p.X.Max)
	assert.Equal(t, -1.0, p.Y.Min)
	assert.Equal(t, 2.0, p.Y.Max)
	assert.Equal(t, "rho (cm)", p.X.Label.Text)
	assert.Equal(t, "Reaction Index", p.Y.Label.Text)

	ticks := p.Y.Tick.Marker.Ticks(p.Y.Min, p.Y.Max)
	require.Len(t, ticks, 2)
	assert.Equal(t, "1", ticks[1].Label)
}

func TestPlotUnits(t *testing.T) {
	f := Figure{
		RhoMin: 75, RhoMax: 82,
		Units: spsplot.Units{Rho: "m", Convert: func(rho float64) float64 { return rho / 100 }},
	}
	p, err := f.Plot(testSeries)
	require.NoError(t, err)
	assert.Equal(t, "rho (m)", p.X.Label.Text)
	assert.InDelta(t, 0.75, p.X.Min, 1e-12)
}

func TestPlotUnboundedWindow(t *testing.T) {
	f := Figure{RhoMin: math.Inf(-1), RhoMax: math.Inf(1), Width: 4, Height: 3}
	p, err := f.Plot(testSeries)
	require.NoError(t, err)
	assert.InDelta(t, 78.8175, p.X.Min, 1e-9)
	assert.InDelta(t, 82.0856, p.X.Max, 1e-9)

	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf, testSeries, "svg"))
	assert.Contains(t, buf.String(), "<svg")
}

func TestWriteTo(t *testing.T) {
	f := Figure{Title: "run", RhoMin: 75, RhoMax: 82, Width: 8, Height: 6}
	var buf bytes.Buffer
	require.NoError(t, f.WriteTo(&buf, testSeries, "svg"))
	assert.Contains(t, buf.String(), "<svg")
	assert.Contains(t, buf.String(), "28Si(2H,1H)29Si")

	assert.Error(t, f.WriteTo(&buf, testSeries, "bmp"))
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spsplot.png")
	f := Figure{RhoMin: 75, RhoMax: 82, Width: 4, Height: 3}
	require.NoError(t, f.Save(nil, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.NotZero(t, info.Size())
}
