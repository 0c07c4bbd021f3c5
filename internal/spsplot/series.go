package spsplot

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/wildstyl3r/spsplot/internal/utils"
)

type Point struct {
	Rho        float64 // [cm]
	Excitation float64 // [MeV]
	Label      string
}

// Series is what one reaction leaves inside the rho window.
type Series struct {
	Index  int
	Name   string
	Points []Point
}

// FilteredSeries returns one series per reaction, in insertion order, holding
// the states with RhoMin <= rho <= RhoMax. Forbidden states (NaN rho) never
// pass. Reactions with nothing in the window still get an empty series.
func (s *ReactionSet) FilteredSeries() []Series {
	if !s.valid {
		return nil
	}
	series := make([]Series, 0, len(s.reactions))
	for i, r := range s.reactions {
		rhos, excitations, labels := r.Rhos(), r.Excitations(), r.Labels()
		current := Series{Index: i, Name: r.Name(), Points: []Point{}}
		for j, rho := range rhos {
			if utils.InRange(rho, s.params.RhoMin, s.params.RhoMax) {
				current.Points = append(current.Points, Point{Rho: rho, Excitation: excitations[j], Label: labels[j]})
			}
		}
		series = append(series, current)
	}
	return series
}

// Units converts rho from cm for display.
type Units struct {
	Rho     string
	Convert func(float64) float64
}

var Centimeters = Units{Rho: "cm", Convert: func(rho float64) float64 { return rho }}

func (u Units) rho(v float64) float64 {
	if u.Convert == nil {
		return v
	}
	return u.Convert(v)
}

// WriteTable prints the series as an aligned text table.
func WriteTable(w io.Writer, series []Series, units Units) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "#\tReaction\tEx(MeV)\tLabel\tRho(%s)\n", units.Rho)
	for _, s := range series {
		if len(s.Points) == 0 {
			fmt.Fprintf(tw, "%d\t%s\t-\t-\t-\n", s.Index, s.Name)
			continue
		}
		for _, p := range s.Points {
			fmt.Fprintf(tw, "%d\t%s\t%.3f\t%s\t%.4f\n", s.Index, s.Name, p.Excitation, p.Label, units.rho(p.Rho))
		}
	}
	return tw.Flush()
}

// WriteCSV writes one row per point, ordered by reaction name.
func WriteCSV(w io.Writer, series []Series, units Units) error {
	var data utils.CSV
	for _, s := range series {
		for _, p := range s.Points {
			data = append(data, []string{
				s.Name,
				strconv.Itoa(s.Index),
				formatFloat(p.Excitation),
				p.Label,
				formatFloat(units.rho(p.Rho)),
			})
		}
	}
	return utils.WriteCSV(w, data, []string{"Reaction", "Index", "Ex(MeV)", "Label", "Rho(" + units.Rho + ")"})
}
