package config

import (
	"fmt"

	"github.com/wildstyl3r/spsplot/internal/utils"
)

// factors to the internal units: MeV, cm, kG
var unitToInternal = map[string]float64{
	"eV":  1e-6, // [MeV]
	"keV": 1e-3, // [MeV]
	"MeV": 1,    // [MeV]
	"mm":  0.1,  // [cm]
	"cm":  1,    // [cm]
	"m":   100,  // [cm]
	"G":   1e-3, // [kG]
	"kG":  1,    // [kG]
	"T":   10,   // [kG]
}

type UnitClass int

const (
	Energy UnitClass = iota
	Length
	Field
)

var unitsInClass = map[UnitClass][]string{
	Energy: {"eV", "keV", "MeV"},
	Length: {"mm", "cm", "m"},
	Field:  {"G", "kG", "T"},
}

var classesOfUnits = map[string]UnitClass{
	"eV":  Energy,
	"keV": Energy,
	"MeV": Energy,
	"mm":  Length,
	"cm":  Length,
	"m":   Length,
	"G":   Field,
	"kG":  Field,
	"T":   Field,
}

var defaultUnits = []string{"MeV", "cm", "kG"}

type UnitElement = struct {
	Class UnitClass
	Power int
}

// checkUnits rejects unknown units, reports units of an already seen class as
// conflicts, and completes the list with the default unit of each missing class.
func checkUnits(units []string) (extended, conflicts []string, err error) {
	classes := map[UnitClass]struct{}{}
	for _, unit := range units {
		class, known := classesOfUnits[unit]
		if !known {
			return nil, nil, fmt.Errorf("unknown unit %q", unit)
		}
		if _, some := classes[class]; some {
			conflicts = append(conflicts, unit)
		} else {
			classes[class] = struct{}{}
		}
	}
	extended = append([]string{}, units...)
	for _, unit := range defaultUnits {
		if _, some := classes[classesOfUnits[unit]]; !some {
			extended = append(extended, unit)
		}
	}
	return
}

// Convert maps v between the given units and the internal ones.
// direct: from units to internal, otherwise from internal to units.
func Convert(v float64, classes []UnitElement, units []string, direct bool) float64 {
	for _, uc := range classes {
		unit := utils.Intersect(unitsInClass[uc.Class], units)
		if unit == nil {
			continue
		}
		factor := unitToInternal[*unit]
		for i, n := 0, utils.IntAbs(uc.Power); i < n; i++ {
			if (uc.Power > 0) == direct {
				v *= factor
			} else {
				v /= factor
			}
		}
	}
	return v
}
