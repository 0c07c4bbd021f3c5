package nucdata

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"

	"github.com/agnivade/levenshtein"
	"github.com/facette/natsort"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

// suggestions farther than this many edits are not offered
const maxSuggestDistance = 2

// ExcitationTable maps a nucleus symbol ("29Si") to its known states.
type ExcitationTable struct {
	levels map[string][]kinematics.Level
}

func LoadExcitationTable(path string) (*ExcitationTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	table, err := ReadExcitationTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadExcitationTable parses repeated "Symbol e1 e2 ... end" records, energies
// in MeV. Each energy token is kept verbatim as the level label, and only its
// leading number is read as the energy.
func ReadExcitationTable(r io.Reader) (*ExcitationTable, error) {
	table := &ExcitationTable{levels: map[string][]kinematics.Level{}}
	tr := utils.NewTokenReader(r)
	for {
		symbol, ok := tr.Next()
		if !ok {
			break
		}
		var levels []kinematics.Level
		for {
			token, ok := tr.Next()
			if !ok {
				return nil, fmt.Errorf("%w: %s: missing \"end\": %w", ErrMalformedTable, symbol, io.ErrUnexpectedEOF)
			}
			if token == "end" {
				break
			}
			energy, err := leadingFloat(token)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s: %w", ErrMalformedTable, tr.Line(), symbol, err)
			}
			levels = append(levels, kinematics.Level{Energy: energy, Label: token})
		}
		table.levels[symbol] = levels
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

// leadingFloat parses the longest numeric prefix of token, so annotated
// energies such as "1.273*" or "3.067(5/2+)" still read as 1.273 and 3.067.
func leadingFloat(token string) (float64, error) {
	for end := len(token); end > 0; end-- {
		if v, err := strconv.ParseFloat(token[:end], 64); err == nil {
			return v, nil
		}
	}
	return strconv.ParseFloat(token, 64)
}

// Levels returns a copy of the states listed for symbol.
func (t *ExcitationTable) Levels(symbol string) ([]kinematics.Level, bool) {
	levels, ok := t.levels[symbol]
	return slices.Clone(levels), ok
}

// Symbols lists the tabulated nuclei in natural order (2H before 12C).
func (t *ExcitationTable) Symbols() []string {
	symbols := make([]string, 0, len(t.levels))
	for symbol := range t.levels {
		symbols = append(symbols, symbol)
	}
	slices.SortFunc(symbols, func(a, b string) int {
		switch {
		case natsort.Compare(a, b):
			return -1
		case natsort.Compare(b, a):
			return 1
		}
		return 0
	})
	return symbols
}

// Suggest returns the tabulated symbol closest to symbol by edit distance.
func (t *ExcitationTable) Suggest(symbol string) (string, bool) {
	best, bestDistance := "", maxSuggestDistance+1
	for _, candidate := range t.Symbols() {
		if d := levenshtein.ComputeDistance(symbol, candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best, best != ""
}
