// Package nucdata reads the nuclear data files the kinematics are resolved
// against: AMDC-style ground state masses and lists of known excitations.
package nucdata

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/wildstyl3r/spsplot/internal/constants"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

var ErrMalformedTable = errors.New("nucdata: malformed table")

type nuclide struct {
	z, a int
}

// MassTable maps (Z, A) to the nuclear ground state mass [MeV] and Z to the
// element symbol. It is read-only once built.
type MassTable struct {
	masses   map[nuclide]float64
	elements map[int]string
}

func LoadMassTable(path string) (*MassTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	table, err := ReadMassTable(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ReadMassTable parses two header lines followed by groups of
// "N Z A Element big small", where the atomic mass is big + small*1e-6 u.
// Electron masses are subtracted.
func ReadMassTable(r io.Reader) (*MassTable, error) {
	table := &MassTable{
		masses:   map[nuclide]float64{},
		elements: map[int]string{},
	}
	tr := utils.NewTokenReader(r)
	tr.SkipLines(2)
	for {
		if _, ok := tr.Next(); !ok {
			break
		}
		z, err := tr.Int()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		a, err := tr.Int()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		element, ok := tr.Next()
		if !ok {
			return nil, fmt.Errorf("%w: line %d: %w", ErrMalformedTable, tr.Line(), io.ErrUnexpectedEOF)
		}
		big, err := tr.Float()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		small, err := tr.Float()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedTable, err)
		}
		table.masses[nuclide{z, a}] = (big + small*1e-6 - float64(z)*constants.ElectronMass) * constants.AtomicMassUnit
		table.elements[z] = element
	}
	if err := tr.Err(); err != nil {
		return nil, err
	}
	return table, nil
}

func (t *MassTable) Mass(z, a int) (float64, bool) {
	mass, ok := t.masses[nuclide{z, a}]
	return mass, ok
}

func (t *MassTable) Element(z int) (string, bool) {
	element, ok := t.elements[z]
	return element, ok
}

// Len is the number of nuclides in the table.
func (t *MassTable) Len() int {
	return len(t.masses)
}
