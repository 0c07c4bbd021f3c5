package spsplot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

// header lines skipped after the window values: a blank line and column names
const headerTail = 2

// Load replaces the set with the setting and reactions listed in r:
//
//	BeamKE(MeV): 20
//	Bfield(kG): 8.94
//	Theta(deg): 15
//	RhoMin(cm): 60 RhoMax(cm): 90
//
//	AT	ZT	AP	ZP	AE	ZE
//	28	14	2	1	1	1
//
// Labels are ignored. On error the set is left as it was.
func (s *ReactionSet) Load(r io.Reader) error {
	tr := utils.NewTokenReader(r)

	var p Parameters
	for _, value := range []*float64{&p.BeamKE, &p.Field, &p.Theta, &p.RhoMin, &p.RhoMax} {
		if _, ok := tr.Next(); !ok {
			return fmt.Errorf("%w: line %d: %w", ErrMalformedInput, tr.Line(), io.ErrUnexpectedEOF)
		}
		v, err := tr.Float()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrMalformedInput, err)
		}
		*value = v
	}
	tr.SkipLines(headerTail)

	var rows []kinematics.Reactants
	for {
		token, ok := tr.Peek()
		if !ok {
			break
		}
		if _, err := strconv.Atoi(token); err != nil {
			break
		}
		var row [6]int
		for i := range row {
			v, err := tr.Int()
			if err != nil {
				return fmt.Errorf("%w: reaction %d: %w", ErrMalformedInput, len(rows)+1, err)
			}
			row[i] = v
		}
		rows = append(rows, kinematics.Reactants{
			At: row[0], Zt: row[1],
			Ap: row[2], Zp: row[3],
			Ae: row[4], Ze: row[5],
		})
	}
	if err := tr.Err(); err != nil {
		return err
	}

	reactions := make([]*kinematics.Reaction, 0, len(rows))
	for i, ids := range rows {
		reaction, err := kinematics.CreateReaction(s.tables, ids)
		if err != nil {
			return fmt.Errorf("reaction %d: %w", i+1, err)
		}
		if err := reaction.SetKinematics(p.BeamKE, p.Theta, p.Field); err != nil {
			return fmt.Errorf("reaction %d: %w", i+1, err)
		}
		reactions = append(reactions, reaction)
	}

	s.reactions = reactions
	s.params = p
	s.valid = true
	return nil
}

// Save writes the set in the format read by Load.
func (s *ReactionSet) Save(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "BeamKE(MeV): %s\n", formatFloat(s.params.BeamKE))
	fmt.Fprintf(bw, "Bfield(kG): %s\n", formatFloat(s.params.Field))
	fmt.Fprintf(bw, "Theta(deg): %s\n", formatFloat(s.params.Theta))
	fmt.Fprintf(bw, "RhoMin(cm): %s RhoMax(cm): %s\n", formatFloat(s.params.RhoMin), formatFloat(s.params.RhoMax))
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "AT\tZT\tAP\tZP\tAE\tZE")
	for _, r := range s.reactions {
		ids := r.Reactants()
		fmt.Fprintf(bw, "%d\t%d\t%d\t%d\t%d\t%d\n", ids.At, ids.Zt, ids.Ap, ids.Zp, ids.Ae, ids.Ze)
	}
	return bw.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (s *ReactionSet) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()
	if err := s.Load(file); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func (s *ReactionSet) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Save(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
