// Package spsplot keeps an ordered set of reactions under one spectrometer
// setting and turns it into per-reaction (rho, excitation) series restricted
// to the focal plane window.
package spsplot

import (
	"errors"
	"fmt"
	"log"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
)

var ErrMalformedInput = errors.New("spsplot: malformed reaction list")

// Parameters is the setting shared by every reaction of a set.
type Parameters struct {
	BeamKE float64 // [MeV]
	Theta  float64 // [deg]
	Field  float64 // [kG]
	RhoMin float64 // [cm]
	RhoMax float64 // [cm]
}

type ReactionSet struct {
	tables    kinematics.Tables
	reactions []*kinematics.Reaction
	params    Parameters
	valid     bool
}

// NewReactionSet returns an empty set that refuses parameter changes until it
// is loaded or initialized.
func NewReactionSet(tables kinematics.Tables) *ReactionSet {
	return &ReactionSet{tables: tables}
}

func (s *ReactionSet) logf(format string, args ...any) {
	if s.tables.Logger == nil {
		log.Printf(format, args...)
		return
	}
	s.tables.Logger.Printf(format, args...)
}

// Init validates the set with the given setting, keeping its reactions.
func (s *ReactionSet) Init(p Parameters) error {
	s.params = p
	s.valid = true
	return s.update()
}

func (s *ReactionSet) update() error {
	var errs []error
	for i, r := range s.reactions {
		if err := r.SetKinematics(s.params.BeamKE, s.params.Theta, s.params.Field); err != nil {
			errs = append(errs, fmt.Errorf("reaction %d %s: %w", i, r.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// SetGlobalParameters changes beam energy [MeV], angle [deg] and field [kG]
// and recomputes every reaction.
func (s *ReactionSet) SetGlobalParameters(beamKE, theta, field float64) error {
	if !s.valid {
		s.logf("reaction set not loaded, ignoring kinematic parameters")
		return kinematics.ErrNotReady
	}
	s.params.BeamKE, s.params.Theta, s.params.Field = beamKE, theta, field
	return s.update()
}

func (s *ReactionSet) SetBeamEnergy(beamKE float64) error {
	return s.SetGlobalParameters(beamKE, s.params.Theta, s.params.Field)
}

func (s *ReactionSet) SetAngle(theta float64) error {
	return s.SetGlobalParameters(s.params.BeamKE, theta, s.params.Field)
}

func (s *ReactionSet) SetField(field float64) error {
	return s.SetGlobalParameters(s.params.BeamKE, s.params.Theta, field)
}

// SetRhoWindow only changes what FilteredSeries keeps. min <= max is not checked.
func (s *ReactionSet) SetRhoWindow(rhoMin, rhoMax float64) {
	s.params.RhoMin, s.params.RhoMax = rhoMin, rhoMax
}

// AddReaction appends a copy of r brought to the set's setting, so later
// changes to r never reach the set. Unlike a bare append it fails with
// ErrNotReady until the set is loaded or initialized.
func (s *ReactionSet) AddReaction(r *kinematics.Reaction) error {
	_, err := s.add(r)
	return err
}

func (s *ReactionSet) add(r *kinematics.Reaction) (*kinematics.Reaction, error) {
	if !s.valid {
		s.logf("reaction set not loaded, cannot add reaction")
		return nil, kinematics.ErrNotReady
	}
	if r == nil || !r.ReactantsReady() {
		return nil, kinematics.ErrNotReady
	}
	member := r.Clone()
	if err := member.SetKinematics(s.params.BeamKE, s.params.Theta, s.params.Field); err != nil {
		return nil, err
	}
	s.reactions = append(s.reactions, member)
	return member.Clone(), nil
}

// AddReactants resolves ids against the set's tables and appends the reaction.
// The returned reaction is a copy of the member.
func (s *ReactionSet) AddReactants(ids kinematics.Reactants) (*kinematics.Reaction, error) {
	if !s.valid {
		return nil, kinematics.ErrNotReady
	}
	r, err := kinematics.CreateReaction(s.tables, ids)
	if err != nil {
		return nil, err
	}
	return s.add(r)
}

// Reactions returns copies of the members in insertion order. Reconfiguring a
// copy leaves the set untouched.
func (s *ReactionSet) Reactions() []*kinematics.Reaction {
	reactions := make([]*kinematics.Reaction, len(s.reactions))
	for i, r := range s.reactions {
		reactions[i] = r.Clone()
	}
	return reactions
}

func (s *ReactionSet) Len() int               { return len(s.reactions) }
func (s *ReactionSet) IsValid() bool          { return s.valid }
func (s *ReactionSet) Parameters() Parameters { return s.params }
func (s *ReactionSet) BeamKE() float64        { return s.params.BeamKE }
func (s *ReactionSet) Theta() float64         { return s.params.Theta }
func (s *ReactionSet) Field() float64         { return s.params.Field }
func (s *ReactionSet) RhoMin() float64        { return s.params.RhoMin }
func (s *ReactionSet) RhoMax() float64        { return s.params.RhoMax }
