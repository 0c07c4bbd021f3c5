// Package kinematics solves two-body reactions A(a,b)B as seen by a magnetic
// spectrometer: for every known state of the residual B it computes the
// bending radius of the ejectile b.
package kinematics

import (
	"slices"

	"go-hep.org/x/hep/fmom"

	"github.com/wildstyl3r/spsplot/internal/constants"
)

type Reaction struct {
	tables Tables

	target, projectile, ejectile, residual Nucleus

	beamKE float64 // [MeV]
	theta  float64 // [rad]
	field  float64 // [kG]

	name        string
	excitations []float64
	labels      []string
	rhos        []float64

	reactantsReady  bool
	kinematicsReady bool

	beam, rest fmom.PxPyPzE
}

// NewReaction returns an inert reaction resolved against tables.
func NewReaction(tables Tables) *Reaction {
	return &Reaction{tables: tables}
}

// CreateReaction resolves the reactants into a ready-to-configure reaction.
func CreateReaction(tables Tables, ids Reactants) (*Reaction, error) {
	r := NewReaction(tables)
	if err := r.InitializeReactants(ids); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Reaction) InitializeReactants(ids Reactants) error {
	if r.reactantsReady {
		return ErrReactantsSet
	}
	r.target = r.resolve(ids.At, ids.Zt)
	r.projectile = r.resolve(ids.Ap, ids.Zp)
	r.ejectile = r.resolve(ids.Ae, ids.Ze)

	r.residual = Nucleus{}
	r.residual.A, r.residual.Z = ids.Residual()
	if r.residual.A <= 0 || r.residual.Z <= 0 {
		err := &InvalidReactionError{Reactants: ids, Ares: r.residual.A, Zres: r.residual.Z}
		r.tables.logf("%v", err)
		return err
	}
	r.residual = r.resolve(r.residual.A, r.residual.Z)

	r.setExcitations()
	r.name = r.target.Symbol + "(" + r.projectile.Symbol + "," + r.ejectile.Symbol + ")" + r.residual.Symbol
	r.reactantsReady = true
	return nil
}

func (r *Reaction) resolve(a, z int) Nucleus {
	n := Nucleus{A: a, Z: z}
	element, ok := r.tables.Nuclides.Element(z)
	if !ok {
		r.tables.logf("atomic number %d not found in element table, using %q", z, constants.UnknownElement)
		element = constants.UnknownElement
	}
	n.Symbol = Symbol(a, element)
	mass, ok := r.tables.Nuclides.Mass(z, a)
	if !ok {
		r.tables.logf("mass of (Z,A)=(%d,%d) not found in mass table, using %g MeV", z, a, constants.LookupMissMass)
		mass = constants.LookupMissMass
	}
	n.GroundStateMass = mass
	n.setKinetic(0)
	return n
}

func (r *Reaction) setExcitations() {
	levels, ok := r.tables.Excitations.Levels(r.residual.Symbol)
	if !ok || len(levels) == 0 {
		if s, isSuggester := r.tables.Excitations.(Suggester); isSuggester {
			if near, found := s.Suggest(r.residual.Symbol); found {
				r.tables.logf("no excitations listed for %s (nearest listed: %s), using ground state only", r.residual.Symbol, near)
			} else {
				r.tables.logf("no excitations listed for %s, using ground state only", r.residual.Symbol)
			}
		} else {
			r.tables.logf("no excitations listed for %s, using ground state only", r.residual.Symbol)
		}
		levels = []Level{{Energy: 0, Label: ""}}
	}
	r.excitations = make([]float64, len(levels))
	r.labels = make([]string, len(levels))
	for i, level := range levels {
		r.excitations[i] = level.Energy
		r.labels[i] = level.Label
	}
}

// SetKinematics fixes the beam energy [MeV], the spectrometer angle [deg] and
// field [kG], then recomputes rho for every excitation.
func (r *Reaction) SetKinematics(beamKE, labAngle, field float64) error {
	if !r.reactantsReady {
		r.tables.logf("reactants of reaction not set, unable to initialize kinematics")
		return ErrNotReady
	}
	r.beamKE = beamKE
	r.theta = labAngle * constants.DegToRad
	r.field = field

	r.projectile.setKinetic(beamKE)
	r.target.setKinetic(0)
	r.beam = fmom.NewPxPyPzE(0, 0, r.projectile.Momentum, r.projectile.TotalEnergy)
	r.rest = fmom.NewPxPyPzE(0, 0, 0, r.target.TotalEnergy)

	r.kinematicsReady = true
	r.rhos = make([]float64, len(r.excitations))
	for i, ex := range r.excitations {
		r.rhos[i] = r.rhoAt(ex)
	}
	return nil
}

// Clone returns an independent copy sharing only the lookup tables.
func (r *Reaction) Clone() *Reaction {
	c := *r
	c.excitations = slices.Clone(r.excitations)
	c.labels = slices.Clone(r.labels)
	c.rhos = slices.Clone(r.rhos)
	return &c
}

func (r *Reaction) Name() string { return r.name }

func (r *Reaction) Target() Nucleus     { return r.target }
func (r *Reaction) Projectile() Nucleus { return r.projectile }
func (r *Reaction) Ejectile() Nucleus   { return r.ejectile }
func (r *Reaction) Residual() Nucleus   { return r.residual }

func (r *Reaction) Reactants() Reactants {
	return Reactants{
		At: r.target.A, Zt: r.target.Z,
		Ap: r.projectile.A, Zp: r.projectile.Z,
		Ae: r.ejectile.A, Ze: r.ejectile.Z,
	}
}

// Angle is the lab angle in degrees.
func (r *Reaction) Angle() float64  { return r.theta / constants.DegToRad }
func (r *Reaction) Field() float64  { return r.field }
func (r *Reaction) BeamKE() float64 { return r.beamKE }

func (r *Reaction) Excitations() []float64 { return slices.Clone(r.excitations) }
func (r *Reaction) Labels() []string       { return slices.Clone(r.labels) }
func (r *Reaction) Rhos() []float64        { return slices.Clone(r.rhos) }

func (r *Reaction) ReactantsReady() bool  { return r.reactantsReady }
func (r *Reaction) KinematicsReady() bool { return r.kinematicsReady }
