package kinematics

import (
	"log"
	"math"
	"strconv"
)

// Nucleus is one participant of a two-body reaction. Energies are in MeV,
// momenta in MeV/c.
type Nucleus struct {
	A, Z            int
	GroundStateMass float64
	KineticEnergy   float64
	TotalEnergy     float64
	Momentum        float64
	Symbol          string
}

// setKinetic puts the nucleus on shell with the given kinetic energy.
func (n *Nucleus) setKinetic(ke float64) {
	n.KineticEnergy = ke
	n.TotalEnergy = ke + n.GroundStateMass
	n.Momentum = math.Sqrt(n.TotalEnergy*n.TotalEnergy - n.GroundStateMass*n.GroundStateMass)
}

// Reactants identifies a reaction A(a,b)B by mass and atomic numbers of the
// target, projectile and ejectile. The residual follows from conservation.
type Reactants struct {
	At, Zt int
	Ap, Zp int
	Ae, Ze int
}

func (r Reactants) Residual() (a, z int) {
	return r.At + r.Ap - r.Ae, r.Zt + r.Zp - r.Ze
}

// Level is a known excited state of a nucleus.
type Level struct {
	Energy float64 // [MeV]
	Label  string
}

// NuclideTable resolves ground-state nuclear masses and element symbols.
type NuclideTable interface {
	Mass(z, a int) (float64, bool)
	Element(z int) (string, bool)
}

// ExcitationTable lists the known states of a nucleus by its symbol ("29Si").
type ExcitationTable interface {
	Levels(symbol string) ([]Level, bool)
}

// Suggester is optionally implemented by tables able to propose a known key
// close to a missing one.
type Suggester interface {
	Suggest(symbol string) (string, bool)
}

// Tables bundles the read-only lookups a reaction is resolved against.
// A nil Logger sends diagnostics to the standard logger.
type Tables struct {
	Nuclides    NuclideTable
	Excitations ExcitationTable
	Logger      *log.Logger
}

func (t Tables) logf(format string, args ...any) {
	if t.Logger == nil {
		log.Printf(format, args...)
		return
	}
	t.Logger.Printf(format, args...)
}

func Symbol(a int, element string) string {
	return strconv.Itoa(a) + element
}
