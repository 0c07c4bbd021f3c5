package kinematics

import (
	"fmt"
	"math"

	"go-hep.org/x/hep/fmom"

	"github.com/wildstyl3r/spsplot/internal/constants"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

const (
	inversionEps       = 1e-9 // [MeV]
	inversionTolerance = 1e-6 // relative to the requested rho
)

// Rho returns the bending radius [cm] of the ejectile when the residual is
// left in the state ex [MeV]. Kinematically forbidden states give NaN.
func (r *Reaction) Rho(ex float64) (float64, error) {
	if !r.kinematicsReady {
		return 0, ErrNotReady
	}
	return r.rhoAt(ex), nil
}

// QValue of the reaction populating the residual state ex [MeV].
func (r *Reaction) QValue(ex float64) (float64, error) {
	if !r.reactantsReady {
		return 0, ErrNotReady
	}
	return r.qValue(ex), nil
}

func (r *Reaction) qValue(ex float64) float64 {
	return r.projectile.GroundStateMass + r.target.GroundStateMass -
		(r.ejectile.GroundStateMass + r.residual.GroundStateMass + ex)
}

// ejectileKE is the non-relativistic two-body solution for the ejectile
// kinetic energy at the lab angle.
func (r *Reaction) ejectileKE(ex float64) float64 {
	mp := r.projectile.GroundStateMass
	me := r.ejectile.GroundStateMass
	mr := r.residual.GroundStateMass
	kp := r.projectile.KineticEnergy

	q := r.qValue(ex)
	rr := math.Sqrt(mp*me*kp) / (me + mr) * math.Cos(r.theta)
	ss := (kp*(mr-mp) + mr*q) / (me + mr)

	root := math.Sqrt(rr*rr + ss)
	x1, x2 := rr+root, rr-root
	// x1 wins unless only x2 is physical
	switch {
	case x2 < 0 || math.IsNaN(x2):
		return x1 * x1
	case x1 < 0 || math.IsNaN(x1):
		return x2 * x2
	default:
		return x1 * x1
	}
}

func (r *Reaction) rhoAt(ex float64) float64 {
	ke := r.ejectileKE(ex)
	p := math.Sqrt(ke * (ke + 2*r.ejectile.GroundStateMass))
	qbrho := constants.QBrhoToMomentum * float64(r.ejectile.Z) * r.field * constants.KiloGaussToTesla
	return p / qbrho * constants.MeterToCentimeter
}

// EjectileMomentum is the lab four-momentum of the ejectile emitted at the
// spectrometer angle, in the plane x-z with the beam along z.
func (r *Reaction) EjectileMomentum(ex float64) (fmom.PxPyPzE, error) {
	if !r.kinematicsReady {
		return fmom.PxPyPzE{}, ErrNotReady
	}
	ke := r.ejectileKE(ex)
	ejectile := r.ejectile
	ejectile.setKinetic(ke)
	return fmom.NewPxPyPzE(
		ejectile.Momentum*math.Sin(r.theta),
		0,
		ejectile.Momentum*math.Cos(r.theta),
		ejectile.TotalEnergy,
	), nil
}

// CenterOfMassEnergy is the invariant mass of beam and target [MeV].
func (r *Reaction) CenterOfMassEnergy() (float64, error) {
	if !r.kinematicsReady {
		return 0, ErrNotReady
	}
	return fmom.Add(&r.beam, &r.rest).M(), nil
}

// ExcitationAtRho inverts the rho curve: it finds the excitation energy of the
// residual [MeV] that puts the ejectile on the given radius [cm].
func (r *Reaction) ExcitationAtRho(rho float64) (float64, error) {
	if !r.kinematicsReady {
		return 0, ErrNotReady
	}
	ground := r.rhoAt(0)
	if math.IsNaN(ground) || rho > ground*(1+inversionTolerance) || rho <= 0 {
		return 0, fmt.Errorf("%w: %g cm (ground state at %g cm)", ErrOutOfRange, rho, ground)
	}
	if rho >= ground {
		return 0, nil
	}

	below := func(ex float64) bool {
		v := r.rhoAt(ex)
		return math.IsNaN(v) || v <= rho
	}
	upper := max(r.qValue(0)+r.projectile.KineticEnergy, 1)
	for i := 0; !below(upper) && i < 64; i++ {
		upper *= 2
	}
	if !below(upper) {
		return 0, fmt.Errorf("%w: %g cm", ErrOutOfRange, rho)
	}

	lo, _ := utils.BinarySearch(below, 0, upper, inversionEps)
	if math.Abs(r.rhoAt(lo)-rho) > inversionTolerance*rho {
		// rho lies between the kinematic limit and zero
		return 0, fmt.Errorf("%w: %g cm beyond kinematic limit %g cm", ErrOutOfRange, rho, r.rhoAt(lo))
	}
	return lo, nil
}
