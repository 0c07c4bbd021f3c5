package kinematics

import (
	"errors"
	"fmt"
)

var (
	// ErrNotReady indicates a computation requested before its prerequisites were set.
	ErrNotReady = errors.New("kinematics: not ready")

	// ErrInvalidReaction indicates reactants that do not conserve nucleon or charge number.
	ErrInvalidReaction = errors.New("kinematics: invalid reaction")

	// ErrReactantsSet indicates an attempt to re-initialize a reaction's reactants.
	ErrReactantsSet = errors.New("kinematics: reactants already initialized")

	// ErrOutOfRange indicates a rho that no excitation energy of the residual can produce.
	ErrOutOfRange = errors.New("kinematics: rho out of kinematic range")
)

// InvalidReactionError carries the reactants and the non-physical residual.
type InvalidReactionError struct {
	Reactants Reactants
	Ares      int
	Zres      int
}

func (e *InvalidReactionError) Error() string {
	r := e.Reactants
	return fmt.Sprintf("%v: (At=%d Zt=%d Ap=%d Zp=%d Ae=%d Ze=%d) gives residual A=%d Z=%d",
		ErrInvalidReaction, r.At, r.Zt, r.Ap, r.Zp, r.Ae, r.Ze, e.Ares, e.Zres)
}

func (e *InvalidReactionError) Unwrap() error {
	return ErrInvalidReaction
}
