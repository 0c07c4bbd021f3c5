package main

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/spsplot/internal/config"
	"github.com/wildstyl3r/spsplot/internal/kinematics"
	"github.com/wildstyl3r/spsplot/internal/nucdata"
	"github.com/wildstyl3r/spsplot/internal/spsplot"
)

func TestReactantsList(t *testing.T) {
	var l reactantsList
	require.NoError(t, l.Set("28 14 2 1 1 1"))
	require.NoError(t, l.Set(" 27  13 3 2 2 1 "))
	assert.Equal(t, reactantsList{
		{At: 28, Zt: 14, Ap: 2, Zp: 1, Ae: 1, Ze: 1},
		{At: 27, Zt: 13, Ap: 3, Zp: 2, Ae: 2, Ze: 1},
	}, l)

	assert.Error(t, l.Set("28 14 2 1 1"))
	assert.Error(t, l.Set("28 14 2 1 1 p"))
	assert.Len(t, l, 2)
	assert.Equal(t, kinematics.Reactants{At: 28, Zt: 14, Ap: 2, Zp: 1, Ae: 1, Ze: 1}, l[0])
}

func TestKinematicFields(t *testing.T) {
	kp := config.KinematicParameters{BeamKE: 1, BField: 2, Theta: 3, RhoMin: 4, RhoMax: 5}
	var p spsplot.Parameters
	for _, name := range []string{"BeamKE", "BField", "Theta", "RhoMin", "RhoMax"} {
		*kinematicField(&p, name) = kinematicValue(&kp, name)
	}
	assert.Equal(t, spsplot.Parameters{BeamKE: 1, Field: 2, Theta: 3, RhoMin: 4, RhoMax: 5}, p)
}

func siDPReactions(t *testing.T) []*kinematics.Reaction {
	t.Helper()
	tables, err := nucdata.NewStore("internal/spsplot/testdata/mass.txt", "internal/spsplot/testdata/excitations.dat", log.New(&bytes.Buffer{}, "", 0)).Tables()
	require.NoError(t, err)
	set := spsplot.NewReactionSet(tables)
	require.NoError(t, set.Init(spsplot.Parameters{BeamKE: 20, Theta: 15, Field: 8.94, RhoMin: 75, RhoMax: 82}))
	_, err = set.AddReactants(kinematics.Reactants{At: 28, Zt: 14, Ap: 2, Zp: 1, Ae: 1, Ze: 1})
	require.NoError(t, err)
	return set.Reactions()
}

func TestReportExcitations(t *testing.T) {
	reactions := siDPReactions(t)
	meters := spsplot.Units{Rho: "m", Convert: func(rho float64) float64 { return rho / 100 }}

	var buf bytes.Buffer
	reportExcitations(&buf, reactions, 81.08560239962941, meters)
	assert.Contains(t, buf.String(), "28Si(2H,1H)29Si: rho 0.8108")
	assert.Contains(t, buf.String(), " m -> Ex 1.2730 MeV")

	buf.Reset()
	reportExcitations(&buf, reactions, 90, spsplot.Centimeters)
	assert.Contains(t, buf.String(), "rho 90 cm: ")
	assert.Contains(t, buf.String(), "out of kinematic range")
}

func TestReportKinematics(t *testing.T) {
	var buf bytes.Buffer
	reportKinematics(&buf, siDPReactions(t))
	assert.Contains(t, buf.String(), "28Si(2H,1H)29Si: Q = 6.2490 MeV")
	assert.Contains(t, buf.String(), "  ejectile: p = ")
}
