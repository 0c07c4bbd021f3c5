package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
)

const inlineRun = `
OutputDir = "out"
BeamKE = 20
BField = 0.894
Theta = 15
RhoMin = 700
RhoMax = 900
InputUnits = ["T", "mm"]
OutputUnits = ["m"]

[Plot]
Format = "svg"

[[Reactions]]
Name = "si28dp"
Target = [28, 14]
Projectile = [2, 1]
Ejectile = [1, 1]
`

func TestParseInline(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(inlineRun))
	require.NoError(t, err)

	assert.Equal(t, "data/mass.txt", config.MassTable)
	assert.Equal(t, "data/excitations.dat", config.ExcitationTable)
	assert.Equal(t, "out", config.OutputDir)
	assert.Equal(t, PlotParameters{Width: 8, Height: 6, Format: "svg"}, config.Plot)

	assert.InDelta(t, 20, config.BeamKE, 1e-12)
	assert.InDelta(t, 8.94, config.BField, 1e-12)
	assert.InDelta(t, 15, config.Theta, 1e-12)
	assert.InDelta(t, 70, config.RhoMin, 1e-12)
	assert.InDelta(t, 90, config.RhoMax, 1e-12)

	assert.Equal(t, []string{"T", "mm", "MeV"}, config.InputUnits)
	assert.Equal(t, "m", config.OutputUnit(Length))
	assert.Equal(t, "MeV", config.OutputUnit(Energy))
	assert.InDelta(t, 0.8318, config.RhoToOutput(83.18), 1e-12)
	assert.InDelta(t, 7.5, config.ToInternal("RhoMin", 75), 1e-12)

	require.Len(t, config.Reactions, 1)
	ids, err := config.Reactions[0].Reactants()
	require.NoError(t, err)
	assert.Equal(t, kinematics.Reactants{At: 28, Zt: 14, Ap: 2, Zp: 1, Ae: 1, Ze: 1}, ids)

	assert.True(t, config.IsDefined("Plot", "Format"))
	assert.False(t, config.IsDefined("Plot", "Width"))
	assert.Equal(t, []string{"BeamKE", "BField", "Theta", "RhoMin", "RhoMax"}, config.DefinedKinematics())
}

func TestParseListWithOverrides(t *testing.T) {
	config, err := ParseConfig(strings.NewReader(`
ReactionList = "data/reactions.txt"
Theta = 20
BeamKE = 16000
InputUnits = ["keV"]
`))
	require.NoError(t, err)
	assert.Equal(t, "data/reactions.txt", config.ReactionList)
	assert.Equal(t, []string{"BeamKE", "Theta"}, config.DefinedKinematics())
	assert.InDelta(t, 16, config.BeamKE, 1e-12)
	assert.Equal(t, "cm", config.OutputUnit(Length))
}

func TestParseErrors(t *testing.T) {
	for name, tc := range map[string]struct {
		input string
		want  error
	}{
		"list and inline": {
			input: "ReactionList = \"a\"\n[[Reactions]]\nTarget = [28, 14]\nProjectile = [2, 1]\nEjectile = [1, 1]\n",
			want:  ErrConflict,
		},
		"inline without globals": {
			input: "BeamKE = 20\n[[Reactions]]\nTarget = [28, 14]\nProjectile = [2, 1]\nEjectile = [1, 1]\n",
			want:  ErrMissing,
		},
		"bad nucleus": {
			input: "BeamKE = 20\nBField = 8\nTheta = 15\nRhoMin = 1\nRhoMax = 2\n[[Reactions]]\nTarget = [28]\nProjectile = [2, 1]\nEjectile = [1, 1]\n",
			want:  ErrMissing,
		},
		"two field units": {
			input: "InputUnits = [\"T\", \"kG\"]\n",
			want:  ErrUnits,
		},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseConfig(strings.NewReader(tc.input))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := ParseConfig(strings.NewReader("Gauss = 8\n"))
	assert.ErrorContains(t, err, "unknown config keys")

	_, err = ParseConfig(strings.NewReader("InputUnits = [\"furlong\"]\n"))
	assert.ErrorContains(t, err, "unknown unit")

	_, err = LoadConfig("testdata/none")
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	field := []UnitElement{{Class: Field, Power: 1}}
	assert.InDelta(t, 10, Convert(1, field, []string{"T"}, true), 1e-12)
	assert.InDelta(t, 1, Convert(10, field, []string{"T"}, false), 1e-12)
	assert.InDelta(t, 1e-3, Convert(1, field, []string{"G"}, true), 1e-15)
	assert.Equal(t, 3.0, Convert(3, field, []string{"cm"}, true))

	perArea := []UnitElement{{Class: Length, Power: -2}}
	assert.InDelta(t, 1e-4, Convert(1, perArea, []string{"m"}, true), 1e-18)
}
