package nucdata

import (
	"bytes"
	"log"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats/scalar"

	"github.com/wildstyl3r/spsplot/internal/kinematics"
)

func TestLoadMassTable(t *testing.T) {
	table, err := LoadMassTable("testdata/mass.txt")
	require.NoError(t, err)
	assert.Equal(t, 12, table.Len())

	deuteron, ok := table.Mass(1, 2)
	require.True(t, ok)
	assert.True(t, scalar.EqualWithinAbs(deuteron, 1875.6129148980174, 1e-6), "m(2H) = %v", deuteron)

	si28, ok := table.Mass(14, 28)
	require.True(t, ok)
	assert.True(t, scalar.EqualWithinAbs(si28, 26053.18788922082, 1e-6), "m(28Si) = %v", si28)

	carbon, ok := table.Mass(6, 12)
	require.True(t, ok)
	assert.True(t, scalar.EqualWithinAbs(carbon, (12-6*0.000548579909)*931.4940954, 1e-9))

	element, ok := table.Element(13)
	require.True(t, ok)
	assert.Equal(t, "Al", element)

	_, ok = table.Mass(13, 28)
	assert.False(t, ok)
	_, ok = table.Element(92)
	assert.False(t, ok)
}

func TestReadMassTableMalformed(t *testing.T) {
	for name, input := range map[string]string{
		"bad Z":     "h1\nh2\n0 x 1 H 1 007825.03224\n",
		"truncated": "h1\nh2\n0 1 1 H 1\n",
		"bad mass":  "h1\nh2\n0 1 1 H one 007825.03224\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ReadMassTable(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrMalformedTable)
		})
	}

	table, err := ReadMassTable(strings.NewReader("only\nheaders\n"))
	require.NoError(t, err)
	assert.Zero(t, table.Len())
}

func TestLoadExcitationTable(t *testing.T) {
	table, err := LoadExcitationTable("testdata/excitations.dat")
	require.NoError(t, err)

	levels, ok := table.Levels("29Si")
	require.True(t, ok)
	require.Len(t, levels, 10)
	assert.Equal(t, kinematics.Level{Energy: 0, Label: "0.0"}, levels[0])
	assert.Equal(t, kinematics.Level{Energy: 1.273, Label: "1.273"}, levels[1])
	assert.Equal(t, "5.255", levels[9].Label)

	levels[0].Label = "changed"
	again, _ := table.Levels("29Si")
	assert.Equal(t, "0.0", again[0].Label)

	_, ok = table.Levels("28Al")
	assert.False(t, ok)

	assert.Equal(t, []string{"27Al", "28Si", "29Si", "30Si"}, table.Symbols())
}

func TestReadExcitationTableMalformed(t *testing.T) {
	_, err := ReadExcitationTable(strings.NewReader("29Si 0.0 1.273\n"))
	assert.ErrorIs(t, err, ErrMalformedTable)

	_, err = ReadExcitationTable(strings.NewReader("29Si 0.0 one end\n"))
	assert.ErrorIs(t, err, ErrMalformedTable)
}

func TestReadExcitationTableAnnotated(t *testing.T) {
	table, err := ReadExcitationTable(strings.NewReader("29Si 0.0 1.273* 3.067(5/2+) end\n"))
	require.NoError(t, err)
	levels, _ := table.Levels("29Si")
	assert.Equal(t, []kinematics.Level{
		{Energy: 0, Label: "0.0"},
		{Energy: 1.273, Label: "1.273*"},
		{Energy: 3.067, Label: "3.067(5/2+)"},
	}, levels)
}

func TestSuggest(t *testing.T) {
	table, err := ReadExcitationTable(strings.NewReader("2H 0 end 12C 0 4.439 end 16O 0 6.049 end"))
	require.NoError(t, err)
	assert.Equal(t, []string{"2H", "12C", "16O"}, table.Symbols())

	near, ok := table.Suggest("13C")
	require.True(t, ok)
	assert.Equal(t, "12C", near)

	_, ok = table.Suggest("238U")
	assert.False(t, ok)
}

func TestStoreLoadsOnce(t *testing.T) {
	var logs bytes.Buffer
	store := NewStore("testdata/mass.txt", "testdata/excitations.dat", log.New(&logs, "", 0))

	var wg sync.WaitGroup
	tables := make([]*MassTable, 8)
	for i := range tables {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			tables[i], _ = store.Masses()
		}()
	}
	wg.Wait()
	for _, table := range tables {
		assert.Same(t, tables[0], table)
	}

	bundle, err := store.Tables()
	require.NoError(t, err)
	r, err := kinematics.CreateReaction(bundle, kinematics.Reactants{At: 28, Zt: 14, Ap: 2, Zp: 1, Ae: 1, Ze: 1})
	require.NoError(t, err)
	assert.Len(t, r.Excitations(), 10)
	assert.Empty(t, logs.String())
}

func TestStoreMissingFile(t *testing.T) {
	store := NewStore("testdata/none.txt", "testdata/excitations.dat", nil)
	_, err := store.Tables()
	assert.Error(t, err)
	_, again := store.Masses()
	assert.Equal(t, err, again)
}
