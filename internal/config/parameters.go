package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/wildstyl3r/spsplot/internal/kinematics"
)

var (
	ErrConflict = errors.New("config: conflicting fields")
	ErrMissing  = errors.New("config: required fields not found")
	ErrUnits    = errors.New("config: unit conflict")
)

type Config struct {
	MassTable       string
	ExcitationTable string
	ReactionList    string
	OutputDir       string
	Reactions       []ReactionParameters
	KinematicParameters
	InputUnits  []string
	OutputUnits []string
	Plot        PlotParameters

	defined map[string]struct{}
}

type KinematicParameters struct {
	BeamKE float64 // [MeV]
	BField float64 // [kG]
	Theta  float64 // [deg]
	RhoMin float64 // [cm]
	RhoMax float64 // [cm]
}

// ReactionParameters is one inline reaction; nuclei are given as [A, Z].
type ReactionParameters struct {
	Name       string
	Target     []int
	Projectile []int
	Ejectile   []int
}

type PlotParameters struct {
	Width  float64 // [in]
	Height float64 // [in]
	Format string
}

var kinematicFields = []string{"BeamKE", "BField", "Theta", "RhoMin", "RhoMax"}

var defaultValues = map[string]any{
	"MassTable":       "data/mass.txt",
	"ExcitationTable": "data/excitations.dat",
	"OutputDir":       ".",
}

var defaultPlot = PlotParameters{Width: 8, Height: 6, Format: "png"}

var valueUnits = map[string][]UnitElement{
	"BeamKE": {{Class: Energy, Power: 1}},
	"BField": {{Class: Field, Power: 1}},
	"RhoMin": {{Class: Length, Power: 1}},
	"RhoMax": {{Class: Length, Power: 1}},
}

// LoadConfig reads configFileName, with or without the .toml suffix.
func LoadConfig(configFileName string) (Config, error) {
	file, err := os.Open(strings.TrimSuffix(configFileName, ".toml") + ".toml")
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	return ParseConfig(file)
}

func ParseConfig(r io.Reader) (Config, error) {
	var config Config
	meta, err := toml.NewDecoder(r).Decode(&config)
	if err != nil {
		return Config{}, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config keys: %v", undecoded)
	}

	config.defined = map[string]struct{}{}
	for _, key := range meta.Keys() {
		config.defined[key.String()] = struct{}{}
	}

	var conflicts []string
	config.InputUnits, conflicts, err = checkUnits(config.InputUnits)
	if err != nil {
		return Config{}, err
	}
	if len(conflicts) > 0 {
		return Config{}, fmt.Errorf("%w: input units %v", ErrUnits, conflicts)
	}
	if len(config.OutputUnits) == 0 {
		config.OutputUnits = config.InputUnits
	}
	config.OutputUnits, conflicts, err = checkUnits(config.OutputUnits)
	if err != nil {
		return Config{}, err
	}
	if len(conflicts) > 0 {
		return Config{}, fmt.Errorf("%w: output units %v", ErrUnits, conflicts)
	}

	if config.IsDefined("ReactionList") && config.IsDefined("Reactions") {
		return Config{}, fmt.Errorf("%w: simultaneous reaction list file and inline reactions not supported", ErrConflict)
	}
	if config.IsDefined("Reactions") {
		var missing []string
		for _, field := range kinematicFields {
			if !config.IsDefined(field) {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			return Config{}, fmt.Errorf("%w: inline reactions require %v", ErrMissing, missing)
		}
	}
	for i, rp := range config.Reactions {
		if _, err := rp.Reactants(); err != nil {
			return Config{}, fmt.Errorf("reaction %d: %w", i+1, err)
		}
	}

	if !config.IsDefined("MassTable") {
		config.MassTable = defaultValues["MassTable"].(string)
	}
	if !config.IsDefined("ExcitationTable") {
		config.ExcitationTable = defaultValues["ExcitationTable"].(string)
	}
	if !config.IsDefined("OutputDir") {
		config.OutputDir = defaultValues["OutputDir"].(string)
	}
	if !config.IsDefined("Plot", "Width") {
		config.Plot.Width = defaultPlot.Width
	}
	if !config.IsDefined("Plot", "Height") {
		config.Plot.Height = defaultPlot.Height
	}
	if !config.IsDefined("Plot", "Format") {
		config.Plot.Format = defaultPlot.Format
	}

	config.toInternal()
	return config, nil
}

// IsDefined reports whether the key path was present in the decoded file.
func (c *Config) IsDefined(path ...string) bool {
	_, some := c.defined[strings.Join(path, ".")]
	return some
}

// DefinedKinematics lists the global kinematic fields present in the file.
func (c *Config) DefinedKinematics() []string {
	return slices.DeleteFunc(slices.Clone(kinematicFields), func(field string) bool {
		return !c.IsDefined(field)
	})
}

func (c *Config) toInternal() {
	kp := &c.KinematicParameters
	for _, field := range []struct {
		name  string
		value *float64
	}{
		{"BeamKE", &kp.BeamKE},
		{"BField", &kp.BField},
		{"RhoMin", &kp.RhoMin},
		{"RhoMax", &kp.RhoMax},
	} {
		*field.value = Convert(*field.value, valueUnits[field.name], c.InputUnits, true)
	}
}

// ToInternal converts v, given for the global field in input units, to MeV/cm/kG.
func (c *Config) ToInternal(field string, v float64) float64 {
	return Convert(v, valueUnits[field], c.InputUnits, true)
}

// RhoToOutput converts a rho in cm into the configured output length unit.
func (c *Config) RhoToOutput(rho float64) float64 {
	return Convert(rho, valueUnits["RhoMin"], c.OutputUnits, false)
}

// OutputUnit returns the output unit of the given class.
func (c *Config) OutputUnit(class UnitClass) string {
	if unit := intersectClass(class, c.OutputUnits); unit != "" {
		return unit
	}
	return intersectClass(class, defaultUnits)
}

func intersectClass(class UnitClass, units []string) string {
	for _, unit := range units {
		if slices.Contains(unitsInClass[class], unit) {
			return unit
		}
	}
	return ""
}

func (rp ReactionParameters) Reactants() (kinematics.Reactants, error) {
	for _, nucleus := range []struct {
		role string
		az   []int
	}{
		{"Target", rp.Target},
		{"Projectile", rp.Projectile},
		{"Ejectile", rp.Ejectile},
	} {
		if len(nucleus.az) != 2 {
			return kinematics.Reactants{}, fmt.Errorf("%w: %s must be [A, Z], got %v", ErrMissing, nucleus.role, nucleus.az)
		}
	}
	return kinematics.Reactants{
		At: rp.Target[0], Zt: rp.Target[1],
		Ap: rp.Projectile[0], Zp: rp.Projectile[1],
		Ae: rp.Ejectile[0], Ze: rp.Ejectile[1],
	}, nil
}
