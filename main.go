package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wildstyl3r/spsplot/internal/config"
	"github.com/wildstyl3r/spsplot/internal/kinematics"
	"github.com/wildstyl3r/spsplot/internal/nucdata"
	"github.com/wildstyl3r/spsplot/internal/render"
	"github.com/wildstyl3r/spsplot/internal/spsplot"
	"github.com/wildstyl3r/spsplot/internal/utils"
)

type output struct {
	saveFlag *bool
	ext      string
	write    func(w io.Writer, series []spsplot.Series) error
}

// reactantsList collects repeated -add values.
type reactantsList []kinematics.Reactants

func (l *reactantsList) String() string {
	return fmt.Sprint(*l)
}

func (l *reactantsList) Set(value string) error {
	fields := strings.Fields(value)
	if len(fields) != 6 {
		return fmt.Errorf("expected \"At Zt Ap Zp Ae Ze\", got %q", value)
	}
	var ids [6]int
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return err
		}
		ids[i] = v
	}
	*l = append(*l, kinematics.Reactants{At: ids[0], Zt: ids[1], Ap: ids[2], Zp: ids[3], Ae: ids[4], Ze: ids[5]})
	return nil
}

func main() {
	logger := log.New(os.Stderr, "spsplot: ", 0)

	var configFileNamePointer = flag.String("input", "spsplot", "run configuration in toml format")
	var beamKE = flag.Float64("bke", 0, "beam kinetic energy, overrides the configuration")
	var theta = flag.Float64("theta", 0, "spectrometer angle [deg], overrides the configuration")
	var field = flag.Float64("b", 0, "spectrometer field, overrides the configuration")
	var rhoMin = flag.Float64("rhomin", 0, "lower edge of the rho window, overrides the configuration")
	var rhoMax = flag.Float64("rhomax", 0, "upper edge of the rho window, overrides the configuration")
	var saveList = flag.String("save", "", "save the reaction list to this file")
	var verbose = flag.Bool("v", false, "verbose output")
	var added reactantsList
	flag.Var(&added, "add", "add a reaction \"At Zt Ap Zp Ae Ze\" (repeatable)")
	var rhos []float64
	flag.Func("rho", "report the excitation energy of every reaction at this rho (repeatable)", func(value string) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		rhos = append(rhos, v)
		return nil
	})

	var units spsplot.Units
	var figure render.Figure
	outputs := map[string]output{
		"CSV": {
			saveFlag: flag.Bool("csv", false, "save the filtered states as csv"),
			ext:      ".csv",
			write: func(w io.Writer, series []spsplot.Series) error {
				return spsplot.WriteCSV(w, series, units)
			},
		},
		"Plot": {
			saveFlag: flag.Bool("plot", false, "save the focal plane map"),
			write: func(w io.Writer, series []spsplot.Series) error {
				return figure.WriteTo(w, series, figure.FileFormat())
			},
		},
	}
	flag.Parse()

	startTime := time.Now()

	cfg, err := config.LoadConfig(*configFileNamePointer)
	if err != nil {
		logger.Fatalln(err)
	}
	runName := utils.GetFilename(strings.TrimSuffix(*configFileNamePointer, ".toml"))

	overridden := map[string]float64{}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bke":
			overridden["BeamKE"] = cfg.ToInternal("BeamKE", *beamKE)
		case "theta":
			overridden["Theta"] = *theta
		case "b":
			overridden["BField"] = cfg.ToInternal("BField", *field)
		case "rhomin":
			overridden["RhoMin"] = cfg.ToInternal("RhoMin", *rhoMin)
		case "rhomax":
			overridden["RhoMax"] = cfg.ToInternal("RhoMax", *rhoMax)
		}
	})

	tables, err := nucdata.NewStore(cfg.MassTable, cfg.ExcitationTable, logger).Tables()
	if err != nil {
		logger.Fatalln(err)
	}
	set := spsplot.NewReactionSet(tables)

	var params spsplot.Parameters
	if cfg.ReactionList != "" {
		if err := set.LoadFile(cfg.ReactionList); err != nil {
			logger.Fatalln(err)
		}
		params = set.Parameters()
		for _, name := range cfg.DefinedKinematics() {
			*kinematicField(&params, name) = kinematicValue(&cfg.KinematicParameters, name)
		}
	} else {
		var missing []string
		for _, name := range []string{"BeamKE", "BField", "Theta", "RhoMin", "RhoMax"} {
			if _, some := overridden[name]; some || cfg.IsDefined(name) {
				*kinematicField(&params, name) = kinematicValue(&cfg.KinematicParameters, name)
				continue
			}
			missing = append(missing, name)
		}
		if len(missing) > 0 {
			logger.Fatalf("%v: %v", config.ErrMissing, missing)
		}
		if err := set.Init(params); err != nil {
			logger.Fatalln(err)
		}
	}
	for name, v := range overridden {
		*kinematicField(&params, name) = v
	}
	if err := set.SetGlobalParameters(params.BeamKE, params.Theta, params.Field); err != nil {
		logger.Fatalln(err)
	}
	set.SetRhoWindow(params.RhoMin, params.RhoMax)

	for i, rp := range cfg.Reactions {
		ids, err := rp.Reactants()
		if err != nil {
			logger.Fatalln(err)
		}
		r, err := set.AddReactants(ids)
		if err != nil {
			logger.Printf("reaction %d (%s): %v", i+1, rp.Name, err)
			continue
		}
		if *verbose && rp.Name != "" {
			fmt.Printf("%s: %s\n", rp.Name, r.Name())
		}
	}
	for _, ids := range added {
		if _, err := set.AddReactants(ids); err != nil {
			logger.Println(err)
		}
	}
	if set.Len() == 0 {
		fmt.Println("No reactions provided")
		os.Exit(0)
	}

	units = spsplot.Units{Rho: cfg.OutputUnit(config.Length), Convert: cfg.RhoToOutput}
	figure = render.Figure{
		Title:  runName,
		RhoMin: set.RhoMin(),
		RhoMax: set.RhoMax(),
		Units:  units,
		Width:  cfg.Plot.Width,
		Height: cfg.Plot.Height,
		Format: cfg.Plot.Format,
	}

	if *verbose {
		fmt.Printf("Beam %g MeV, theta %g deg, B %g kG, rho window [%g, %g] cm\n",
			set.BeamKE(), set.Theta(), set.Field(), set.RhoMin(), set.RhoMax())
		reportKinematics(os.Stdout, set.Reactions())
	}

	series := set.FilteredSeries()
	if err := spsplot.WriteTable(os.Stdout, series, units); err != nil {
		logger.Fatalln(err)
	}

	for _, rho := range rhos {
		reportExcitations(os.Stdout, set.Reactions(), cfg.ToInternal("RhoMin", rho), units)
	}

	for name, output := range outputs {
		if !*output.saveFlag {
			continue
		}
		ext := output.ext
		if ext == "" {
			ext = "." + figure.FileFormat()
		}
		file, err := utils.OpenFile(cfg.OutputDir, runName, ext)
		if err != nil {
			logger.Printf("unable to save %s: %v", name, err)
			continue
		}
		if err := output.write(file, series); err != nil {
			logger.Printf("unable to save %s: %v", name, err)
		} else if *verbose {
			fmt.Println(name + " saved")
		}
		file.Close()
	}

	if *saveList != "" {
		if err := set.SaveFile(*saveList); err != nil {
			logger.Fatalln(err)
		}
	}
	if *verbose {
		fmt.Printf("Elapsed time: %v\n", time.Since(startTime))
	}
}

// reportKinematics prints Q, sqrt(s) and the ground state ejectile momentum.
func reportKinematics(w io.Writer, reactions []*kinematics.Reaction) {
	for _, r := range reactions {
		q, _ := r.QValue(0)
		ecm, _ := r.CenterOfMassEnergy()
		fmt.Fprintf(w, "%s: Q = %.4f MeV, sqrt(s) = %.4f MeV, %d states\n", r.Name(), q, ecm, len(r.Excitations()))
		p4, err := r.EjectileMomentum(0)
		if err != nil || math.IsNaN(p4.E()) {
			continue
		}
		fmt.Fprintf(w, "  ejectile: p = %.4f MeV/c (px %.4f, pz %.4f), E = %.4f MeV\n",
			math.Hypot(p4.Px(), p4.Pz()), p4.Px(), p4.Pz(), p4.E())
	}
}

// reportExcitations prints the excitation at rho [cm] for every reaction,
// rho shown in the output unit.
func reportExcitations(w io.Writer, reactions []*kinematics.Reaction, rho float64, units spsplot.Units) {
	shown := rho
	if units.Convert != nil {
		shown = units.Convert(rho)
	}
	for _, r := range reactions {
		ex, err := r.ExcitationAtRho(rho)
		if err != nil {
			fmt.Fprintf(w, "%s: rho %g %s: %v\n", r.Name(), shown, units.Rho, err)
			continue
		}
		fmt.Fprintf(w, "%s: rho %g %s -> Ex %.4f MeV\n", r.Name(), shown, units.Rho, ex)
	}
}

func kinematicField(p *spsplot.Parameters, name string) *float64 {
	switch name {
	case "BeamKE":
		return &p.BeamKE
	case "BField":
		return &p.Field
	case "Theta":
		return &p.Theta
	case "RhoMin":
		return &p.RhoMin
	default:
		return &p.RhoMax
	}
}

func kinematicValue(kp *config.KinematicParameters, name string) float64 {
	switch name {
	case "BeamKE":
		return kp.BeamKE
	case "BField":
		return kp.BField
	case "Theta":
		return kp.Theta
	case "RhoMin":
		return kp.RhoMin
	default:
		return kp.RhoMax
	}
}
