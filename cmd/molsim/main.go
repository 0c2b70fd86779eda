package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/molsim/internal/analyze"
	"github.com/san-kum/molsim/internal/config"
	"github.com/san-kum/molsim/internal/sim"
	"github.com/san-kum/molsim/internal/state"
	"github.com/san-kum/molsim/internal/storage"
	"github.com/san-kum/molsim/internal/viz"
	"github.com/san-kum/molsim/internal/write"
)

var (
	dataDir    string
	configFile string

	particles int
	boxEdge   float64
	mass      float64
	dt        float64
	steps     int
	kt        float64
	seed      int64
	sample    int
	initMode  string

	epsilon float64
	sigma   float64
	rcut    float64
	shift   bool
	wca     bool

	noThermostat bool
	replicas     int

	plotColumn string
	exportPath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molsim",
		Short: "molecular dynamics of Lennard-Jones particles",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".molsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().IntVar(&replicas, "replicas", 1, "independent replicas to run in parallel")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a thermodynamic quantity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&plotColumn, "column", "kT", "thermo column to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&exportPath, "out", "", "output file (default stdout)")

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "molsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if err := config.Save(path, config.Default()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, initCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVarP(&particles, "particles", "n", config.DefaultParticles, "number of particles")
	cmd.Flags().Float64Var(&boxEdge, "box", config.DefaultBoxEdge, "cubic box edge length")
	cmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&kt, "kt", config.DefaultKT, "target thermal energy")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&sample, "sample", config.DefaultSampleEvery, "sampling interval in steps")
	cmd.Flags().StringVar(&initMode, "init", "random", "initial positions (random or lattice)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", config.DefaultEpsilon, "interaction energy")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "interaction length")
	cmd.Flags().Float64Var(&rcut, "rcut", config.DefaultRcut, "cutoff distance")
	cmd.Flags().BoolVar(&shift, "shift", false, "shift the potential to zero at rcut")
	cmd.Flags().BoolVar(&wca, "wca", true, "use the purely repulsive WCA potential")
	cmd.Flags().BoolVar(&noThermostat, "no-thermostat", false, "disable velocity rescaling")
}

// resolveConfig layers preset, config file, and changed flags, in that
// order of increasing precedence.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.Default()

	if len(args) > 0 {
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("box") {
		cfg.Box = []float64{boxEdge}
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("kt") {
		cfg.KT = kt
	}
	if flags.Changed("sample") {
		cfg.SampleEvery = sample
	}
	if flags.Changed("init") {
		cfg.Init = initMode
	}
	if flags.Changed("epsilon") {
		cfg.Potential.Epsilon = epsilon
	}
	if flags.Changed("sigma") {
		cfg.Potential.Sigma = sigma
	}
	if flags.Changed("rcut") {
		cfg.Potential.Rcut = rcut
		cfg.Potential.WCA = false
	}
	if flags.Changed("shift") {
		cfg.Potential.Shift = shift
		cfg.Potential.WCA = false
	}
	if flags.Changed("wca") {
		cfg.Potential.WCA = wca
	}
	if flags.Changed("no-thermostat") {
		cfg.Thermostat = !noThermostat
	}
	if flags.Changed("seed") || cfg.Seed == 0 {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if replicas > 1 {
		return runEnsemble(ctx, cfg)
	}

	st := storage.New(dataDir)
	run, err := st.NewRun(runPrefix(cfg))
	if err != nil {
		return err
	}

	system, integ, thermostat, err := buildSystem(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	xyz, err := write.NewXYZWriter(run.TrajectoryPath(), false)
	if err != nil {
		return err
	}
	defer xyz.Close()

	thermo, err := write.NewThermoWriter(run.ThermoPath())
	if err != nil {
		return err
	}
	defer thermo.Close()

	simulator := sim.New(system, integ)
	if thermostat != nil {
		simulator.SetThermostat(thermostat)
	}
	simulator.AddObserver(sim.ObserverFunc(xyz.Write))
	simulator.AddObserver(sim.ObserverFunc(thermo.Write))

	fmt.Printf("running %d particles for %d steps...\n", cfg.Particles, cfg.Steps)
	start := time.Now()

	if err := simulator.Run(ctx, sim.RunConfig{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery}); err != nil {
		return err
	}

	summary, err := summarize(system)
	if err != nil {
		return err
	}
	if err := st.Finish(run, cfg, summary); err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", run.ID)
	fmt.Println("\nfinal state:")
	for _, name := range write.ThermoColumns[1:] {
		fmt.Printf("  %s: %.6f\n", name, summary[name])
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	factory := func(seed int64) (*sim.Simulator, error) {
		system, integ, thermostat, err := buildSystem(cfg, seed)
		if err != nil {
			return nil, err
		}
		s := sim.New(system, integ)
		if thermostat != nil {
			s.SetThermostat(thermostat)
		}
		return s, nil
	}

	fmt.Printf("running %d replicas of %d particles for %d steps...\n",
		replicas, cfg.Particles, cfg.Steps)
	start := time.Now()

	ens := sim.NewEnsemble(factory, replicas, cfg.Seed)
	states, err := ens.Run(ctx, sim.RunConfig{Steps: cfg.Steps})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REPLICA\tSEED\tKT\tPRESSURE\tPOTENTIAL")
	for i, s := range states {
		summary, err := summarize(s)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%d\t%d\t%.4f\t%.4f\t%.4f\n",
			i, cfg.Seed+int64(i), summary["kT"], summary["pressure"], summary["potential"])
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	system, integ, thermostat, err := buildSystem(cfg, cfg.Seed)
	if err != nil {
		return err
	}

	// prime energies and forces so the first frame has data to show
	if err := integ.Prime(system); err != nil {
		return err
	}

	return viz.Run(system, integ, thermostat, cfg.Steps)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tSTEPS\tDT\tKT\tPRESSURE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%.4f\t%.4f\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Particles,
			run.Config.Steps,
			run.Config.Dt,
			run.Summary["kT"],
			run.Summary["pressure"],
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	header, rows, err := st.LoadThermo(runID)
	if err != nil {
		return err
	}

	col := -1
	for i, name := range header {
		if name == plotColumn {
			col = i
			break
		}
	}
	if col < 0 {
		return fmt.Errorf("no column %q (available: %v)", plotColumn, header[1:])
	}

	data := make([]float64, len(rows))
	for i, row := range rows {
		data[i] = row[col]
	}

	fmt.Printf("run: %s\nsamples: %d\n\n", runID, len(rows))
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s vs sample", plotColumn)),
	))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)

	out := os.Stdout
	if exportPath != "" {
		f, err := os.Create(exportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	return st.Export(out, args[0])
}

func summarize(s *state.State) (map[string]float64, error) {
	kt, err := analyze.Temperature(s)
	if err != nil {
		return nil, err
	}
	p, err := analyze.Pressure(s)
	if err != nil {
		return nil, err
	}
	ke, err := analyze.KineticEnergy(s)
	if err != nil {
		return nil, err
	}
	pe, err := analyze.PotentialEnergy(s)
	if err != nil {
		return nil, err
	}
	return map[string]float64{
		"kT":        kt,
		"pressure":  p,
		"kinetic":   ke,
		"potential": pe,
	}, nil
}

func runPrefix(cfg *config.Config) string {
	if cfg.Potential.WCA {
		return "wca"
	}
	return "lj"
}
