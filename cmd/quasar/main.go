package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/quasar/internal/analysis"
	"github.com/san-kum/quasar/internal/compute"
	"github.com/san-kum/quasar/internal/config"
	"github.com/san-kum/quasar/internal/experiment"
	"github.com/san-kum/quasar/internal/quasar"
	"github.com/san-kum/quasar/internal/sim"
	"github.com/san-kum/quasar/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	steps      int
	count      int
	seed       int64
	backend    string
	workers    int
	// Ensemble size for run
	runs int
	// Frame rate for live view
	frameRate int
	// Snapshot output, stdout when empty
	outFile    string
	benchSteps int
)

// main executes the root command, exiting with status 1 on error.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quasar",
		Short: "particle swarm orbiting a softened attractor",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live view when no command given
			return runLive(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the swarm headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSwarmFlags(runCmd)
	runCmd.Flags().IntVar(&runs, "runs", 1, "number of seeds to run as an ensemble")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the swarm with live terminal visualization",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSwarmFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark step throughput across particle counts and backends",
		Args:  cobra.NoArgs,
		RunE:  benchBackends,
	}
	benchCmd.Flags().IntVar(&benchSteps, "frames", 60, "steps per measurement")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines for the cpu backend (0 = NumCPU)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "advance the swarm and write an SVG of the particles",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addSwarmFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tJITTER\tSPIN\tDT")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%.4f\n", name, cfg.Count, cfg.Jitter, cfg.Spin, cfg.Dt)
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, benchCmd, snapshotCmd, presetsCmd)
	return rootCmd
}

func addSwarmFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of frames to simulate")
	cmd.Flags().IntVar(&count, "count", config.DefaultCount, "number of particles")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "compute backend (auto, cpu, serial)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines for the cpu backend (0 = NumCPU)")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		if err := config.LoadOnto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, nil
}

func setupExperiment(cfg *config.Config) (*experiment.Experiment, error) {
	exp, err := experiment.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if runs > 1 {
		return runEnsemble(ctx, cfg)
	}

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	fmt.Printf("running %d particles for %d steps on %s...\n", cfg.Count, cfg.Steps, exp.GetSimulator().Backend().Name())
	start := time.Now()

	result, err := exp.Run(ctx)
	elapsed := time.Since(start)
	if err != nil && result == nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	if secs := elapsed.Seconds(); secs > 0 {
		fmt.Printf("particle updates/sec: %.0f\n", float64(result.StepsTaken)*float64(cfg.Count)/secs)
	}
	printMetrics(os.Stdout, result.Metrics)
	plotSeries(result, "mean_radius", "Mean radius")
	plotSeries(result, "hot_fraction", "Hot fraction")
	if len(result.Times) > 1 {
		interval := result.Times[1] - result.Times[0]
		if period := analysis.DominantPeriod(result.Series["mean_radius"], interval); period > 0 {
			fmt.Printf("\nbreathing period: %.3fs\n", period)
		}
	}

	if err != nil {
		return fmt.Errorf("stopped after %d steps: %w", result.StepsTaken, err)
	}
	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("running %d seeds of %d particles for %d steps...\n", runs, cfg.Count, cfg.Steps)
	start := time.Now()

	ens := sim.NewEnsemble(experiment.Builder(cfg, experiment.NewRegistry()), runs, cfg.Seed)
	results, err := ens.Run(ctx, sim.Config{Steps: cfg.Steps, SampleEvery: cfg.SampleEvery})
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n\n", time.Since(start))

	names := metricNames(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "SEED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)

	for _, r := range results {
		fmt.Fprintf(w, "%d", r.Seed)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.6f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func metricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printMetrics(w io.Writer, m map[string]float64) {
	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range metricNames(m) {
		fmt.Fprintf(w, "  %s: %.6f\n", name, m[name])
	}
}

func plotSeries(result *sim.Result, name, caption string) {
	series := result.Series[name]
	if len(series) < 2 {
		return
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption(caption),
	))
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	if frameRate <= 0 {
		frameRate = 30
	}
	model := viz.NewModel(exp.GetSimulator(), "quasar", cfg.View.Width, cfg.View.Height, frameRate)
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok && m.Err() != nil {
		return m.Err()
	}
	return nil
}

func benchBackends(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if benchSteps <= 0 {
		return fmt.Errorf("frames must be positive, got %d", benchSteps)
	}

	counts := []int{1000, 10000, 100000}
	params := base.StepParams()
	if err := params.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("benchmarking %d steps per run\n\n", benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tBACKEND\tSTEPS\tTIME\tSTEPS/SEC\tUPDATES/SEC")

	for _, n := range counts {
		ip := base.InitParams()
		ip.Count = n
		buf, err := quasar.Initialize(ip, rand.New(rand.NewSource(base.Seed)))
		if err != nil {
			return err
		}

		for _, name := range compute.Names() {
			b, err := compute.New(name, base.Workers)
			if err != nil {
				return err
			}

			s := sim.New(buf.Clone(), b, params)
			start := time.Now()
			result, err := s.Run(context.Background(), sim.Config{Steps: benchSteps, SampleEvery: benchSteps})
			elapsed := time.Since(start)
			b.Cleanup()
			if err != nil {
				return err
			}

			stepsPerSec := float64(result.StepsTaken) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\t%.0f\n",
				n,
				b.Name(),
				result.StepsTaken,
				elapsed.Round(time.Microsecond),
				stepsPerSec,
				stepsPerSec*float64(n),
			)
		}
	}

	return w.Flush()
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := setupExperiment(cfg)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	s := exp.GetSimulator()
	if cfg.Steps == 0 {
		return viz.WriteSVG(out, s.View(), cfg.View.Width, cfg.View.Height)
	}

	svg := viz.NewSVGRenderer(out, cfg.View.Width, cfg.View.Height)
	svg.Every = cfg.Steps
	s.AddRenderer(svg)

	if _, err := exp.Run(context.Background()); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	if outFile != "" {
		fmt.Fprintf(os.Stderr, "wrote %s after %d steps\n", outFile, cfg.Steps)
	}
	return nil
}
