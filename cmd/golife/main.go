package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/golife/internal/analysis"
	"github.com/san-kum/golife/internal/config"
	"github.com/san-kum/golife/internal/experiment"
	"github.com/san-kum/golife/internal/export"
	"github.com/san-kum/golife/internal/life"
	"github.com/san-kum/golife/internal/pattern"
	"github.com/san-kum/golife/internal/render"
	"github.com/san-kum/golife/internal/sim"
	"github.com/san-kum/golife/internal/store"
	"github.com/san-kum/golife/internal/viz"
)

var (
	dataDir     string
	width       int
	height      int
	delay       float64
	display     string
	patternName string
	random      bool
	probability float64
	generations int
	seed        int64
	configFile  string
	preset      string
	quiet       bool
	record      bool
	themeName   string
	sweepFrom   float64
	sweepTo     float64
	sweepSteps  int
	trials      int
	cellSize    float64
)

// main registers commands and flags and launches the interactive menu
// when no subcommand is given. It exits with status 1 if command
// execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "golife",
		Short: "terminal cellular automaton lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			viz.SetTheme(themeName)
			return viz.RunInteractive(width, height, secondsToDuration(delay), probability, seed)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".golife", "data directory")
	rootCmd.PersistentFlags().IntVar(&width, "width", config.DefaultWidth, "grid width")
	rootCmd.PersistentFlags().IntVar(&height, "height", config.DefaultHeight, "grid height")
	rootCmd.PersistentFlags().Float64Var(&delay, "delay", config.DefaultDelay, "delay between generations (seconds)")
	rootCmd.PersistentFlags().Float64Var(&probability, "probability", config.DefaultProbability, "probability for random initialization")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "phosphor", "TUI color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation automatically (non-interactive)",
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&display, "display", config.DefaultDisplay, "display mode (console|color)")
	runCmd.Flags().StringVar(&patternName, "pattern", "", "initial pattern (glider, blinker, block, ...)")
	runCmd.Flags().BoolVar(&random, "random", false, "start with random configuration")
	runCmd.Flags().IntVar(&generations, "generations", 0, "number of generations to run (0 = unbounded)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&quiet, "quiet", false, "suppress frame output")
	runCmd.Flags().BoolVar(&record, "record", false, "record run history to the data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live TUI visualization",
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&patternName, "pattern", "", "initial pattern")
	liveCmd.Flags().BoolVar(&random, "random", false, "start with random configuration")

	patternsCmd := &cobra.Command{
		Use:   "patterns",
		Short: "list available patterns",
		RunE:  listPatterns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run's population curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run headless batches across seeding densities",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0.05, "lowest seeding density")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0.95, "highest seeding density")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of densities to sample")
	sweepCmd.Flags().IntVar(&trials, "trials", 10, "boards per density")
	sweepCmd.Flags().IntVar(&generations, "generations", 200, "generation cap per trial")

	exportCmd := &cobra.Command{
		Use:   "export [file.svg]",
		Short: "export a board snapshot as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSnapshot,
	}
	exportCmd.Flags().StringVar(&patternName, "pattern", "", "initial pattern")
	exportCmd.Flags().BoolVar(&random, "random", false, "start with random configuration")
	exportCmd.Flags().IntVar(&generations, "generations", 0, "generations to advance before exporting")
	exportCmd.Flags().Float64Var(&cellSize, "cell-size", 10, "cell edge length in SVG units")

	rootCmd.AddCommand(runCmd, liveCmd, patternsCmd, presetsCmd, listCmd, plotCmd, sweepCmd, exportCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// resolveConfig merges preset, config file, and CLI flags into one
// Config. Flags the user set explicitly win over both sources.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	if cmd.Flags().Changed("width") {
		cfg.Width = width
	}
	if cmd.Flags().Changed("height") {
		cfg.Height = height
	}
	if cmd.Flags().Changed("delay") {
		cfg.Delay = delay
	}
	if cmd.Flags().Changed("display") {
		cfg.Display = display
	}
	if cmd.Flags().Changed("pattern") {
		cfg.Pattern = patternName
	}
	if cmd.Flags().Changed("random") {
		cfg.Random = random
	}
	if cmd.Flags().Changed("probability") {
		cfg.Probability = probability
	}
	if cmd.Flags().Changed("generations") {
		cfg.Generations = generations
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Display == "" {
		cfg.Display = config.DefaultDisplay
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// seedBoard builds the starting board from a resolved config.
func seedBoard(cfg *config.Config, rng *rand.Rand) (*life.Board, string, error) {
	board, err := life.NewBoard(cfg.Width, cfg.Height)
	if err != nil {
		return nil, "", err
	}

	label := "empty"
	switch {
	case cfg.Random:
		if err := board.Randomize(rng, cfg.Probability); err != nil {
			return nil, "", err
		}
		label = "random"
	case cfg.Pattern != "":
		p, err := pattern.Get(cfg.Pattern)
		if err != nil {
			return nil, "", err
		}
		pattern.Stamp(board, p, cfg.Width/2, cfg.Height/2)
		label = p.Name
	}
	return board, label, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	var renderer sim.Renderer
	if !quiet {
		renderer, err = render.New(cfg.Display)
		if err != nil {
			return err
		}
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	board, label, err := seedBoard(cfg, rng)
	if err != nil {
		return err
	}

	runner := sim.NewRunner(board, renderer, rng, sim.Config{
		Delay:          secondsToDuration(cfg.Delay),
		MaxGenerations: cfg.Generations,
	})

	// Ctrl+C cancels the loop cooperatively; the runner exits before
	// its next advance or sleep.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("\nsimulation stopped: %s\n", result.Reason)
	fmt.Printf("generations: %d\n", result.Generations)
	fmt.Printf("living cells: %d\n", result.Population)

	if record {
		st := store.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(label, cfg.Width, cfg.Height, cfg.Seed, cfg.Delay, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	board, _, err := seedBoard(cfg, rng)
	if err != nil {
		return err
	}

	viz.SetTheme(themeName)
	m := viz.NewModel(board, rng, secondsToDuration(cfg.Delay), cfg.Probability)

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listPatterns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCELLS")
	for _, name := range pattern.Names() {
		p, err := pattern.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\n", p.Name, len(p.Cells))
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSIZE\tDELAY\tSTART")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		start := p.Pattern
		if p.Random {
			start = fmt.Sprintf("random p=%.2f", p.Probability)
		}
		fmt.Fprintf(w, "%s\t%dx%d\t%.2fs\t%s\n", name, p.Width, p.Height, p.Delay, start)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTART\tTIME\tSIZE\tGENS\tLIVING\tREASON")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%s\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Generations,
			run.Population,
			run.Reason,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	if len(series) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("start: %s\n", meta.Label)
	fmt.Printf("samples: %d\n\n", len(series))

	graph := asciigraph.Plot(series,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("living cells vs generation"),
	)
	fmt.Println(graph)

	summary := analysis.Summarize(series)
	fmt.Printf("\npopulation: min %d, max %d, mean %.1f, final %d\n",
		summary.Min, summary.Max, summary.Mean, summary.Final)
	if period := analysis.PopulationPeriod(series, 30); period > 0 {
		fmt.Printf("population period: %d\n", period)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sweep := experiment.New(experiment.Config{
		Width:          width,
		Height:         height,
		Probabilities:  experiment.DensityRange(sweepFrom, sweepTo, sweepSteps),
		Trials:         trials,
		MaxGenerations: generations,
		Seed:           seed,
	})

	outcomes, err := sweep.Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DENSITY\tTRIALS\tEXTINCT\tMEAN FINAL\tMEAN GENS")
	meanFinal := make([]float64, 0, len(outcomes))
	for _, o := range outcomes {
		fmt.Fprintf(w, "%.2f\t%d\t%d\t%.1f\t%.1f\n",
			o.Probability, o.Trials, o.Extinctions, o.MeanFinalPop, o.MeanGenerations)
		meanFinal = append(meanFinal, o.MeanFinalPop)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meanFinal) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(meanFinal,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("mean final population vs seeding density"),
		))
	}

	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	board, _, err := seedBoard(cfg, rng)
	if err != nil {
		return err
	}

	for i := 0; i < cfg.Generations; i++ {
		board = life.Advance(board)
	}

	if err := export.WriteSVG(args[0], board, cellSize); err != nil {
		return err
	}
	fmt.Printf("wrote %s (generation %d, %d living cells)\n",
		args[0], board.Generation(), board.Population())
	return nil
}
