package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlelab/internal/bench"
	"github.com/san-kum/particlelab/internal/config"
	"github.com/san-kum/particlelab/internal/effect"
	"github.com/san-kum/particlelab/internal/export"
	"github.com/san-kum/particlelab/internal/gui"
	"github.com/san-kum/particlelab/internal/snippets"
	"github.com/san-kum/particlelab/internal/storage"
	"github.com/san-kum/particlelab/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	fps        int
	seed       int64
	width      int
	height     int
	tab        string
	clipboard  string
	// bench
	ticks      int
	clickEvery int
	sweep      bool
	save       bool
	// output
	frames  int
	outFile string
	svgFile string
	// snippet
	bundle bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "particlelab",
		Short: "particle effects in the terminal or a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			if cfg.Backend == "gui" {
				return runGUI(cfg)
			}
			return runTUI(cfg)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".particlelab", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logFile, "log", "", "write debug log to file")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.IntVar(&width, "width", config.DefaultWidth, "surface width")
	pf.IntVar(&height, "height", config.DefaultHeight, "surface height")
	pf.StringVar(&tab, "tab", string(config.DefaultTab), "initial code tab (html, css, js)")
	pf.StringVar(&clipboard, "clipboard", string(export.ModeDefault), "clipboard passthrough (default, tmux, screen)")

	tuiCmd := &cobra.Command{
		Use:   "tui [effect]",
		Short: "run the control surface in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return runTUI(cfg)
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui [effect]",
		Short: "run the control surface in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, args)
			if err != nil {
				return err
			}
			return runGUI(cfg)
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list effects",
		RunE:  listEffects,
	}

	snippetCmd := &cobra.Command{
		Use:   "snippet [effect]",
		Short: "print the reference snippet of an effect",
		Args:  cobra.ExactArgs(1),
		RunE:  printSnippet,
	}
	snippetCmd.Flags().BoolVar(&bundle, "all", false, "print html, css and js as one bundle")

	copyCmd := &cobra.Command{
		Use:   "copy [effect]",
		Short: "copy the bundled snippet to the terminal clipboard",
		Args:  cobra.ExactArgs(1),
		RunE:  copySnippet,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [effect|all]",
		Short: "run effects headless and report population and draw counts",
		Args:  cobra.ExactArgs(1),
		RunE:  benchEffect,
	}
	benchCmd.Flags().IntVar(&ticks, "ticks", 600, "frames to run")
	benchCmd.Flags().IntVar(&clickEvery, "click-every", 120, "synthetic click interval in frames (0 disables)")
	benchCmd.Flags().BoolVar(&sweep, "sweep", true, "sweep the pointer across the surface")
	benchCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [effect]",
		Short: "render the frame after --ticks frames to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().IntVar(&frames, "ticks", 120, "frames to run before capturing")
	snapshotCmd.Flags().IntVar(&clickEvery, "click-every", 120, "synthetic click interval in frames (0 disables)")
	snapshotCmd.Flags().BoolVar(&sweep, "sweep", true, "sweep the pointer across the surface")
	snapshotCmd.Flags().StringVarP(&outFile, "output", "o", "frame.svg", "output file")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored bench runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored bench run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the particle series to an svg file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tEFFECT\tSIZE\tFPS\tBACKEND")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%s\t%dx%d\t%d\t%s\n", name, p.Effect, p.Width, p.Height, p.FPS, p.Backend)
			}
			w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, listCmd, snippetCmd, copyCmd, benchCmd, snapshotCmd, runsCmd, plotCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig layers defaults, preset, config file and explicitly set flags,
// in that order. A positional effect argument wins over everything.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("tab") {
		cfg.Tab = snippets.Tab(tab)
	}
	if flags.Changed("clipboard") {
		cfg.Clipboard = export.Mode(clipboard)
	}
	if len(args) > 0 {
		cfg.Effect = effect.ID(args[0])
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLog routes the standard logger to --log, or discards it so nothing
// corrupts the terminal UI.
func setupLog() (func(), error) {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "particlelab")
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}
	return func() { f.Close() }, nil
}

func runTUI(cfg *config.Config) error {
	closeLog, err := setupLog()
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Run(tui.Options{
		Effect:    cfg.Effect,
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		FPS:       cfg.FPS,
		Seed:      cfg.Seed,
		Tab:       cfg.Tab,
		Clipboard: export.NewClipboard(os.Stderr, cfg.Clipboard),
		Logger:    log.Default(),
	})
}

func runGUI(cfg *config.Config) error {
	closeLog, err := setupLog()
	if err != nil {
		return err
	}
	defer closeLog()

	return gui.Run(gui.Options{
		Effect: cfg.Effect,
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		FPS:    cfg.FPS,
		Seed:   cfg.Seed,
		Tab:    cfg.Tab,
		Logger: log.Default(),
	})
}

func lookupEffect(arg string) (effect.ID, error) {
	id := effect.ID(arg)
	if !id.Valid() {
		return "", fmt.Errorf("unknown effect: %s (available: %v)", arg, effect.IDs())
	}
	return id, nil
}

func listEffects(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tID\tTITLE\tPARTICLES\tDESCRIPTION")
	for i, id := range effect.IDs() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n",
			(i+1)%10, id, id.Title(), effect.Population(id, float64(cfg.Width)), id.Description())
	}
	return w.Flush()
}

func printSnippet(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	id, err := lookupEffect(args[0])
	if err != nil {
		return err
	}
	s, ok := snippets.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", export.ErrNoSnippet, id)
	}

	if bundle {
		fmt.Println(s.Bundle())
		return nil
	}
	fmt.Print(s.Tab(cfg.Tab))
	return nil
}

func copySnippet(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	id, err := lookupEffect(args[0])
	if err != nil {
		return err
	}

	var b export.Button
	err = export.NewClipboard(os.Stdout, cfg.Clipboard).CopyEffect(id)
	b.Record(err, time.Now())
	fmt.Fprintln(os.Stderr, b.Label(time.Now()))
	return err
}

func benchEffect(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}

	ids := effect.IDs()
	if args[0] != "all" {
		id, err := lookupEffect(args[0])
		if err != nil {
			return err
		}
		ids = []effect.ID{id}
	}

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	cfgs := make([]bench.Config, len(ids))
	for i, id := range ids {
		cfgs[i] = benchConfig(cfg, id)
	}
	results, err := bench.RunAll(cmd.Context(), cfgs)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EFFECT\tTICKS\tPEAK\tFINAL\tCIRCLES\tLINES\tTEXTS\tTICK TIME")
	for i, result := range results {
		m := result.Metrics()
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.0f\t%.0f\t%.0f\t%.0f\t%v\n",
			result.Effect, len(result.Samples), m["peak_particles"], m["final_particles"],
			m["peak_circles"], m["peak_lines"], m["peak_texts"], result.PerTick())

		if st != nil {
			runID, err := st.Save(cfgs[i], result)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "saved %s\n", runID)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(results) == 1 {
		fmt.Println()
		plotSamples(results[0].Samples, string(results[0].Effect))
	}
	return nil
}

func benchConfig(cfg *config.Config, id effect.ID) bench.Config {
	return bench.Config{
		Effect:     id,
		Width:      float64(cfg.Width),
		Height:     float64(cfg.Height),
		Ticks:      ticks,
		Seed:       cfg.Seed,
		ClickEvery: clickEvery,
		Sweep:      sweep,
	}
}

// snapshot runs an effect headless and writes its last frame as SVG.
func snapshot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, nil)
	if err != nil {
		return err
	}
	id, err := lookupEffect(args[0])
	if err != nil {
		return err
	}

	bc := benchConfig(cfg, id)
	bc.Ticks = frames
	result, err := bench.Run(cmd.Context(), bc)
	if err != nil {
		return err
	}

	svg := export.FrameToSVG(float64(cfg.Width), float64(cfg.Height), result.Frame)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d draw calls)\n", outFile, len(result.Frame))
	return nil
}

func plotSamples(samples []bench.Sample, caption string) {
	series := (&bench.Result{Samples: samples}).Series
	fmt.Println(asciigraph.Plot(series(func(s bench.Sample) int { return s.Particles }),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption+" particles"),
	))
	fmt.Println()
	fmt.Println(asciigraph.PlotMany([][]float64{
		series(func(s bench.Sample) int { return s.Circles }),
		series(func(s bench.Sample) int { return s.Lines }),
	},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Cyan, asciigraph.Magenta),
		asciigraph.Caption(caption+" circles (cyan) and lines (magenta)"),
	))
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEFFECT\tTICKS\tPEAK\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\t%s\n",
			r.ID, r.Effect, r.Ticks, r.Metrics["peak_particles"], r.Timestamp.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("effect: %s  seed: %d  size: %.0fx%.0f\n\n", meta.Effect, meta.Seed, meta.Width, meta.Height)
	plotSamples(samples, string(meta.Effect))

	if svgFile != "" {
		series := (&bench.Result{Samples: samples}).Series(func(s bench.Sample) int { return s.Particles })
		if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(series, 800, 240, "#00ffff")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return nil
}
