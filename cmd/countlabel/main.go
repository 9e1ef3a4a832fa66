package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/countlabel/internal/clock"
	"github.com/san-kum/countlabel/internal/config"
	"github.com/san-kum/countlabel/internal/easing"
	"github.com/san-kum/countlabel/internal/format"
	"github.com/san-kum/countlabel/internal/label"
	"github.com/san-kum/countlabel/internal/store"
	"github.com/san-kum/countlabel/internal/tui"
	"github.com/san-kum/countlabel/internal/viz"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logFile string

	from       float64
	to         float64
	duration   time.Duration
	method     string
	precision  string
	suffix     string
	fps        int
	theme      string
	configFile string
	preset     string

	plain bool

	// trace
	outFile string
	plot    bool

	// curve
	points      int
	graphHeight int
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)

// main registers the commands and flags and runs the interactive demo when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "countlabel",
		Short:        "animated counting labels",
		SilenceUsage: true,
		RunE:         runInteractive,
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "log file (interactive mode logs nowhere without it)")
	addAnimationFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "animate labels in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}
	addAnimationFlags(runCmd)
	runCmd.Flags().BoolVar(&plain, "plain", false, "redraw a single line instead of the full-screen UI")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "drive labels offline and print every frame",
		Args:  cobra.NoArgs,
		RunE:  runTrace,
	}
	addAnimationFlags(traceCmd)
	traceCmd.Flags().StringVarP(&outFile, "out", "o", "", "export frames to a .csv or .json file")
	traceCmd.Flags().BoolVar(&plot, "plot", false, "plot the value of each label")

	curveCmd := &cobra.Command{
		Use:   "curve [method...]",
		Short: "plot easing curves",
		RunE:  plotCurves,
	}
	curveCmd.Flags().IntVar(&points, "points", 60, "samples per curve")
	curveCmd.Flags().IntVar(&graphHeight, "height", 15, "graph height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, headerStyle.Render("PRESET")+"\tFROM\tTO\tDURATION\tLABELS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				names := make([]string, len(p.Labels))
				for i, l := range p.Labels {
					names[i] = fmt.Sprintf("%s(%s)", l.Name, l.Method)
				}
				fmt.Fprintf(w, "%s\t%g\t%g\t%s\t%s\n", name, p.From, p.To, p.Duration, strings.Join(names, " "))
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  writeConfig,
	}
	initCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")

	rootCmd.AddCommand(runCmd, traceCmd, curveCmd, presetsCmd, initCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func addAnimationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&from, "from", config.DefaultFrom, "start value")
	cmd.Flags().Float64Var(&to, "to", config.DefaultTo, "destination value")
	cmd.Flags().DurationVarP(&duration, "duration", "d", config.DefaultDuration, "animation duration (<= 0 completes instantly)")
	cmd.Flags().StringVarP(&method, "method", "m", "", "easing method for a single label (linear, easeIn, easeOut, easeInOut)")
	cmd.Flags().StringVarP(&precision, "precision", "p", "", "fractional digits for every label (0, 1, 2, full)")
	cmd.Flags().StringVar(&suffix, "suffix", "", "text appended to every label")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	cmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "countlabel",
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// resolveConfig layers defaults, preset, config file and explicit flags, in
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
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	// Without a preset or file the flag defaults are the config.
	flags := cmd.Flags()
	bare := preset == "" && configFile == ""
	if bare || flags.Changed("from") {
		cfg.From = from
	}
	if bare || flags.Changed("to") {
		cfg.To = to
	}
	if bare || flags.Changed("duration") {
		cfg.Duration = duration
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}

	if method != "" {
		m, err := easing.Parse(method)
		if err != nil {
			return nil, err
		}
		cfg.Labels = []config.LabelConfig{{Name: "value", Method: m, Precision: cfg.Labels[0].Precision}}
	}
	if precision != "" {
		p, err := format.Parse(precision)
		if err != nil {
			return nil, err
		}
		for i := range cfg.Labels {
			cfg.Labels[i].Precision = p
		}
	}
	if suffix != "" {
		for i := range cfg.Labels {
			cfg.Labels[i].Suffix = suffix
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if plain {
		return runPlain(cmd.Context(), cfg, os.Stdout)
	}

	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	logger := newLogger(w)
	logger.Info("starting", "labels", len(cfg.Labels), "from", cfg.From, "to", cfg.To, "duration", cfg.Duration, "fps", cfg.FPS)

	return viz.Run(cfg, viz.WithLogger(logger))
}

// runPlain animates every label against the wall clock, redrawing one line
// on out. An interrupt ends the run cleanly with the cursor restored.
func runPlain(ctx context.Context, cfg *config.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := newLogger(os.Stderr)
	drv := clock.NewDriver(clock.System{})
	r := tui.NewLiveRenderer(out, cfg.FPS)

	labels := make([]*label.Label, len(cfg.Labels))
	for i, lc := range cfg.Labels {
		labels[i] = label.New(drv,
			label.WithName(lc.Name),
			label.WithMethod(lc.Method),
			label.WithPrecision(lc.Precision),
			label.WithSuffix(lc.Suffix),
			label.WithSurface(r.Add(lc.Name)),
			label.WithLogger(logger),
		)
	}

	r.Start()
	defer r.Stop()
	for _, lbl := range labels {
		lbl.Animate(cfg.From, cfg.To, cfg.Duration, nil)
	}
	err := tui.Pump(ctx, drv, clock.Interval(cfg.FPS))
	if errors.Is(err, context.Canceled) {
		logger.Debug("interrupted", "frames", drv.Frames())
		return nil
	}
	return err
}

// runTrace steps every label with a fake clock at the configured frame rate
// until all of them complete.
func runTrace(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr)

	fake := clock.NewFake(time.Unix(0, 0))
	drv := clock.NewDriver(fake)
	interval := clock.Interval(cfg.FPS)

	recorders := make([]*store.Recorder, len(cfg.Labels))
	labels := make([]*label.Label, len(cfg.Labels))
	for i, lc := range cfg.Labels {
		recorders[i] = store.NewRecorder(lc.Name)
		labels[i] = label.New(drv,
			label.WithName(lc.Name),
			label.WithMethod(lc.Method),
			label.WithPrecision(lc.Precision),
			label.WithSuffix(lc.Suffix),
			label.WithObserver(recorders[i]),
			label.WithLogger(logger),
		)
		recorders[i].Describe(labels[i], cfg.From, cfg.To, cfg.Duration, cfg.FPS)
	}

	completed := 0
	for _, lbl := range labels {
		lbl.Animate(cfg.From, cfg.To, cfg.Duration, func() { completed++ })
	}
	for drv.Active() > 0 {
		fake.Advance(interval)
		drv.Frame()
	}
	logger.Debug("trace finished", "frames", drv.Frames(), "completed", completed)

	traces := make([]store.Trace, len(recorders))
	for i, r := range recorders {
		traces[i] = r.Trace()
	}

	if outFile != "" {
		if err := store.Export(outFile, traces); err != nil {
			return err
		}
		logger.Info("exported", "path", outFile, "labels", len(traces))
		return nil
	}

	if plot {
		series := make([][]float64, len(recorders))
		names := make([]string, len(recorders))
		for i, r := range recorders {
			series[i] = r.Values()
			names[i] = traces[i].Label
		}
		fmt.Println(asciigraph.PlotMany(series,
			asciigraph.Height(graphHeightOr(15)),
			asciigraph.Width(60),
			asciigraph.SeriesColors(seriesColors(len(series))...),
			asciigraph.Caption(strings.Join(names, " / ")),
		))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"t"}
	for _, tr := range traces {
		header = append(header, tr.Label)
	}
	fmt.Fprintln(w, headerStyle.Render(strings.Join(header, "\t")))
	for i := range traces[0].Samples {
		row := []string{fmt.Sprintf("%.3f", traces[0].Samples[i].T)}
		for _, tr := range traces {
			row = append(row, tr.Samples[i].Text)
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func plotCurves(cmd *cobra.Command, args []string) error {
	methods := easing.Methods()
	if len(args) > 0 {
		methods = methods[:0]
		for _, arg := range args {
			m, err := easing.Parse(arg)
			if err != nil {
				return err
			}
			methods = append(methods, m)
		}
	}
	if points < 2 {
		return fmt.Errorf("points must be at least 2, got %d", points)
	}

	series := make([][]float64, len(methods))
	names := make([]string, len(methods))
	for i, m := range methods {
		series[i] = make([]float64, points)
		for j := range series[i] {
			series[i][j] = m.Apply(float64(j) / float64(points-1))
		}
		names[i] = m.String()
	}

	fmt.Println(asciigraph.PlotMany(series,
		asciigraph.Height(graphHeightOr(15)),
		asciigraph.Precision(2),
		asciigraph.SeriesColors(seriesColors(len(series))...),
		asciigraph.Caption(strings.Join(names, " / ")),
	))
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	path := "countlabel.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func graphHeightOr(def int) int {
	if graphHeight > 0 {
		return graphHeight
	}
	return def
}

func seriesColors(n int) []asciigraph.AnsiColor {
	palette := []asciigraph.AnsiColor{asciigraph.Green, asciigraph.Yellow, asciigraph.Blue, asciigraph.Red, asciigraph.Magenta, asciigraph.Cyan}
	colors := make([]asciigraph.AnsiColor, n)
	for i := range colors {
		colors[i] = palette[i%len(palette)]
	}
	return colors
}
