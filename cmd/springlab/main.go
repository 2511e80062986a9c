package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/lmittmann/tint"
	"github.com/san-kum/springlab/internal/config"
	"github.com/san-kum/springlab/internal/experiment"
	"github.com/san-kum/springlab/internal/store"
	"github.com/san-kum/springlab/internal/sweep"
	"github.com/san-kum/springlab/internal/tui"
	"github.com/san-kum/springlab/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	sceneName  string
	preset     string
	logLevel   string
	themeName  string
	noColor    bool

	plotQuantity string
	csvPath      string
	jsonOut      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "springlab",
		Short: "hooke's law spring lab",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runLab,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&sceneName, "scene", config.SceneSingle, "scene: single, series or parallel")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored log output")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", "cyberpunk", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	labCmd := &cobra.Command{
		Use:   "lab",
		Short: "interactive spring lab",
		RunE:  runLab,
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "print the scene at rest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(cmd, nil)
		},
	}

	setCmd := &cobra.Command{
		Use:   "set name=value...",
		Short: "write quantities in order and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSet,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep name=lo:hi:n...",
		Short: "write a grid of values and tabulate the result",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&plotQuantity, "plot", "", "quantity to plot against the sweep")
	sweepCmd.Flags().StringVar(&csvPath, "csv", "", "write samples to a csv file")
	sweepCmd.Flags().BoolVar(&jsonOut, "json", false, "print samples as json")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, scene := range experiment.NewRegistry().ListScenes() {
				fmt.Printf("%s: %s\n", scene, strings.Join(config.ListPresets(scene), ", "))
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the selected configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(labCmd, showCmd, setCmd, sweepCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    noColor,
		}),
	))
	return nil
}

// loadConfig resolves the scene configuration: a config file wins over a
// preset, which wins over the scene's default preset.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		if cmd.Flags().Changed("scene") {
			cfg.Scene = sceneName
		}
		slog.Debug("loaded config", "path", configFile, "scene", cfg.Scene)
		return cfg, nil
	}

	name := preset
	if name == "" {
		name = config.DefaultPreset(sceneName)
	}
	cfg := config.GetPreset(sceneName, name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset %q for scene %q, available: %s",
			name, sceneName, strings.Join(config.ListPresets(sceneName), ", "))
	}
	slog.Debug("using preset", "scene", sceneName, "preset", name)
	return cfg, nil
}

func buildScene(cmd *cobra.Command) (*experiment.Scene, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return experiment.NewRegistry().Build(cfg, slog.Default())
}

func runLab(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return tui.RunLab(cfg, slog.Default())
}

func runSet(cmd *cobra.Command, args []string) error {
	assignments, err := parseAssignments(args)
	if err != nil {
		return err
	}
	scene, err := buildScene(cmd)
	if err != nil {
		return err
	}
	defer scene.Dispose()

	for _, a := range assignments {
		if err := scene.Set(a.name, a.value); err != nil {
			return fmt.Errorf("set %s=%g: %w", a.name, a.value, err)
		}
		slog.Info("set", "quantity", a.name, "value", a.value)
	}

	printScene(scene)
	return nil
}

func printScene(scene *experiment.Scene) {
	spans := scene.Spans()
	arm, _ := scene.Quantity("arm")
	fmt.Println(viz.Title.Render(scene.Name()))
	fmt.Print(viz.Diagram(spans, arm.Property.Get(), spans[0].Left, arm.Range().Max, 60, viz.GetTheme(themeName)))
	fmt.Println()
	fmt.Print(viz.Table(scene))
}

func runSweep(cmd *cobra.Command, args []string) error {
	axes := make([]sweep.Axis, 0, len(args))
	for _, arg := range args {
		axis, err := sweep.ParseAxis(arg)
		if err != nil {
			return err
		}
		axes = append(axes, axis)
	}
	scene, err := buildScene(cmd)
	if err != nil {
		return err
	}
	defer scene.Dispose()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	samples, err := sweep.NewGrid(axes...).Run(ctx, scene)
	if err != nil {
		return err
	}
	slog.Info("sweep done", "scene", scene.Name(), "samples", len(samples))

	data := store.NewExport(scene.Name(), axes, quantityNames(scene), samples)
	if jsonOut {
		return data.WriteJSON(os.Stdout)
	}

	fmt.Println(strings.Join(data.Columns, "\t"))
	for _, row := range data.Rows() {
		fmt.Println(strings.Join(row, "\t"))
	}

	if csvPath != "" {
		if err := store.ExportCSV(csvPath, data); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", csvPath)
	}

	if plotQuantity != "" {
		if _, err := scene.Quantity(plotQuantity); err != nil {
			return err
		}
		fmt.Println()
		fmt.Println(viz.Plot(sweep.Series(samples, plotQuantity), plotQuantity, 60, 10))
	}
	return nil
}

func quantityNames(scene *experiment.Scene) []string {
	var names []string
	for _, q := range scene.Quantities() {
		names = append(names, q.Name)
	}
	return names
}

type assignment struct {
	name  string
	value float64
}

// parseAssignments reads name=value pairs, keeping their order.
func parseAssignments(args []string) ([]assignment, error) {
	out := make([]assignment, 0, len(args))
	for _, arg := range args {
		name, raw, ok := strings.Cut(arg, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid assignment %q, want name=value", arg)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		out = append(out, assignment{name: name, value: v})
	}
	return out, nil
}
