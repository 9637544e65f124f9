package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/neonloop/hotloop"
	"github.com/neonloop/hotloop/internal/config"
	"github.com/neonloop/hotloop/internal/stats"
	"github.com/neonloop/hotloop/internal/tui"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	configFile string
	seed       uint64
	width      int
	height     int
	showFPS    bool
	debug      bool
	mute       bool
	// sim flags
	ticks       int
	scriptFile  string
	geojsonFile string
	reportTitle string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hotloop",
		Short:        "endless neon road toy",
		SilenceUsage: true,
		RunE:         runWindow,
	}
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "random seed (0 keeps the config value)")
	rootCmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	rootCmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	rootCmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS overlay")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "log frame stats to stderr")
	rootCmd.Flags().BoolVar(&mute, "mute", false, "disable sound")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "gesture script to play in the window")

	simCmd := &cobra.Command{
		Use:   "sim",
		Short: "run the simulation headless and print a report",
		RunE:  runSim,
	}
	simCmd.Flags().IntVar(&ticks, "ticks", 600, "number of ticks to simulate")
	simCmd.Flags().StringVar(&scriptFile, "script", "", "gesture script (yaml or json)")
	simCmd.Flags().StringVar(&geojsonFile, "geojson", "", "write the final scene as GeoJSON to this file")
	simCmd.Flags().StringVar(&reportTitle, "title", "hotloop sim", "report title")

	watchCmd := &cobra.Command{
		Use:   "watch",
		Short: "run the simulation in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return tui.Run(hotloop.NewHeadless(cfg.Scene()))
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "hotloop.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return errors.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(simCmd, watchCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the config file if one was given, then applies flags the
// user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	flags := cmd.Flags()
	if seed != 0 {
		cfg.Sim.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}
	if flags.Changed("fps") {
		cfg.Window.ShowFPS = showFPS
	}
	if flags.Changed("debug") {
		cfg.Debug = debug
	}
	if flags.Changed("mute") {
		cfg.Audio.Enabled = !mute
	}
	return cfg, cfg.Validate()
}

func loadScript(path string) (*hotloop.TestRunner, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read script %s", path)
	}
	runner, err := hotloop.LoadTestScript(data)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return runner, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	audio := hotloop.OpenAudio(cfg.Audio.Enabled, cfg.Audio.SampleRate)
	scene := hotloop.NewScene(cfg.Scene(),
		hotloop.WithAudio(audio),
		hotloop.WithViewport(float64(cfg.Window.Width), float64(cfg.Window.Height)))
	scene.ScreenshotDir = cfg.ScreenshotDir
	if scriptFile != "" {
		runner, err := loadScript(scriptFile)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}
	return hotloop.Run(scene, cfg.Run())
}

func runSim(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if ticks <= 0 {
		return errors.Errorf("ticks %d must be positive", ticks)
	}
	h := hotloop.NewHeadless(cfg.Scene(),
		hotloop.WithViewport(float64(cfg.Window.Width), float64(cfg.Window.Height)))
	h.Scene.SetDebugMode(cfg.Debug)

	var runner *hotloop.TestRunner
	if scriptFile != "" {
		if runner, err = loadScript(scriptFile); err != nil {
			return err
		}
		h.Scene.SetTestRunner(runner)
	}

	rec := stats.NewRecorder(ticks)
	h.StepN(ticks, rec.Record)

	if err := rec.Report(cmd.OutOrStdout(), reportTitle); err != nil {
		return errors.Wrap(err, "write report")
	}
	if runner != nil && !runner.Done() {
		fmt.Fprintf(cmd.ErrOrStderr(), "[hotloop] script unfinished after %d ticks (%d steps run)\n",
			ticks, runner.Executed())
	}
	if geojsonFile != "" {
		data, err := h.Scene.GeoJSON()
		if err != nil {
			return err
		}
		if dir := filepath.Dir(geojsonFile); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return errors.Wrapf(err, "mkdir %s", dir)
			}
		}
		if err := os.WriteFile(geojsonFile, data, 0o644); err != nil {
			return errors.Wrapf(err, "write %s", geojsonFile)
		}
	}
	return nil
}
