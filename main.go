package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"kochsnowflake/chime"
	"kochsnowflake/config"
	"kochsnowflake/export"
	"kochsnowflake/logger"
	"kochsnowflake/termview"
)

func main() {
	runtime.GOMAXPROCS(runtime.NumCPU())
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		global globalOptions
		run    runOptions
	)

	cmd := &cobra.Command{
		Use:          "kochsnowflake",
		Short:        "Animate the growth of a Koch snowflake",
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWindow(global, run)
		},
	}
	bindGlobalFlags(cmd, &global)
	bindRunFlags(cmd, &run)

	cmd.AddCommand(newRunCmd(&global), newExportCmd(&global), newTermCmd(&global))
	return cmd
}

func newRunCmd(global *globalOptions) *cobra.Command {
	var run runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open a window and grow the snowflake one generation at a time",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runWindow(*global, run)
		},
	}
	bindRunFlags(cmd, &run)
	return cmd
}

func newExportCmd(global *globalOptions) *cobra.Command {
	var opts exportOptions
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Grow the snowflake offline and write it as PNG or SVG",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := setup(*global, 0)
			if err != nil {
				return err
			}
			return exportFile(cfg, log, opts)
		},
	}
	bindExportFlags(cmd, &opts)
	return cmd
}

func newTermCmd(global *globalOptions) *cobra.Command {
	var opts termOptions
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Animate the snowflake in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, log, err := setup(*global, 0)
			if err != nil {
				return err
			}
			return runTerminal(cfg, log, opts)
		},
	}
	bindTermFlags(cmd, &opts)
	return cmd
}

// setup loads the application file and installs the logger. A positive
// scale replaces view.scale.
func setup(global globalOptions, scale int) (config.Config, *slog.Logger, error) {
	log := logger.Setup(logger.Config{Debug: global.debug, Format: global.logFormat})

	var (
		cfg config.Config
		err error
	)
	if global.configPath == "" {
		cfg, err = config.Default()
	} else {
		cfg, err = config.Load(global.configPath)
	}
	if err != nil {
		log.Error("config.load_failed", "path", global.configPath, "err", err)
		return config.Config{}, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if scale > 0 {
		if scale > maxWindowScale {
			return config.Config{}, nil, fmt.Errorf("--scale %d exceeds the maximum of %d", scale, maxWindowScale)
		}
		cfg.Scale = scale
	}
	log.Debug("config.loaded",
		"path", global.configPath,
		"width", cfg.Width, "height", cfg.Height, "padding", cfg.Padding,
		"max_iterations", cfg.MaxIterations, "delay", cfg.StepDelay())
	return cfg, log, nil
}

func runWindow(global globalOptions, opts runOptions) error {
	cfg, log, err := setup(global, opts.scale)
	if err != nil {
		return err
	}

	if opts.cpuProfile != "" {
		stop, err := startCPUProfile(opts.cpuProfile)
		if err != nil {
			return fmt.Errorf("starting CPU profile: %w", err)
		}
		defer stop()
		log.Info("profile.started", "path", opts.cpuProfile)
	}

	r := selectRasterizer(log, opts.useOpenCL, cfg.Width, cfg.Height, export.DefaultPalette.Table())
	g, err := newGame(cfg, log, r, global.debug)
	if err != nil {
		r.Close()
		return err
	}
	defer g.close()
	if opts.sound {
		g.enableSound()
	}

	scale := min(cfg.Scale, maxWindowScale)
	ebiten.SetWindowSize(cfg.Width*scale, cfg.Height*scale)
	ebiten.SetWindowTitle(cfg.WindowTitle())
	ebiten.SetTPS(int(defaultTPS))

	log.Info("window.started",
		"title", cfg.WindowTitle(), "raster", r.Name(),
		"max_iterations", cfg.MaxIterations, "delay", cfg.StepDelay())
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("window.closed", "generation", g.session.Status().Generation)
	return nil
}

func runTerminal(cfg config.Config, log *slog.Logger, opts termOptions) error {
	topts := termview.Options{
		Params:    cfg.Params(),
		StepDelay: cfg.StepDelay(),
		Title:     cfg.WindowTitle(),
		Palette:   export.DefaultPalette,
		Logger:    log,
	}
	if opts.sound {
		p, err := chime.NewPlayer()
		if err != nil {
			log.Warn("audio.unavailable", "err", err)
		} else {
			defer p.Close()
			topts.Chime = p
		}
	}
	return termview.Run(topts)
}
