package main

import (
	"github.com/spf13/cobra"
)

// globalOptions are shared by every subcommand.
type globalOptions struct {
	// configPath overrides values of the embedded application file.
	configPath string
	// debug enables debug logging and, in the window, the FPS overlay.
	debug bool
	// logFormat selects the slog handler: text or json.
	logFormat string
}

// runOptions control the window driver.
type runOptions struct {
	// useOpenCL rasterizes on the GPU when the binary was built with -tags opencl.
	useOpenCL bool
	// cpuProfile writes a CPU profile for the lifetime of the window.
	cpuProfile string
	// sound plays a tone each generation.
	sound bool
	// scale overrides view.scale from the application file.
	scale int
}

// exportOptions control offline rendering.
type exportOptions struct {
	format      string
	out         string
	generations int
}

// termOptions control the terminal viewer.
type termOptions struct {
	sound bool
}

func bindGlobalFlags(cmd *cobra.Command, o *globalOptions) {
	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "application YAML file overriding the built-in defaults")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging and the on-screen overlay")
	cmd.PersistentFlags().StringVar(&o.logFormat, "log-format", "text", "log output format (text or json)")
}

func bindRunFlags(cmd *cobra.Command, o *runOptions) {
	cmd.Flags().BoolVar(&o.useOpenCL, "opencl", false, "rasterize segments with OpenCL when available")
	cmd.Flags().StringVar(&o.cpuProfile, "cpuprofile", "", "write a CPU profile to this file while the window is open")
	cmd.Flags().BoolVar(&o.sound, "sound", false, "play a tone for every new generation")
	cmd.Flags().IntVar(&o.scale, "scale", 0, "window scale factor (0 uses view.scale)")
}

func bindExportFlags(cmd *cobra.Command, o *exportOptions) {
	cmd.Flags().StringVar(&o.format, "format", "png", "output format (png or svg)")
	cmd.Flags().StringVarP(&o.out, "out", "o", "", "output file (defaults to kochsnowflake.<format>)")
	cmd.Flags().IntVar(&o.generations, "generations", -1, "generations to grow (-1 uses control.maxIterations)")
}

func bindTermFlags(cmd *cobra.Command, o *termOptions) {
	cmd.Flags().BoolVar(&o.sound, "sound", false, "play a tone for every new generation")
}
