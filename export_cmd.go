package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"kochsnowflake/config"
	"kochsnowflake/export"
	"kochsnowflake/koch"
)

// exportFile grows a curve to the requested generation and writes it to
// opts.out.
func exportFile(cfg config.Config, log *slog.Logger, opts exportOptions) error {
	out := opts.out
	if out == "" {
		out = "kochsnowflake." + opts.format
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}
	if err := writeExport(f, cfg, opts.format, opts.generations); err != nil {
		_ = f.Close()
		_ = os.Remove(out)
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}
	log.Info("export.written", "path", out, "format", opts.format)
	return nil
}

// writeExport renders the curve after generations steps. A negative count
// uses control.maxIterations.
func writeExport(w io.Writer, cfg config.Config, format string, generations int) error {
	if format != "png" && format != "svg" {
		return fmt.Errorf("unknown export format %q: %w", format, koch.ErrInvalidConfig)
	}
	params := cfg.Params()
	if generations >= 0 {
		if generations > config.MaxIterationsLimit {
			return fmt.Errorf("--generations %d exceeds the limit of %d: %w",
				generations, config.MaxIterationsLimit, koch.ErrInvalidConfig)
		}
		params.MaxGenerations = generations
	}

	session, err := koch.NewSession(params)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}
	for !session.IsComplete() {
		if _, err := session.Step(); err != nil {
			return fmt.Errorf("growing curve: %w", err)
		}
	}
	segs, err := session.Segments()
	if err != nil {
		return err
	}

	switch format {
	case "svg":
		return export.WriteSVG(w, segs, cfg.Width, cfg.Height, export.DefaultPalette)
	default:
		return export.WritePNG(w, segs, cfg.Width, cfg.Height, export.DefaultPalette)
	}
}
