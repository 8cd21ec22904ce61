package main

import (
	"image/color"
	"log/slog"
	"runtime"

	"kochsnowflake/koch"
	"kochsnowflake/raster"
)

var backgroundColor = color.RGBA{0, 0, 0, 255}

// rasterizer turns a boundary snapshot into the pixels of a frame.
type rasterizer interface {
	Rasterize(segs []koch.Vector, frame *raster.Frame) error
	Name() string
	Close()
}

// cpuRasterizer draws with one goroutine per band of rows.
type cpuRasterizer struct {
	colors  []color.RGBA
	workers int
}

func newCPURasterizer(colors []color.RGBA) *cpuRasterizer {
	return &cpuRasterizer{colors: colors, workers: runtime.NumCPU()}
}

func (r *cpuRasterizer) Rasterize(segs []koch.Vector, frame *raster.Frame) error {
	frame.Clear(backgroundColor)
	frame.DrawSegments(segs, r.colors, r.workers)
	return nil
}

func (r *cpuRasterizer) Name() string { return "cpu" }

func (r *cpuRasterizer) Close() {}

// selectRasterizer prefers OpenCL when asked for and falls back to the CPU.
func selectRasterizer(log *slog.Logger, useOpenCL bool, width, height int, colors []color.RGBA) rasterizer {
	if useOpenCL {
		r, err := newOpenCLRasterizer(width, height, colors)
		if err == nil {
			log.Info("raster.opencl_enabled", "device", r.DeviceName())
			return r
		}
		log.Warn("raster.opencl_unavailable", "err", err)
	}
	return newCPURasterizer(colors)
}
