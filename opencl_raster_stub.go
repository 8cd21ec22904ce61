//go:build !opencl

package main

import (
	"errors"
	"image/color"

	"kochsnowflake/koch"
	"kochsnowflake/raster"
)

type openCLRasterizer struct{}

func newOpenCLRasterizer(width, height int, colors []color.RGBA) (*openCLRasterizer, error) {
	return nil, errors.New("OpenCL support is not enabled; rebuild with -tags opencl")
}

func (r *openCLRasterizer) Rasterize(segs []koch.Vector, frame *raster.Frame) error {
	return errors.New("OpenCL rasterizer unavailable")
}

func (r *openCLRasterizer) Name() string { return "opencl" }

func (r *openCLRasterizer) Close() {}

func (r *openCLRasterizer) DeviceName() string { return "" }
