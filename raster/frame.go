package raster

import (
	"image/color"
	"runtime"
	"sync"

	"kochsnowflake/koch"
)

// Frame is an RGBA8 pixel buffer laid out the way ebiten.Image.WritePixels
// expects it.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame allocates a frame with properly sized buffers.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*4),
	}
}

// Clear fills every pixel with c.
func (f *Frame) Clear(c color.RGBA) {
	if len(f.Pix) < 4 {
		return
	}
	f.Pix[0], f.Pix[1], f.Pix[2], f.Pix[3] = c.R, c.G, c.B, c.A
	for filled := 4; filled < len(f.Pix); filled *= 2 {
		copy(f.Pix[filled:], f.Pix[:filled])
	}
}

// Set writes c at (x, y); points outside the frame are ignored.
func (f *Frame) Set(x, y int, c color.RGBA) {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return
	}
	base := (y*f.Width + x) * 4
	f.Pix[base] = c.R
	f.Pix[base+1] = c.G
	f.Pix[base+2] = c.B
	f.Pix[base+3] = c.A
}

// At returns the colour stored at (x, y).
func (f *Frame) At(x, y int) color.RGBA {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return color.RGBA{}
	}
	base := (y*f.Width + x) * 4
	return color.RGBA{f.Pix[base], f.Pix[base+1], f.Pix[base+2], f.Pix[base+3]}
}

// DrawSegments rasterizes segs in order, colouring segment i with
// colors[i%len(colors)]. Rows are split into bands, one goroutine per band;
// every band walks all segments but only writes its own rows, so the result
// matches a sequential pass.
func (f *Frame) DrawSegments(segs []koch.Vector, colors []color.RGBA, workers int) {
	if len(segs) == 0 || len(colors) == 0 || f.Height == 0 {
		return
	}
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	rowsPer := (f.Height + workers - 1) / workers
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		yStart := i * rowsPer
		if yStart >= f.Height {
			break
		}
		yEnd := yStart + rowsPer
		if yEnd > f.Height {
			yEnd = f.Height
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			f.drawBand(segs, colors, y0, y1)
		}(yStart, yEnd)
	}
	wg.Wait()
}

// drawBand plots the parts of segs that fall on rows [y0, y1).
func (f *Frame) drawBand(segs []koch.Vector, colors []color.RGBA, y0, y1 int) {
	for i, s := range segs {
		lo, hi := s.Start.Y, s.End.Y
		if lo > hi {
			lo, hi = hi, lo
		}
		if hi < y0 || lo >= y1 {
			continue
		}
		c := colors[i%len(colors)]
		Line(s.Start.X, s.Start.Y, s.End.X, s.End.Y, func(x, y int) {
			if y >= y0 && y < y1 {
				f.Set(x, y, c)
			}
		})
	}
}
