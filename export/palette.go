// Package export writes a generation of the snowflake to image files.
package export

import (
	"image/color"

	"github.com/gogpu/gg"
)

// Palette cycles hues along the curve so neighbouring segments are told apart.
// A Period below 1 draws every segment in Base.
type Palette struct {
	Period     int
	Saturation float64
	Lightness  float64
	Base       gg.RGBA
}

// DefaultPalette walks the hue circle once every 96 segments, and falls back
// to red, the colour the curve has always been drawn in.
var DefaultPalette = Palette{
	Period:     96,
	Saturation: 1,
	Lightness:  0.5,
	Base:       gg.Red,
}

// At returns the colour of segment i.
func (p Palette) At(i int) gg.RGBA {
	if p.Period < 1 {
		return p.Base
	}
	hue := float64(i%p.Period) * 360 / float64(p.Period)
	return gg.HSL(hue, p.Saturation, p.Lightness)
}

// RGBA returns the colour of segment i as 8-bit components.
func (p Palette) RGBA(i int) color.RGBA {
	return color.RGBAModel.Convert(p.At(i).Color()).(color.RGBA)
}

// Table returns one full cycle of colours, so segment i uses
// Table()[i%len(Table())].
func (p Palette) Table() []color.RGBA {
	n := max(p.Period, 1)
	out := make([]color.RGBA, n)
	for i := range out {
		out[i] = p.RGBA(i)
	}
	return out
}
