package export

import (
	"bytes"
	"errors"
	"image/png"
	"strings"
	"testing"

	"github.com/gogpu/gg"

	"kochsnowflake/koch"
)

func grownSegments(t *testing.T, generations int) []koch.Vector {
	t.Helper()
	s, err := koch.NewSession(koch.Params{Width: 320, Height: 240, Padding: 20, MaxGenerations: generations})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for !s.IsComplete() {
		if _, err := s.Step(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	segs, err := s.Segments()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return segs
}

func TestPaletteCycles(t *testing.T) {
	p := DefaultPalette
	for _, i := range []int{0, 5, 95} {
		if p.At(i) != p.At(i+p.Period) {
			t.Errorf("colour %d should repeat after %d segments", i, p.Period)
		}
	}
	if p.At(0) == p.At(p.Period/2) {
		t.Errorf("opposite hues should differ")
	}

	flat := Palette{Base: gg.Red}
	if flat.At(17) != gg.Red {
		t.Errorf("palette without period should use the base colour")
	}
	if c := flat.RGBA(3); c.R != 255 || c.G != 0 || c.B != 0 || c.A != 255 {
		t.Errorf("unexpected 8-bit red %+v", c)
	}
}

func TestWriteSVG(t *testing.T) {
	segs := grownSegments(t, 2)

	var buf bytes.Buffer
	if err := WriteSVG(&buf, segs, 320, 240, DefaultPalette); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()

	if strings.Count(out, "<path") != 1 {
		t.Fatalf("expected one path, got %q", out)
	}
	if got := strings.Count(out, "\n  L"); got != len(segs)-1 {
		t.Fatalf("expected %d line commands, got %d", len(segs)-1, got)
	}
	if !strings.Contains(out, " Z'/>") {
		t.Fatalf("expected a closed path")
	}
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Fatalf("expected document end")
	}
}

func TestWriteSVGRejectsEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, nil, 10, 10, DefaultPalette); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBoundsCoversCurve(t *testing.T) {
	segs := grownSegments(t, 1)
	b := Bounds(segs)
	for _, s := range segs {
		c := s.Start.Coord()
		if c.X < b.Min.X || c.X > b.Max.X || c.Y < b.Min.Y || c.Y > b.Max.Y {
			t.Fatalf("point %v outside bounds %+v", s.Start, b)
		}
	}
}

func TestWritePNG(t *testing.T) {
	segs := grownSegments(t, 2)

	var buf bytes.Buffer
	if err := WritePNG(&buf, segs, 320, 240, DefaultPalette); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decoding png: %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 240 {
		t.Fatalf("unexpected size %v", img.Bounds())
	}

	lit := 0
	for y := 0; y < 240; y++ {
		for x := 0; x < 320; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if r|g|b != 0 {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Fatalf("expected the curve to light some pixels")
	}
}

func TestWritePNGRejectsEmptyCanvas(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePNG(&buf, nil, 0, 10, DefaultPalette); !errors.Is(err, koch.ErrInvalidConfig) {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestPaletteTable(t *testing.T) {
	table := DefaultPalette.Table()
	if len(table) != DefaultPalette.Period {
		t.Fatalf("expected %d colours, got %d", DefaultPalette.Period, len(table))
	}
	if table[10] != DefaultPalette.RGBA(10+DefaultPalette.Period) {
		t.Fatalf("table should wrap with the period")
	}
	if n := len(Palette{Base: gg.Red}.Table()); n != 1 {
		t.Fatalf("flat palette should have one colour, got %d", n)
	}
}
