package export

import (
	"errors"
	"fmt"
	"io"

	"github.com/jbeda/geom"

	"kochsnowflake/koch"
)

const (
	svgStyle  = "fill: none; stroke-width: 1; stroke-linejoin: round"
	svgMargin = 2.0
)

// svg is a small helper around fmt.Fprintf that remembers the first write
// error so callers can check once at the end.
type svg struct {
	w   io.Writer
	err error
}

func (s *svg) printf(format string, a ...any) {
	if s.err != nil {
		return
	}
	_, s.err = fmt.Fprintf(s.w, format, a...)
}

func (s *svg) start(viewBox geom.Rect, width, height int) {
	s.printf(`<?xml version="1.0"?>
<svg version="1.1" width="%d" height="%d"
     viewBox="%g %g %g %g"
     xmlns="http://www.w3.org/2000/svg">
`, width, height, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
}

func (s *svg) background(viewBox geom.Rect, fill string) {
	s.printf("<rect x='%g' y='%g' width='%g' height='%g' fill='%s'/>\n",
		viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), fill)
}

func (s *svg) closedPath(points []koch.Point, stroke string) {
	s.printf("<path style='%s; stroke: %s' d='M%d,%d", svgStyle, stroke, points[0].X, points[0].Y)
	for _, p := range points[1:] {
		s.printf("\n  L%d,%d", p.X, p.Y)
	}
	s.printf(" Z'/>\n")
}

func (s *svg) end() {
	s.printf("</svg>\n")
}

// Bounds returns the smallest rectangle containing every segment endpoint.
func Bounds(segs []koch.Vector) geom.Rect {
	r := geom.Rect{Min: segs[0].Start.Coord(), Max: segs[0].Start.Coord()}
	for _, s := range segs {
		r.ExpandToContainCoord(s.Start.Coord())
		r.ExpandToContainCoord(s.End.Coord())
	}
	return r
}

// WriteSVG writes segs as one closed path. The view box covers the world so
// the drawing lines up with the window rendering; it grows if the curve
// reaches past the world edge.
func WriteSVG(w io.Writer, segs []koch.Vector, width, height int, pal Palette) error {
	if len(segs) == 0 {
		return errors.New("svg export: no segments")
	}

	viewBox := geom.Rect{Min: geom.Coord{X: 0, Y: 0}, Max: geom.Coord{X: float64(width), Y: float64(height)}}
	b := Bounds(segs)
	b.Min = b.Min.Minus(geom.Coord{X: svgMargin, Y: svgMargin})
	b.Max = b.Max.Plus(geom.Coord{X: svgMargin, Y: svgMargin})
	viewBox.ExpandToContainRect(b)

	points := make([]koch.Point, len(segs))
	for i, s := range segs {
		points[i] = s.Start
	}

	stroke := pal.RGBA(0)
	doc := &svg{w: w}
	doc.start(viewBox, width, height)
	doc.background(viewBox, "black")
	doc.closedPath(points, fmt.Sprintf("rgb(%d,%d,%d)", stroke.R, stroke.G, stroke.B))
	doc.end()
	if doc.err != nil {
		return fmt.Errorf("writing svg: %w", doc.err)
	}
	return nil
}
