package koch

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// bumpAngle is the rotation applied to the middle third of an edge. With the
// clockwise-on-screen seed (y down) a negative angle puts the apex outside.
const bumpAngle = -math.Pi / 3

var (
	bumpCos = math.Cos(bumpAngle)
	bumpSin = math.Sin(bumpAngle)
)

// Vector is a directed segment from Start to End. Vectors are values and are
// never modified after construction.
type Vector struct {
	Start Point
	End   Point
}

// VectorOf builds the segment p1 -> p2. Zero-length segments are allowed.
func VectorOf(p1, p2 Point) Vector {
	return Vector{Start: p1, End: p2}
}

// Length returns the Euclidean length of the segment.
func (v Vector) Length() float64 {
	return v.End.Coord().Minus(v.Start.Coord()).Magnitude()
}

// Angle returns the direction of the segment in radians, atan2(dy, dx).
func (v Vector) Angle() float64 {
	return math.Atan2(float64(v.End.Y-v.Start.Y), float64(v.End.X-v.Start.X))
}

// Degenerate reports whether the segment has zero length.
func (v Vector) Degenerate() bool {
	return v.Start == v.End
}

// SubdivisionPoints returns the three inner points of the Koch rule for A->B:
// the one-third point, the apex of the equilateral bump erected on the middle
// third, and the two-thirds point.
func (v Vector) SubdivisionPoints() [3]Point {
	a := v.Start.Coord()
	d := v.End.Coord().Minus(a)

	p1 := a.Plus(d.Times(1.0 / 3.0))
	p3 := a.Plus(d.Times(2.0 / 3.0))
	mid := p3.Minus(p1)
	apex := p1.Plus(rotate(mid, bumpCos, bumpSin))

	return [3]Point{pointOf(p1), pointOf(apex), pointOf(p3)}
}

// Split returns the four segments that replace v in the next generation.
func (v Vector) Split() [4]Vector {
	sp := v.SubdivisionPoints()
	return [4]Vector{
		VectorOf(v.Start, sp[0]),
		VectorOf(sp[0], sp[1]),
		VectorOf(sp[1], sp[2]),
		VectorOf(sp[2], v.End),
	}
}

func (v Vector) String() string {
	return fmt.Sprintf("%v->%v", v.Start, v.End)
}

func rotate(c geom.Coord, cos, sin float64) geom.Coord {
	return geom.Coord{
		X: c.X*cos - c.Y*sin,
		Y: c.X*sin + c.Y*cos,
	}
}
