// Package koch implements the Koch snowflake subdivision engine: integer
// lattice points, directed segments, the circular boundary that holds the
// curve and the controller that grows it one generation at a time.
package koch

import (
	"fmt"
	"math"

	"github.com/jbeda/geom"
)

// Point is an immutable lattice coordinate. Screen convention: y grows downward.
type Point struct {
	X int
	Y int
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Coord converts p into the float coordinate space used for geometry.
func (p Point) Coord() geom.Coord {
	return geom.Coord{X: float64(p.X), Y: float64(p.Y)}
}

// pointOf rounds a float coordinate to the nearest lattice point.
func pointOf(c geom.Coord) Point {
	return Point{X: int(math.Round(c.X)), Y: int(math.Round(c.Y))}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
