package polyclip

import (
	"math"

	"github.com/paulmach/orb"
)

// Epsilon is the tolerance used when comparing coordinates and parameters.
const Epsilon = 1e-10

// Equal returns true if a and b are equal with tolerance Epsilon.
func Equal(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// Interval returns true if f is in closed interval [lo,hi] with tolerance Epsilon.
func Interval(f, lo, hi float64) bool {
	return lo-Epsilon < f && f < hi+Epsilon
}

// pointEqual returns true if a and b coincide with tolerance Epsilon.
func pointEqual(a, b orb.Point) bool {
	return Equal(a[0], b[0]) && Equal(a[1], b[1])
}

func sub(a, b orb.Point) orb.Point {
	return orb.Point{a[0] - b[0], a[1] - b[1]}
}

func dot(a, b orb.Point) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// perpDot returns the cross product of a and b, ie. the signed area of the
// parallelogram they span. Its sign gives the orientation of the turn from a to b.
func perpDot(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// interpolate returns the point at parameter t in [0,1] on the segment from a to b.
func interpolate(a, b orb.Point, t float64) orb.Point {
	return orb.Point{a[0] + t*(b[0]-a[0]), a[1] + t*(b[1]-a[1])}
}

func finite(p orb.Point) bool {
	return !math.IsNaN(p[0]) && !math.IsInf(p[0], 0) && !math.IsNaN(p[1]) && !math.IsInf(p[1], 0)
}
