package polyclip

import (
	"math"

	"github.com/paulmach/orb"
)

// segmentIntersection is an intersection between two line segments A and B,
// with the parametric positions TA and TB along each segment in [0,1].
type segmentIntersection struct {
	orb.Point
	TA, TB float64
}

// segmentIntersections is a list of intersections between two segments. A
// collinear overlap is represented by the two endpoints of the shared
// interval.
type segmentIntersections []segmentIntersection

func (zs segmentIntersections) add(pos orb.Point, ta, tb float64) segmentIntersections {
	ta = math.Max(0.0, math.Min(1.0, ta))
	tb = math.Max(0.0, math.Min(1.0, tb))
	return append(zs, segmentIntersection{pos, ta, tb})
}

// intersectionSegments appends the intersections between segments a0-a1 and
// b0-b1 to zs. Parallel but non-overlapping segments yield nothing; collinear
// overlapping segments yield the endpoints of the shared interval.
func intersectionSegments(zs segmentIntersections, a0, a1, b0, b1 orb.Point) (segmentIntersections, error) {
	if pointEqual(a0, a1) || pointEqual(b0, b1) {
		return zs, nil // zero-length segment
	}

	da := sub(a1, a0)
	db := sub(b1, b0)
	div := perpDot(da, db)
	if Equal(div, 0.0) {
		if !Equal(perpDot(da, sub(b0, a0)), 0.0) {
			return zs, nil // parallel but not aligned
		}

		// collinear, project b onto a's parameter space
		len2a := dot(da, da)
		len2b := dot(db, db)
		c := dot(sub(b0, a0), da) / len2a
		d := dot(sub(b1, a0), da) / len2a
		lo := math.Max(0.0, math.Min(c, d))
		hi := math.Min(1.0, math.Max(c, d))
		if hi < lo {
			return zs, nil // disjoint
		}

		p0 := interpolate(a0, a1, lo)
		p1 := interpolate(a0, a1, hi)
		t0b := dot(sub(p0, b0), db) / len2b
		t1b := dot(sub(p1, b0), db) / len2b
		if hi-lo < Epsilon {
			return zs.add(p0, lo, t0b), nil // touch at a single point
		}
		if !Interval(t0b, 0.0, 1.0) || !Interval(t1b, 0.0, 1.0) {
			return zs, &RobustnessError{
				Points: []orb.Point{a0, a1, b0, b1},
				Reason: "collinear overlap projects outside segment",
			}
		}
		zs = zs.add(p0, lo, t0b)
		zs = zs.add(p1, hi, t1b)
		return zs, nil
	}

	// single crossing or touch point
	ta := perpDot(db, sub(a0, b0)) / div
	tb := perpDot(da, sub(a0, b0)) / div
	if Interval(ta, 0.0, 1.0) && Interval(tb, 0.0, 1.0) {
		zs = zs.add(interpolate(a0, a1, ta), ta, tb)
	}
	return zs, nil
}
