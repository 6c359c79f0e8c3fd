// Package polyclip computes boolean operations on sets of polygons in the
// plane, and clips lines against them, using a single left-to-right plane
// sweep in the manner of Martinez et al. Operands are orb.MultiPolygons whose
// rings may be given in either winding direction and may overlap themselves
// or each other; results are normalized with counter-clockwise shells,
// clockwise holes, and no crossing boundaries.
//
// Coordinates are compared with an absolute tolerance of Epsilon. Inputs
// whose features are smaller than that, or that are otherwise degenerate
// beyond what finite precision can order consistently, are rejected with a
// typed error instead of producing an invalid result.
package polyclip

import (
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Union returns the region covered by a, b, or both.
func Union(a, b orb.MultiPolygon) (orb.MultiPolygon, error) {
	return boolOp(OpUnion, a, b)
}

// Intersection returns the region covered by both a and b.
func Intersection(a, b orb.MultiPolygon) (orb.MultiPolygon, error) {
	return boolOp(OpIntersection, a, b)
}

// Difference returns the region covered by a but not by b.
func Difference(a, b orb.MultiPolygon) (orb.MultiPolygon, error) {
	return boolOp(OpDifference, a, b)
}

// SymmetricDifference returns the region covered by exactly one of a and b.
func SymmetricDifference(a, b orb.MultiPolygon) (orb.MultiPolygon, error) {
	return boolOp(OpSymmetricDifference, a, b)
}

func boolOp(op Op, a, b orb.MultiPolygon) (orb.MultiPolygon, error) {
	if err := validatePolygons(0, a); err != nil {
		return nil, err
	}
	if err := validatePolygons(1, b); err != nil {
		return nil, err
	}

	// results that are provably empty without sweeping
	aEmpty, bEmpty := polyEmpty(a), polyEmpty(b)
	if aEmpty && bEmpty {
		return nil, nil
	} else if op == OpIntersection && (aEmpty || bEmpty) {
		return nil, nil
	} else if op == OpDifference && aEmpty {
		return nil, nil
	} else if op == OpIntersection && !a.Bound().Intersects(b.Bound()) {
		return nil, nil
	}

	// a single empty operand still sweeps, normalizing the other operand

	queue := &SweepEvents{}
	segment := 0
	for _, poly := range a {
		for i, ring := range poly {
			segment = queue.AddRing(orientedRing(ring, 0 < i), subjectBit, segment)
		}
	}
	for _, poly := range b {
		for i, ring := range poly {
			segment = queue.AddRing(orientedRing(ring, 0 < i), clipBit, segment)
		}
	}
	queue.Init()

	ordered, err := runSweep(queue, sweepConfig{op: op})
	if err != nil {
		return nil, errors.Wrap(err, op.String())
	}
	rings, err := buildRings(ordered)
	if err != nil {
		return nil, errors.Wrap(err, op.String())
	}
	return nestRings(rings), nil
}

// orientedRing returns ring wound counter-clockwise for shells and clockwise
// for holes, reversing a copy when the input winds the other way. Winding
// counts during the sweep depend on this normalization.
func orientedRing(ring orb.Ring, hole bool) orb.Ring {
	if len(ring) == 0 || (ring.Orientation() == orb.CW) == hole {
		return ring
	}
	ring = ring.Clone()
	ring.Reverse()
	return ring
}

func polyEmpty(mp orb.MultiPolygon) bool {
	for _, poly := range mp {
		for _, ring := range poly {
			if 0 < len(ring) {
				return false
			}
		}
	}
	return true
}

func validatePolygons(operand int, mp orb.MultiPolygon) error {
	index := 0
	for _, poly := range mp {
		for _, ring := range poly {
			if err := validateRing(operand, index, ring); err != nil {
				return err
			}
			index++
		}
	}
	return nil
}

func validateRing(operand, index int, ring orb.Ring) error {
	for _, p := range ring {
		if !finite(p) {
			return &InvalidInputError{Operand: operand, Ring: index, Reason: "non-finite coordinate"}
		}
	}
	if len(ring) < 4 || !pointEqual(ring[0], ring[len(ring)-1]) {
		return &InvalidInputError{Operand: operand, Ring: index, Reason: "ring is not closed"}
	}

	distinct := map[orb.Point]bool{}
	for _, p := range ring[:len(ring)-1] {
		distinct[p] = true
	}
	if len(distinct) < 3 {
		return &InvalidInputError{Operand: operand, Ring: index, Reason: "fewer than three distinct points"}
	}

	// a vertex that doubles straight back is a cheaply detectable
	// self-intersection, full noding is left to the sweep
	for i := 1; i < len(ring); i++ {
		next := ring[(i+1)%(len(ring)-1)]
		d0, d1 := sub(ring[i], ring[i-1]), sub(next, ring[i])
		if Equal(perpDot(d0, d1), 0.0) && dot(d0, d1) < 0.0 {
			return &InvalidInputError{Operand: operand, Ring: index, Reason: "ring spikes back on itself"}
		}
	}
	return nil
}

func validateLines(operand int, lines orb.MultiLineString) error {
	for i, line := range lines {
		for _, p := range line {
			if !finite(p) {
				return &InvalidInputError{Operand: operand, Ring: i, Reason: "non-finite coordinate"}
			}
		}
	}
	return nil
}
