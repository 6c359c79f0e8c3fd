package polyclip

import "github.com/paulmach/orb"

// Op is a boolean operation on two polygon sets.
type Op int

const (
	OpUnion Op = iota
	OpIntersection
	OpDifference
	OpSymmetricDifference
)

func (op Op) String() string {
	switch op {
	case OpUnion:
		return "Union"
	case OpIntersection:
		return "Intersection"
	case OpDifference:
		return "Difference"
	case OpSymmetricDifference:
		return "SymmetricDifference"
	}
	return "Unknown"
}

// sweepConfig selects the semantics of a sweep run.
type sweepConfig struct {
	op     Op
	clip   bool // line clipping instead of a boolean operation
	invert bool // keep line fragments outside instead of inside
}

// Region counts for an open region of the plane how many times each operand
// winds around it. Input rings are oriented counter-clockwise for shells and
// clockwise for holes before sweeping, so an operand covers a region iff its
// count is nonzero. Counting instead of toggling lets constituents of one
// operand overlap each other without inverting coverage.
type Region struct {
	subject, clip int
}

// cross returns the region on the other side of segment e, crossing from
// below to above. For a vertical segment the below label is the region on its
// right and the above label the region on its left.
func (r Region) cross(e *SweepPoint) Region {
	r.subject += int(e.windDelta[0])
	r.clip += int(e.windDelta[1])
	return r
}

func (r Region) inside(op Op) bool {
	switch op {
	case OpUnion:
		return r.subject != 0 || r.clip != 0
	case OpIntersection:
		return r.subject != 0 && r.clip != 0
	case OpDifference:
		return r.subject != 0 && r.clip == 0
	}
	return (r.subject != 0) != (r.clip != 0)
}

func equalSpan(a, b *SweepPoint) bool {
	return pointEqual(a.Point, b.Point) && pointEqual(a.other.Point, b.other.Point)
}

// mergeWith absorbs the coverage of an equal segment into e, summing the
// winding deltas. Double cover by one operand in the same direction keeps a
// single boundary winding twice; opposite directions cancel, as with two
// polygons of one operand sharing an edge, and the boundary vanishes. Higher
// multiplicity with disagreeing directions has no consistent interpretation
// and is rejected.
func (e *SweepPoint) mergeWith(dead *SweepPoint) error {
	for i := 0; i < 2; i++ {
		if dead.coverage[i] == 0 {
			continue
		}
		e.operands |= subjectBit << i
		e.coverage[i] += dead.coverage[i]
		e.windDelta[i] += dead.windDelta[i]
		mixed := int(e.windDelta[i]) != int(e.coverage[i]) && int(e.windDelta[i]) != -int(e.coverage[i])
		if mixed && 3 <= e.coverage[i] {
			return &RobustnessError{
				Points: []orb.Point{e.Left(), e.Right()},
				Reason: "coincident segments with conflicting directions",
			}
		}
	}
	return nil
}

// demote marks e as coalesced into an equal segment so that the ring builder
// and its pending right event skip it.
func (e *SweepPoint) demote() {
	e.merged, e.other.merged = true, true
	e.inResult, e.other.inResult = false, false
}

// decideInResult determines whether the segment of e belongs to the result
// boundary, given its regions below and above.
func decideInResult(e *SweepPoint, cfg sweepConfig) {
	if cfg.clip {
		// only line fragments are kept, on the side the config asks for
		e.inResult = e.isLine && (e.below.subject != 0) != cfg.invert
		return
	}
	e.inResult = e.below.inside(cfg.op) != e.above.inside(cfg.op)
}

// belowRegion returns the region just right of the sweep line below n. An
// active vertical segment lies on the sweep line itself and separates regions
// left and right of it, not above and below, so it cannot serve as the label
// source for segments extending right of it.
func belowRegion(n *SweepNode) Region {
	prev := n.Prev()
	for prev != nil && prev.SweepPoint.vertical {
		prev = prev.Prev()
	}
	if prev == nil {
		return Region{}
	}
	return prev.SweepPoint.above
}

// classify labels the freshly inserted segment at n with the regions below and
// above it, coalescing it with an equal neighbour first. The neighbour below
// was classified at an earlier event, so the region below n is the region
// above that neighbour.
func classify(n *SweepNode, status *SweepStatus, cfg sweepConfig) error {
	event := n.SweepPoint

	// an equal segment below was inserted earlier at this position, absorb it
	if prev := n.Prev(); prev != nil && !event.isLine && !prev.isLine && equalSpan(event, prev.SweepPoint) {
		dead := prev.SweepPoint
		if err := event.mergeWith(dead); err != nil {
			return err
		}
		status.Remove(prev)
		dead.demote()
		// removal swaps payloads between nodes, refresh the handle
		n = event.node
	}

	event.below = belowRegion(n)
	event.above = event.below.cross(event)
	decideInResult(event, cfg)

	// an equal segment above can appear when splitting reordered the queue;
	// the one above stays as representative
	if next := n.Next(); next != nil && !event.isLine && !next.isLine && equalSpan(event, next.SweepPoint) {
		rep := next.SweepPoint
		if err := rep.mergeWith(event); err != nil {
			return err
		}
		status.Remove(n)
		event.demote()

		// event was directly below rep, its below label holds for the pair
		rep.below = event.below
		rep.above = rep.below.cross(rep)
		decideInResult(rep, cfg)
		rep.other.below, rep.other.above = rep.below, rep.above
		rep.other.inResult = rep.inResult
		return nil
	}

	event.other.below, event.other.above = event.below, event.above
	event.other.inResult = event.inResult
	return nil
}
