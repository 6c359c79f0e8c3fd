package polyclip

import (
	"fmt"
	"slices"

	"github.com/paulmach/orb"
)

// Operand membership bits. A segment starts out belonging to one operand;
// coalescing collinear overlaps may leave it belonging to both.
const (
	subjectBit uint8 = 1 << iota
	clipBit
)

// SweepPoint is one endpoint event of a segment. Segments are represented by
// their two endpoint events referring to each other through other.
type SweepPoint struct {
	orb.Point
	other      *SweepPoint
	operands   uint8 // operand membership of the segment
	segment    int   // distinguishes otherwise identical segments
	provenance int   // source line index for 1-D clip operands, -1 otherwise
	isLine     bool  // segment belongs to a 1-D (line) operand
	left       bool  // point is the left endpoint of the segment
	increasing bool  // segment runs left to right (bottom to top when vertical)
	vertical   bool

	node *SweepNode // status tree node while the segment is active

	// region classification
	below, above Region
	merged       bool // coalesced into an equal segment and dropped
	inResult     bool
	coverage     [2]uint8 // per-operand cover multiplicity after coalescing
	windDelta    [2]int8  // per-operand winding change when crossing, sums on coalescing

	// ring building
	index     int // position group in the result
	processed bool
}

func (s *SweepPoint) Left() orb.Point {
	if s.left {
		return s.Point
	}
	return s.other.Point
}

func (s *SweepPoint) Right() orb.Point {
	if s.left {
		return s.other.Point
	}
	return s.Point
}

// Start returns the endpoint at which the source geometry enters the segment.
func (s *SweepPoint) Start() orb.Point {
	if s.left == s.increasing {
		return s.Point
	}
	return s.other.Point
}

// End returns the endpoint at which the source geometry leaves the segment.
func (s *SweepPoint) End() orb.Point {
	if s.left == s.increasing {
		return s.other.Point
	}
	return s.Point
}

// rank orders coincident segments in the status: subject below clip, 2-D
// operands below 1-D line operands.
func (s *SweepPoint) rank() int {
	if s.isLine {
		return 3
	} else if s.operands&subjectBit != 0 {
		return 1
	}
	return 2
}

func (s *SweepPoint) String() string {
	name := "A"
	if s.isLine {
		name = fmt.Sprintf("L%d", s.provenance)
	} else if s.operands&subjectBit == 0 {
		name = "B"
	}
	return fmt.Sprintf("%s(%v-%v)", name, s.Point, s.other.Point)
}

func newSegment(start, end orb.Point, operands uint8, segment, provenance int, isLine bool) (*SweepPoint, *SweepPoint) {
	vertical := Equal(start[0], end[0])
	increasing := start[0] < end[0]
	if vertical {
		increasing = start[1] < end[1]
	}
	a := &SweepPoint{
		Point:      start,
		operands:   operands,
		segment:    segment,
		provenance: provenance,
		isLine:     isLine,
		left:       increasing,
		increasing: increasing,
		vertical:   vertical,
	}
	b := &SweepPoint{
		Point:      end,
		operands:   operands,
		segment:    segment,
		provenance: provenance,
		isLine:     isLine,
		left:       !increasing,
		increasing: increasing,
		vertical:   vertical,
	}
	if operands != 0 {
		idx := 0
		if operands&clipBit != 0 {
			idx = 1
		}
		delta := int8(1)
		if !increasing {
			delta = -1
		}
		a.coverage[idx], b.coverage[idx] = 1, 1
		a.windDelta[idx], b.windDelta[idx] = delta, delta
	}
	a.other, b.other = b, a
	return a, b
}

// SweepEvents is a binary heap priority queue of sweep events.
type SweepEvents []*SweepPoint

func (q SweepEvents) Less(i, j int) bool {
	return q[i].LessH(q[j])
}

func (q SweepEvents) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

// AddRing adds the boundary segments of a closed ring for the given operand.
// It returns the next free segment index.
func (q *SweepEvents) AddRing(ring orb.Ring, operands uint8, segment int) int {
	for i := 1; i < len(ring); i++ {
		start, end := ring[i-1], ring[i]
		if pointEqual(start, end) {
			continue // skip zero-length segments
		}
		a, b := newSegment(start, end, operands, segment, -1, false)
		*q = append(*q, a, b)
		segment++
	}
	return segment
}

// AddLine adds the segments of a linear clip operand tagged with the index of
// its source line. It returns the next free segment index.
func (q *SweepEvents) AddLine(line orb.LineString, provenance, segment int) int {
	for i := 1; i < len(line); i++ {
		start, end := line[i-1], line[i]
		if pointEqual(start, end) {
			continue
		}
		a, b := newSegment(start, end, 0, segment, provenance, true)
		*q = append(*q, a, b)
		segment++
	}
	return segment
}

func (q SweepEvents) Init() {
	n := len(q)
	for i := n/2 - 1; 0 <= i; i-- {
		q.down(i, n)
	}
}

func (q *SweepEvents) Push(item *SweepPoint) {
	*q = append(*q, item)
	q.up(len(*q) - 1)
}

func (q *SweepEvents) Pop() *SweepPoint {
	n := len(*q) - 1
	q.Swap(0, n)
	q.down(0, n)

	item := (*q)[n]
	*q = (*q)[:n]
	return item
}

// from container/heap
func (q SweepEvents) up(j int) {
	for {
		i := (j - 1) / 2 // parent
		if i == j || !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		j = i
	}
}

func (q SweepEvents) down(i0, n int) {
	i := i0
	for {
		j1 := 2*i + 1
		if n <= j1 || j1 < 0 { // j1 < 0 after int overflow
			break
		}
		j := j1 // left child
		if j2 := j1 + 1; j2 < n && q.Less(j2, j1) {
			j = j2 // right child
		}
		if !q.Less(j, i) {
			break
		}
		q.Swap(i, j)
		i = j
	}
}

// LessH orders events for the queue: left to right, then bottom to top,
// right endpoints before left endpoints, then by slope.
func (a *SweepPoint) LessH(b *SweepPoint) bool {
	if !Equal(a.Point[0], b.Point[0]) {
		return a.Point[0] < b.Point[0] // sort left to right
	} else if !Equal(a.Point[1], b.Point[1]) {
		return a.Point[1] < b.Point[1] // then bottom to top
	} else if a.left != b.left {
		return b.left // handle right endpoints before left endpoints
	} else if !a.left {
		// right endpoints sort downwards
		return 0 < a.compareTangentsV(b)
	}
	// left endpoints sort upwards, ensuring order or insertion into the status
	return a.compareTangentsV(b) < 0
}

// compareOverlapsV orders segments that coincide.
func (a *SweepPoint) compareOverlapsV(b *SweepPoint) int {
	if a.rank() != b.rank() {
		return a.rank() - b.rank()
	} else if a.provenance != b.provenance {
		return a.provenance - b.provenance
	} else if a.segment != b.segment {
		return a.segment - b.segment
	}
	return 0
}

// compareTangentsV compares segments a and b vertically just right of a
// common point at (a.X,a.Y), ie. by slope.
func (a *SweepPoint) compareTangentsV(b *SweepPoint) int {
	if a.vertical {
		if b.vertical {
			if Equal(a.other.Point[1], b.other.Point[1]) {
				return a.compareOverlapsV(b)
			} else if a.other.Point[1] < b.other.Point[1] {
				return -1
			}
			return 1
		}
		return 1 // verticals sort above all others at the same point
	} else if b.vertical {
		return -1
	}

	aLeft, aRight := a.Left(), a.Right()
	bLeft, bRight := b.Left(), b.Right()
	if aRight[0] < bRight[0] {
		t := (aRight[0] - bLeft[0]) / (bRight[0] - bLeft[0])
		by := interpolate(bLeft, bRight, t)[1] // b's y at a's right
		if Equal(aRight[1], by) {
			return a.compareOverlapsV(b)
		} else if aRight[1] < by {
			return -1
		}
		return 1
	}
	t := (bRight[0] - aLeft[0]) / (aRight[0] - aLeft[0])
	ay := interpolate(aLeft, aRight, t)[1] // a's y at b's right
	if Equal(ay, bRight[1]) {
		return a.compareOverlapsV(b)
	} else if ay < bRight[1] {
		return -1
	}
	return 1
}

// compareV compares segments vertically at a.X, with b starting left of a.
func (a *SweepPoint) compareV(b *SweepPoint) int {
	bRight := b.Right()
	t := (a.Point[0] - b.Point[0]) / (bRight[0] - b.Point[0])
	by := interpolate(b.Point, bRight, t)[1] // b's y at a's left
	if Equal(a.Point[1], by) {
		return a.compareTangentsV(b)
	} else if a.Point[1] < by {
		return -1
	}
	return 1
}

// CompareV orders active segments in the status: a is the left endpoint being
// inserted or looked up, b is an active segment.
func (a *SweepPoint) CompareV(b *SweepPoint) int {
	if Equal(a.Point[0], b.Point[0]) {
		if Equal(a.Point[1], b.Point[1]) {
			return a.compareTangentsV(b)
		} else if a.Point[1] < b.Point[1] {
			return -1
		}
		return 1
	} else if a.Point[0] < b.Point[0] {
		return -b.compareV(a)
	}
	return a.compareV(b)
}

// SweepPointPair is a canonical key for a pair of segments already tested for
// intersection.
type SweepPointPair struct {
	a, b *SweepPoint
}

// addIntersections tests the segments of left endpoints a and b for
// intersection and splits them at any interior intersection point, scheduling
// the new halves as future events. Collinear overlapping segments end up split
// into aligned pieces; the coincident pieces coalesce during classification.
func addIntersections(queue *SweepEvents, handled map[SweepPointPair]bool, zs *segmentIntersections, a, b *SweepPoint) error {
	if handled[SweepPointPair{a, b}] || handled[SweepPointPair{b, a}] {
		return nil
	}

	var err error
	*zs, err = intersectionSegments((*zs)[:0], a.Left(), a.Right(), b.Left(), b.Right())
	if err != nil {
		return err
	}
	if len(*zs) == 0 {
		handled[SweepPointPair{a, b}] = true
		return nil
	}

	aLefts := splitAtIntersections(queue, a, *zs, func(z segmentIntersection) float64 { return z.TA })
	bLefts := splitAtIntersections(queue, b, *zs, func(z segmentIntersection) float64 { return z.TB })
	for _, a := range aLefts {
		for _, b := range bLefts {
			handled[SweepPointPair{a, b}] = true
		}
	}
	return nil
}

// splitAtIntersections splits the segment of left endpoint e at every interior
// intersection and returns the left endpoints of all pieces. The piece already
// active in the status keeps its node and is shortened in place; new pieces
// are pushed onto the queue.
func splitAtIntersections(queue *SweepEvents, e *SweepPoint, zs segmentIntersections, t func(segmentIntersection) float64) []*SweepPoint {
	// order splits along the original direction of e
	sign := 1
	if !e.increasing {
		sign = -1
	}
	zs = slices.Clone(zs)
	slices.SortFunc(zs, func(a, b segmentIntersection) int {
		if t(a) < t(b) {
			return -sign
		} else if t(b) < t(a) {
			return sign
		}
		return 0
	})

	lefts := []*SweepPoint{e}
	prevLeft, lastRight := e, e.other
	for _, z := range zs {
		if t(z) < Epsilon || 1.0-Epsilon < t(z) {
			continue // tangent at an endpoint, nothing to split
		}
		if pointEqual(z.Point, prevLeft.Left()) || pointEqual(z.Point, lastRight.Point) {
			continue // zero-length piece
		}

		// split the segment at the intersection by copying the endpoint pair
		right, left := *e.other, *e
		right.Point = z.Point
		left.Point = z.Point
		right.node, left.node = nil, nil

		prevLeft.other, right.other = &right, prevLeft
		prevLeft = &left

		queue.Push(&right)
		queue.Push(&left)
		lefts = append(lefts, &left)
	}
	prevLeft.other, lastRight.other = lastRight, prevLeft
	return lefts
}

// runSweep drains the event queue, maintaining the status structure, splitting
// segments at discovered intersections, and labelling each left event with its
// region classification. It returns all events in sweep order.
func runSweep(queue *SweepEvents, cfg sweepConfig) ([]*SweepPoint, error) {
	var zs segmentIntersections // reusable buffer
	status := NewSweepStatus()
	handled := map[SweepPointPair]bool{}

	ordered := make([]*SweepPoint, 0, len(*queue))
	for 0 < len(*queue) {
		event := queue.Pop()
		if event.left {
			n, prev, next := status.Insert(event)
			if prev != nil {
				if err := addIntersections(queue, handled, &zs, prev.SweepPoint, event); err != nil {
					return nil, err
				}
			}
			if next != nil {
				if err := addIntersections(queue, handled, &zs, event, next.SweepPoint); err != nil {
					return nil, err
				}
			}

			// classify after splitting, which may have made segments equal
			if err := classify(n, status, cfg); err != nil {
				return nil, err
			}
		} else {
			n := event.other.node
			if n == nil {
				// segment was coalesced into an equal segment and dropped
				ordered = append(ordered, event)
				continue
			}
			// keep the payloads, removal recycles nodes
			var prev, next *SweepPoint
			if p := n.Prev(); p != nil {
				prev = p.SweepPoint
			}
			if q := n.Next(); q != nil {
				next = q.SweepPoint
			}
			status.Remove(n)
			if prev != nil && next != nil {
				// the neighbours become adjacent, re-check them
				if err := addIntersections(queue, handled, &zs, prev, next); err != nil {
					return nil, err
				}
			}
		}
		ordered = append(ordered, event)
	}
	return ordered, nil
}
