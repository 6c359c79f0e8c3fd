package polyclip

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestSweepEventsOrder(t *testing.T) {
	queue := &SweepEvents{}
	queue.AddRing(orb.Ring{{0.0, 0.0}, {2.0, 0.0}, {1.0, 2.0}, {0.0, 0.0}}, subjectBit, 0)
	queue.Init()

	var points []orb.Point
	var lefts []bool
	for 0 < len(*queue) {
		event := queue.Pop()
		points = append(points, event.Point)
		lefts = append(lefts, event.left)
	}

	// left to right, and right endpoints before left endpoints at a point
	test.T(t, points, []orb.Point{{0.0, 0.0}, {0.0, 0.0}, {1.0, 2.0}, {1.0, 2.0}, {2.0, 0.0}, {2.0, 0.0}})
	test.T(t, lefts, []bool{true, true, false, true, false, false})
}

func TestSweepEventsSlopeOrder(t *testing.T) {
	queue := &SweepEvents{}
	shallow, _ := newSegment(orb.Point{0.0, 0.0}, orb.Point{2.0, 1.0}, subjectBit, 0, -1, false)
	steep, _ := newSegment(orb.Point{0.0, 0.0}, orb.Point{1.0, 2.0}, subjectBit, 1, -1, false)
	vertical, _ := newSegment(orb.Point{0.0, 0.0}, orb.Point{0.0, 1.0}, subjectBit, 2, -1, false)
	queue.Push(vertical)
	queue.Push(shallow)
	queue.Push(steep)

	// left endpoints at the same point sort by slope, verticals last
	test.T(t, queue.Pop(), shallow)
	test.T(t, queue.Pop(), steep)
	test.T(t, queue.Pop(), vertical)
}

func TestAddIntersectionsCrossing(t *testing.T) {
	queue := &SweepEvents{}
	a, aRight := newSegment(orb.Point{0.0, 0.0}, orb.Point{2.0, 2.0}, subjectBit, 0, -1, false)
	b, bRight := newSegment(orb.Point{0.0, 2.0}, orb.Point{2.0, 0.0}, clipBit, 1, -1, false)

	var zs segmentIntersections
	handled := map[SweepPointPair]bool{}
	test.Error(t, addIntersections(queue, handled, &zs, a, b))

	// both segments split at (1,1): two new endpoint pairs scheduled
	test.T(t, len(*queue), 4)
	test.T(t, a.other.Point, orb.Point{1.0, 1.0})
	test.T(t, b.other.Point, orb.Point{1.0, 1.0})
	test.T(t, aRight.other.Point, orb.Point{1.0, 1.0})
	test.T(t, bRight.other.Point, orb.Point{1.0, 1.0})
}

func TestAddIntersectionsTouch(t *testing.T) {
	// touching at an endpoint must not split anything
	queue := &SweepEvents{}
	a, _ := newSegment(orb.Point{0.0, 0.0}, orb.Point{1.0, 1.0}, subjectBit, 0, -1, false)
	b, _ := newSegment(orb.Point{1.0, 1.0}, orb.Point{2.0, 0.0}, clipBit, 1, -1, false)

	var zs segmentIntersections
	handled := map[SweepPointPair]bool{}
	test.Error(t, addIntersections(queue, handled, &zs, a, b))
	test.T(t, len(*queue), 0)
	test.That(t, handled[SweepPointPair{a, b}], "pair is marked handled")
}
