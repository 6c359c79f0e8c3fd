package polyclip

import (
	"math/rand"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func statusSegment(x0, y0, x1, y1 float64) *SweepPoint {
	a, _ := newSegment(orb.Point{x0, y0}, orb.Point{x1, y1}, subjectBit, 0, -1, false)
	return a
}

func TestSweepStatusOrder(t *testing.T) {
	status := NewSweepStatus()

	bottom := statusSegment(0.0, 0.0, 2.0, 0.0)
	middle := statusSegment(0.0, 1.0, 2.0, 1.0)
	top := statusSegment(0.0, 2.0, 2.0, 2.0)

	status.Insert(middle)
	n, prev, next := status.Insert(top)
	test.T(t, prev.SweepPoint, middle)
	test.That(t, next == nil, "top has nothing above")
	status.Insert(bottom)

	test.T(t, status.First().SweepPoint, bottom)
	test.T(t, status.Last().SweepPoint, top)
	test.T(t, status.First().Next().SweepPoint, middle)
	test.T(t, n.Prev().SweepPoint, middle)

	status.Remove(middle.node)
	test.That(t, middle.node == nil, "removed segment loses its node")
	test.T(t, status.First().Next().SweepPoint, top)
}

func TestSweepStatusRandom(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	status := NewSweepStatus()

	items := make([]*SweepPoint, 40)
	for i := range items {
		y := float64(i)
		items[i] = statusSegment(0.0, y, 10.0, y)
	}
	for _, i := range rnd.Perm(len(items)) {
		status.Insert(items[i])
	}

	n := status.First()
	for i := 0; i < len(items); i++ {
		test.T(t, n.SweepPoint, items[i])
		n = n.Next()
	}
	test.That(t, n == nil, "walked past the top")

	for _, i := range rnd.Perm(len(items)) {
		status.Remove(items[i].node)
	}
	test.That(t, status.First() == nil, "status empties")
}

func TestSweepStatusTies(t *testing.T) {
	status := NewSweepStatus()

	a := statusSegment(0.0, 0.0, 2.0, 0.0)
	b := statusSegment(0.0, 0.0, 2.0, 0.0)
	b.segment = 1

	status.Insert(a)
	_, prev, _ := status.Insert(b)
	test.T(t, prev.SweepPoint, a) // equal geometry inserts above
}
