package polyclip

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
)

// buildRings chains the segments selected for the result into closed rings.
// Events are given in sweep order, so events at the same position are
// adjacent. Every result vertex must have even degree, and at each vertex the
// outgoing segments are ordered by angle so that chains rotate through
// coincident vertices without crossing.
func buildRings(ordered []*SweepPoint) ([]orb.Ring, error) {
	events := make([]*SweepPoint, 0, len(ordered))
	for _, e := range ordered {
		if e.inResult && !e.merged && !e.isLine {
			events = append(events, e)
		}
	}
	if len(events) == 0 {
		return nil, nil
	}

	// group events per position
	var groups [][]*SweepPoint
	for _, e := range events {
		if len(groups) == 0 || !pointEqual(e.Point, groups[len(groups)-1][0].Point) {
			groups = append(groups, []*SweepPoint{})
		}
		e.index = len(groups) - 1
		groups[len(groups)-1] = append(groups[len(groups)-1], e)
	}
	for _, group := range groups {
		if len(group)%2 != 0 {
			return nil, &AssemblyError{
				Point:  group[0].Point,
				Reason: "vertex with odd segment degree",
			}
		}
		slices.SortStableFunc(group, func(a, b *SweepPoint) int {
			da, db := sub(a.other.Point, a.Point), sub(b.other.Point, b.Point)
			ta, tb := math.Atan2(da[1], da[0]), math.Atan2(db[1], db[0])
			if ta < tb {
				return -1
			} else if tb < ta {
				return 1
			}
			return 0
		})
	}

	var rings []orb.Ring
	for _, start := range events {
		if start.processed {
			continue
		}

		ring := orb.Ring{start.Point}
		e := start
		for {
			e.processed, e.other.processed = true, true
			t := e.other
			if pointEqual(t.Point, start.Point) {
				ring = append(ring, start.Point) // close exactly
				break
			}
			ring = append(ring, t.Point)

			// rotate through the outgoing segments at t's position
			group := groups[t.index]
			pos := slices.Index(group, t)
			e = nil
			for k := 1; k < len(group); k++ {
				if c := group[(pos+k)%len(group)]; !c.processed {
					e = c
					break
				}
			}
			if e == nil {
				return nil, &AssemblyError{Point: t.Point, Reason: "chain does not close"}
			}
		}
		if len(ring) < 4 {
			continue // collapsed to a point or segment
		}
		rings = append(rings, ring)
	}
	return rings, nil
}
