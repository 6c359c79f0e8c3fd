package polyclip

import (
	"math"
	"slices"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// nestRings arranges the non-crossing rings of a sweep result into polygons.
// Rings are handled from large to small; the immediate parent of a ring is the
// smallest larger ring containing it. Rings at even containment depth become
// counter-clockwise shells, rings at odd depth become clockwise holes of their
// parent shell.
func nestRings(rings []orb.Ring) orb.MultiPolygon {
	if len(rings) == 0 {
		return nil
	}

	areas := make([]float64, len(rings))
	bounds := make([]orb.Bound, len(rings))
	for i, r := range rings {
		areas[i] = math.Abs(planar.Area(r))
		bounds[i] = r.Bound()
	}
	order := make([]int, len(rings))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(i, j int) int {
		if areas[j] < areas[i] {
			return -1
		} else if areas[i] < areas[j] {
			return 1
		}
		return 0
	})

	depth := make([]int, len(rings))
	polyOf := make([]int, len(rings)) // shell ring to polygon index
	var result orb.MultiPolygon
	for pos, i := range order {
		r := rings[i]
		sample := interpolate(r[0], r[1], 0.5)

		// the smallest larger ring containing r is its immediate parent
		parent := -1
		for k := pos - 1; 0 <= k; k-- {
			j := order[k]
			if bounds[j].Contains(sample) && planar.RingContains(rings[j], sample) {
				parent = j
				break
			}
		}
		if parent != -1 {
			depth[i] = depth[parent] + 1
		}

		if depth[i]%2 == 0 {
			if r.Orientation() != orb.CCW {
				r.Reverse()
			}
			polyOf[i] = len(result)
			result = append(result, orb.Polygon{r})
		} else {
			if r.Orientation() != orb.CW {
				r.Reverse()
			}
			// the parent of a hole is always a shell
			p := polyOf[parent]
			result[p] = append(result[p], r)
		}
	}
	return result
}
