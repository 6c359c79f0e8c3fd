package polyclip

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestNestRings(t *testing.T) {
	outer := rect(0.0, 0.0, 4.0, 4.0)[0]
	hole := rect(1.0, 1.0, 3.0, 3.0)[0]
	island := rect(1.5, 1.5, 2.5, 2.5)[0]

	result := nestRings([]orb.Ring{island, outer, hole})
	test.T(t, len(result), 2)
	test.T(t, len(result[0]), 2) // outer shell with hole
	test.T(t, len(result[1]), 1) // island shell inside the hole

	test.T(t, result[0][0].Orientation(), orb.CCW)
	test.T(t, result[0][1].Orientation(), orb.CW)
	test.T(t, result[1][0].Orientation(), orb.CCW)
}

func TestNestRingsOrientation(t *testing.T) {
	// winding is forced by nesting depth, not taken from the ring
	outer := rect(0.0, 0.0, 2.0, 2.0)[0]
	hole := rect(0.5, 0.5, 1.5, 1.5)[0]
	outer.Reverse() // CW shell
	// hole stays CCW

	result := nestRings([]orb.Ring{outer, hole})
	test.T(t, len(result), 1)
	test.T(t, result[0][0].Orientation(), orb.CCW)
	test.T(t, result[0][1].Orientation(), orb.CW)
}

func TestNestRingsSiblings(t *testing.T) {
	a := rect(0.0, 0.0, 1.0, 1.0)[0]
	b := rect(2.0, 0.0, 3.0, 1.0)[0]

	result := nestRings([]orb.Ring{a, b})
	test.T(t, len(result), 2)
	test.T(t, len(result[0]), 1)
	test.T(t, len(result[1]), 1)
}

func TestNestRingsEmpty(t *testing.T) {
	test.T(t, len(nestRings(nil)), 0)
}
