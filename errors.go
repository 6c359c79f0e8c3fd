package polyclip

import (
	"fmt"

	"github.com/paulmach/orb"
)

// InvalidInputError is returned when an operand is rejected before the sweep:
// a ring is not closed, has fewer than three distinct points, or contains
// non-finite coordinates. No partial result is produced.
type InvalidInputError struct {
	Operand int // 0 for the first operand, 1 for the second
	Ring    int // index of the offending ring or line within the operand
	Reason  string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input: operand %d, ring %d: %s", e.Operand, e.Ring, e.Reason)
}

// RobustnessError is returned when finite-precision arithmetic produced a
// geometrically inconsistent answer, such as conflicting segment orientations
// coalescing at a single sweep event. It carries the offending coordinates and
// is never silently corrected, since guessing could yield an invalid topology.
type RobustnessError struct {
	Points []orb.Point
	Reason string
}

func (e *RobustnessError) Error() string {
	return fmt.Sprintf("robustness failure at %v: %s", e.Points, e.Reason)
}

// AssemblyError is returned when the classified segment set violates the
// even-degree condition required to chain segments into closed rings. This
// indicates an internal classification defect rather than an input problem.
type AssemblyError struct {
	Point  orb.Point
	Reason string
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("assembly failure at %v: %s", e.Point, e.Reason)
}
