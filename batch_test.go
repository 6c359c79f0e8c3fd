package polyclip

import (
	"context"
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestBatch(t *testing.T) {
	a := orb.MultiPolygon{rect(0.0, 0.0, 1.0, 1.0)}
	b := orb.MultiPolygon{rect(0.5, 0.5, 1.5, 1.5)}
	invalid := orb.MultiPolygon{orb.Polygon{{{0.0, 0.0}, {1.0, 0.0}, {1.0, 1.0}}}}

	jobs := []Job{
		{Op: OpUnion, A: a, B: b},
		{Op: OpIntersection, A: invalid, B: b},
		{Op: OpDifference, A: a, B: b},
	}
	results := Batch(context.Background(), jobs, 2)
	test.T(t, len(results), 3)

	test.Error(t, results[0].Err)
	test.Float(t, area(results[0].Result), 1.75)

	// a failing job does not affect the others
	var ierr *InvalidInputError
	test.That(t, errors.As(results[1].Err, &ierr), "expected InvalidInputError")

	test.Error(t, results[2].Err)
	test.Float(t, area(results[2].Result), 0.75)
}

func TestBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := orb.MultiPolygon{rect(0.0, 0.0, 1.0, 1.0)}
	jobs := []Job{{Op: OpUnion, A: a, B: a}, {Op: OpUnion, A: a, B: a}}
	results := Batch(ctx, jobs, 1)
	for _, r := range results {
		test.That(t, errors.Is(r.Err, context.Canceled), "expected context error")
	}
}

func TestBatchDefaultWorkers(t *testing.T) {
	a := orb.MultiPolygon{rect(0.0, 0.0, 1.0, 1.0)}
	results := Batch(context.Background(), []Job{{Op: OpUnion, A: a}}, 0)
	test.T(t, len(results), 1)
	test.Error(t, results[0].Err)
}
