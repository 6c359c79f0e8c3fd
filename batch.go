package polyclip

import (
	"context"
	"runtime"

	"github.com/paulmach/orb"
	"golang.org/x/sync/errgroup"
)

// Job is one boolean operation to be run by Batch.
type Job struct {
	Op   Op
	A, B orb.MultiPolygon
}

// JobResult is the outcome of one Job. Err is the job's own failure, or the
// context error for jobs that did not run before cancellation.
type JobResult struct {
	Result orb.MultiPolygon
	Err    error
}

// Batch runs jobs concurrently on at most workers goroutines and returns one
// result per job, in order. A failing job does not affect the others; only
// cancelling ctx stops the batch early.
func Batch(ctx context.Context, jobs []Job, workers int) []JobResult {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]JobResult, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Result, results[i].Err = boolOp(job.Op, job.A, job.B)
			return nil
		})
	}
	g.Wait() // no job returns an error, failures live in results
	return results
}
