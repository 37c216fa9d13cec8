package ldpc

import (
	"context"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/nathanhack/ldpc/tanner"
	"github.com/sirupsen/logrus"
)

//Search builds iterations candidate codes with the given method and returns the one with
// the largest girth along with that girth (-1 means no cycles at all). Threads is used for
// the girth calculation, if zero will use all current CPUs in parallel.
func Search(ctx context.Context, b *Builder, args []int, method Method, iterations, threads int, showProgress bool) (*Regular, int, error) {
	if iterations < 1 {
		return nil, 0, fmt.Errorf("%w: iterations (%v) must be at least 1", ErrInvalidInput, iterations)
	}

	var bar *pb.ProgressBar
	if showProgress {
		bar = pb.StartNew(iterations)
	}

	var best *Regular
	bestGirth := 0

iterLoop:
	for iter := 0; iter < iterations; iter++ {
		select {
		case <-ctx.Done():
			break iterLoop
		default:
		}

		logrus.Debugf("Iterations: %v", iter)
		candidate, err := b.Regular(ctx, args, method)
		if err != nil {
			if bar != nil {
				bar.Finish()
			}
			return nil, 0, err
		}

		girth := tanner.Girth(ctx, candidate.Graph, threads)
		if best == nil || better(girth, bestGirth) {
			logrus.Debugf("Iteration %v improved girth from %v to %v", iter, bestGirth, girth)
			best = candidate
			bestGirth = girth
		}
		if bar != nil {
			bar.Increment()
		}

		// nothing beats a graph without cycles
		if bestGirth == -1 {
			break
		}
	}
	if bar != nil {
		bar.Finish()
	}

	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("early termination: %w", ctx.Err())
	default:
	}

	return best, bestGirth, nil
}

// better reports whether girth a beats girth b, where -1 (acyclic) beats everything
func better(a, b int) bool {
	if b == -1 {
		return false
	}
	return a == -1 || a > b
}
