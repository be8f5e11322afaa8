package verify

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tsurispot/geoaudit/internal/model"
)

// Coord is one coordinate queued for bulk verification.
type Coord struct {
	Lat float64
	Lng float64
}

// BulkResult pairs an input coordinate with its verdict.
type BulkResult struct {
	Coord   Coord
	Verdict model.Verdict
}

// VerifyAll verifies many coordinates with capped concurrency. The shared
// client rate limiter still paces the actual requests, so concurrency here
// bounds in-flight work, not request rate. Results are returned in input
// order.
func (v *Verifier) VerifyAll(ctx context.Context, coords []Coord, concurrency int) []BulkResult {
	if concurrency <= 0 {
		concurrency = 3
	}

	results := make([]BulkResult, len(coords))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, c := range coords {
		i, c := i, c
		g.Go(func() error {
			results[i] = BulkResult{Coord: c, Verdict: v.Verify(gCtx, c.Lat, c.Lng)}
			return nil
		})
	}
	_ = g.Wait() // Verify never returns an error; verdicts carry any failure.

	return results
}
