package pipeline

import (
	"context"

	"github.com/dgallion1/pdfcascade/internal/extract"
	"golang.org/x/sync/errgroup"
)

// Extractor produces a result for one document. *extract.Orchestrator
// satisfies it.
type Extractor interface {
	Extract(ctx context.Context, path string) extract.Result
}

// ExtractBatch extracts every path with at most limit documents in flight.
// Results are in the same order as paths. Documents share no state, so one
// slow or broken file only delays its own slot.
func ExtractBatch(ctx context.Context, ex Extractor, paths []string, limit int) []extract.Result {
	if limit <= 0 {
		limit = 1
	}
	results := make([]extract.Result, len(paths))

	var g errgroup.Group
	g.SetLimit(limit)
	for i, path := range paths {
		g.Go(func() error {
			results[i] = ex.Extract(ctx, path)
			return nil
		})
	}
	_ = g.Wait()
	return results
}
