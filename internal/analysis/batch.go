package analysis

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/pable/lol-coach/internal/model"
)

// BatchResult pairs a match id with its report or the error that stopped it.
type BatchResult struct {
	MatchID string
	Report  *model.Report
	Err     error
}

// AnalyzeBatch runs Analyze over inputs with at most workers pipelines in
// flight. Results keep input order. A failed match does not stop the batch;
// a cancelled ctx stops scheduling and marks the remaining matches with
// ctx.Err().
func (p *Pipeline) AnalyzeBatch(ctx context.Context, inputs []Input, workers int) []BatchResult {
	if workers < 1 {
		workers = 1
	}
	results := make([]BatchResult, len(inputs))
	for i, in := range inputs {
		results[i].MatchID = in.MatchID
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			for j := i; j < len(inputs); j++ {
				results[j].Err = err
			}
			break
		}
		g.Go(func() error {
			results[i].Report, results[i].Err = p.Analyze(in)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// AnalyzeBatch runs the default pipeline over inputs.
func AnalyzeBatch(ctx context.Context, inputs []Input, workers int) []BatchResult {
	return Default().AnalyzeBatch(ctx, inputs, workers)
}
