package core

import (
	"context"

	"github.com/huangsam/readiness/core/algo"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/dataset"
	"github.com/huangsam/readiness/schema"
	"golang.org/x/sync/errgroup"
)

// scoredPerson is one slot of the worker pool output. Exactly one of result
// and err is meaningful.
type scoredPerson struct {
	result schema.ReadinessResult
	err    error
}

// scorePeople validates and scores people in parallel using cfg.Workers goroutines.
// Each goroutine writes only to its own index, so the output keeps input order.
// Cancellation is checked between people; an in-flight person always completes.
func scorePeople(ctx context.Context, cfg *contract.Config, people []dataset.RawPerson) ([]scoredPerson, error) {
	out := make([]scoredPerson, len(people))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, cfg.Workers))

	for i := range people {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := dataset.Map(people[i], i, cfg.Params)
			if err != nil {
				out[i].err = err
				return nil
			}
			out[i].result = algo.ScorePerson(data, cfg.AsOf, cfg.Params)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
