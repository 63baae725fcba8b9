package quadratize

import (
	"context"

	"github.com/rmohr/quadratize/pkg/api"
	"github.com/rmohr/quadratize/pkg/poly"
	"github.com/rmohr/quadratize/pkg/reducer"
	"golang.org/x/sync/errgroup"
)

// Result is the outcome of reducing one polynomial.
type Result struct {
	Terms       []api.Monomial
	Constraints []api.Constraint
	Stats       reducer.Stats
}

// ReduceAll reduces independent polynomials concurrently. Every polynomial
// gets its own reducer and registry. Results are returned in input order.
func ReduceAll(ctx context.Context, polys []*poly.BinaryPolynomial, workers int) ([]Result, error) {
	results := make([]Result, len(polys))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, p := range polys {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			r := reducer.NewReducer(reducer.NewRegistry(p.Variables()...))
			terms, constraints := r.Reduce(p.Items())
			results[i] = Result{Terms: terms, Constraints: constraints, Stats: r.Stats()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
