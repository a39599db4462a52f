// Package batch evaluates many expressions concurrently.
package batch

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logging"
)

// Result is the outcome of one expression.
type Result struct {
	// Index is the position of the expression in the input.
	Index  int
	Source string
	// Expr is the parsed expression, or nil if parsing failed.
	Expr  *calculator.Expr
	Value float64
	Err   error
}

// Evaluate parses and evaluates each source using at most jobs goroutines.
// Results are returned in input order. The returned error aggregates every
// failed expression; the individual errors remain available in the results.
// A cancelled context stops expressions that have not yet started.
func Evaluate(ctx context.Context, srcs []string, jobs int, opts ...calculator.Option) ([]Result, error) {
	log := logging.FromContextOrDiscard(ctx).WithName("batch")
	if jobs < 1 {
		jobs = 1
	}
	results := make([]Result, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, src := range srcs {
		results[i] = Result{Index: i, Source: src}
		r := &results[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				r.Err = err
				return err
			}
			evaluate(log, r, opts)
			return nil
		})
	}
	cancelled := g.Wait()

	var result *multierror.Error
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			result = multierror.Append(result, errors.Wrapf(r.Err, "expression %d", r.Index+1))
		}
	}
	if cancelled != nil {
		log.Debug("batch interrupted", "cause", cancelled.Error())
	}
	log.Info("batch evaluated", "expressions", len(results), "failed", failed)
	return results, result.ErrorOrNil()
}

func evaluate(log logging.Logger, r *Result, opts []calculator.Option) {
	log = log.WithValues("index", r.Index, "expr", r.Source)
	a, err := calculator.Parse(r.Source, opts...)
	if err != nil {
		log.Debug("parse failed", "error", err.Error())
		r.Err = err
		return
	}
	r.Expr = a
	v, err := a.Eval()
	if err != nil {
		log.Debug("evaluation failed", "error", err.Error())
		r.Err = err
		return
	}
	log.Debug("evaluated", "result", v)
	r.Value = v
}
