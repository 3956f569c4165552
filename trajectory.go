package orbel

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// TimeGrid returns n times starting at start and evenly spaced by span/n, so that a span of
// one period does not repeat the first sample.
func TimeGrid(start, span float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	step := span / float64(n)
	times := make([]float64, n)
	for k := range times {
		times[k] = start + float64(k)*step
	}
	return times
}

// SampleTimes evaluates the system at every provided time using up to `workers` goroutines
// (GOMAXPROCS if workers <= 0). The output is in the same order as the times. The first
// failing evaluation, or the cancellation of ctx, aborts the sampling.
func (ev *Evaluator) SampleTimes(ctx context.Context, el OrbitalElements, m MassPair, view View, times []float64, workers int) ([]*Evaluation, error) {
	if err := el.Validate(); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	out := make([]*Evaluation, len(times))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for idx, t := range times {
		if gctx.Err() != nil {
			break
		}
		idx, t := idx, t
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rslt, err := ev.Evaluate(el, m, t, view)
			if err != nil {
				return fmt.Errorf("sample %d (t=%f): %w", idx, t, err)
			}
			out[idx] = rslt
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

// SamplePeriod evaluates n evenly spaced samples over one orbital period starting at t0.
func (ev *Evaluator) SamplePeriod(ctx context.Context, el OrbitalElements, m MassPair, view View, t0 float64, n, workers int) ([]*Evaluation, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return ev.SampleTimes(ctx, el, m, view, TimeGrid(t0, Period(el.a, m.Total()), n), workers)
}
