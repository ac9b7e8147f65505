package fanout

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Options configures a fan-out.
type Options struct {
	// Limit caps the number of units in flight. Zero or negative means no cap.
	Limit int
}

// Summary counts what a fan-out produced.
type Summary struct {
	Units    int // units launched
	OK       int // units with StatusOK
	Degraded int // units with StatusDegraded
	Items    int // items in the flattened output
}

// indexed is one settled unit, tagged with its input position.
type indexed[Out any] struct {
	i int
	r Result[Out]
}

// Run calls fn for every input concurrently and concatenates the items of
// all results in input order.
//
// Run returns as soon as any unit returns a [StatusFailed] result, with that
// error and no items. Units already in flight are left to finish on their
// own and units not yet started are skipped. Degraded units are counted in
// the summary and otherwise ignored.
func Run[In, Out any](ctx context.Context, inputs []In, opts Options, fn func(context.Context, In) Result[Out]) ([]Out, Summary, error) {
	// Buffered so that units finishing after Run has returned never block.
	settled := make(chan indexed[Out], len(inputs))
	stop := make(chan struct{})

	var g errgroup.Group
	if opts.Limit > 0 {
		g.SetLimit(opts.Limit)
	}
	go func() {
		for i, in := range inputs {
			select {
			case <-stop:
				return
			default:
			}
			g.Go(func() error {
				settled <- indexed[Out]{i: i, r: fn(ctx, in)}
				return nil
			})
		}
	}()

	sum := Summary{Units: len(inputs)}
	results := make([]Result[Out], len(inputs))
	for range inputs {
		u := <-settled
		if u.r.Status == StatusFailed {
			close(stop)
			return nil, sum, u.r.Err
		}
		results[u.i] = u.r
	}

	var out []Out
	for _, r := range results {
		switch r.Status {
		case StatusOK:
			sum.OK++
			out = append(out, r.Items...)
		case StatusDegraded:
			sum.Degraded++
		}
	}
	sum.Items = len(out)
	return out, sum, nil
}
