package driver

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"flare/internal/ir"
)

// Builder produces the module for one source unit.
type Builder func(ctx context.Context) (*ir.Module, error)

// BuildOptions configures BuildAll.
type BuildOptions struct {
	// Concurrency limits the number of builders running at once.
	// Zero means no limit.
	Concurrency int
}

// BuildAll runs the builders concurrently, each producing its own module,
// then merges the results into one module on the calling goroutine in
// builder order, so later builders win name conflicts. This is the
// sanctioned pattern for parallel pipelines over the unsynchronized
// Module type: fan out with isolated modules, merge serially.
func BuildAll(ctx context.Context, builders []Builder, opts BuildOptions) (*ir.Module, error) {
	mods := make([]*ir.Module, len(builders))

	g, ctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, build := range builders {
		g.Go(func() error {
			m, err := build(ctx)
			if err != nil {
				return fmt.Errorf("builder %d: %w", i, err)
			}
			mods[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := ir.New()
	for _, m := range mods {
		out.Update(m)
	}
	return out, nil
}
