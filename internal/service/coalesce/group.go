// Package coalesce merges concurrent cache population requests for the same key
// into one execution.
package coalesce

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

// Group runs at most one population function per key at a time.
type Group[T any] struct {
	flight  singleflight.Group
	timeout time.Duration
}

// NewGroup creates a Group. A positive timeout bounds every flight.
func NewGroup[T any](timeout time.Duration) *Group[T] {
	return &Group[T]{timeout: timeout}
}

// Do runs fn for key unless a flight for key is already running, in which case
// it waits for that flight's result. fn receives a context that keeps ctx's
// values but not its cancellation, so one caller giving up does not fail the
// others. A caller whose ctx ends stops waiting and gets ctx.Err().
// shared reports whether the result was delivered to more than one caller.
func (g *Group[T]) Do(ctx context.Context, key string, fn func(ctx context.Context) (T, error)) (v T, shared bool, err error) {
	ch := g.flight.DoChan(key, func() (any, error) {
		flightCtx := context.WithoutCancel(ctx)
		if g.timeout > 0 {
			var cancel context.CancelFunc
			flightCtx, cancel = context.WithTimeout(flightCtx, g.timeout)
			defer cancel()
		}
		return fn(flightCtx)
	})

	select {
	case <-ctx.Done():
		var zero T
		return zero, false, fmt.Errorf("coalesce %s: %w", key, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			var zero T
			return zero, res.Shared, res.Err
		}
		return res.Val.(T), res.Shared, nil
	}
}

// Forget drops the in-flight entry for key so the next call starts a new flight.
func (g *Group[T]) Forget(key string) {
	g.flight.Forget(key)
}
