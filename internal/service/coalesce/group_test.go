package coalesce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_Do_CoalescesConcurrentCalls(t *testing.T) {
	t.Parallel()

	g := NewGroup[int](0)
	var calls atomic.Int32
	release := make(chan struct{})

	const callers = 10
	results := make([]int, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _, errs[i] = g.Do(context.Background(), "gen:1", func(context.Context) (int, error) {
				calls.Add(1)
				<-release
				return 42, nil
			})
		}()
	}

	// Let every caller join the flight before releasing it.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, 42, results[i])
	}
}

func TestGroup_Do_SequentialCallsRunAgain(t *testing.T) {
	t.Parallel()

	g := NewGroup[string](0)
	var calls atomic.Int32
	fn := func(context.Context) (string, error) {
		calls.Add(1)
		return "ok", nil
	}

	_, _, err := g.Do(context.Background(), "k", fn)
	require.NoError(t, err)
	_, _, err = g.Do(context.Background(), "k", fn)
	require.NoError(t, err)

	assert.Equal(t, int32(2), calls.Load())
}

func TestGroup_Do_PropagatesError(t *testing.T) {
	t.Parallel()

	g := NewGroup[int](0)
	sentinel := errors.New("boom")

	_, _, err := g.Do(context.Background(), "k", func(context.Context) (int, error) {
		return 0, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestGroup_Do_CallerCancelDoesNotCancelFlight(t *testing.T) {
	t.Parallel()

	g := NewGroup[int](0)
	release := make(chan struct{})
	flightErr := make(chan error, 1)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, _, err := g.Do(ctx, "k", func(fctx context.Context) (int, error) {
			<-release
			flightErr <- fctx.Err()
			return 1, nil
		})
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)

	close(release)
	assert.NoError(t, <-flightErr, "flight context must survive caller cancellation")
}

func TestGroup_Do_TimeoutBoundsFlight(t *testing.T) {
	t.Parallel()

	g := NewGroup[int](10 * time.Millisecond)

	_, _, err := g.Do(context.Background(), "k", func(fctx context.Context) (int, error) {
		<-fctx.Done()
		return 0, fctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
