package scheduler

import (
	"context"
	"sync"
)

// Future is the pending result of one scheduled work unit. It is safe to
// Poll and Await from several goroutines.
type Future[T any] struct {
	input    chan T
	settled  chan struct{}
	resolved bool
	value    T
	cancel   context.CancelFunc
	lock     sync.Mutex
}

func newFuture[T any](input chan T, cancel context.CancelFunc) *Future[T] {
	return &Future[T]{
		input:   input,
		settled: make(chan struct{}),
		cancel:  cancel,
	}
}

func (f *Future[T]) resolve(v T) {
	f.lock.Lock()
	defer f.lock.Unlock()
	if f.resolved {
		return
	}
	f.value = v
	f.resolved = true
	f.cancel()
	close(f.settled)
}

// Poll returns the value if the work has finished, without blocking.
func (f *Future[T]) Poll() (value T, isResolved bool) {
	select {
	case v := <-f.input:
		f.resolve(v)
	default:
	}

	f.lock.Lock()
	defer f.lock.Unlock()
	if f.resolved {
		return f.value, true
	}
	var none T
	return none, false
}

// Await blocks until the work finishes or ctx is done. On ctx expiry the
// work's own context is cancelled too.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	if v, ok := f.Poll(); ok {
		return v, nil
	}
	select {
	case <-ctx.Done():
		f.cancel()
		var none T
		return none, ctx.Err()
	case v := <-f.input:
		f.resolve(v)
		return v, nil
	case <-f.settled:
		f.lock.Lock()
		defer f.lock.Unlock()
		return f.value, nil
	}
}

// Stop cancels the work's context.
func (f *Future[T]) Stop() {
	f.cancel()
}
