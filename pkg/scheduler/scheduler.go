// Package scheduler is a bounded worker pool with future-style results,
// used by the fixture cleaner to reap remote entities in parallel without
// flooding the target with sessions.
package scheduler

import "context"

// Work is one unit of work executed on a pool worker.
type Work[T any] func(ctx context.Context) (T, error)

// Result pairs a work function's value with its error.
type Result[T any] struct {
	Data T
	Err  error
}

type queue[T any] []T

func (q *queue[T]) Len() int { return len(*q) }

func (q *queue[T]) Pop() T {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[0 : n-1]
	return x
}

func (q *queue[T]) Push(t T) {
	*q = append(*q, t)
}

type workRequest struct {
	fn  Work[any]
	c   chan Result[any]
	ctx context.Context
}

type worker struct {
	done chan any
}

func (w worker) Work(r workRequest) {
	v, err := r.fn(r.ctx)
	r.c <- Result[any]{Data: v, Err: err}
	w.done <- struct{}{}
}

type Scheduler struct {
	workers    *queue[worker]
	backlog    *queue[workRequest]
	close      chan any
	done       chan any
	work       chan workRequest
	mainCtx    context.Context
	mainCancel context.CancelFunc
}

func NewScheduler(nbWorkers int) *Scheduler {
	done := make(chan any)
	wq := &queue[worker]{}
	for range nbWorkers {
		wq.Push(worker{done: done})
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		workers:    wq,
		backlog:    &queue[workRequest]{},
		close:      make(chan any),
		done:       done,
		work:       make(chan workRequest),
		mainCtx:    ctx,
		mainCancel: cancel,
	}
	go s.run()
	return s
}

// AddWork queues w for execution and returns a Future resolving to its
// result. Work waits in the backlog while all workers are busy.
func (s *Scheduler) AddWork(w Work[any]) *Future[Result[any]] {
	c := make(chan Result[any], 1)
	ctx, cancel := context.WithCancel(s.mainCtx)
	s.work <- workRequest{w, c, ctx}
	return newFuture(c, cancel)
}

// Close cancels the pool context and stops the dispatch loop. Running
// workers observe the cancellation through their work context.
func (s *Scheduler) Close() {
	s.mainCancel()
	s.close <- struct{}{}
}

func (s *Scheduler) run() {
	for {
		select {
		case w := <-s.work:
			s.backlog.Push(w)
			if s.workers.Len() == 0 {
				continue
			}
			s.dispatch(s.backlog.Pop())
		case <-s.done:
			s.workers.Push(worker{done: s.done})

			if s.backlog.Len() == 0 {
				continue
			}
			s.dispatch(s.backlog.Pop())
		case <-s.close:
			return
		}
	}
}

func (s *Scheduler) dispatch(r workRequest) {
	w := s.workers.Pop()
	go w.Work(r)
}
