package factory

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/Kryndex/robottelo/pkg/scheduler"
)

// Cleaner accumulates teardown jobs during a run and executes them on a
// worker pool when the suite finishes. Jobs run in reverse registration
// order within a batch dispatch, so dependents queue no later than their
// dependencies.
type Cleaner struct {
	sched *scheduler.Scheduler
	log   *zap.SugaredLogger

	mu   sync.Mutex
	jobs []cleanupJob
}

type cleanupJob struct {
	entity string
	run    func(ctx context.Context) error
}

func NewCleaner(workers int) *Cleaner {
	return &Cleaner{
		sched: scheduler.NewScheduler(workers),
		log:   zap.S().Named("cleaner"),
	}
}

// Add registers one teardown job. The entity keyword is only used for
// logging.
func (c *Cleaner) Add(entity string, run func(ctx context.Context) error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append(c.jobs, cleanupJob{entity: entity, run: run})
}

// Run executes all pending jobs and reports every failure. The pending
// list is cleared even when jobs fail; a deletion that failed once is not
// retried on the next call.
func (c *Cleaner) Run(ctx context.Context) error {
	c.mu.Lock()
	jobs := c.jobs
	c.jobs = nil
	c.mu.Unlock()

	futures := make([]*scheduler.Future[scheduler.Result[any]], 0, len(jobs))
	for i := len(jobs) - 1; i >= 0; i-- {
		job := jobs[i]
		futures = append(futures, c.sched.AddWork(func(ctx context.Context) (any, error) {
			return nil, job.run(ctx)
		}))
	}

	var errs []error
	for i, fut := range futures {
		res, err := fut.Await(ctx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res.Err != nil {
			c.log.Warnw("cleanup failed", "entity", jobs[len(jobs)-1-i].entity, "error", res.Err)
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Close shuts the worker pool down. Pending jobs are discarded.
func (c *Cleaner) Close() {
	c.sched.Close()
}
