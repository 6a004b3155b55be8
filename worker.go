package qhack

import (
	"fmt"
	"time"
)

// Worker processes jobs
type Worker struct {
	pool *Q
	jobs chan Job
}

/*
run offers the worker to the pool, takes one job at a time and stores its
result, until the pool context is cancelled.
*/
func (w *Worker) run() {
	ctx := w.pool.ctx
	for {
		select {
		case <-ctx.Done():
			return
		case w.pool.workers <- w.jobs:
		}

		select {
		case <-ctx.Done():
			return
		case job := <-w.jobs:
			result, err := w.processJob(job)
			w.pool.space.Store(job.ID, result, err, job.TTL)
		}
	}
}

func (w *Worker) processJob(job Job) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
		w.pool.metrics.recordJobExecution(startOf(job), err == nil)
	}()

	attempts := 1
	if job.RetryPolicy != nil && job.RetryPolicy.MaxAttempts > 1 {
		attempts = job.RetryPolicy.MaxAttempts
	}

	for attempt := 1; ; attempt++ {
		result, err = job.Fn()
		if err == nil {
			return result, nil
		}
		if attempt >= attempts || !w.wait(job.RetryPolicy, attempt) {
			return nil, fmt.Errorf("job %s: %w", job.ID, err)
		}
	}
}

// wait sleeps out the retry delay. It reports false if the pool closed first.
func (w *Worker) wait(policy *RetryPolicy, attempt int) bool {
	if policy.Strategy == nil {
		return w.pool.ctx.Err() == nil
	}

	timer := time.NewTimer(policy.Strategy.NextDelay(attempt))
	defer timer.Stop()

	select {
	case <-w.pool.ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func startOf(job Job) time.Time {
	if job.StartTime.IsZero() {
		return time.Now()
	}
	return job.StartTime
}
