package qhack

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/theapemachine/errnie"
)

// Q is our hybrid worker pool/message queue
type Q struct {
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	workers    chan chan Job
	jobs       chan Job
	space      *QuantumSpace
	metrics    *Metrics
	workerMu   sync.Mutex
	workerList []*Worker
	config     *Config
	closeOnce  sync.Once
}

/*
NewQ starts a pool of workers. A workers count of zero or less falls back
to the configured count, then to GOMAXPROCS.
*/
func NewQ(ctx context.Context, workers int, config *Config) *Q {
	if workers <= 0 {
		workers = config.workers()
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Q{
		ctx:        ctx,
		cancel:     cancel,
		workerList: make([]*Worker, 0, workers),
		jobs:       make(chan Job, workers*10),
		workers:    make(chan chan Job, workers),
		space:      newQuantumSpace(),
		metrics:    NewMetrics(),
		config:     config,
	}

	for i := 0; i < workers; i++ {
		q.startWorker()
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.manage()
	}()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.collectMetrics()
	}()

	return q
}

// Pool management
func (q *Q) manage() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case job := <-q.jobs:
			select {
			case <-q.ctx.Done():
				q.space.Store(job.ID, nil, ErrPoolClosed, job.TTL)
				return
			case workerChan := <-q.workers:
				workerChan <- job
			case <-time.After(q.getSchedulingTimeout()):
				q.metrics.recordSchedulingFailure()
				q.space.Store(job.ID, nil, fmt.Errorf("job %s: %w", job.ID, ErrNoWorkers), job.TTL)
			}
		}
	}
}

func (q *Q) collectMetrics() {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-q.ctx.Done():
			return
		case <-ticker.C:
			q.metrics.mu.Lock()
			q.metrics.JobQueueSize = len(q.jobs)
			q.metrics.mu.Unlock()
		}
	}
}

/*
Schedule queues fn under id and returns a channel that receives its result
once. Ids must be unique among jobs whose results are not yet claimed.
*/
func (q *Q) Schedule(id string, fn func() (any, error), opts ...JobOption) chan QuantumValue {
	job := Job{
		ID:        id,
		Fn:        fn,
		TTL:       time.Minute,
		StartTime: time.Now(),
	}

	for _, opt := range opts {
		opt(&job)
	}

	if q.ctx.Err() != nil {
		return failed(fmt.Errorf("job %s: %w", id, ErrPoolClosed))
	}

	ctx, cancel := context.WithTimeout(q.ctx, q.getSchedulingTimeout())
	defer cancel()

	select {
	case q.jobs <- job:
		return q.space.Await(id)
	case <-ctx.Done():
		q.metrics.recordSchedulingFailure()

		err := fmt.Errorf("job %s scheduling timeout: %w", id, ctx.Err())
		if q.ctx.Err() != nil {
			err = fmt.Errorf("job %s: %w", id, ErrPoolClosed)
		}

		return failed(err)
	}
}

func failed(err error) chan QuantumValue {
	ch := make(chan QuantumValue, 1)
	ch <- QuantumValue{Error: err, CreatedAt: time.Now()}
	close(ch)
	return ch
}

func (q *Q) CreateBroadcastGroup(id string, ttl time.Duration) *BroadcastGroup {
	return q.space.CreateBroadcastGroup(id, ttl)
}

func (q *Q) Subscribe(groupID string) chan QuantumValue {
	return q.space.Subscribe(groupID)
}

func (q *Q) Metrics() map[string]interface{} {
	return q.metrics.ExportMetrics()
}

func (q *Q) startWorker() {
	worker := &Worker{
		pool: q,
		jobs: make(chan Job, 1),
	}
	q.workerMu.Lock()
	q.workerList = append(q.workerList, worker)
	q.workerMu.Unlock()

	q.metrics.mu.Lock()
	q.metrics.WorkerCount++
	q.metrics.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		worker.run()
	}()
}

func (q *Q) getSchedulingTimeout() time.Duration {
	if q.config != nil && q.config.SchedulingTimeout > 0 {
		return q.config.SchedulingTimeout
	}
	return 5 * time.Second // Default timeout
}

/*
Close stops the workers and waits for them. Jobs still queued are
dropped, and anyone awaiting them should be watching their own context.
*/
func (q *Q) Close() {
	if q == nil {
		return
	}

	q.closeOnce.Do(func() {
		q.cancel()
		q.wg.Wait()
		q.space.Close()

		if q.config != nil && q.config.Verbose {
			errnie.Info("evaluation pool closed, metrics %v", q.metrics.ExportMetrics())
		}
	})
}
