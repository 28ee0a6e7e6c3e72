package concurrency

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"passwordCrackerSim/internal/core/domain"
)

var ErrPoolStopped = errors.New("worker pool stopped")

// WorkerPool runs simulation tasks on a fixed number of goroutines.
type WorkerPool struct {
	workers    []*Worker
	tasks      chan Task
	results    chan Result
	numWorkers int
	wg         sync.WaitGroup
	stopOnce   sync.Once
	stopped    chan struct{}
}

type Worker struct {
	id        int
	tasks     <-chan Task
	results   chan<- Result
	metrics   *WorkerMetrics
	isWorking bool
	mu        sync.RWMutex
}

type Task struct {
	ID      string
	Run     func(ctx context.Context) (domain.FinalReport, error)
	Timeout time.Duration
}

type Result struct {
	TaskID   string
	Report   domain.FinalReport
	Error    error
	Duration time.Duration
	WorkerID int
}

type PoolMetrics struct {
	Workers        int
	ActiveWorkers  int
	CompletedTasks int64
	FailedTasks    int64
	TotalDuration  time.Duration
	AverageLatency time.Duration
}

type WorkerMetrics struct {
	TasksCompleted int64
	TasksFailed    int64
	TotalDuration  time.Duration
	LastActive     time.Time
	mu             sync.RWMutex
}

func NewWorkerPool(numWorkers int, queueSize int) *WorkerPool {
	if numWorkers < 1 {
		numWorkers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	pool := &WorkerPool{
		workers:    make([]*Worker, numWorkers),
		tasks:      make(chan Task, queueSize),
		results:    make(chan Result, queueSize),
		numWorkers: numWorkers,
		stopped:    make(chan struct{}),
	}

	for i := 0; i < numWorkers; i++ {
		pool.workers[i] = &Worker{
			id:      i,
			tasks:   pool.tasks,
			results: pool.results,
			metrics: &WorkerMetrics{
				LastActive: time.Now(),
			},
		}
	}

	return pool
}

func (p *WorkerPool) Start(ctx context.Context) {
	for _, worker := range p.workers {
		p.wg.Add(1)
		go worker.start(ctx, &p.wg)
	}
}

// Submit queues task, blocking while the queue is full.
func (p *WorkerPool) Submit(ctx context.Context, task Task) error {
	select {
	case <-p.stopped:
		return ErrPoolStopped
	default:
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.stopped:
		return ErrPoolStopped
	case p.tasks <- task:
		return nil
	}
}

func (p *WorkerPool) Results() <-chan Result {
	return p.results
}

// Stop closes the queue, waits for queued tasks to drain and then closes
// Results. It must be called by the goroutine that submits tasks.
func (p *WorkerPool) Stop() {
	p.stopOnce.Do(func() {
		close(p.stopped)
		close(p.tasks)
		p.wg.Wait()
		close(p.results)
	})
}

func (p *WorkerPool) Metrics() PoolMetrics {
	m := PoolMetrics{Workers: p.numWorkers}

	for _, worker := range p.workers {
		worker.metrics.mu.RLock()
		m.CompletedTasks += worker.metrics.TasksCompleted
		m.FailedTasks += worker.metrics.TasksFailed
		m.TotalDuration += worker.metrics.TotalDuration
		worker.metrics.mu.RUnlock()

		worker.mu.RLock()
		if worker.isWorking {
			m.ActiveWorkers++
		}
		worker.mu.RUnlock()
	}

	if done := m.CompletedTasks + m.FailedTasks; done > 0 {
		m.AverageLatency = m.TotalDuration / time.Duration(done)
	}
	return m
}

func (w *Worker) start(ctx context.Context, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-w.tasks:
			if !ok {
				return
			}

			w.mu.Lock()
			w.isWorking = true
			w.mu.Unlock()

			startTime := time.Now()
			report, err := w.executeTask(ctx, task)
			duration := time.Since(startTime)

			w.updateMetrics(err == nil, duration)

			w.mu.Lock()
			w.isWorking = false
			w.mu.Unlock()

			select {
			case w.results <- Result{
				TaskID:   task.ID,
				Report:   report,
				Error:    err,
				Duration: duration,
				WorkerID: w.id,
			}:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *Worker) executeTask(ctx context.Context, task Task) (domain.FinalReport, error) {
	if task.Run == nil {
		return domain.FinalReport{}, errors.Newf("task %s has no function", task.ID)
	}
	if task.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, task.Timeout)
		defer cancel()
	}

	report, err := task.Run(ctx)
	if err != nil {
		return report, errors.Wrapf(err, "task %s", task.ID)
	}
	return report, nil
}

func (w *Worker) updateMetrics(success bool, duration time.Duration) {
	w.metrics.mu.Lock()
	defer w.metrics.mu.Unlock()

	if success {
		w.metrics.TasksCompleted++
	} else {
		w.metrics.TasksFailed++
	}
	w.metrics.TotalDuration += duration
	w.metrics.LastActive = time.Now()
}
