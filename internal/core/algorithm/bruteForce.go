package algorithm

import (
	"context"
	"math/big"
	"passwordCrackerSim/internal/core/domain"
	"sync"
	"sync/atomic"
)

const snapshotBuffer = 16

// Job is everything one simulated attack needs to know up front.
type Job struct {
	Password       string
	Keyspace       domain.Keyspace
	HardwareRate   float64
	TargetAttempts *big.Float
}

// BruteForce runs the sampling loop on its own goroutine. The caller only
// reads published snapshots and may request a stop.
type BruteForce struct {
	simulator *Simulator
	job       Job
	progress  domain.Snapshot
	mu        sync.RWMutex
	cancelled atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
}

func NewBruteForce(simulator *Simulator) *BruteForce {
	if simulator == nil {
		simulator = NewSimulator(DefaultSimulationSettings())
	}
	return &BruteForce{
		simulator: simulator,
		stop:      make(chan struct{}),
	}
}

func (b *BruteForce) Start(ctx context.Context) (<-chan domain.Snapshot, <-chan domain.FinalReport) {
	snapshots := make(chan domain.Snapshot, snapshotBuffer)
	done := make(chan domain.FinalReport, 1)
	finished := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			b.cancelled.Store(true)
		case <-b.stop:
		case <-finished:
		}
	}()

	go func() {
		defer close(done)
		defer close(finished)
		defer close(snapshots)

		report := b.simulator.Run(
			b.job.Password,
			b.job.Keyspace,
			b.job.HardwareRate,
			b.job.TargetAttempts,
			func(s domain.Snapshot) { b.publish(snapshots, s) },
			b.cancelled.Load,
		)
		done <- report
	}()

	return snapshots, done
}

// publish never blocks the loop: when the consumer lags, the oldest
// buffered snapshot is discarded so the newest always gets through.
func (b *BruteForce) publish(snapshots chan domain.Snapshot, s domain.Snapshot) {
	b.mu.Lock()
	b.progress = s
	b.mu.Unlock()

	select {
	case snapshots <- s:
		return
	default:
	}
	select {
	case <-snapshots:
	default:
	}
	select {
	case snapshots <- s:
	default:
	}
}

func (b *BruteForce) Stop() {
	b.stopOnce.Do(func() {
		b.cancelled.Store(true)
		close(b.stop)
	})
}

func (b *BruteForce) Progress() domain.Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.progress
}

func (b *BruteForce) Name() domain.CrackingAlgorithm {
	return domain.AlgoBruteForce
}

func (b *BruteForce) SetJob(job Job) {
	b.job = job
}
