package concurrency

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordCrackerSim/internal/core/domain"
)

func TestWorkerPoolRunsEveryTask(t *testing.T) {
	ctx := context.Background()
	pool := NewWorkerPool(3, 4)
	pool.Start(ctx)

	const n = 20
	go func() {
		defer pool.Stop()
		for i := 0; i < n; i++ {
			attempts := int64(i + 1)
			err := pool.Submit(ctx, Task{
				ID: fmt.Sprintf("task-%d", i),
				Run: func(context.Context) (domain.FinalReport, error) {
					if attempts%5 == 0 {
						return domain.FinalReport{}, errors.New("failed")
					}
					return domain.FinalReport{State: domain.StateFound, Attempts: attempts}, nil
				},
			})
			if err != nil {
				return
			}
		}
	}()

	var total int64
	var failed int
	for res := range pool.Results() {
		if res.Error != nil {
			failed++
			continue
		}
		total += res.Report.Attempts
		assert.Less(t, res.WorkerID, 3)
	}

	// 1..20 minus 5, 10, 15, 20.
	assert.Equal(t, int64(210-50), total)
	assert.Equal(t, 4, failed)

	m := pool.Metrics()
	assert.Equal(t, 3, m.Workers)
	assert.Equal(t, int64(16), m.CompletedTasks)
	assert.Equal(t, int64(4), m.FailedTasks)
	assert.Zero(t, m.ActiveWorkers)
}

func TestWorkerPoolTimeout(t *testing.T) {
	ctx := context.Background()
	pool := NewWorkerPool(1, 1)
	pool.Start(ctx)

	go func() {
		defer pool.Stop()
		_ = pool.Submit(ctx, Task{
			ID:      "slow",
			Timeout: 5 * time.Millisecond,
			Run: func(ctx context.Context) (domain.FinalReport, error) {
				<-ctx.Done()
				return domain.FinalReport{State: domain.StateCancelled}, ctx.Err()
			},
		})
	}()

	res, ok := <-pool.Results()
	require.True(t, ok)
	assert.ErrorIs(t, res.Error, context.DeadlineExceeded)
	assert.Equal(t, domain.StateCancelled, res.Report.State)
}

func TestWorkerPoolSubmitAfterStop(t *testing.T) {
	pool := NewWorkerPool(2, 0)
	pool.Start(context.Background())
	pool.Stop()
	pool.Stop()

	err := pool.Submit(context.Background(), Task{ID: "late"})
	assert.ErrorIs(t, err, ErrPoolStopped)
}

func TestWorkerPoolSubmitCancelled(t *testing.T) {
	pool := NewWorkerPool(1, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := pool.Submit(ctx, Task{ID: "never"})
	assert.ErrorIs(t, err, context.Canceled)
	pool.Stop()
}
