package algorithm

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordCrackerSim/internal/core/domain"
)

func unfindableJob() Job {
	return Job{
		Password:       "zzzz",
		Keyspace:       tinyKeyspace("ab", 4),
		HardwareRate:   1000,
		TargetAttempts: big.NewFloat(8),
	}
}

func collect(t *testing.T, snapshots <-chan domain.Snapshot, done <-chan domain.FinalReport) ([]domain.Snapshot, domain.FinalReport) {
	t.Helper()
	var got []domain.Snapshot
	timeout := time.After(5 * time.Second)
	for snapshots != nil {
		select {
		case s, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			got = append(got, s)
		case <-timeout:
			t.Fatal("snapshots channel never closed")
		}
	}
	select {
	case report := <-done:
		return got, report
	case <-timeout:
		t.Fatal("no final report")
	}
	return nil, domain.FinalReport{}
}

func TestBruteForce_FindsEmptyPassword(t *testing.T) {
	b := NewBruteForce(nil)
	ks := BuildKeyspace("", AssessStrength(""))
	b.SetJob(Job{Password: "", Keyspace: ks, HardwareRate: 500_000, TargetAttempts: big.NewFloat(0.5)})

	snapshots, done := b.Start(context.Background())
	snaps, report := collect(t, snapshots, done)

	assert.Equal(t, domain.StateFound, report.State)
	assert.Equal(t, int64(1), report.Attempts)
	require.NotEmpty(t, snaps)
	assert.Equal(t, domain.SnapshotInitial, snaps[0].Kind)
}

func TestBruteForce_Stop(t *testing.T) {
	b := NewBruteForce(nil)
	b.SetJob(unfindableJob())

	snapshots, done := b.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	b.Stop()
	b.Stop() // second call is a no-op

	_, report := collect(t, snapshots, done)
	assert.Equal(t, domain.StateCancelled, report.State)
	assert.Positive(t, report.Attempts)
}

func TestBruteForce_ContextCancel(t *testing.T) {
	b := NewBruteForce(nil)
	b.SetJob(unfindableJob())

	ctx, cancel := context.WithCancel(context.Background())
	snapshots, done := b.Start(ctx)
	cancel()

	_, report := collect(t, snapshots, done)
	assert.Equal(t, domain.StateCancelled, report.State)
}

func TestBruteForce_SnapshotsNeverGoBackwards(t *testing.T) {
	settings := domain.SimulationSettings{BenchmarkAttempts: 1000, DashboardInterval: 1000}
	b := NewBruteForce(NewSimulator(settings))
	b.SetJob(unfindableJob())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	snapshots, done := b.Start(ctx)
	snaps, report := collect(t, snapshots, done)

	require.Equal(t, domain.StateCancelled, report.State)
	for i := 1; i < len(snaps); i++ {
		assert.GreaterOrEqual(t, snaps[i].Attempts, snaps[i-1].Attempts)
	}
	assert.LessOrEqual(t, b.Progress().Attempts, report.Attempts)
}

func TestBruteForce_Name(t *testing.T) {
	b := NewBruteForce(nil)
	if b.Name() != domain.AlgoBruteForce {
		t.Errorf("Name() = %v, want %v", b.Name(), domain.AlgoBruteForce)
	}
}
