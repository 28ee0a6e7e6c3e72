package port

import (
	"context"

	"passwordCrackerSim/internal/core/domain"
)

// SimulationService is the application boundary used by every front-end.
type SimulationService interface {
	Analyze(password string, settings domain.AttackSettings) (*domain.Analysis, error)
	StartSimulation(ctx context.Context, password string, settings domain.AttackSettings) (*domain.SimulationJob, error)
	StopSimulation(jobID string) error
	Wait(ctx context.Context, job *domain.SimulationJob) (*domain.SimulationResult, error)
	Simulate(ctx context.Context, password string, settings domain.AttackSettings, observer SnapshotObserver) (*domain.SimulationResult, error)
	RunTrials(ctx context.Context, alphabet string, password string, trials, workers int) (*domain.TrialSummary, error)
}

// SnapshotObserver receives progress from a running simulation. Calls
// arrive from a single goroutine, in attempt order.
type SnapshotObserver interface {
	OnSnapshot(snapshot domain.Snapshot)
}

// SnapshotObserverFunc adapts a plain function to SnapshotObserver.
type SnapshotObserverFunc func(domain.Snapshot)

func (f SnapshotObserverFunc) OnSnapshot(s domain.Snapshot) {
	f(s)
}

// ResultReporter persists finished sessions.
type ResultReporter interface {
	Record(category string, data any)
	Flush() error
}
