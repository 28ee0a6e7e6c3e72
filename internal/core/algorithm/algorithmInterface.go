package algorithm

import (
	"context"
	"passwordCrackerSim/internal/core/domain"
)

type Algorithm interface {
	Start(ctx context.Context) (<-chan domain.Snapshot, <-chan domain.FinalReport)
	Stop()
	Progress() domain.Snapshot
	Name() domain.CrackingAlgorithm
	SetJob(job Job)
}
