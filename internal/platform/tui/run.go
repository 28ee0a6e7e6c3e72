package tui

import (
	"context"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cockroachdb/errors"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/port"
)

// Run starts a simulation and follows it on a full-screen dashboard until
// it ends.
func Run(ctx context.Context, svc port.SimulationService, password string, settings domain.AttackSettings, in io.Reader, out io.Writer) (*domain.Analysis, *domain.SimulationResult, error) {
	job, err := svc.StartSimulation(ctx, password, settings)
	if err != nil {
		return nil, nil, err
	}
	stop := func() { _ = svc.StopSimulation(job.ID) }

	program := tea.NewProgram(NewModel(job, stop), tea.WithInput(in), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		stop()
		_, _ = svc.Wait(context.WithoutCancel(ctx), job)
		return job.Analysis, nil, errors.Wrap(err, "dashboard")
	}

	result, err := svc.Wait(context.WithoutCancel(ctx), job)
	return job.Analysis, result, err
}
