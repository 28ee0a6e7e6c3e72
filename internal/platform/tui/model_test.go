package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordCrackerSim/internal/core/algorithm"
	"passwordCrackerSim/internal/core/domain"
)

func newTestJob(t *testing.T) (*domain.SimulationJob, chan domain.Snapshot, chan domain.FinalReport) {
	t.Helper()
	profile := algorithm.AssessStrength("abc")
	keyspace := algorithm.BuildKeyspace("abc", profile)
	target, err := algorithm.ComputeTargetAttempts(keyspace.TotalCombinations, domain.TargetAverageCase)
	require.NoError(t, err)
	hw, _ := domain.TierCPU.Profile()

	snapshots := make(chan domain.Snapshot, 4)
	done := make(chan domain.FinalReport, 1)
	return &domain.SimulationJob{
		ID: "job",
		Analysis: &domain.Analysis{
			Profile:        profile,
			Keyspace:       keyspace,
			Settings:       domain.AttackSettings{Hardware: domain.TierCPU, Target: domain.TargetAverageCase},
			Hardware:       hw,
			TargetAttempts: target,
		},
		Snapshots: snapshots,
		Done:      done,
	}, snapshots, done
}

func TestModelLifecycle(t *testing.T) {
	job, snapshots, done := newTestJob(t)
	stops := 0
	m := NewModel(job, func() { stops++ })

	require.NotNil(t, m.Init())
	assert.Contains(t, m.View(), "Calculating...")
	assert.Contains(t, m.View(), "17,576")

	next, cmd := m.Update(snapshotMsg(domain.Snapshot{Attempts: 1_000, Rate: 500_000, PredictedSeconds: 0.02}))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "1,000")
	assert.Contains(t, m.View(), "0.0200 seconds")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m = next.(Model)
	assert.Equal(t, 1, stops)
	assert.Contains(t, m.View(), "stopping")

	close(snapshots)
	msg := waitForSnapshot(snapshots)()
	assert.IsType(t, snapshotsClosedMsg{}, msg)

	done <- domain.FinalReport{State: domain.StateCancelled, Attempts: 1_000, PredictedSeconds: 0.02}
	_, cmd = m.Update(msg)
	require.NotNil(t, cmd)
	doneMessage := cmd()
	require.IsType(t, doneMsg{}, doneMessage)

	next, cmd = m.Update(doneMessage)
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())

	report, ok := m.Final()
	require.True(t, ok)
	assert.Equal(t, domain.StateCancelled, report.State)
	assert.Contains(t, m.View(), "Simulation stopped after 1,000 attempts.")
}

func TestModelIgnoresOtherKeys(t *testing.T) {
	job, _, _ := newTestJob(t)
	m := NewModel(job, func() { t.Fatal("stop must not be called") })

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	assert.Nil(t, cmd)
	_, ok := next.(Model).Final()
	assert.False(t, ok)
}
