package algorithm

import (
	"math"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passwordCrackerSim/internal/core/domain"
)

type stepClock struct {
	t    time.Time
	step time.Duration
}

func (c *stepClock) Now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), step: step}
}

func tinyKeyspace(alphabet string, length int) domain.Keyspace {
	return domain.Keyspace{
		Alphabet:          []byte(alphabet),
		Size:              len(alphabet),
		TotalCombinations: new(big.Int).Exp(big.NewInt(int64(len(alphabet))), big.NewInt(int64(length)), nil),
	}
}

func cancelAfter(n int) func() bool {
	calls := 0
	return func() bool {
		calls++
		return calls >= n
	}
}

func TestRunSimulation_EmptyPasswordMatchesImmediately(t *testing.T) {
	ks := BuildKeyspace("", AssessStrength(""))
	target, err := ComputeTargetAttempts(ks.TotalCombinations, domain.TargetAverageCase)
	require.NoError(t, err)

	report := RunSimulation("", ks, 500_000, target, nil, nil)

	assert.Equal(t, domain.StateFound, report.State)
	assert.True(t, report.Found)
	assert.Equal(t, int64(1), report.Attempts)
	assert.Equal(t, "", report.LastGuess)
}

func TestSimulator_MeanAttemptsMatchesAlphabetSize(t *testing.T) {
	ks := tinyKeyspace("ab", 1)
	target := big.NewFloat(1)

	const trials = 2000
	var total int64
	for i := 0; i < trials; i++ {
		sim := NewSimulator(DefaultSimulationSettings()).WithSeed(uint64(i + 1))
		report := sim.Run("a", ks, 1000, target, nil, nil)
		require.Equal(t, domain.StateFound, report.State)
		total += report.Attempts
	}

	mean := float64(total) / trials
	assert.InDelta(t, 2.0, mean, 0.2)
}

func TestSimulator_CancelledBeforeStart(t *testing.T) {
	ks := tinyKeyspace("ab", 1)

	report := NewSimulator(DefaultSimulationSettings()).
		Run("c", ks, 1000, big.NewFloat(1), nil, func() bool { return true })

	assert.Equal(t, domain.StateCancelled, report.State)
	assert.False(t, report.Found)
	assert.Equal(t, int64(1), report.Attempts)
	assert.Len(t, report.LastGuess, 1)
}

func TestSimulator_CancelIsPolledEveryGuess(t *testing.T) {
	ks := tinyKeyspace("ab", 2)

	report := NewSimulator(DefaultSimulationSettings()).
		Run("cc", ks, 1000, big.NewFloat(2), nil, cancelAfter(1000))

	assert.Equal(t, domain.StateCancelled, report.State)
	assert.Equal(t, int64(1000), report.Attempts)
}

func TestSimulator_BoundedRunExhausts(t *testing.T) {
	ks := tinyKeyspace("ab", 1)
	settings := DefaultSimulationSettings()
	settings.Bounded = true

	report := NewSimulator(settings).Run("c", ks, 1000, big.NewFloat(47.5), nil, nil)

	assert.Equal(t, domain.StateExhausted, report.State)
	assert.Equal(t, int64(48), report.Attempts)
}

func TestSimulator_UnboundedIgnoresTarget(t *testing.T) {
	ks := tinyKeyspace("ab", 1)

	report := NewSimulator(DefaultSimulationSettings()).Run("c", ks, 1000, big.NewFloat(1), nil, cancelAfter(10))

	assert.Equal(t, domain.StateCancelled, report.State)
	assert.Equal(t, int64(10), report.Attempts)
}

func TestSimulator_SnapshotsAreOrdered(t *testing.T) {
	ks := tinyKeyspace("ab", 3)
	target := big.NewFloat(1000)
	clock := newStepClock(time.Millisecond)
	settings := domain.SimulationSettings{BenchmarkAttempts: 10, DashboardInterval: 20}

	var snaps []domain.Snapshot
	report := NewSimulator(settings).WithClock(clock.Now).
		Run("zzz", ks, 1e9, target, func(s domain.Snapshot) { snaps = append(snaps, s) }, cancelAfter(100))

	require.Equal(t, domain.StateCancelled, report.State)
	require.NotEmpty(t, snaps)

	assert.Equal(t, domain.SnapshotInitial, snaps[0].Kind)
	assert.Equal(t, int64(0), snaps[0].Attempts)
	assert.InDelta(t, 1e-6, snaps[0].PredictedSeconds, 1e-15)

	kinds := map[domain.SnapshotKind][]int64{}
	for i, s := range snaps {
		kinds[s.Kind] = append(kinds[s.Kind], s.Attempts)
		if i > 0 {
			assert.GreaterOrEqual(t, s.Attempts, snaps[i-1].Attempts)
		}
	}
	assert.Equal(t, []int64{10}, kinds[domain.SnapshotBenchmark])
	assert.Equal(t, []int64{20, 40, 60, 80}, kinds[domain.SnapshotDashboard])
}

func TestSimulator_DashboardPredictsRemainingAttempts(t *testing.T) {
	ks := tinyKeyspace("ab", 3)
	settings := domain.SimulationSettings{BenchmarkAttempts: 1_000_000, DashboardInterval: 50}

	var dash []domain.Snapshot
	NewSimulator(settings).Run("zzz", ks, 10, big.NewFloat(200), func(s domain.Snapshot) {
		if s.Kind == domain.SnapshotDashboard {
			dash = append(dash, s)
		}
	}, cancelAfter(250))

	require.Len(t, dash, 4)
	assert.Equal(t, 15.0, dash[0].PredictedSeconds) // (200-50)/10
	assert.Equal(t, 0.0, dash[3].PredictedSeconds)  // 200 attempts reached
}

func TestSimulator_BenchmarkNeverFiresForSmallKeyspace(t *testing.T) {
	ks := tinyKeyspace("a", 2)

	report := NewSimulator(DefaultSimulationSettings()).Run("aa", ks, 500_000, big.NewFloat(0.5), nil, nil)

	assert.Equal(t, domain.StateFound, report.State)
	assert.False(t, report.Benchmarked)
	assert.Equal(t, 500_000.0, report.EffectiveRate)
	assert.InDelta(t, 1e-6, report.PredictedSeconds, 1e-15)
}

func TestSimulator_BenchmarkCappedByHardware(t *testing.T) {
	ks := tinyKeyspace("ab", 4)
	clock := newStepClock(time.Microsecond)
	settings := domain.SimulationSettings{BenchmarkAttempts: 100, DashboardInterval: 0}

	report := NewSimulator(settings).WithClock(clock.Now).
		Run("zzzz", ks, 2, big.NewFloat(8), nil, cancelAfter(200))

	require.True(t, report.Benchmarked)
	assert.Greater(t, report.MeasuredRate, 2.0)
	assert.Equal(t, 2.0, report.EffectiveRate)
	assert.Equal(t, 4.0, report.PredictedSeconds)
}

func TestSimulator_ZeroRateIsUnbounded(t *testing.T) {
	ks := tinyKeyspace("a", 1)

	var first domain.Snapshot
	report := NewSimulator(DefaultSimulationSettings()).Run("a", ks, 0, big.NewFloat(1), func(s domain.Snapshot) {
		if s.Kind == domain.SnapshotInitial {
			first = s
		}
	}, nil)

	assert.True(t, math.IsInf(first.PredictedSeconds, 1))
	assert.True(t, math.IsInf(report.PredictedSeconds, 1))
}

func TestSimulator_SeededRunsRepeat(t *testing.T) {
	ks := tinyKeyspace("abcdefgh", 3)
	run := func() domain.FinalReport {
		return NewSimulator(DefaultSimulationSettings()).WithSeed(99).Run("hhh", ks, 1000, big.NewFloat(256), nil, cancelAfter(5000))
	}

	a, b := run(), run()
	assert.Equal(t, a.Attempts, b.Attempts)
	assert.Equal(t, a.LastGuess, b.LastGuess)
}
