package algorithm

import (
	"bytes"
	"math/big"
	"time"
	"unicode/utf8"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/utils/random"
)

const (
	DefaultBenchmarkAttempts int64 = 100_000
	DefaultDashboardInterval int64 = 500_000
)

func DefaultSimulationSettings() domain.SimulationSettings {
	return domain.SimulationSettings{
		BenchmarkAttempts: DefaultBenchmarkAttempts,
		DashboardInterval: DefaultDashboardInterval,
	}
}

// attackState is owned by a single Run call and never escapes it.
type attackState struct {
	attempts  int64
	found     bool
	guess     []byte
	startTime time.Time
}

type Simulator struct {
	settings   domain.SimulationSettings
	newSampler func(alphabet []byte) *random.Sampler
	now        func() time.Time
}

func NewSimulator(settings domain.SimulationSettings) *Simulator {
	return &Simulator{
		settings: settings,
		newSampler: func(alphabet []byte) *random.Sampler {
			return random.NewSampler(alphabet, nil)
		},
		now: time.Now,
	}
}

// WithSeed makes every run of s draw the same guess sequence.
func (s *Simulator) WithSeed(seed uint64) *Simulator {
	s.newSampler = func(alphabet []byte) *random.Sampler {
		return random.NewSeededSampler(alphabet, seed)
	}
	return s
}

func (s *Simulator) WithClock(now func() time.Time) *Simulator {
	s.now = now
	return s
}

func (s *Simulator) Settings() domain.SimulationSettings {
	return s.settings
}

// RunSimulation runs one attack with the default settings.
func RunSimulation(
	password string,
	keyspace domain.Keyspace,
	hardwareRate float64,
	targetAttempts *big.Float,
	onSnapshot func(domain.Snapshot),
	isCancelled func() bool,
) domain.FinalReport {
	return NewSimulator(DefaultSimulationSettings()).Run(password, keyspace, hardwareRate, targetAttempts, onSnapshot, isCancelled)
}

// Run samples guesses uniformly with replacement from the keyspace alphabet
// until one equals password, the bounded cap is hit, or isCancelled reports
// true. isCancelled is polled once per guess, after the guess is checked.
func (s *Simulator) Run(
	password string,
	keyspace domain.Keyspace,
	hardwareRate float64,
	targetAttempts *big.Float,
	onSnapshot func(domain.Snapshot),
	isCancelled func() bool,
) domain.FinalReport {
	state := &attackState{
		guess:     make([]byte, utf8.RuneCountInString(password)),
		startTime: s.now(),
	}
	want := []byte(password)
	estimator := NewEstimator(hardwareRate, s.settings.BenchmarkAttempts, state.startTime)
	sampler := s.newSampler(keyspace.Alphabet)

	publish := func(kind domain.SnapshotKind, predicted float64) {
		if onSnapshot == nil {
			return
		}
		onSnapshot(domain.Snapshot{
			Kind:             kind,
			Attempts:         state.attempts,
			Rate:             estimator.EffectiveRate(),
			PredictedSeconds: predicted,
			Elapsed:          s.now().Sub(state.startTime),
		})
	}

	publish(domain.SnapshotInitial, Predict(targetAttempts, estimator.EffectiveRate()))

	var limit int64
	bounded := false
	if s.settings.Bounded {
		limit, bounded = attemptCap(targetAttempts)
	}
	interval := s.settings.DashboardInterval

	final := domain.StateRunning
	for final == domain.StateRunning {
		sampler.Fill(state.guess)
		state.attempts++

		switch {
		case bytes.Equal(state.guess, want):
			state.found = true
			final = domain.StateFound
		case bounded && state.attempts >= limit:
			final = domain.StateExhausted
		case isCancelled != nil && isCancelled():
			final = domain.StateCancelled
		default:
			if state.attempts == s.settings.BenchmarkAttempts && estimator.Observe(state.attempts, s.now()) {
				publish(domain.SnapshotBenchmark, PredictRemaining(targetAttempts, state.attempts, estimator.EffectiveRate()))
			}
			if interval > 0 && state.attempts%interval == 0 {
				publish(domain.SnapshotDashboard, PredictRemaining(targetAttempts, state.attempts, estimator.EffectiveRate()))
			}
		}
	}

	measured, benchmarked := estimator.MeasuredRate()
	rate := estimator.EffectiveRate()
	return domain.FinalReport{
		State:            final,
		Found:            state.found,
		Attempts:         state.attempts,
		Elapsed:          s.now().Sub(state.startTime),
		LastGuess:        string(state.guess),
		EffectiveRate:    rate,
		MeasuredRate:     measured,
		Benchmarked:      benchmarked,
		PredictedSeconds: Predict(targetAttempts, rate),
	}
}
