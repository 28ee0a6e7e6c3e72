package algorithm

import (
	"time"
)

// Estimator holds the best known attempts/second figure for one run. It
// starts at the hardware's declared rate and takes a single local benchmark
// once benchmarkAttempts guesses have been made.
type Estimator struct {
	theoretical       float64
	benchmarkAttempts int64
	start             time.Time

	measured    float64
	benchmarked bool
}

func NewEstimator(theoretical float64, benchmarkAttempts int64, start time.Time) *Estimator {
	return &Estimator{
		theoretical:       theoretical,
		benchmarkAttempts: benchmarkAttempts,
		start:             start,
	}
}

// Observe reports whether this call completed the benchmark. It fires at most
// once per run, and only if wall-clock time has actually passed.
func (e *Estimator) Observe(attempts int64, now time.Time) bool {
	if e.benchmarked || attempts != e.benchmarkAttempts {
		return false
	}
	elapsed := now.Sub(e.start).Seconds()
	if elapsed <= 0 {
		return false
	}
	e.measured = float64(e.benchmarkAttempts) / elapsed
	e.benchmarked = true
	return true
}

// EffectiveRate never exceeds the declared hardware ceiling: the local loop
// does no real hashing and would otherwise look absurdly fast.
func (e *Estimator) EffectiveRate() float64 {
	if !e.benchmarked {
		return e.theoretical
	}
	return min(e.measured, e.theoretical)
}

func (e *Estimator) MeasuredRate() (float64, bool) {
	return e.measured, e.benchmarked
}

func (e *Estimator) TheoreticalRate() float64 {
	return e.theoretical
}
