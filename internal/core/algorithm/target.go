package algorithm

import (
	"math"
	"math/big"

	"passwordCrackerSim/internal/core/domain"
)

// ComputeTargetAttempts scales the keyspace by the fraction a uniform brute
// force is assumed to need: half on average, all of it in the worst case.
// The result keeps every bit of total, so the halving is exact.
func ComputeTargetAttempts(total *big.Int, mode domain.TargetMode) (*big.Float, error) {
	factor, ok := mode.Factor()
	if !ok {
		return nil, domain.WrapConfigurationError("unknown target mode %q", mode)
	}
	if total == nil {
		total = big.NewInt(0)
	}
	prec := uint(total.BitLen()) + 64
	target := new(big.Float).SetPrec(prec).SetInt(total)
	return target.Mul(target, new(big.Float).SetPrec(prec).SetFloat64(factor)), nil
}

// Predict returns the seconds needed to perform target attempts at rate.
// A non-positive rate yields +Inf.
func Predict(target *big.Float, rate float64) float64 {
	if target == nil || rate <= 0 || math.IsNaN(rate) {
		return math.Inf(1)
	}
	q := new(big.Float).SetPrec(target.Prec() + 64).Quo(target, big.NewFloat(rate))
	seconds, _ := q.Float64()
	return seconds
}

// PredictRemaining is Predict applied to the attempts still outstanding.
func PredictRemaining(target *big.Float, attempts int64, rate float64) float64 {
	if target == nil {
		return math.Inf(1)
	}
	remaining := new(big.Float).SetPrec(target.Prec()).Sub(target, new(big.Float).SetInt64(attempts))
	if remaining.Sign() < 0 {
		remaining.SetInt64(0)
	}
	return Predict(remaining, rate)
}

// attemptCap converts a target into the attempt count at which a bounded run
// stops: the first integer not below target. ok is false when that count
// does not fit an int64, in which case the cap can never be reached.
func attemptCap(target *big.Float) (limit int64, ok bool) {
	if target == nil {
		return 0, false
	}
	i, acc := target.Int(nil)
	if acc == big.Below {
		i.Add(i, big.NewInt(1))
	}
	if !i.IsInt64() {
		return 0, false
	}
	return i.Int64(), true
}
