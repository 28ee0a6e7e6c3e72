package domain

import (
	"math/big"
	"strings"
	"time"
)

type PasswordProfile struct {
	Length     int
	HasUpper   bool
	HasLower   bool
	HasDigit   bool
	HasSpecial bool
	Score      int
	Strength   StrengthLevel
	Feedback   []string
}

// MeterPercent maps the score onto a 0-100 strength meter.
func (p PasswordProfile) MeterPercent() int {
	return min(p.Score*10, 100)
}

type Contribution struct {
	Count int
	Label string
}

type Keyspace struct {
	Alphabet          []byte
	Size              int
	TotalCombinations *big.Int
	Contributions     []Contribution
}

func (k Keyspace) Summary() string {
	parts := make([]string, 0, len(k.Contributions))
	for _, c := range k.Contributions {
		parts = append(parts, c.Label)
	}
	return strings.Join(parts, ", ")
}

type AttackSettings struct {
	Hardware HardwareTier `json:"hardware" yaml:"hardware"`
	Target   TargetMode   `json:"target" yaml:"target"`
}

func (s AttackSettings) Validate() error {
	if _, ok := s.Hardware.Profile(); !ok {
		return WrapConfigurationError("unknown hardware tier %q", s.Hardware)
	}
	if _, ok := s.Target.Factor(); !ok {
		return WrapConfigurationError("unknown target mode %q", s.Target)
	}
	return nil
}

// SimulationSettings tunes the sampling loop.
type SimulationSettings struct {
	BenchmarkAttempts int64
	DashboardInterval int64
	Bounded           bool
}

type Snapshot struct {
	Kind             SnapshotKind  `json:"kind" yaml:"kind"`
	Attempts         int64         `json:"attempts" yaml:"attempts"`
	Rate             float64       `json:"rate" yaml:"rate"`
	PredictedSeconds float64       `json:"predictedSeconds" yaml:"predictedSeconds"`
	Elapsed          time.Duration `json:"elapsed" yaml:"elapsed"`
}

type FinalReport struct {
	State            SimulationState `json:"state" yaml:"state"`
	Found            bool            `json:"found" yaml:"found"`
	Attempts         int64           `json:"attempts" yaml:"attempts"`
	Elapsed          time.Duration   `json:"elapsed" yaml:"elapsed"`
	LastGuess        string          `json:"lastGuess" yaml:"lastGuess"`
	EffectiveRate    float64         `json:"effectiveRate" yaml:"effectiveRate"`
	MeasuredRate     float64         `json:"measuredRate,omitempty" yaml:"measuredRate,omitempty"`
	Benchmarked      bool            `json:"benchmarked" yaml:"benchmarked"`
	PredictedSeconds float64         `json:"predictedSeconds" yaml:"predictedSeconds"`
}

// Analysis is the pre-attack report for one password and settings pair.
type Analysis struct {
	Profile          PasswordProfile
	Keyspace         Keyspace
	Settings         AttackSettings
	Hardware         HardwareProfile
	TargetAttempts   *big.Float
	PredictedSeconds float64
}

type ResourceMetrics struct {
	CPUUsage      float64   `json:"cpuUsage" yaml:"cpuUsage"`
	MemoryUsedPct float64   `json:"memoryUsedPct" yaml:"memoryUsedPct"`
	HeapAllocMB   int64     `json:"heapAllocMB" yaml:"heapAllocMB"`
	Samples       int       `json:"samples" yaml:"samples"`
	LastUpdated   time.Time `json:"lastUpdated" yaml:"lastUpdated"`
}

type SimulationJob struct {
	ID        string
	Status    SimulationState
	StartTime time.Time
	Password  string
	Analysis  *Analysis
	Snapshots <-chan Snapshot
	Done      <-chan FinalReport
}

type SimulationResult struct {
	JobID     string          `json:"jobId" yaml:"jobId"`
	Report    FinalReport     `json:"report" yaml:"report"`
	Resources ResourceMetrics `json:"resources" yaml:"resources"`
	StartTime time.Time       `json:"startTime" yaml:"startTime"`
	EndTime   time.Time       `json:"endTime" yaml:"endTime"`
}

// TrialSummary aggregates repeated independent simulations of one
// synthetic keyspace.
type TrialSummary struct {
	Trials           int           `json:"trials" yaml:"trials"`
	Found            int           `json:"found" yaml:"found"`
	Failed           int           `json:"failed" yaml:"failed"`
	KeyspaceSize     float64       `json:"keyspaceSize" yaml:"keyspaceSize"`
	MeanAttempts     float64       `json:"meanAttempts" yaml:"meanAttempts"`
	MinAttempts      int64         `json:"minAttempts" yaml:"minAttempts"`
	MaxAttempts      int64         `json:"maxAttempts" yaml:"maxAttempts"`
	ExpectedAttempts float64       `json:"expectedAttempts" yaml:"expectedAttempts"`
	Elapsed          time.Duration `json:"elapsed" yaml:"elapsed"`
}
