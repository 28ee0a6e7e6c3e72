package service

import (
	"context"
	"math/big"
	"runtime"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"passwordCrackerSim/internal/core/algorithm"
	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/pkg/concurrency"
	"passwordCrackerSim/internal/pkg/metrics"
	"passwordCrackerSim/internal/port"
)

const (
	MetricsUpdateInterval = time.Second
	MaxTrialWorkers       = 16
	TrialQueueSize        = 64

	// MaxTrialKeyspace keeps every trial short enough to finish.
	MaxTrialKeyspace = 1_000_000
)

type activeJob struct {
	job      *domain.SimulationJob
	alg      algorithm.Algorithm
	finished chan struct{}
	result   *domain.SimulationResult
}

type SimulationService struct {
	settings     domain.SimulationSettings
	metrics      *metrics.Collector
	log          *zap.Logger
	newSimulator func(domain.SimulationSettings) *algorithm.Simulator

	mu     sync.Mutex
	active string
	jobs   map[string]*activeJob
}

type Option func(*SimulationService)

// WithCollector replaces the default gopsutil-backed collector.
func WithCollector(c *metrics.Collector) Option {
	return func(s *SimulationService) { s.metrics = c }
}

// WithSimulatorFactory controls how each run's Simulator is built.
func WithSimulatorFactory(fn func(domain.SimulationSettings) *algorithm.Simulator) Option {
	return func(s *SimulationService) { s.newSimulator = fn }
}

func NewSimulationService(settings domain.SimulationSettings, log *zap.Logger, opts ...Option) *SimulationService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &SimulationService{
		settings:     settings,
		log:          log,
		newSimulator: algorithm.NewSimulator,
		jobs:         make(map[string]*activeJob),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.NewCollector(MetricsUpdateInterval, log)
	}
	return s
}

var _ port.SimulationService = (*SimulationService)(nil)

// Analyze builds the pre-attack report. It does no sampling.
func (s *SimulationService) Analyze(password string, settings domain.AttackSettings) (*domain.Analysis, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	hw, _ := settings.Hardware.Profile()

	profile := algorithm.AssessStrength(password)
	keyspace := algorithm.BuildKeyspace(password, profile)
	target, err := algorithm.ComputeTargetAttempts(keyspace.TotalCombinations, settings.Target)
	if err != nil {
		return nil, err
	}

	return &domain.Analysis{
		Profile:          profile,
		Keyspace:         keyspace,
		Settings:         settings,
		Hardware:         hw,
		TargetAttempts:   target,
		PredictedSeconds: algorithm.Predict(target, hw.Rate),
	}, nil
}

// StartSimulation launches a live attack against password on its own
// goroutine. Only one simulation may run at a time.
func (s *SimulationService) StartSimulation(ctx context.Context, password string, settings domain.AttackSettings) (*domain.SimulationJob, error) {
	analysis, err := s.Analyze(password, settings)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != "" {
		return nil, errors.WithHint(
			errors.Wrapf(domain.ErrSimulationActive, "simulation %s is still running", s.active),
			"stop the running simulation before starting another",
		)
	}

	alg := algorithm.NewBruteForce(s.newSimulator(s.settings))
	alg.SetJob(algorithm.Job{
		Password:       password,
		Keyspace:       analysis.Keyspace,
		HardwareRate:   analysis.Hardware.Rate,
		TargetAttempts: analysis.TargetAttempts,
	})

	done := make(chan domain.FinalReport, 1)
	job := &domain.SimulationJob{
		ID:        uuid.NewString(),
		Status:    domain.StateRunning,
		StartTime: time.Now(),
		Password:  password,
		Analysis:  analysis,
		Done:      done,
	}
	aj := &activeJob{job: job, alg: alg, finished: make(chan struct{})}

	s.metrics.StartCollection(job.ID)
	snapshots, reports := alg.Start(ctx)
	job.Snapshots = snapshots

	s.active = job.ID
	s.jobs[job.ID] = aj

	s.log.Info("simulation started",
		zap.String("job_id", job.ID),
		zap.String("hardware", string(settings.Hardware)),
		zap.String("target", string(settings.Target)),
		zap.Int("password_length", analysis.Profile.Length),
		zap.Int("alphabet_size", analysis.Keyspace.Size),
		zap.Stringer("total_combinations", analysis.Keyspace.TotalCombinations),
	)

	go s.supervise(aj, reports, done)
	return job, nil
}

func (s *SimulationService) supervise(aj *activeJob, reports <-chan domain.FinalReport, done chan<- domain.FinalReport) {
	report := <-reports
	resources := s.metrics.StopCollection(aj.job.ID)

	s.mu.Lock()
	aj.job.Status = report.State
	aj.result = &domain.SimulationResult{
		JobID:     aj.job.ID,
		Report:    report,
		Resources: resources,
		StartTime: aj.job.StartTime,
		EndTime:   time.Now(),
	}
	if s.active == aj.job.ID {
		s.active = ""
	}
	s.mu.Unlock()

	s.log.Info("simulation finished",
		zap.String("job_id", aj.job.ID),
		zap.String("state", string(report.State)),
		zap.Int64("attempts", report.Attempts),
		zap.Duration("elapsed", report.Elapsed),
		zap.Float64("effective_rate", report.EffectiveRate),
		zap.Bool("benchmarked", report.Benchmarked),
	)

	close(aj.finished)
	done <- report
	close(done)
}

func (s *SimulationService) StopSimulation(jobID string) error {
	s.mu.Lock()
	aj, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok {
		return errors.Wrapf(domain.ErrJobNotFound, "job %s", jobID)
	}
	aj.alg.Stop()
	s.log.Debug("simulation stop requested", zap.String("job_id", jobID))
	return nil
}

// Wait blocks until job ends and returns its result. The job is forgotten
// once its result has been collected.
func (s *SimulationService) Wait(ctx context.Context, job *domain.SimulationJob) (*domain.SimulationResult, error) {
	if job == nil {
		return nil, errors.Wrap(domain.ErrJobNotFound, "nil job")
	}
	s.mu.Lock()
	aj, ok := s.jobs[job.ID]
	s.mu.Unlock()
	if !ok {
		return nil, errors.Wrapf(domain.ErrJobNotFound, "job %s", job.ID)
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-aj.finished:
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, job.ID)
	return aj.result, nil
}

// Simulate runs one attack to completion, passing every snapshot to
// observer. Cancelling ctx stops the attack; the cancelled report is still
// returned.
func (s *SimulationService) Simulate(ctx context.Context, password string, settings domain.AttackSettings, observer port.SnapshotObserver) (*domain.SimulationResult, error) {
	job, err := s.StartSimulation(ctx, password, settings)
	if err != nil {
		return nil, err
	}

	for snap := range job.Snapshots {
		if snap.Kind == domain.SnapshotBenchmark {
			s.log.Info("benchmark complete",
				zap.String("job_id", job.ID),
				zap.Int64("attempts", snap.Attempts),
				zap.Float64("rate", snap.Rate),
			)
		}
		if observer != nil {
			observer.OnSnapshot(snap)
		}
	}

	return s.Wait(context.WithoutCancel(ctx), job)
}

// RunTrials repeats an attack on a small synthetic keyspace. Every trial
// owns its own sampler and state; the mean attempt count converges on the
// keyspace size.
func (s *SimulationService) RunTrials(ctx context.Context, alphabet string, password string, trials, workers int) (*domain.TrialSummary, error) {
	keyspace, err := trialKeyspace(alphabet, password)
	if err != nil {
		return nil, err
	}
	if trials < 1 {
		return nil, invalidTrial("trial count %d", trials)
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, MaxTrialWorkers, trials)

	size, _ := new(big.Float).SetInt(keyspace.TotalCombinations).Float64()
	target := new(big.Float).SetInt(keyspace.TotalCombinations)
	settings := domain.SimulationSettings{BenchmarkAttempts: s.settings.BenchmarkAttempts}
	rate := domain.HardwareCatalogue()[0].Rate

	pool := concurrency.NewWorkerPool(workers, TrialQueueSize)
	start := time.Now()
	pool.Start(ctx)

	go func() {
		defer pool.Stop()
		for i := 0; i < trials; i++ {
			err := pool.Submit(ctx, concurrency.Task{
				ID: uuid.NewString(),
				Run: func(ctx context.Context) (domain.FinalReport, error) {
					report := s.newSimulator(settings).Run(password, keyspace, rate, target, nil, func() bool {
						return ctx.Err() != nil
					})
					if report.State != domain.StateFound {
						return report, errors.Newf("trial ended %s", report.State)
					}
					return report, nil
				},
			})
			if err != nil {
				return
			}
		}
	}()

	summary := &domain.TrialSummary{
		Trials:           trials,
		KeyspaceSize:     size,
		ExpectedAttempts: size,
	}
	var total int64
	for res := range pool.Results() {
		if res.Error != nil {
			summary.Failed++
			continue
		}
		summary.Found++
		total += res.Report.Attempts
		if summary.MinAttempts == 0 || res.Report.Attempts < summary.MinAttempts {
			summary.MinAttempts = res.Report.Attempts
		}
		summary.MaxAttempts = max(summary.MaxAttempts, res.Report.Attempts)
	}
	summary.Elapsed = time.Since(start)
	if summary.Found > 0 {
		summary.MeanAttempts = float64(total) / float64(summary.Found)
	}

	s.log.Info("trials finished",
		zap.Int("trials", trials),
		zap.Int("found", summary.Found),
		zap.Float64("mean_attempts", summary.MeanAttempts),
		zap.Float64("expected_attempts", summary.ExpectedAttempts),
		zap.Int("workers", workers),
	)

	if err := ctx.Err(); err != nil {
		return summary, errors.Wrap(err, "trials interrupted")
	}
	return summary, nil
}

// trialKeyspace builds a keyspace over exactly the characters of alphabet.
func trialKeyspace(alphabet, password string) (domain.Keyspace, error) {
	seen := make(map[byte]bool, len(alphabet))
	chars := make([]byte, 0, len(alphabet))
	for i := 0; i < len(alphabet); i++ {
		c := alphabet[i]
		if c >= 0x80 {
			return domain.Keyspace{}, invalidTrial("alphabet must be ASCII")
		}
		if !seen[c] {
			seen[c] = true
			chars = append(chars, c)
		}
	}
	if len(chars) == 0 {
		return domain.Keyspace{}, invalidTrial("alphabet is empty")
	}
	for i := 0; i < len(password); i++ {
		if !seen[password[i]] {
			return domain.Keyspace{}, invalidTrial("password character %q is not in the alphabet", password[i])
		}
	}

	total := new(big.Int).Exp(big.NewInt(int64(len(chars))), big.NewInt(int64(len(password))), nil)
	if total.Cmp(big.NewInt(MaxTrialKeyspace)) > 0 {
		return domain.Keyspace{}, invalidTrial("keyspace of %s combinations is too large for trials", total)
	}

	return domain.Keyspace{
		Alphabet:          chars,
		Size:              len(chars),
		TotalCombinations: total,
		Contributions:     []domain.Contribution{{Count: len(chars), Label: "custom alphabet"}},
	}, nil
}

func invalidTrial(format string, args ...interface{}) error {
	return errors.WithHint(
		errors.Wrapf(domain.ErrInvalidInput, format, args...),
		"trials need a non-empty ASCII alphabet containing every password character, at most 1,000,000 combinations and at least one run",
	)
}
