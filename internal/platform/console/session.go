package console

import (
	"context"
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/pkg/metrics"
	"passwordCrackerSim/internal/port"
)

// Session runs simulations in line mode: pre-attack report, a live
// progress line and the final report.
type Session struct {
	svc      port.SimulationService
	prompter *Prompter
	printer  *Printer
	reporter port.ResultReporter
	log      *zap.Logger
}

// NewSession wires a session. prompter is only needed by Run and reporter
// may be nil.
func NewSession(svc port.SimulationService, prompter *Prompter, printer *Printer, reporter port.ResultReporter, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{svc: svc, prompter: prompter, printer: printer, reporter: reporter, log: log}
}

// Run repeats prompt-driven sessions until the user declines, input ends
// or ctx is cancelled.
func (s *Session) Run(ctx context.Context) error {
	s.printer.Banner("Brute-Force Cracking Simulator (CLI)")

	for {
		err := s.runOnce(ctx)
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, domain.ErrInvalidInput):
			s.printer.Warn("Error: Password cannot be empty. Returning to menu.")
		case err != nil:
			return err
		}

		if ctx.Err() != nil {
			return nil
		}

		again, err := s.prompter.Again()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if !again {
			fmt.Fprintln(s.printer.out, "\nThank you for using the Brute-Force Simulator! Goodbye.")
			return nil
		}
	}
}

func (s *Session) runOnce(ctx context.Context) error {
	s.printer.Banner("New Simulation Session")

	password, err := s.prompter.Password()
	if err != nil {
		return err
	}

	s.printer.HardwareMenu()
	tier, err := s.prompter.Hardware()
	if err != nil {
		return err
	}

	s.printer.TargetMenu()
	mode, err := s.prompter.Target()
	if err != nil {
		return err
	}

	_, err = s.Simulate(ctx, password, domain.AttackSettings{Hardware: tier, Target: mode})
	return err
}

// Simulate runs one attack and prints every stage of it.
func (s *Session) Simulate(ctx context.Context, password string, settings domain.AttackSettings) (*domain.SimulationResult, error) {
	analysis, err := s.svc.Analyze(password, settings)
	if err != nil {
		return nil, err
	}
	s.printer.Analysis(analysis)
	fmt.Fprintln(s.printer.out, "\nStarting simulated attack... (Press Ctrl+C to stop)")

	var result *domain.SimulationResult
	perf, err := metrics.CapturePerformance(func() error {
		var err error
		result, err = s.svc.Simulate(ctx, password, settings, port.SnapshotObserverFunc(func(snap domain.Snapshot) {
			s.printer.Progress(snap, analysis.TargetAttempts, false)
		}))
		return err
	})
	if err != nil {
		s.printer.EndProgress()
		return nil, err
	}

	final := domain.Snapshot{Attempts: result.Report.Attempts, Rate: result.Report.EffectiveRate}
	s.printer.Progress(final, analysis.TargetAttempts, true)
	s.printer.EndProgress()
	s.printer.Final(analysis, result)

	s.record(analysis, result, perf)
	return result, nil
}

// Assess prints the pre-attack report without running an attack.
func (s *Session) Assess(password string, settings domain.AttackSettings) (*domain.Analysis, error) {
	analysis, err := s.svc.Analyze(password, settings)
	if err != nil {
		return nil, err
	}
	s.printer.Analysis(analysis)
	s.record(analysis, nil, nil)
	return analysis, nil
}

// Trials runs a convergence experiment and prints its summary.
func (s *Session) Trials(ctx context.Context, alphabet, password string, trials, workers int) (*domain.TrialSummary, error) {
	summary, err := s.svc.RunTrials(ctx, alphabet, password, trials, workers)
	if summary != nil {
		s.printer.Trials(summary)
		if s.reporter != nil {
			s.reporter.Record(metrics.CategoryTrials, summary)
			s.flush()
		}
	}
	return summary, err
}

func (s *Session) record(a *domain.Analysis, res *domain.SimulationResult, perf *metrics.PerformanceMetrics) {
	if s.reporter == nil {
		return
	}
	s.reporter.Record(metrics.CategorySession, metrics.NewSessionRecord(a, res, perf))
	s.flush()
}

func (s *Session) flush() {
	if err := s.reporter.Flush(); err != nil {
		s.log.Warn("failed to write report", zap.Error(err))
	}
}
