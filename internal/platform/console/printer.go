package console

import (
	"fmt"
	"io"
	"math/big"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/time/rate"

	"passwordCrackerSim/internal/core/algorithm"
	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/utils/format"
)

const (
	ruleWidth = 50

	// DefaultRefresh caps live progress redraws.
	DefaultRefresh = 100 * time.Millisecond
)

// Printer renders reports and the live progress line to a terminal.
type Printer struct {
	out     io.Writer
	limiter *rate.Limiter

	title   func(a ...interface{}) string
	heading func(a ...interface{}) string
	good    func(a ...interface{}) string
	warn    func(a ...interface{}) string
	bad     func(a ...interface{}) string

	progressShown bool
}

// NewPrinter writes to out. With colour false every style is plain text;
// refresh is the minimum gap between two live progress redraws.
func NewPrinter(out io.Writer, colour bool, refresh time.Duration) *Printer {
	styles := []*color.Color{
		color.New(color.FgCyan, color.Bold),
		color.New(color.FgBlue, color.Bold),
		color.New(color.FgGreen),
		color.New(color.FgYellow),
		color.New(color.FgRed, color.Bold),
	}
	for _, c := range styles {
		if colour {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	limit := rate.Inf
	if refresh > 0 {
		limit = rate.Every(refresh)
	}

	return &Printer{
		out:     out,
		limiter: rate.NewLimiter(limit, 1),
		title:   styles[0].SprintFunc(),
		heading: styles[1].SprintFunc(),
		good:    styles[2].SprintFunc(),
		warn:    styles[3].SprintFunc(),
		bad:     styles[4].SprintFunc(),
	}
}

func (p *Printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format, args...)
}

func (p *Printer) rule() string {
	return strings.Repeat("=", ruleWidth)
}

// Banner prints a title between two rules.
func (p *Printer) Banner(title string) {
	p.printf("\n%s\n%s\n%s\n", p.rule(), p.title(title), p.rule())
}

func (p *Printer) Warn(msg string) {
	p.printf("%s\n", p.warn(msg))
}

func (p *Printer) HardwareMenu() {
	p.printf("\n%s\n", p.heading("--- Choose Attacker Hardware Speed ---"))
	for i, hw := range domain.HardwareCatalogue() {
		p.printf("[%d] %s (%s attempts/s)\n", i+1, hw.Label, format.Whole(hw.Rate))
	}
}

func (p *Printer) TargetMenu() {
	p.printf("\n%s\n", p.heading("--- Choose Prediction Target ---"))
	p.printf("[1] 50%% (Average Case - Expected Crack Time)\n")
	p.printf("[2] 100%% (Worst Case - Maximum Time)\n")
}

// Tiers lists the hardware catalogue.
func (p *Printer) Tiers() {
	p.Banner("Hardware Tiers")
	for _, hw := range domain.HardwareCatalogue() {
		p.printf("%-5s %-26s %s attempts/s\n", hw.Tier, hw.Label, format.Whole(hw.Rate))
	}
}

// Analysis prints the pre-attack report.
func (p *Printer) Analysis(a *domain.Analysis) {
	p.Banner("--- PRE-ATTACK ANALYSIS REPORT ---")
	p.printf("Password Length: %d\n", a.Profile.Length)
	p.printf("Strength Level: %s (Score: %d/10)\n", p.strength(a.Profile.Strength), a.Profile.Score)
	p.printf("Strength Meter: %s\n", meter(a.Profile.MeterPercent()))
	p.printf("Feedback:\n")
	for _, item := range a.Profile.Feedback {
		p.printf("  - %s\n", item)
	}

	p.printf("\n%s\n", p.heading("--- Keyspace & Speed ---"))
	p.printf("Hardware Speed: %s (%s attempts/s)\n", a.Hardware.Label, format.Whole(a.Hardware.Rate))
	p.printf("Keyspace Base: %d characters (%s)\n", a.Keyspace.Size, a.Keyspace.Summary())
	p.printf("Total Combinations: %s\n", format.BigInt(a.Keyspace.TotalCombinations))
	p.printf("Prediction Target: %s\n", a.Settings.Target.Label())
	p.printf("Target Attempts: %s\n", format.BigFloat(a.TargetAttempts))
	p.printf("Predicted Time to Crack: %s\n", format.FormatDuration(a.PredictedSeconds))
}

func (p *Printer) strength(level domain.StrengthLevel) string {
	switch level {
	case domain.StrengthVeryStrong, domain.StrengthStrong:
		return p.good(string(level))
	case domain.StrengthModerate:
		return p.warn(string(level))
	default:
		return p.bad(string(level))
	}
}

func meter(percent int) string {
	const width = 20
	filled := percent * width / 100
	return fmt.Sprintf("[%s%s] %d%%", strings.Repeat("#", filled), strings.Repeat("-", width-filled), percent)
}

// LiveLine is the single-line progress readout.
func LiveLine(attempts int64, rate float64, target *big.Float) string {
	timeLeft := "Calculating..."
	if rate > 0 {
		timeLeft = format.FormatDuration(algorithm.PredictRemaining(target, attempts, rate))
	}
	return fmt.Sprintf("Attempts: %s | Speed: %s attempts/s | Time Left (Est.): %s",
		format.Int(attempts), format.Rate(rate), timeLeft)
}

// Progress redraws the live line in place. Redraws are throttled unless
// force is set.
func (p *Printer) Progress(s domain.Snapshot, target *big.Float, force bool) {
	if !force && !p.limiter.Allow() {
		return
	}
	p.progressShown = true
	p.printf("\r%s", LiveLine(s.Attempts, s.Rate, target))
}

// EndProgress terminates the live line so the next output starts fresh.
func (p *Printer) EndProgress() {
	if p.progressShown {
		p.printf("\n")
		p.progressShown = false
	}
}

// Headline describes how a simulation ended.
func Headline(r domain.FinalReport, target *big.Float) string {
	switch r.State {
	case domain.StateFound:
		return fmt.Sprintf("MATCH FOUND! Password was found in %s attempts.", format.Int(r.Attempts))
	case domain.StateExhausted:
		return fmt.Sprintf("Simulation Finished (Hit target attempts: %s).", format.BigFloat(target))
	case domain.StateCancelled:
		return fmt.Sprintf("Simulation stopped after %s attempts.", format.Int(r.Attempts))
	default:
		return "Simulation ended prematurely."
	}
}

// Final prints the final simulation report.
func (p *Printer) Final(a *domain.Analysis, res *domain.SimulationResult) {
	r := res.Report
	p.Banner("--- FINAL SIMULATION REPORT ---")

	headline := Headline(r, a.TargetAttempts)
	switch r.State {
	case domain.StateFound, domain.StateExhausted:
		p.printf("%s\n", p.good(headline))
	default:
		p.printf("%s\n", p.warn(headline))
	}

	p.printf("Last Guess: %s\n", r.LastGuess)
	p.printf("Actual Attempts in Simulation: %s\n", format.Int(r.Attempts))
	p.printf("Time Taken for Simulation: %.4f seconds\n", r.Elapsed.Seconds())
	speedNote := "theoretical"
	if r.Benchmarked {
		speedNote = "measured"
	}
	p.printf("Device Speed (%s): %s attempts/s\n", speedNote, format.Rate(r.EffectiveRate))
	if res.Resources.Samples > 0 {
		p.printf("Host Load: %.1f%% CPU, %.1f%% memory (%d samples)\n",
			res.Resources.CPUUsage, res.Resources.MemoryUsedPct, res.Resources.Samples)
	}

	p.printf("\n%s\n", p.heading("--- Final Prediction ---"))
	p.printf("Total Combinations: %s\n", format.BigInt(a.Keyspace.TotalCombinations))
	p.printf("Target Attempts (%s): %s\n", a.Settings.Target.Label(), format.BigFloat(a.TargetAttempts))
	p.printf("Predicted Total Time: %s\n\n", format.FormatDuration(r.PredictedSeconds))
}

// Trials prints a convergence experiment summary.
func (p *Printer) Trials(s *domain.TrialSummary) {
	p.Banner("--- TRIAL SUMMARY ---")
	p.printf("Trials: %s (found %s, failed %s)\n", format.Int(int64(s.Trials)), format.Int(int64(s.Found)), format.Int(int64(s.Failed)))
	p.printf("Keyspace Size: %s\n", format.Whole(s.KeyspaceSize))
	p.printf("Mean Attempts: %s (expected %s)\n", format.Rate(s.MeanAttempts), format.Rate(s.ExpectedAttempts))
	p.printf("Attempts Range: %s - %s\n", format.Int(s.MinAttempts), format.Int(s.MaxAttempts))
	p.printf("Elapsed: %.4f seconds\n", s.Elapsed.Seconds())
}
