package metrics

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/utils/format"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"

	CategorySession     = "session"
	CategoryTrials      = "trials"
	CategoryPerformance = "performance"
)

type Entry struct {
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Data      any       `json:"data" yaml:"data"`
}

// Reporter buffers entries per category and writes them out on Flush.
type Reporter struct {
	mu      sync.Mutex
	out     io.Writer
	closer  io.Closer
	format  string
	metrics map[string][]Entry
	now     func() time.Time
}

// NewReporter appends reports to the file at path.
func NewReporter(path, reportFormat string) (*Reporter, error) {
	f, err := normalizeFormat(reportFormat)
	if err != nil {
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open report file %s", path)
	}
	r := newReporter(file, f)
	r.closer = file
	return r, nil
}

func NewWriterReporter(w io.Writer, reportFormat string) (*Reporter, error) {
	f, err := normalizeFormat(reportFormat)
	if err != nil {
		return nil, err
	}
	return newReporter(w, f), nil
}

func newReporter(w io.Writer, reportFormat string) *Reporter {
	return &Reporter{
		out:     w,
		format:  reportFormat,
		metrics: make(map[string][]Entry),
		now:     time.Now,
	}
}

func normalizeFormat(f string) (string, error) {
	switch strings.ToLower(f) {
	case "", FormatJSON:
		return FormatJSON, nil
	case FormatYAML, "yml":
		return FormatYAML, nil
	}
	return "", errors.Mark(errors.Newf("unknown report format %q", f), domain.ErrConfiguration)
}

func (r *Reporter) Record(category string, data any) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.metrics[category] = append(r.metrics[category], Entry{
		Timestamp: r.now(),
		Data:      data,
	})
}

// Flush writes every buffered entry and clears the buffer. Nothing is
// written when the buffer is empty.
func (r *Reporter) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.metrics) == 0 {
		return nil
	}

	var (
		data []byte
		err  error
	)
	switch r.format {
	case FormatYAML:
		data, err = r.marshalYAML()
	default:
		data, err = json.MarshalIndent(r.metrics, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return errors.Wrap(err, "encode report")
	}

	if _, err := r.out.Write(data); err != nil {
		return errors.Wrap(err, "write report")
	}

	r.metrics = make(map[string][]Entry)
	return nil
}

// marshalYAML emits one document per flush so appended reports stay
// parseable as a stream.
func (r *Reporter) marshalYAML() ([]byte, error) {
	data, err := yaml.Marshal(r.metrics)
	if err != nil {
		return nil, err
	}
	return append([]byte("---\n"), data...), nil
}

func (r *Reporter) Close() error {
	if err := r.Flush(); err != nil {
		return errors.Wrap(err, "failed to flush metrics")
	}
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// SessionRecord is the exported summary of one simulation session. Times
// are pre-formatted because predictions may be infinite.
type SessionRecord struct {
	JobID             string                 `json:"jobId" yaml:"jobId"`
	Hardware          string                 `json:"hardware" yaml:"hardware"`
	HardwareRate      float64                `json:"hardwareRate" yaml:"hardwareRate"`
	Target            string                 `json:"target" yaml:"target"`
	PasswordLength    int                    `json:"passwordLength" yaml:"passwordLength"`
	Strength          string                 `json:"strength" yaml:"strength"`
	Score             int                    `json:"score" yaml:"score"`
	CharacterSets     string                 `json:"characterSets" yaml:"characterSets"`
	AlphabetSize      int                    `json:"alphabetSize" yaml:"alphabetSize"`
	TotalCombinations string                 `json:"totalCombinations" yaml:"totalCombinations"`
	TargetAttempts    string                 `json:"targetAttempts" yaml:"targetAttempts"`
	EstimatedTime     string                 `json:"estimatedTime" yaml:"estimatedTime"`
	Outcome           string                 `json:"outcome,omitempty" yaml:"outcome,omitempty"`
	Attempts          int64                  `json:"attempts" yaml:"attempts"`
	Elapsed           time.Duration          `json:"elapsed" yaml:"elapsed"`
	EffectiveRate     float64                `json:"effectiveRate" yaml:"effectiveRate"`
	Benchmarked       bool                   `json:"benchmarked" yaml:"benchmarked"`
	PredictedTime     string                 `json:"predictedTime,omitempty" yaml:"predictedTime,omitempty"`
	Resources         domain.ResourceMetrics `json:"resources" yaml:"resources"`
	Performance       *PerformanceMetrics    `json:"performance,omitempty" yaml:"performance,omitempty"`
}

// NewSessionRecord summarises an analysis and, when result is non-nil, the
// simulation that followed it.
func NewSessionRecord(a *domain.Analysis, result *domain.SimulationResult, perf *PerformanceMetrics) SessionRecord {
	rec := SessionRecord{Performance: perf}
	if a != nil {
		rec.Hardware = a.Hardware.Label
		rec.HardwareRate = a.Hardware.Rate
		rec.Target = a.Settings.Target.Label()
		rec.PasswordLength = a.Profile.Length
		rec.Strength = string(a.Profile.Strength)
		rec.Score = a.Profile.Score
		rec.CharacterSets = a.Keyspace.Summary()
		rec.AlphabetSize = a.Keyspace.Size
		rec.TotalCombinations = format.BigInt(a.Keyspace.TotalCombinations)
		rec.TargetAttempts = format.BigFloat(a.TargetAttempts)
		rec.EstimatedTime = format.FormatDuration(a.PredictedSeconds)
	}
	if result != nil {
		rec.JobID = result.JobID
		rec.Outcome = string(result.Report.State)
		rec.Attempts = result.Report.Attempts
		rec.Elapsed = result.Report.Elapsed
		rec.EffectiveRate = result.Report.EffectiveRate
		rec.Benchmarked = result.Report.Benchmarked
		rec.PredictedTime = format.FormatDuration(result.Report.PredictedSeconds)
		rec.Resources = result.Resources
	}
	return rec
}
