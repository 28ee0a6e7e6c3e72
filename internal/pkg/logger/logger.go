package logger

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DefaultConfig returns the console configuration used by the CLI.
func DefaultConfig() zap.Config {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	cfg.Encoding = "console"
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

// New builds a logger for the given level ("debug", "info", ...) and
// encoding ("console" or "json").
func New(level, encoding string) (*zap.Logger, error) {
	cfg := DefaultConfig()

	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return nil, errors.Wrapf(err, "parse log level %q", level)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	switch strings.ToLower(encoding) {
	case "", "console":
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	default:
		return nil, errors.Newf("unknown log encoding %q", encoding)
	}

	return cfg.Build()
}

// Sync flushes log, ignoring the harmless error stderr returns on some
// platforms.
func Sync(log *zap.Logger) {
	if log == nil {
		return
	}
	_ = log.Sync()
}
