package config

import (
	"io/fs"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"passwordCrackerSim/internal/core/algorithm"
	"passwordCrackerSim/internal/core/domain"
)

const (
	EnvPrefix       = "BFSIM"
	DefaultFileName = "bfsim"
	DefaultEnvFile  = ".env"
)

// Keys double as flag names, YAML keys and (upper-cased, prefixed) env names.
const (
	KeyHardware          = "hardware"
	KeyTarget            = "target"
	KeyBounded           = "bounded"
	KeyBenchmarkAttempts = "benchmark-attempts"
	KeyDashboardInterval = "dashboard-interval"
	KeyMetricsInterval   = "metrics-interval"
	KeyLogLevel          = "log-level"
	KeyLogFormat         = "log-format"
	KeyReportFormat      = "report-format"
	KeyReportPath        = "report"
	KeyUI                = "ui"
)

type Config struct {
	Hardware          string        `mapstructure:"hardware" validate:"required"`
	Target            string        `mapstructure:"target" validate:"required"`
	Bounded           bool          `mapstructure:"bounded"`
	BenchmarkAttempts int64         `mapstructure:"benchmark-attempts" validate:"gte=1"`
	DashboardInterval int64         `mapstructure:"dashboard-interval" validate:"gte=0"`
	MetricsInterval   time.Duration `mapstructure:"metrics-interval" validate:"gt=0"`
	LogLevel          string        `mapstructure:"log-level" validate:"oneof=debug info warn error"`
	LogFormat         string        `mapstructure:"log-format" validate:"oneof=console json"`
	ReportFormat      string        `mapstructure:"report-format" validate:"oneof=json yaml"`
	ReportPath        string        `mapstructure:"report"`
	UI                string        `mapstructure:"ui" validate:"oneof=console tui"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Hardware:          string(domain.TierCPU),
		Target:            "average",
		BenchmarkAttempts: algorithm.DefaultBenchmarkAttempts,
		DashboardInterval: algorithm.DefaultDashboardInterval,
		MetricsInterval:   time.Second,
		LogLevel:          "info",
		LogFormat:         "console",
		ReportFormat:      "json",
		UI:                "console",
	}
}

// NewViper returns a viper instance carrying the defaults and reading
// BFSIM_* environment variables.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func SetDefaults(v *viper.Viper) {
	d := NewDefaultConfig()
	v.SetDefault(KeyHardware, d.Hardware)
	v.SetDefault(KeyTarget, d.Target)
	v.SetDefault(KeyBounded, d.Bounded)
	v.SetDefault(KeyBenchmarkAttempts, d.BenchmarkAttempts)
	v.SetDefault(KeyDashboardInterval, d.DashboardInterval)
	v.SetDefault(KeyMetricsInterval, d.MetricsInterval)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
	v.SetDefault(KeyReportFormat, d.ReportFormat)
	v.SetDefault(KeyReportPath, d.ReportPath)
	v.SetDefault(KeyUI, d.UI)
}

// LoadDotEnv exports the variables of the given .env files into the
// process environment. Missing files are skipped; variables already set
// win over the file.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{DefaultEnvFile}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errors.Wrapf(err, "load env file %s", p)
		}
	}
	return nil
}

// ReadConfigFile reads path, or ./bfsim.yaml when path is empty. Only an
// explicitly named file is required to exist.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(DefaultFileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.Wrapf(err, "read config file %q", path)
	}
	return nil
}

// BindFlags binds every flag of fs to the key of the same name.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	var result error
	fs.VisitAll(func(f *pflag.Flag) {
		if err := v.BindPFlag(f.Name, f); err != nil {
			result = multierror.Append(result, err)
		}
	})
	return result
}

// Load decodes and validates the merged configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Mark(errors.Wrap(err, "decode configuration"), domain.ErrConfiguration)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.ReportFormat = strings.ToLower(cfg.ReportFormat)
	cfg.UI = strings.ToLower(cfg.UI)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.WithHint(
			errors.Mark(errors.Wrap(err, "invalid configuration"), domain.ErrConfiguration),
			"run with --help to see accepted values",
		)
	}
	_, err := c.Settings()
	return err
}

// Settings resolves the hardware and target names.
func (c *Config) Settings() (domain.AttackSettings, error) {
	tier, err := domain.ParseHardwareTier(c.Hardware)
	if err != nil {
		return domain.AttackSettings{}, err
	}
	mode, err := domain.ParseTargetMode(c.Target)
	if err != nil {
		return domain.AttackSettings{}, err
	}
	return domain.AttackSettings{Hardware: tier, Target: mode}, nil
}

func (c *Config) SimulationSettings() domain.SimulationSettings {
	return domain.SimulationSettings{
		BenchmarkAttempts: c.BenchmarkAttempts,
		DashboardInterval: c.DashboardInterval,
		Bounded:           c.Bounded,
	}
}
