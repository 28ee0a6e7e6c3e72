package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"passwordCrackerSim/internal/config"
	"passwordCrackerSim/internal/core/service"
	"passwordCrackerSim/internal/pkg/logger"
	"passwordCrackerSim/internal/pkg/metrics"
	"passwordCrackerSim/internal/platform/console"
	"passwordCrackerSim/internal/port"
)

// app carries what every subcommand needs once configuration is loaded.
type app struct {
	v        *viper.Viper
	cfg      *config.Config
	log      *zap.Logger
	svc      *service.SimulationService
	reporter *metrics.Reporter
	in       io.Reader
	out      io.Writer
	colour   bool
}

func (a *app) session(prompter *console.Prompter) *console.Session {
	var reporter port.ResultReporter
	if a.reporter != nil {
		reporter = a.reporter
	}
	return console.NewSession(a.svc, prompter, console.NewPrinter(a.out, a.colour, console.DefaultRefresh), reporter, a.log)
}

// NewRootCommand builds the command tree reading from in and writing to out.
func NewRootCommand(in io.Reader, out io.Writer) *cobra.Command {
	a := &app{v: config.NewViper(), in: in, out: out}
	var (
		configFile string
		envFile    string
		noColour   bool
	)

	root := &cobra.Command{
		Use:   "bfsim",
		Short: "Brute-force attack time estimator and live simulator",
		Long: `bfsim estimates how long a brute-force attack against a password would take
on a chosen hardware tier and can run a live random-sampling attack to show
real throughput. It is an educational tool, not a password recovery tool.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(envFile); err != nil {
				return err
			}
			if err := config.ReadConfigFile(a.v, configFile); err != nil {
				return err
			}
			if err := config.BindFlags(a.v, cmd.Flags()); err != nil {
				return errors.Wrap(err, "bind flags")
			}
			cfg, err := config.Load(a.v)
			if err != nil {
				return err
			}
			a.cfg = cfg

			log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}
			a.log = log
			a.colour = !noColour
			a.svc = service.NewSimulationService(
				cfg.SimulationSettings(),
				log,
				service.WithCollector(metrics.NewCollector(cfg.MetricsInterval, log)),
			)

			if cfg.ReportPath != "" {
				reporter, err := metrics.NewReporter(cfg.ReportPath, cfg.ReportFormat)
				if err != nil {
					return err
				}
				a.reporter = reporter
			}
			log.Debug("configuration loaded",
				zap.String("hardware", cfg.Hardware),
				zap.String("target", cfg.Target),
				zap.Bool("bounded", cfg.Bounded),
				zap.String("config_file", a.v.ConfigFileUsed()),
			)
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			defer logger.Sync(a.log)
			if a.reporter != nil {
				return a.reporter.Close()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.SetIn(in)
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file (default ./bfsim.yaml)")
	pf.StringVar(&envFile, "env-file", config.DefaultEnvFile, "dotenv file with BFSIM_* variables")
	pf.BoolVar(&noColour, "no-color", false, "disable coloured output")
	pf.StringP(config.KeyHardware, "H", "CPU", "attacker hardware tier: CPU, GPU or ASIC")
	pf.StringP(config.KeyTarget, "t", "average", "prediction target: average or worst")
	pf.Bool(config.KeyBounded, false, "stop the attack once the target attempts are spent")
	pf.Int64(config.KeyBenchmarkAttempts, 100_000, "attempts before the measured rate is taken")
	pf.Int64(config.KeyDashboardInterval, 500_000, "attempts between progress snapshots (0 disables)")
	pf.Duration(config.KeyMetricsInterval, 0, "host resource sampling interval (default 1s)")
	pf.String(config.KeyLogLevel, "info", "log level: debug, info, warn or error")
	pf.String(config.KeyLogFormat, "console", "log encoding: console or json")
	pf.String(config.KeyReportPath, "", "append a session report to this file")
	pf.String(config.KeyReportFormat, "json", "report format: json or yaml")
	pf.String(config.KeyUI, "console", "live display: console or tui")

	root.AddCommand(
		newSimulateCommand(a),
		newAssessCommand(a),
		newTiersCommand(a),
		newTrialsCommand(a),
	)
	return root
}

// Execute runs the CLI against the process streams and returns the exit
// code.
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	root := NewRootCommand(os.Stdin, os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		printError(os.Stderr, err)
		return 1
	}
	return 0
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "Error: %v\n", err)
	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(w, "  hint: %s\n", hint)
	}
}
