package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"passwordCrackerSim/internal/core/domain"
	"passwordCrackerSim/internal/pkg/metrics"
	"passwordCrackerSim/internal/platform/console"
	"passwordCrackerSim/internal/platform/tui"
	"passwordCrackerSim/internal/utils/random"
)

func newSimulateCommand(a *app) *cobra.Command {
	var (
		passwordStdin bool
		randomLength  int
	)

	cmd := &cobra.Command{
		Use:   "simulate [password]",
		Short: "Run a live random-sampling attack",
		Long: `simulate prints the pre-attack analysis, runs a live attack that samples
guesses at random until the password is hit and then prints the final report.
Without a password argument it starts an interactive session that asks for the
password, hardware tier and prediction target and can be repeated.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			password, provided, err := readPassword(a.in, args, passwordStdin)
			if err != nil {
				return err
			}
			if randomLength > 0 && !provided {
				password, provided = random.GenerateRandomString(domain.CharsetDefault, randomLength), true
				fmt.Fprintf(a.out, "Generated password: %s\n", password)
			}
			if !provided {
				return a.session(console.NewPrompter(a.in, a.out)).Run(ctx)
			}

			settings, err := a.cfg.Settings()
			if err != nil {
				return err
			}
			if a.cfg.UI == "tui" {
				var analysis *domain.Analysis
				var result *domain.SimulationResult
				perf, err := metrics.CapturePerformance(func() error {
					var err error
					analysis, result, err = tui.Run(ctx, a.svc, password, settings, a.in, a.out)
					return err
				})
				if err != nil {
					return err
				}
				printer := console.NewPrinter(a.out, a.colour, 0)
				printer.Final(analysis, result)
				if a.reporter != nil {
					a.reporter.Record(metrics.CategorySession, metrics.NewSessionRecord(analysis, result, perf))
				}
				return nil
			}

			_, err = a.session(nil).Simulate(ctx, password, settings)
			return err
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	cmd.Flags().IntVar(&randomLength, "random-length", 0, "attack a random alphanumeric password of this length")
	return cmd
}

func newAssessCommand(a *app) *cobra.Command {
	var passwordStdin bool

	cmd := &cobra.Command{
		Use:   "assess [password]",
		Short: "Print the strength and time-to-crack analysis without attacking",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, provided, err := readPassword(a.in, args, passwordStdin)
			if err != nil {
				return err
			}
			if !provided {
				password, err = console.NewPrompter(a.in, a.out).Password()
				if err != nil {
					return err
				}
			}

			settings, err := a.cfg.Settings()
			if err != nil {
				return err
			}
			_, err = a.session(nil).Assess(password, settings)
			return err
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	return cmd
}

func newTiersCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tiers",
		Short: "List the attacker hardware tiers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			console.NewPrinter(a.out, a.colour, 0).Tiers()
			return nil
		},
	}
}

func newTrialsCommand(a *app) *cobra.Command {
	var (
		alphabet string
		password string
		count    int
		workers  int
	)

	cmd := &cobra.Command{
		Use:   "trials",
		Short: "Repeat attacks on a tiny keyspace to show the mean attempt count converging",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := a.session(nil).Trials(cmd.Context(), alphabet, password, count, workers)
			return err
		},
	}
	cmd.Flags().StringVar(&alphabet, "alphabet", "ab", "characters the attacker samples from")
	cmd.Flags().StringVar(&password, "password", "a", "password made of alphabet characters")
	cmd.Flags().IntVarP(&count, "count", "n", 1000, "number of independent trials")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent trials (default: CPU count)")
	return cmd
}

// readPassword returns the password from the argument list or, with
// fromStdin, the first line of in. provided is false when neither applies.
func readPassword(in io.Reader, args []string, fromStdin bool) (password string, provided bool, err error) {
	switch {
	case fromStdin && len(args) > 0:
		return "", false, errors.WithHint(
			errors.Wrap(domain.ErrInvalidInput, "password given twice"),
			"pass the password as an argument or with --password-stdin, not both",
		)
	case fromStdin:
		data, err := io.ReadAll(in)
		if err != nil {
			return "", false, errors.Wrap(err, "read password from stdin")
		}
		line, _, _ := strings.Cut(string(data), "\n")
		line = strings.TrimRight(line, "\r")
		if line == "" {
			return "", false, domain.WrapInvalidInput("password cannot be empty")
		}
		return line, true, nil
	case len(args) == 1:
		return args[0], true, nil
	}
	return "", false, nil
}
