package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/abdul-hamid-achik/neo/packages/stress"
	"github.com/spf13/cobra"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Send the same request many times and report latency",
	Long: `Send one request repeatedly, each over its own connection, with a cap on
concurrent exchanges and an optional rate limit. Latency percentiles come
from an HDR histogram.

Examples:
  neo bench -u localhost -p 8080 -n 1000 -c 20
  neo bench -u localhost -m post -b "name:widget" -n 500 --rate 100
  neo bench -u localhost -o json`,
	Args: cobra.NoArgs,
	RunE: benchCommand,
}

var (
	benchRequestsFlag    int
	benchConcurrencyFlag int
	benchRateFlag        float64
	benchNoProgressFlag  bool
)

func init() {
	benchCmd.Flags().IntVarP(&benchRequestsFlag, "requests", "n", getEnvInt("NEO_BENCH_REQUESTS", 100), "Total number of requests (env: NEO_BENCH_REQUESTS)")
	benchCmd.Flags().IntVarP(&benchConcurrencyFlag, "concurrency", "c", getEnvInt("NEO_BENCH_CONCURRENCY", 10), "Maximum requests in flight (env: NEO_BENCH_CONCURRENCY)")
	benchCmd.Flags().Float64Var(&benchRateFlag, "rate", 0, "Requests per second, 0 for unlimited")
	benchCmd.Flags().BoolVar(&benchNoProgressFlag, "no-progress", false, "Disable the progress line")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return reportError(cmd, err)
	}

	spec, err := s.buildSpec()
	if err != nil {
		return reportError(cmd, exitWith(ExitUsageError, err))
	}
	wire, err := http.Prepare(spec)
	if err != nil {
		return reportError(cmd, exitWith(ExitParseError, err))
	}

	cfg := &stress.Config{
		Requests:    benchRequestsFlag,
		Concurrency: benchConcurrencyFlag,
		Rate:        benchRateFlag,
		Timeout:     s.timeout,
	}
	if err := cfg.Validate(); err != nil {
		return reportError(cmd, exitWith(ExitUsageError, err))
	}

	jsonOutput := s.config.Output == "json"
	reporter := stress.NewReporter(
		stress.WithWriter(cmd.OutOrStdout()),
		stress.WithNoColor(s.config.GetNoColor()),
		stress.WithNoProgress(benchNoProgressFlag || jsonOutput),
	)

	// The runner applies the timeout per exchange.
	client := http.NewClient(http.WithTimeout(0))
	exchange := func(ctx context.Context) (stress.Result, error) {
		conn, err := client.Dial(ctx, spec.Host, spec.Port)
		if err != nil {
			return stress.Result{}, err
		}
		defer conn.Close()

		resp, err := client.Exchange(ctx, conn, wire)
		if err != nil {
			return stress.Result{}, err
		}
		return stress.Result{Status: resp.StatusCode(), Bytes: len(resp.Raw)}, nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !jsonOutput {
		reporter.Header(spec.Method, spec.Address(), spec.Route, cfg)
	}
	runner := stress.NewRunner(cfg, exchange, stress.WithProgress(reporter.Progress))
	summary, err := runner.Run(ctx)
	if err != nil {
		return reportError(cmd, exitWith(ExitUsageError, err))
	}
	if summary.Canceled {
		fmt.Fprintln(cmd.ErrOrStderr(), "\nReceived interrupt, stopped scheduling requests")
	}

	if jsonOutput {
		if err := reporter.JSONSummary(summary); err != nil {
			return reportError(cmd, exitWith(ExitUsageError, fmt.Errorf("error writing output: %w", err)))
		}
	} else {
		reporter.Summary(summary)
	}

	if summary.ErrorCount > 0 && summary.ErrorCount == summary.TotalRequests {
		return exitWith(ExitNetworkError, fmt.Errorf("all %d requests failed", summary.TotalRequests))
	}
	return nil
}
