package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/abdul-hamid-achik/neo/packages/assertions"
	"github.com/abdul-hamid-achik/neo/packages/capture"
	"github.com/abdul-hamid-achik/neo/packages/db"
	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/abdul-hamid-achik/neo/packages/output"
	"github.com/spf13/cobra"
)

// Flags that only apply to a single request
var (
	queryFlag        string
	schemaFlag       string
	expectStatusFlag int
	watchFlag        bool
)

func init() {
	rootCmd.Flags().StringVarP(&queryFlag, "query", "q", "", "Print only this gjson path of the body, or status, duration, header:<name>")
	rootCmd.Flags().StringVar(&schemaFlag, "schema", "", "Validate the JSON body against this JSON Schema file")
	rootCmd.Flags().IntVar(&expectStatusFlag, "expect-status", 0, "Fail with exit code 1 unless the response has this status")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-send the request whenever --body-file changes")
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatConnected(addr string)
	FormatRequest(spec http.RequestSpec, wire http.WireRequest)
	FormatResponse(resp *http.RawResponse)
	FormatQuery(path string, value any, found bool)
	FormatError(err error)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush() error
}

func newFormatter(cmd *cobra.Command, s *settings) Formatter {
	if s.config.Output == "json" {
		return output.NewJSONFormatter(output.JSONWithWriter(cmd.OutOrStdout()))
	}
	return output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrorWriter(cmd.ErrOrStderr()),
		output.WithVerbose(s.config.GetVerbose()),
		output.WithNoColor(s.config.GetNoColor()),
	)
}

// reportError prints an unreported settings error with the default
// console formatter and returns it unchanged.
func reportError(cmd *cobra.Command, err error) error {
	output.NewConsoleFormatter(
		output.WithWriter(cmd.OutOrStdout()),
		output.WithErrorWriter(cmd.ErrOrStderr()),
		output.WithNoColor(noColorFlag),
	).FormatError(err)
	return err
}

func requestCommand(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return reportError(cmd, err)
	}
	if watchFlag && s.bodyFile == "" {
		return reportError(cmd, exitWith(ExitUsageError, errors.New("--watch requires --body-file")))
	}

	formatter := newFormatter(cmd, s)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ex := &exchanger{
		settings:  s,
		formatter: formatter,
		client:    http.NewClient(http.WithTimeout(s.timeout)),
		checks:    assertions.Checks{Status: expectStatusFlag, Schema: schemaFlag},
		query:     queryFlag,
		errOut:    cmd.ErrOrStderr(),
	}

	if s.config.History != "" {
		store, err := db.NewClient(s.config.History)
		if err != nil {
			return reportError(cmd, exitWith(ExitConfigError, err))
		}
		defer store.Close()
		ex.history = store
	}

	code := ex.run(ctx)
	if !watchFlag {
		return exitWith(code, nil)
	}
	return watchBodyFile(ctx, cmd, ex)
}

// exchanger performs one complete request/response exchange.
type exchanger struct {
	settings  *settings
	formatter Formatter
	client    *http.Client
	checks    assertions.Checks
	query     string
	history   *db.Client
	errOut    io.Writer
}

// run sends the request once, prints the outcome and returns the exit code.
func (e *exchanger) run(ctx context.Context) int {
	code := e.exchange(ctx)
	if f, ok := e.formatter.(Flushable); ok {
		if err := f.Flush(); err != nil {
			fmt.Fprintf(e.errOut, "warning: failed to write output: %v\n", err)
		}
	}
	return code
}

func (e *exchanger) exchange(ctx context.Context) int {
	spec, err := e.settings.buildSpec()
	if err != nil {
		e.formatter.FormatError(err)
		if errors.Is(err, http.ErrUnsupportedMethod) {
			return ExitSuccess
		}
		return ExitUsageError
	}

	wire, err := http.Prepare(spec)
	if err != nil {
		e.formatter.FormatError(err)
		return ExitParseError
	}

	conn, err := e.client.Dial(ctx, spec.Host, spec.Port)
	if err != nil {
		e.formatter.FormatError(err)
		e.record(ctx, spec, nil, err)
		return ExitNetworkError
	}
	defer conn.Close()

	e.formatter.FormatConnected(spec.Address())
	e.formatter.FormatRequest(spec, wire)

	resp, err := e.client.Exchange(ctx, conn, wire)
	if err != nil {
		e.formatter.FormatError(err)
		e.record(ctx, spec, nil, err)
		return ExitNetworkError
	}
	e.record(ctx, spec, resp, nil)

	if e.query != "" {
		value, found := capture.Extract(resp, e.query)
		e.formatter.FormatQuery(e.query, value, found)
	} else {
		e.formatter.FormatResponse(resp)
	}

	if err := assertions.FirstFailure(assertions.EvaluateAll(resp, e.checks)); err != nil {
		e.formatter.FormatError(err)
		return ExitTestFailure
	}
	return ExitSuccess
}

func (e *exchanger) record(ctx context.Context, spec http.RequestSpec, resp *http.RawResponse, exchangeErr error) {
	if e.history == nil {
		return
	}

	entry := db.Entry{
		Method:  spec.Method,
		Address: spec.Address(),
		Route:   spec.Route,
	}
	for _, h := range spec.Headers {
		if h.Name == http.RequestIDHeader {
			entry.RequestID = h.Value
		}
	}
	if resp != nil {
		entry.Status = resp.StatusCode()
		entry.Bytes = len(resp.Raw)
		entry.DurationMs = resp.DurationMs()
	}
	if exchangeErr != nil {
		entry.Error = exchangeErr.Error()
	}

	// Record outside ctx so an interrupted exchange is still written.
	if _, err := e.history.Record(context.WithoutCancel(ctx), entry); err != nil {
		fmt.Fprintf(e.errOut, "warning: failed to record history: %v\n", err)
	}
}
