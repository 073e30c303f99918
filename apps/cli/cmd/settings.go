package cmd

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/neo/packages/core/config"
	"github.com/abdul-hamid-achik/neo/packages/core/env"
	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// settings is the merged view of config file, environment and flags.
// Precedence: explicit flag > NEO_* variable > config file > default.
type settings struct {
	config   *config.Config
	timeout  time.Duration
	host     string
	body     *string
	bodyFile string
	headers  []http.Header
	resolver *env.Resolver
}

// explicit reports whether a flag was given on the command line or through
// its environment variable.
func explicit(cmd *cobra.Command, flag, envKey string) bool {
	return cmd.Flags().Changed(flag) || os.Getenv(envKey) != ""
}

// loadSettings resolves everything except the request itself. Returned
// errors are *ExitError values that have not been printed.
func loadSettings(cmd *cobra.Command) (*settings, error) {
	fileCfg, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, exitWith(ExitConfigError, fmt.Errorf("load config: %w", err))
	}

	overrides := &config.Config{}
	if explicit(cmd, "method", "NEO_METHOD") {
		overrides.Method = methodFlag
	}
	if explicit(cmd, "port", "NEO_PORT") {
		port, err := http.ParsePort(portFlag)
		if err != nil {
			return nil, exitWith(ExitUsageError, err)
		}
		overrides.Port = port
	}
	if explicit(cmd, "route", "NEO_ROUTE") {
		overrides.Route = routeFlag
	}
	if explicit(cmd, "timeout", "NEO_TIMEOUT") {
		overrides.Timeout = timeoutFlag
	}
	if explicit(cmd, "output", "NEO_OUTPUT") {
		overrides.Output = outputFlag
	}
	if explicit(cmd, "history", "NEO_HISTORY") {
		overrides.History = historyFlag
	}
	if explicit(cmd, "env-file", "NEO_ENV_FILE") {
		overrides.EnvFile = envFileFlag
	}
	if explicit(cmd, "no-color", "NEO_NO_COLOR") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if explicit(cmd, "verbose", "NEO_VERBOSE") {
		overrides.Verbose = config.BoolPtr(verboseFlag)
	}
	if explicit(cmd, "request-id", "NEO_REQUEST_ID") {
		overrides.RequestID = config.BoolPtr(requestIDFlag)
	}
	cfg := fileCfg.Merge(overrides)

	timeout, err := cfg.GetTimeout()
	if err != nil {
		code := ExitConfigError
		if overrides.Timeout != "" {
			code = ExitUsageError
		}
		return nil, exitWith(code, err)
	}

	cfg.Output = strings.ToLower(cfg.Output)
	if cfg.Output != "console" && cfg.Output != "json" {
		return nil, exitWith(ExitUsageError, fmt.Errorf("unknown output format %q (use console or json)", cfg.Output))
	}

	var dotenv map[string]string
	if cfg.EnvFile != "" {
		dotenv, err = env.LoadDotEnv(cfg.EnvFile)
		if err != nil {
			return nil, exitWith(ExitConfigError, err)
		}
	}
	errOut := cmd.ErrOrStderr()
	resolver := env.NewResolver(
		env.WithVariables(cfg.Variables),
		env.WithVariables(dotenv),
		env.WithWarnFunc(func(format string, args ...any) {
			fmt.Fprintf(errOut, "warning: "+format+"\n", args...)
		}),
	)

	s := &settings{
		config:   cfg,
		timeout:  timeout,
		host:     urlFlag,
		bodyFile: bodyFileFlag,
		resolver: resolver,
	}

	if cmd.Flags().Changed("body") {
		if bodyFileFlag != "" {
			return nil, exitWith(ExitUsageError, fmt.Errorf("use either --body or --body-file, not both"))
		}
		body := bodyFlag
		s.body = &body
	}

	s.headers, err = mergeHeaders(cfg.Headers, headerFlags)
	if err != nil {
		return nil, exitWith(ExitUsageError, err)
	}

	return s, nil
}

// mergeHeaders returns config headers sorted by name followed by the
// command line headers. A command line header replaces a config header of
// the same name.
func mergeHeaders(fromConfig map[string]string, fromFlags []string) ([]http.Header, error) {
	var flagHeaders []http.Header
	for _, raw := range fromFlags {
		h, err := http.ParseHeader(raw)
		if err != nil {
			return nil, err
		}
		flagHeaders = append(flagHeaders, h)
	}

	names := make([]string, 0, len(fromConfig))
	for name := range fromConfig {
		names = append(names, name)
	}
	sort.Strings(names)

	headers := make([]http.Header, 0, len(names)+len(flagHeaders))
	for _, name := range names {
		if hasHeader(flagHeaders, name) {
			continue
		}
		headers = append(headers, http.Header{Name: name, Value: fromConfig[name]})
	}
	return append(headers, flagHeaders...), nil
}

func hasHeader(headers []http.Header, name string) bool {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return true
		}
	}
	return false
}

// buildSpec reads the body file, if any, resolves {{...}} placeholders and
// validates the request. It is called again for every --watch rerun.
func (s *settings) buildSpec() (http.RequestSpec, error) {
	var opts []http.SpecOption

	switch {
	case s.bodyFile != "":
		data, err := os.ReadFile(s.bodyFile)
		if err != nil {
			return http.RequestSpec{}, fmt.Errorf("read body file: %w", err)
		}
		opts = append(opts, http.WithBody(s.resolver.Resolve(string(data))))
	case s.body != nil:
		opts = append(opts, http.WithBody(s.resolver.Resolve(*s.body)))
	}

	for _, h := range s.headers {
		opts = append(opts, http.WithHeader(h.Name, s.resolver.Resolve(h.Value)))
	}
	if s.config.GetRequestID() {
		opts = append(opts, http.WithRequestID(uuid.New().String()))
	}

	return http.NewRequestSpec(
		s.config.Method,
		s.resolver.Resolve(s.host),
		s.config.Port,
		s.resolver.Resolve(s.config.Route),
		opts...,
	)
}
