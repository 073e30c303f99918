package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "neo -u <host> [flags]",
	Short: "A minimal HTTP/1.1 client over raw TCP.",
	Long: `neo opens a TCP connection, writes a hand-built HTTP/1.1 request, reads
the response until the server closes the connection and prints the headers
and the body, pretty-printing JSON.

Bodies are written as loose JSON: "name:widget,qty:3" is sent as
{"name":"widget","qty":"3"}.

Examples:
  neo -u localhost -p 8080
  neo -u example.test -p 8080 -m post -r /api/items -b "name:widget,qty:3"
  neo -u localhost -r /users/{{id}} --env-file .env -q data.name
  neo -u localhost -m put --body-file user.txt --watch`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          requestCommand,
}

// Connection flags shared by the request and bench commands
var (
	urlFlag       string
	methodFlag    string
	portFlag      string
	routeFlag     string
	bodyFlag      string
	bodyFileFlag  string
	headerFlags   []string
	timeoutFlag   string
	requestIDFlag bool
	noColorFlag   bool
	verboseFlag   bool
	outputFlag    string
	configFlag    string
	envFileFlag   string
	historyFlag   string
)

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(exitCode(err, rootCmd))
	}
}

// exitCode maps err to a process exit code. Errors that are not an
// *ExitError have not been reported yet and are printed here.
func exitCode(err error, cmd *cobra.Command) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	return ExitUsageError
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&urlFlag, "url", "u", getEnvString("NEO_URL", ""), "Target host, without scheme (env: NEO_URL)")
	flags.StringVarP(&methodFlag, "method", "m", getEnvString("NEO_METHOD", "GET"), "HTTP method (env: NEO_METHOD)")
	flags.StringVarP(&portFlag, "port", "p", getEnvString("NEO_PORT", "80"), "TCP port (env: NEO_PORT)")
	flags.StringVarP(&routeFlag, "route", "r", getEnvString("NEO_ROUTE", "/"), "Request path (env: NEO_ROUTE)")
	flags.StringVarP(&bodyFlag, "body", "b", "", `Loose JSON body, e.g. "name:widget,qty:3"`)
	flags.StringVar(&bodyFileFlag, "body-file", "", "Read the loose JSON body from a file")
	flags.StringArrayVarP(&headerFlags, "header", "H", nil, `Extra header "Name: value" (repeatable)`)
	flags.StringVar(&timeoutFlag, "timeout", getEnvString("NEO_TIMEOUT", "30s"), "Connect and exchange timeout, 0 disables (env: NEO_TIMEOUT)")
	flags.BoolVar(&requestIDFlag, "request-id", getEnvBool("NEO_REQUEST_ID", false), "Add an X-Request-Id header with a random UUID (env: NEO_REQUEST_ID)")
	flags.BoolVar(&noColorFlag, "no-color", getEnvBool("NEO_NO_COLOR", false), "Disable colored output (env: NEO_NO_COLOR)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("NEO_VERBOSE", false), "Print the request as sent and response timing (env: NEO_VERBOSE)")
	flags.StringVarP(&outputFlag, "output", "o", getEnvString("NEO_OUTPUT", "console"), "Output format: console, json (env: NEO_OUTPUT)")
	flags.StringVar(&configFlag, "config", getEnvString("NEO_CONFIG", ""), "Path to config file (env: NEO_CONFIG)")
	flags.StringVar(&envFileFlag, "env-file", getEnvString("NEO_ENV_FILE", ""), "Path to .env file for {{variable}} interpolation (env: NEO_ENV_FILE)")
	flags.StringVar(&historyFlag, "history", getEnvString("NEO_HISTORY", ""), "SQLite file recording exchanges (env: NEO_HISTORY)")

	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	registerCompletions()
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
