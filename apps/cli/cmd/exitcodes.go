package cmd

import "fmt"

// Exit codes for neo CLI
const (
	// ExitSuccess indicates the exchange completed. An unsupported method
	// also exits with ExitSuccess after printing the rejection.
	ExitSuccess = 0

	// ExitTestFailure indicates an --expect-status or --schema check failed
	ExitTestFailure = 1

	// ExitParseError indicates the loose JSON body could not be normalized
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a connect or transport error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// ExitError carries the process exit code for an error that has already
// been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitWith(code int, err error) error {
	if code == ExitSuccess {
		return nil
	}
	return &ExitError{Code: code, Err: err}
}
