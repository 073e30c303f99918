package http

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument marks user input rejected before any network activity.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupportedMethod marks a method outside SupportedMethods.
	ErrUnsupportedMethod = errors.New("unsupported method")
	// ErrInvalidUTF8 is returned when the response is not valid text.
	ErrInvalidUTF8 = errors.New("response is not valid UTF-8")
)

// Kind classifies network failures.
type Kind int

const (
	KindConnect Kind = iota
	KindWrite
	KindRead
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindConnect:
		return "connect error"
	case KindWrite:
		return "write error"
	case KindRead:
		return "read error"
	case KindDecode:
		return "decode error"
	default:
		return fmt.Sprintf("unknown error kind %d", int(k))
	}
}

// Error is a connect or transport failure carrying the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Op == "" {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsConnectError reports whether err came from dialing the peer.
func IsConnectError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindConnect
}

// IsTransportError reports whether err happened after the connection was up.
func IsTransportError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind != KindConnect
}

func argumentError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

// newError joins the context error, if any, so callers can match
// context.DeadlineExceeded or context.Canceled with errors.Is.
func newError(ctx context.Context, kind Kind, op string, err error) *Error {
	if ctxErr := ctx.Err(); ctxErr != nil && !errors.Is(err, ctxErr) {
		err = errors.Join(ctxErr, err)
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
