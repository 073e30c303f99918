package http

import (
	"context"
	"io"
	"net"
	"strconv"
	"time"
	"unicode/utf8"
)

const (
	// DefaultTimeout bounds each blocking phase of an exchange
	DefaultTimeout = 30 * time.Second
)

// Dialer opens the TCP connection. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Client struct {
	timeout time.Duration
	dialer  Dialer
}

type ClientOption func(*Client)

func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		timeout: DefaultTimeout,
		dialer:  &net.Dialer{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout bounds connect and exchange separately. Zero disables it.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

func WithDialer(d Dialer) ClientOption {
	return func(c *Client) {
		c.dialer = d
	}
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout > 0 {
		return context.WithTimeout(ctx, c.timeout)
	}
	return context.WithCancel(ctx)
}

// Dial connects to host:port. Failures are KindConnect errors.
func (c *Client) Dial(ctx context.Context, host string, port int) (net.Conn, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, newError(ctx, KindConnect, "dial "+addr, err)
	}

	if tcpConn, ok := conn.(*net.TCPConn); ok {
		_ = tcpConn.SetNoDelay(true)
	}
	return conn, nil
}

// Exchange runs the package level Exchange under the client timeout.
func (c *Client) Exchange(ctx context.Context, conn io.ReadWriter, wire WireRequest) (*RawResponse, error) {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	return Exchange(ctx, conn, wire)
}

// Do prepares the request, connects, exchanges, and closes the connection.
func (c *Client) Do(ctx context.Context, spec RequestSpec) (*RawResponse, error) {
	wire, err := Prepare(spec)
	if err != nil {
		return nil, err
	}

	conn, err := c.Dial(ctx, spec.Host, spec.Port)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	return c.Exchange(ctx, conn, wire)
}

type deadliner interface {
	SetDeadline(t time.Time) error
}

// Exchange writes wire to conn and reads until the peer closes it.
//
// When conn supports deadlines, ctx bounds both the write and the read: once
// ctx is done the connection deadline is moved to now, which unblocks any
// pending I/O. Partial responses are discarded on error.
func Exchange(ctx context.Context, conn io.ReadWriter, wire WireRequest) (*RawResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, newError(ctx, KindWrite, "write request", err)
	}

	if dc, ok := conn.(deadliner); ok {
		stop := context.AfterFunc(ctx, func() {
			_ = dc.SetDeadline(time.Now())
		})
		defer stop()
	}

	start := time.Now()
	if err := writeAll(conn, wire); err != nil {
		return nil, newError(ctx, KindWrite, "write request", err)
	}

	data, err := io.ReadAll(conn)
	if err != nil {
		return nil, newError(ctx, KindRead, "read response", err)
	}
	if !utf8.Valid(data) {
		return nil, newError(ctx, KindDecode, "decode response", ErrInvalidUTF8)
	}

	return NewRawResponse(string(data), time.Since(start)), nil
}

// writeAll retries short writes until every byte is flushed.
func writeAll(w io.Writer, b []byte) error {
	for len(b) > 0 {
		n, err := w.Write(b)
		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
		b = b[n:]
	}
	return nil
}
