package http

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/neo/packages/loosejson"
)

const (
	// DefaultPort is used when no port is given
	DefaultPort = 80
	// DefaultRoute is used when no route is given
	DefaultRoute = "/"
	// DefaultMethod is used when no method is given
	DefaultMethod = "GET"
	// RequestIDHeader carries the optional per-exchange identifier
	RequestIDHeader = "X-Request-Id"
)

// SupportedMethods lists the methods the client will send.
var SupportedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}

// reservedHeaders are written by Build and cannot be supplied as extras.
var reservedHeaders = []string{"Host", "Connection", "Content-Type", "Content-Length", "Transfer-Encoding"}

type Header struct {
	Name  string
	Value string
}

// RequestSpec describes one request. Build it with NewRequestSpec.
type RequestSpec struct {
	Method  string
	Host    string
	Port    int
	Route   string
	RawBody *string
	Headers []Header
}

type SpecOption func(*RequestSpec)

// WithBody attaches loose JSON body text.
func WithBody(raw string) SpecOption {
	return func(s *RequestSpec) {
		s.RawBody = &raw
	}
}

// WithHeader appends an extra header.
func WithHeader(name, value string) SpecOption {
	return func(s *RequestSpec) {
		s.Headers = append(s.Headers, Header{Name: name, Value: value})
	}
}

// WithRequestID adds an X-Request-Id header.
func WithRequestID(id string) SpecOption {
	return WithHeader(RequestIDHeader, id)
}

// NewRequestSpec normalizes and validates user supplied request components.
// Argument problems wrap ErrInvalidArgument; an unknown method wraps
// ErrUnsupportedMethod and is checked last.
func NewRequestSpec(method, host string, port int, route string, opts ...SpecOption) (RequestSpec, error) {
	s := RequestSpec{
		Method: strings.ToUpper(strings.TrimSpace(method)),
		Host:   normalizeHost(host),
		Port:   port,
		Route:  normalizeRoute(route),
	}
	for _, opt := range opts {
		opt(&s)
	}

	if s.Host == "" {
		return RequestSpec{}, argumentError("host is required")
	}
	if strings.ContainsAny(s.Host, "/ \t\r\n") {
		return RequestSpec{}, argumentError("host %q must not contain a path or whitespace", host)
	}
	if err := validatePort(s.Port); err != nil {
		return RequestSpec{}, err
	}
	if strings.ContainsAny(s.Route, " \t\r\n") {
		return RequestSpec{}, argumentError("route %q must not contain whitespace", route)
	}
	for _, h := range s.Headers {
		if err := validateHeader(h); err != nil {
			return RequestSpec{}, err
		}
	}
	if s.Method == "" {
		s.Method = DefaultMethod
	}
	if !IsSupportedMethod(s.Method) {
		return RequestSpec{}, fmt.Errorf("%w: %s (supported: %s)", ErrUnsupportedMethod, s.Method, strings.Join(SupportedMethods, ", "))
	}

	return s, nil
}

// IsSupportedMethod reports whether method is in SupportedMethods.
func IsSupportedMethod(method string) bool {
	for _, m := range SupportedMethods {
		if m == method {
			return true
		}
	}
	return false
}

// ParsePort parses a decimal TCP port in the range 1-65535.
func ParsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, argumentError("port %q is not a number", s)
	}
	if err := validatePort(port); err != nil {
		return 0, err
	}
	return port, nil
}

// ParseHeader parses a "Name: value" pair as given on the command line.
func ParseHeader(s string) (Header, error) {
	name, value, ok := strings.Cut(s, ":")
	if !ok {
		return Header{}, argumentError("header %q must look like 'Name: value'", s)
	}
	h := Header{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)}
	if err := validateHeader(h); err != nil {
		return Header{}, err
	}
	return h, nil
}

// Address returns the host:port pair used both for dialing and the Host header.
func (s RequestSpec) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// HasBody reports whether a body was supplied, even an empty one.
func (s RequestSpec) HasBody() bool {
	return s.RawBody != nil
}

func validatePort(port int) error {
	if port < 1 || port > 65535 {
		return argumentError("port %d out of range 1-65535", port)
	}
	return nil
}

func validateHeader(h Header) error {
	if h.Name == "" || strings.ContainsAny(h.Name, ": \t\r\n") {
		return argumentError("invalid header name %q", h.Name)
	}
	if strings.ContainsAny(h.Value, "\r\n") {
		return argumentError("header %s value must not contain line breaks", h.Name)
	}
	for _, r := range reservedHeaders {
		if strings.EqualFold(r, h.Name) {
			return argumentError("header %s is set by the client and cannot be overridden", h.Name)
		}
	}
	return nil
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "http://")
	host = strings.TrimSuffix(host, "/")
	// Bracketed IPv6 literals are re-bracketed by net.JoinHostPort.
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	return host
}

func normalizeRoute(route string) string {
	route = strings.TrimSpace(route)
	if route == "" {
		return DefaultRoute
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return route
}

// Prepare normalizes the raw body, if any, and builds the wire request.
// A loose JSON error is returned before anything touches the network.
func Prepare(s RequestSpec) (WireRequest, error) {
	if !s.HasBody() {
		return Build(s, nil), nil
	}
	body, err := loosejson.Normalize(*s.RawBody)
	if err != nil {
		return nil, fmt.Errorf("normalize body: %w", err)
	}
	return Build(s, &body), nil
}
