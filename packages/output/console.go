package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/fatih/color"
)

type ConsoleFormatter struct {
	writer    io.Writer
	errWriter io.Writer
	verbose   bool
	noColor   bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer:    os.Stdout,
		errWriter: os.Stderr,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

// WithErrorWriter sets where FormatError writes.
func WithErrorWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.errWriter = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) FormatConnected(addr string) {
	green := color.New(color.FgGreen).SprintFunc()
	fmt.Fprintln(f.writer, green("Connected to the server!"))
	if f.verbose {
		fmt.Fprintf(f.writer, "  %s\n", addr)
	}
}

// FormatRequest prints the wire request in verbose mode only.
func (f *ConsoleFormatter) FormatRequest(spec http.RequestSpec, wire http.WireRequest) {
	if !f.verbose {
		return
	}
	title := color.New(color.Bold, color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintln(f.writer, title("Request:"))
	head, body := http.Split(wire.String())
	fmt.Fprintln(f.writer, dim(head))
	if body != "" {
		fmt.Fprintln(f.writer)
		fmt.Fprintln(f.writer, dim(body))
	}
	fmt.Fprintln(f.writer)
}

func (f *ConsoleFormatter) FormatResponse(resp *http.RawResponse) {
	title := color.New(color.Bold, color.FgYellow).SprintFunc()
	blue := color.New(color.FgBlue).SprintFunc()
	green := color.New(color.FgGreen).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	fmt.Fprintln(f.writer, title("Response Headers:"))
	fmt.Fprintf(f.writer, "%s\n\n", blue(resp.Head))

	fmt.Fprintln(f.writer, title("Response Body:"))
	text, isJSON := Render(resp.Body)
	if isJSON {
		fmt.Fprintln(f.writer, green(text))
	} else {
		fmt.Fprintln(f.writer, text)
	}

	if f.verbose {
		fmt.Fprintf(f.writer, "\n%s\n", cyan(fmt.Sprintf("(%d bytes, %dms)", len(resp.Raw), resp.DurationMs())))
	}
}

// FormatQuery prints a value extracted from the body: strings raw,
// anything else as indented JSON.
func (f *ConsoleFormatter) FormatQuery(path string, value any, found bool) {
	if !found {
		yellow := color.New(color.FgYellow).SprintFunc()
		fmt.Fprintln(f.writer, yellow(fmt.Sprintf("no value at %q", path)))
		return
	}
	fmt.Fprintln(f.writer, formatValue(value))
}

func (f *ConsoleFormatter) FormatError(err error) {
	red := color.New(color.FgRed).SprintFunc()
	fmt.Fprintf(f.errWriter, "%s %v\n", red("Error:"), err)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
	return string(data)
}
