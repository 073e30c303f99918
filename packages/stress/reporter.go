package stress

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Reporter prints bench progress and results
type Reporter struct {
	writer     io.Writer
	noColor    bool
	noProgress bool

	green  *color.Color
	red    *color.Color
	yellow *color.Color
	cyan   *color.Color
	bold   *color.Color
}

// ReporterOption configures the reporter
type ReporterOption func(*Reporter)

// WithWriter sets the output writer
func WithWriter(w io.Writer) ReporterOption {
	return func(r *Reporter) {
		r.writer = w
	}
}

// WithNoColor disables colored output
func WithNoColor(noColor bool) ReporterOption {
	return func(r *Reporter) {
		r.noColor = noColor
	}
}

// WithNoProgress disables the progress line
func WithNoProgress(noProgress bool) ReporterOption {
	return func(r *Reporter) {
		r.noProgress = noProgress
	}
}

// NewReporter creates a new reporter
func NewReporter(opts ...ReporterOption) *Reporter {
	r := &Reporter{
		writer: os.Stdout,
	}

	for _, opt := range opts {
		opt(r)
	}

	r.green = r.newColor(color.FgGreen)
	r.red = r.newColor(color.FgRed)
	r.yellow = r.newColor(color.FgYellow)
	r.cyan = r.newColor(color.FgCyan)
	r.bold = r.newColor(color.Bold)

	return r
}

func (r *Reporter) newColor(attr color.Attribute) *color.Color {
	c := color.New(attr)
	if r.noColor {
		c.DisableColor()
	}
	return c
}

// Header prints the target and run settings
func (r *Reporter) Header(method, address, route string, config *Config) {
	fmt.Fprintln(r.writer)
	r.cyan.Fprintf(r.writer, "Benchmarking %s %s%s\n", method, address, route)

	details := []string{
		fmt.Sprintf("Requests: %d", config.Requests),
		fmt.Sprintf("Concurrency: %d", config.Concurrency),
	}
	if config.Rate > 0 {
		details = append(details, fmt.Sprintf("Rate: %.0f req/s", config.Rate))
	}
	fmt.Fprintf(r.writer, "%s\n\n", strings.Join(details, " | "))
}

// Progress rewrites a single progress line
func (r *Reporter) Progress(done, total int) {
	if r.noProgress || total == 0 {
		return
	}

	const barWidth = 30
	filled := done * barWidth / total
	bar := strings.Repeat("━", filled) + strings.Repeat("─", barWidth-filled)
	fmt.Fprintf(r.writer, "\r\033[KProgress %s %d/%d", bar, done, total)
	if done == total {
		fmt.Fprintln(r.writer)
	}
}

// Summary prints the final summary
func (r *Reporter) Summary(summary *Summary) {
	fmt.Fprintln(r.writer)
	r.bold.Fprintln(r.writer, "BENCH SUMMARY")
	fmt.Fprintln(r.writer, strings.Repeat("─", 40))

	fmt.Fprintf(r.writer, "Duration:   %s\n", formatDuration(summary.Duration))
	fmt.Fprintf(r.writer, "Total:      ")
	r.bold.Fprintf(r.writer, "%s", formatNumber(summary.TotalRequests))
	fmt.Fprintf(r.writer, " requests (%.1f req/s)\n", summary.RPS)

	fmt.Fprintf(r.writer, "Success:    ")
	r.green.Fprintf(r.writer, "%s", formatNumber(summary.SuccessCount))
	fmt.Fprintf(r.writer, " (%.1f%%)\n", summary.SuccessRate*100)

	r.countLine("Failed:     ", summary.FailedCount, r.red)
	r.countLine("Errors:     ", summary.ErrorCount, r.red)
	if summary.TimeoutCount > 0 {
		r.countLine("Timeouts:   ", summary.TimeoutCount, r.yellow)
	}
	if summary.Canceled {
		r.yellow.Fprintln(r.writer, "Interrupted before all requests were sent")
	}

	if len(summary.StatusCounts) > 0 {
		fmt.Fprintln(r.writer)
		r.bold.Fprintln(r.writer, "STATUS CODES")
		for _, sc := range summary.StatusCounts {
			c := r.green
			if sc.Status >= 400 || sc.Status == 0 {
				c = r.red
			}
			c.Fprintf(r.writer, "  %3d", sc.Status)
			fmt.Fprintf(r.writer, "  %s\n", formatNumber(sc.Count))
		}
	}

	fmt.Fprintln(r.writer)
	r.bold.Fprintln(r.writer, "LATENCY (ms)")
	fmt.Fprintf(r.writer, "  p50: %-6s | p95: %-6s | p99: %-6s | max: %s\n",
		formatLatencyMs(summary.P50),
		formatLatencyMs(summary.P95),
		formatLatencyMs(summary.P99),
		formatLatencyMs(summary.Max))
	fmt.Fprintf(r.writer, "  min: %-6s | mean: %-5s | stddev: %s\n",
		formatLatencyMs(summary.Min),
		formatLatencyMs(summary.Mean),
		formatLatencyMs(summary.StdDev))
	fmt.Fprintln(r.writer)
}

func (r *Reporter) countLine(label string, n int64, c *color.Color) {
	fmt.Fprint(r.writer, label)
	if n > 0 {
		c.Fprintf(r.writer, "%s\n", formatNumber(n))
		return
	}
	fmt.Fprintf(r.writer, "%s\n", formatNumber(n))
}

// JSONSummary outputs the summary as JSON
func (r *Reporter) JSONSummary(summary *Summary) error {
	statuses := make(map[string]int64, len(summary.StatusCounts))
	for _, sc := range summary.StatusCounts {
		statuses[fmt.Sprintf("%d", sc.Status)] = sc.Count
	}

	output := map[string]any{
		"duration": summary.Duration.String(),
		"canceled": summary.Canceled,
		"requests": map[string]any{
			"total":    summary.TotalRequests,
			"success":  summary.SuccessCount,
			"failed":   summary.FailedCount,
			"errors":   summary.ErrorCount,
			"timeouts": summary.TimeoutCount,
			"bytes":    summary.Bytes,
		},
		"rates": map[string]any{
			"rps":         summary.RPS,
			"successRate": summary.SuccessRate,
		},
		"statusCodes": statuses,
		"latencyMs": map[string]any{
			"p50":    summary.P50.Milliseconds(),
			"p95":    summary.P95.Milliseconds(),
			"p99":    summary.P99.Milliseconds(),
			"min":    summary.Min.Milliseconds(),
			"max":    summary.Max.Milliseconds(),
			"mean":   summary.Mean.Milliseconds(),
			"stddev": summary.StdDev.Milliseconds(),
		},
	}

	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	if seconds == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	return fmt.Sprintf("%dm %02ds", minutes, seconds)
}

// formatLatencyMs formats latency in milliseconds
func formatLatencyMs(d time.Duration) string {
	ms := float64(d.Microseconds()) / 1000
	if ms < 1 {
		return fmt.Sprintf("%.2f", ms)
	}
	if ms < 10 {
		return fmt.Sprintf("%.1f", ms)
	}
	return fmt.Sprintf("%.0f", ms)
}

// formatNumber formats a number with thousands separators
func formatNumber(n int64) string {
	s := fmt.Sprintf("%d", n)
	if n < 1000 {
		return s
	}

	start := len(s) % 3
	if start == 0 {
		start = 3
	}

	var b strings.Builder
	b.WriteString(s[:start])
	for i := start; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
