package stress

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Latencies are recorded in microseconds between 1us and 60s.
const (
	minLatencyUs = 1
	maxLatencyUs = 60_000_000
)

// Metrics collects bench results. It is safe for concurrent use.
type Metrics struct {
	mu sync.Mutex

	total    int64
	success  int64
	failed   int64
	errors   int64
	timeouts int64
	bytes    int64

	statusCounts map[int]int64
	histogram    *hdrhistogram.Histogram

	startTime time.Time
	endTime   time.Time
}

// NewMetrics creates a new Metrics collector
func NewMetrics() *Metrics {
	return &Metrics{
		histogram:    hdrhistogram.New(minLatencyUs, maxLatencyUs, 3),
		statusCounts: make(map[int]int64),
	}
}

// Start marks the beginning of the run
func (m *Metrics) Start() {
	m.mu.Lock()
	m.startTime = time.Now()
	m.mu.Unlock()
}

// Stop marks the end of the run
func (m *Metrics) Stop() {
	m.mu.Lock()
	m.endTime = time.Now()
	m.mu.Unlock()
}

// Record stores one exchange. A non-nil err counts as a transport error and
// its latency is not recorded; a status of 400 or above counts as failed.
func (m *Metrics) Record(result Result, duration time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total++
	if err != nil {
		m.errors++
		if errors.Is(err, context.DeadlineExceeded) {
			m.timeouts++
		}
		return
	}

	m.statusCounts[result.Status]++
	m.bytes += int64(result.Bytes)
	if result.Status >= 400 || result.Status == 0 {
		m.failed++
	} else {
		m.success++
	}

	_ = m.histogram.RecordValue(clampLatency(duration))
}

func clampLatency(d time.Duration) int64 {
	us := d.Microseconds()
	if us < minLatencyUs {
		return minLatencyUs
	}
	if us > maxLatencyUs {
		return maxLatencyUs
	}
	return us
}

// StatusCount is the number of responses with one status code
type StatusCount struct {
	Status int
	Count  int64
}

// Summary is the result of a bench run
type Summary struct {
	Duration      time.Duration
	TotalRequests int64
	SuccessCount  int64
	FailedCount   int64 // responses with status >= 400 or no status line
	ErrorCount    int64 // connect and transport errors
	TimeoutCount  int64
	Bytes         int64
	Canceled      bool

	RPS         float64
	SuccessRate float64

	P50    time.Duration
	P95    time.Duration
	P99    time.Duration
	Min    time.Duration
	Max    time.Duration
	Mean   time.Duration
	StdDev time.Duration

	StatusCounts []StatusCount // ascending by status
}

// GetSummary returns the metrics summary
func (m *Metrics) GetSummary() *Summary {
	m.mu.Lock()
	defer m.mu.Unlock()

	duration := m.endTime.Sub(m.startTime)
	if m.endTime.IsZero() {
		duration = time.Since(m.startTime)
	}

	s := &Summary{
		Duration:      duration,
		TotalRequests: m.total,
		SuccessCount:  m.success,
		FailedCount:   m.failed,
		ErrorCount:    m.errors,
		TimeoutCount:  m.timeouts,
		Bytes:         m.bytes,
		P50:           usToDuration(m.histogram.ValueAtQuantile(50)),
		P95:           usToDuration(m.histogram.ValueAtQuantile(95)),
		P99:           usToDuration(m.histogram.ValueAtQuantile(99)),
		Min:           usToDuration(m.histogram.Min()),
		Max:           usToDuration(m.histogram.Max()),
		Mean:          time.Duration(m.histogram.Mean() * float64(time.Microsecond)),
		StdDev:        time.Duration(m.histogram.StdDev() * float64(time.Microsecond)),
	}

	if duration.Seconds() > 0 {
		s.RPS = float64(m.total) / duration.Seconds()
	}
	if m.total > 0 {
		s.SuccessRate = float64(m.success) / float64(m.total)
	}

	for status, count := range m.statusCounts {
		s.StatusCounts = append(s.StatusCounts, StatusCount{Status: status, Count: count})
	}
	sort.Slice(s.StatusCounts, func(i, j int) bool {
		return s.StatusCounts[i].Status < s.StatusCounts[j].Status
	})

	return s
}

func usToDuration(us int64) time.Duration {
	return time.Duration(us) * time.Microsecond
}
