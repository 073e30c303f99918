package stress

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerRunsAllRequests(t *testing.T) {
	var calls atomic.Int64
	runner := NewRunner(&Config{Requests: 25, Concurrency: 5}, func(ctx context.Context) (Result, error) {
		calls.Add(1)
		return Result{Status: 200, Bytes: 2}, nil
	})

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(25), calls.Load())
	assert.Equal(t, int64(25), summary.TotalRequests)
	assert.Equal(t, int64(25), summary.SuccessCount)
	assert.Equal(t, int64(50), summary.Bytes)
	assert.False(t, summary.Canceled)
}

func TestRunnerRespectsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int64
	runner := NewRunner(&Config{Requests: 30, Concurrency: 3}, func(ctx context.Context) (Result, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return Result{Status: 204}, nil
	})

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.LessOrEqual(t, peak.Load(), int64(3))
	assert.Greater(t, peak.Load(), int64(0))
}

func TestRunnerCountsErrors(t *testing.T) {
	var n atomic.Int64
	runner := NewRunner(&Config{Requests: 10, Concurrency: 2}, func(ctx context.Context) (Result, error) {
		if n.Add(1)%2 == 0 {
			return Result{}, errors.New("connection refused")
		}
		return Result{Status: 500}, nil
	})

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.TotalRequests)
	assert.Equal(t, int64(5), summary.ErrorCount)
	assert.Equal(t, int64(5), summary.FailedCount)
	assert.Zero(t, summary.SuccessCount)
}

func TestRunnerTimeout(t *testing.T) {
	runner := NewRunner(&Config{Requests: 2, Concurrency: 2, Timeout: 10 * time.Millisecond}, func(ctx context.Context) (Result, error) {
		<-ctx.Done()
		return Result{}, ctx.Err()
	})

	summary, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.TimeoutCount)
}

func TestRunnerCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int64
	runner := NewRunner(&Config{Requests: 1000, Concurrency: 1}, func(ctx context.Context) (Result, error) {
		if calls.Add(1) == 3 {
			cancel()
		}
		return Result{Status: 200}, nil
	})

	summary, err := runner.Run(ctx)
	require.NoError(t, err)
	assert.True(t, summary.Canceled)
	assert.Less(t, summary.TotalRequests, int64(1000))
}

func TestRunnerInvalidConfig(t *testing.T) {
	runner := NewRunner(&Config{}, func(ctx context.Context) (Result, error) {
		return Result{}, nil
	})

	_, err := runner.Run(context.Background())
	assert.Error(t, err)
}

func TestRunnerProgress(t *testing.T) {
	var last atomic.Int64
	runner := NewRunner(&Config{Requests: 8, Concurrency: 4},
		func(ctx context.Context) (Result, error) { return Result{Status: 200}, nil },
		WithProgress(func(done, total int) {
			assert.Equal(t, 8, total)
			last.Store(int64(done))
		}),
	)

	_, err := runner.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), last.Load())
}

func TestReporterSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(WithWriter(&buf), WithNoColor(true), WithNoProgress(true))

	r.Summary(&Summary{
		Duration:      1500 * time.Millisecond,
		TotalRequests: 1200,
		SuccessCount:  1199,
		ErrorCount:    1,
		SuccessRate:   0.999,
		RPS:           800,
		StatusCounts:  []StatusCount{{Status: 200, Count: 1199}},
		P50:           2 * time.Millisecond,
	})

	out := buf.String()
	assert.Contains(t, out, "BENCH SUMMARY")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "STATUS CODES")
	assert.Contains(t, out, "200  1,199")
	assert.NotContains(t, out, "\x1b[")
}

func TestReporterJSONSummary(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(WithWriter(&buf))

	require.NoError(t, r.JSONSummary(&Summary{
		TotalRequests: 3,
		StatusCounts:  []StatusCount{{Status: 201, Count: 3}},
	}))
	assert.Contains(t, buf.String(), `"201": 3`)
	assert.Contains(t, buf.String(), `"total": 3`)
}

func TestReporterProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(WithWriter(&buf), WithNoProgress(true))
	r.Progress(1, 2)
	assert.Empty(t, buf.String())
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatNumber(tt.n))
		})
	}
}
