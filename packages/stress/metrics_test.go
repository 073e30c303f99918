package stress

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsRecord(t *testing.T) {
	m := NewMetrics()
	m.Start()

	m.Record(Result{Status: 200, Bytes: 10}, 10*time.Millisecond, nil)
	m.Record(Result{Status: 200, Bytes: 10}, 20*time.Millisecond, nil)
	m.Record(Result{Status: 404, Bytes: 5}, 30*time.Millisecond, nil)
	m.Record(Result{}, time.Millisecond, errors.New("connection refused"))
	m.Record(Result{}, time.Second, fmt.Errorf("read: %w", context.DeadlineExceeded))

	m.Stop()
	s := m.GetSummary()

	assert.Equal(t, int64(5), s.TotalRequests)
	assert.Equal(t, int64(2), s.SuccessCount)
	assert.Equal(t, int64(1), s.FailedCount)
	assert.Equal(t, int64(2), s.ErrorCount)
	assert.Equal(t, int64(1), s.TimeoutCount)
	assert.Equal(t, int64(25), s.Bytes)
	assert.InDelta(t, 0.4, s.SuccessRate, 0.001)
	assert.Equal(t, []StatusCount{{Status: 200, Count: 2}, {Status: 404, Count: 1}}, s.StatusCounts)
}

func TestMetricsLatency(t *testing.T) {
	m := NewMetrics()
	m.Start()
	for i := 1; i <= 100; i++ {
		m.Record(Result{Status: 200}, time.Duration(i)*time.Millisecond, nil)
	}
	m.Stop()

	s := m.GetSummary()
	assert.InDelta(t, float64(time.Millisecond), float64(s.Min), float64(10*time.Microsecond))
	assert.InDelta(t, float64(100*time.Millisecond), float64(s.Max), float64(time.Millisecond))
	assert.InDelta(t, float64(50*time.Millisecond), float64(s.P50), float64(time.Millisecond))
	assert.InDelta(t, float64(99*time.Millisecond), float64(s.P99), float64(time.Millisecond))
	assert.True(t, s.P50 <= s.P95 && s.P95 <= s.P99)
}

func TestClampLatency(t *testing.T) {
	assert.Equal(t, int64(minLatencyUs), clampLatency(0))
	assert.Equal(t, int64(maxLatencyUs), clampLatency(2*time.Minute))
	assert.Equal(t, int64(1500), clampLatency(1500*time.Microsecond))
}

func TestMetricsEmptySummary(t *testing.T) {
	m := NewMetrics()
	m.Start()
	m.Stop()

	s := m.GetSummary()
	require.NotNil(t, s)
	assert.Zero(t, s.TotalRequests)
	assert.Zero(t, s.SuccessRate)
	assert.Empty(t, s.StatusCounts)
}
