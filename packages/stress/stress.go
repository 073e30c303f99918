package stress

import (
	"context"
	"sync"
	"time"
)

// Result is what one exchange reports back to the runner
type Result struct {
	Status int
	Bytes  int
}

// ExchangeFunc performs one exchange. It must honour ctx.
type ExchangeFunc func(ctx context.Context) (Result, error)

// ProgressFunc is called after each exchange with the number completed so far.
type ProgressFunc func(done, total int)

// Runner executes a bench run
type Runner struct {
	config     *Config
	exchange   ExchangeFunc
	scheduler  *Scheduler
	metrics    *Metrics
	onProgress ProgressFunc
}

// RunnerOption configures the runner
type RunnerOption func(*Runner)

// WithProgress sets a callback invoked after every exchange
func WithProgress(fn ProgressFunc) RunnerOption {
	return func(r *Runner) {
		r.onProgress = fn
	}
}

// NewRunner creates a runner for config that calls exchange for every request
func NewRunner(config *Config, exchange ExchangeFunc, opts ...RunnerOption) *Runner {
	r := &Runner{
		config:    config,
		exchange:  exchange,
		scheduler: NewScheduler(config),
		metrics:   NewMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes the configured number of exchanges and returns the summary.
// Cancelling ctx stops scheduling; exchanges already in flight see the
// cancellation through their own context and the partial summary is returned.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	if err := r.config.Validate(); err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	r.metrics.Start()
	for i := 0; i < r.config.Requests; i++ {
		if err := r.scheduler.Wait(ctx); err != nil {
			break
		}
		if err := r.scheduler.Acquire(ctx); err != nil {
			break
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer r.scheduler.Release()

			r.runOne(ctx)

			if r.onProgress != nil {
				mu.Lock()
				done++
				r.onProgress(done, r.config.Requests)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	r.metrics.Stop()

	summary := r.metrics.GetSummary()
	summary.Canceled = ctx.Err() != nil
	return summary, nil
}

func (r *Runner) runOne(ctx context.Context) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := r.exchange(ctx)
	r.metrics.Record(result, time.Since(start), err)
}
