// Package stress repeats a single exchange many times with a concurrency cap
// and an optional rate limit, and summarizes latency and status codes.
package stress

import (
	"fmt"
	"time"
)

// Config holds the settings for one bench run
type Config struct {
	Requests    int           // total exchanges to run
	Concurrency int           // max exchanges in flight
	Rate        float64       // requests per second, 0 = unlimited
	Timeout     time.Duration // per exchange, 0 = none
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Requests:    100,
		Concurrency: 10,
		Rate:        0,
		Timeout:     30 * time.Second,
	}
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if c.Requests <= 0 {
		return fmt.Errorf("requests must be positive")
	}
	if c.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive")
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must not be negative")
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	return nil
}
