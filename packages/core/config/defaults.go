package config

import "time"

const (
	// DefaultTimeout bounds connect and exchange when no timeout is configured
	DefaultTimeout = 30 * time.Second
	// DefaultOutput is the default output format
	DefaultOutput = "console"
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Method:    "GET",
		Port:      80,
		Route:     "/",
		Timeout:   "30s",
		NoColor:   BoolPtr(false),
		Verbose:   BoolPtr(false),
		RequestID: BoolPtr(false),
		Output:    DefaultOutput,
	}
}

// IsDefault returns true if the config matches defaults
func (c *Config) IsDefault() bool {
	defaults := DefaultConfig()
	return c.Method == defaults.Method &&
		c.Port == defaults.Port &&
		c.Route == defaults.Route &&
		c.Timeout == defaults.Timeout &&
		c.GetNoColor() == defaults.GetNoColor() &&
		c.GetVerbose() == defaults.GetVerbose() &&
		c.GetRequestID() == defaults.GetRequestID() &&
		c.Output == defaults.Output &&
		c.History == defaults.History &&
		c.EnvFile == defaults.EnvFile &&
		len(c.Headers) == 0 &&
		len(c.Variables) == 0
}
