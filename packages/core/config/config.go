package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the neo configuration
type Config struct {
	Method    string            `yaml:"method,omitempty"`
	Port      int               `yaml:"port,omitempty"`
	Route     string            `yaml:"route,omitempty"`
	Timeout   string            `yaml:"timeout,omitempty"` // duration, e.g. 30s; "0" disables
	NoColor   *bool             `yaml:"noColor,omitempty"`
	Verbose   *bool             `yaml:"verbose,omitempty"`
	RequestID *bool             `yaml:"requestId,omitempty"`
	Output    string            `yaml:"output,omitempty"` // console or json
	History   string            `yaml:"history,omitempty"` // sqlite file recording exchanges
	Headers   map[string]string `yaml:"headers,omitempty"` // extra headers for every request
	EnvFile   string            `yaml:"envFile,omitempty"` // dotenv file feeding {{variables}}
	Variables map[string]string `yaml:"variables,omitempty"`
}

// BoolPtr returns a pointer to b for building configs in code
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetRequestID returns whether an X-Request-Id header is added, defaulting to false
func (c *Config) GetRequestID() bool {
	return getBool(c.RequestID, false)
}

// GetTimeout parses Timeout. An empty value yields DefaultTimeout.
func (c *Config) GetTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return DefaultTimeout, nil
	}
	if c.Timeout == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout value %q: %w (use format like 30s, 1m, 500ms)", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid timeout value %q: must not be negative", c.Timeout)
	}
	return d, nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".neo.yaml",
	".neo.yml",
	"neo.yaml",
	".neorc",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file. YAML is a
// superset of JSON, so JSON config files load too.
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if _, err := config.GetTimeout(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	if other.Method != "" {
		result.Method = other.Method
	}
	if other.Port > 0 {
		result.Port = other.Port
	}
	if other.Route != "" {
		result.Route = other.Route
	}
	if other.Timeout != "" {
		result.Timeout = other.Timeout
	}
	if other.Output != "" {
		result.Output = other.Output
	}
	if other.History != "" {
		result.History = other.History
	}
	if other.EnvFile != "" {
		result.EnvFile = other.EnvFile
	}

	// Boolean flags - only override if explicitly set in other config
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.RequestID != nil {
		result.RequestID = other.RequestID
	}

	result.Headers = mergeMaps(c.Headers, other.Headers)
	result.Variables = mergeMaps(c.Variables, other.Variables)

	return &result
}

func mergeMaps(base, over map[string]string) map[string]string {
	if len(over) == 0 {
		return base
	}
	merged := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return merged
}

// SaveConfig saves the configuration to a file
func (c *Config) SaveConfig(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
