// Package config handles configuration loading and management for neo.
//
// It provides functionality for:
//   - Loading configuration from .neo.yaml, neo.yaml or .neorc files
//   - Default configuration values
//   - Merging a file configuration under command line overrides
package config
