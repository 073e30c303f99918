// Package cmd implements the neo CLI commands using Cobra.
//
// The root command sends one request:
//
//	neo -u localhost -p 8080 -m post -r /api/items -b "name:widget,qty:3"
//
// Available subcommands:
//   - bench: Repeat the request with a concurrency cap and rate limit
//   - history: List exchanges recorded with --history
//   - init: Write a starter .neo.yaml
//   - version: Show neo version information
package cmd
