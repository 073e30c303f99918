// Package output renders HTTP exchanges for the terminal or as JSON.
//
// Supported output formats:
//   - Console: colored titles, headers in blue, JSON bodies pretty-printed in green
//   - JSON: one machine-readable document per exchange
//
// Render holds the body logic shared by both: a body that parses as JSON
// is re-indented, anything else is returned verbatim.
package output
