// Package capture extracts values from raw HTTP responses.
//
// Supported expressions:
//   - gjson paths into a JSON body ("user.name", "items.#", "items.0.id")
//   - "header:<name>" for a response header
//   - "status" and "duration"
//
// An empty expression returns the whole decoded body.
package capture
