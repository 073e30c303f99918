// Package assertions checks a raw HTTP response against expectations.
//
// Supported assertions:
//   - Status code equality (--expect-status 200)
//   - JSON Schema validation of the body (--schema ./schema.json)
package assertions
