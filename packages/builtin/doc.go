// Package builtin provides the functions available inside {{...}} placeholders.
//
// Available functions:
//   - uuid(): random UUID v4
//   - now(): current UTC time in RFC 3339
//   - timestamp(), timestampMs(): Unix time in seconds or milliseconds
//   - random(min, max): random integer in [min, max]
//   - randomString(length): random alphanumeric string
//   - base64(value): standard base64 encoding
package builtin
