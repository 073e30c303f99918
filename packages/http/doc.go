// Package http builds, sends and splits raw HTTP/1.1 exchanges.
//
// It does not use net/http. A request is assembled by hand from a RequestSpec:
//   - Request line, Host (always host:port) and Connection: close
//   - Optional extra headers in the order given
//   - Content-Type and Content-Length when a loose JSON body is present
//
// The Transport writes the bytes over a single TCP connection, reads until
// the peer closes it, and splits the text on the first blank line.
package http
