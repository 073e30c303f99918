package http

import (
	"strconv"
	"strings"
)

const crlf = "\r\n"

// WireRequest is the exact byte sequence sent to the peer.
type WireRequest []byte

func (w WireRequest) String() string {
	return string(w)
}

// Build assembles the request line, headers and body. Headers are written
// in order: Host, Connection, extras, then Content-Type and Content-Length
// when body is non-nil. Content-Length is the byte length of body.
func Build(s RequestSpec, body *string) WireRequest {
	var b strings.Builder

	b.WriteString(s.Method + " " + s.Route + " HTTP/1.1" + crlf)
	b.WriteString("Host: " + s.Address() + crlf)
	b.WriteString("Connection: close" + crlf)
	for _, h := range s.Headers {
		b.WriteString(h.Name + ": " + h.Value + crlf)
	}

	if body == nil {
		b.WriteString(crlf)
		return WireRequest(b.String())
	}

	b.WriteString("Content-Type: application/json" + crlf)
	b.WriteString("Content-Length: " + strconv.Itoa(len(*body)) + crlf)
	b.WriteString(crlf)
	b.WriteString(*body)
	return WireRequest(b.String())
}
