package http

import (
	"strconv"
	"strings"
	"time"
)

// headerSeparator ends the header block.
const headerSeparator = "\r\n\r\n"

// RawResponse is the full text read from the peer, split on the first blank line.
type RawResponse struct {
	Raw      string
	Head     string
	Body     string
	Duration time.Duration
}

// NewRawResponse splits raw into head and body.
func NewRawResponse(raw string, duration time.Duration) *RawResponse {
	head, body := Split(raw)
	return &RawResponse{
		Raw:      raw,
		Head:     head,
		Body:     body,
		Duration: duration,
	}
}

// Split returns the text before and after the first "\r\n\r\n". Without a
// separator the whole text is the head and the body is empty. Headers are
// not unfolded or merged, and Content-Length on the response is ignored.
func Split(raw string) (head, body string) {
	head, body, _ = strings.Cut(raw, headerSeparator)
	return head, body
}

// StatusLine returns the first line of the head.
func (r *RawResponse) StatusLine() string {
	line, _, _ := strings.Cut(r.Head, crlf)
	return line
}

// StatusCode parses the status line, returning 0 when it is not HTTP.
func (r *RawResponse) StatusCode() int {
	fields := strings.Fields(r.StatusLine())
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "HTTP/") {
		return 0
	}
	code, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0
	}
	return code
}

// Headers returns the header lines after the status line, in order.
// Lines without a colon are skipped.
func (r *RawResponse) Headers() []Header {
	_, rest, ok := strings.Cut(r.Head, crlf)
	if !ok {
		return nil
	}
	var headers []Header
	for _, line := range strings.Split(rest, crlf) {
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		headers = append(headers, Header{Name: strings.TrimSpace(name), Value: strings.TrimSpace(value)})
	}
	return headers
}

// Header returns the first value for key, matched case-insensitively.
func (r *RawResponse) Header(key string) string {
	for _, h := range r.Headers() {
		if strings.EqualFold(h.Name, key) {
			return h.Value
		}
	}
	return ""
}

func (r *RawResponse) ContentType() string {
	return r.Header("Content-Type")
}

func (r *RawResponse) IsSuccess() bool {
	code := r.StatusCode()
	return code >= 200 && code < 300
}

func (r *RawResponse) DurationMs() int64 {
	return r.Duration.Milliseconds()
}
