package capture

import (
	"testing"
	"time"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/stretchr/testify/assert"
)

func newResponse(body string) *http.RawResponse {
	return http.NewRawResponse("HTTP/1.1 201 Created\r\nContent-Type: application/json\r\nX-Trace: abc\r\n\r\n"+body, 42*time.Millisecond)
}

func TestExtract(t *testing.T) {
	resp := newResponse(`{"user":{"name":"John","age":30},"items":[{"id":1},{"id":2}]}`)

	tests := []struct {
		name     string
		expr     string
		expected any
		found    bool
	}{
		{name: "nested string", expr: "user.name", expected: "John", found: true},
		{name: "nested number", expr: "user.age", expected: float64(30), found: true},
		{name: "array length", expr: "items.#", expected: float64(2), found: true},
		{name: "array element", expr: "items.1.id", expected: float64(2), found: true},
		{name: "missing path", expr: "user.email", found: false},
		{name: "status", expr: "status", expected: 201, found: true},
		{name: "duration", expr: "duration", expected: int64(42), found: true},
		{name: "header", expr: "header:x-trace", expected: "abc", found: true},
		{name: "missing header", expr: "header:X-Missing", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, found := Extract(resp, tt.expr)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestExtract_WholeBody(t *testing.T) {
	value, found := Extract(newResponse(`{"ok":true}`), "")
	assert.True(t, found)
	assert.Equal(t, map[string]any{"ok": true}, value)
}

func TestExtract_NotJSON(t *testing.T) {
	resp := newResponse("plain text")

	_, found := Extract(resp, "")
	assert.False(t, found)

	_, found = Extract(resp, "user.name")
	assert.False(t, found)

	status, found := Extract(resp, "status")
	assert.True(t, found)
	assert.Equal(t, 201, status)
}
