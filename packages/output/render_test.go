package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		text   string
		isJSON bool
	}{
		{name: "object", body: `{"ok":true}`, text: "{\n  \"ok\": true\n}", isJSON: true},
		{name: "key order kept", body: `{"b":1,"a":2}`, text: "{\n  \"b\": 1,\n  \"a\": 2\n}", isJSON: true},
		{name: "nested", body: `{"a":[1,{"b":null}]}`, text: "{\n  \"a\": [\n    1,\n    {\n      \"b\": null\n    }\n  ]\n}", isJSON: true},
		{name: "surrounding whitespace", body: "  {\"a\": 1}\r\n", text: "{\n  \"a\": 1\n}", isJSON: true},
		{name: "number spelling kept", body: `[1.50, 1e3]`, text: "[\n  1.50,\n  1e3\n]", isJSON: true},
		{name: "scalar", body: `"hello"`, text: `"hello"`, isJSON: true},
		{name: "empty object", body: `{}`, text: `{}`, isJSON: true},
		{name: "plain text", body: "not json", text: "not json", isJSON: false},
		{name: "whitespace kept verbatim", body: "  <html>\n", text: "  <html>\n", isJSON: false},
		{name: "empty body", body: "", text: "", isJSON: false},
		{name: "truncated json", body: `{"a":`, text: `{"a":`, isJSON: false},
		{name: "trailing garbage", body: `{"a":1} x`, text: `{"a":1} x`, isJSON: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isJSON := Render(tt.body)
			assert.Equal(t, tt.text, text)
			assert.Equal(t, tt.isJSON, isJSON)
		})
	}
}
