package output

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// Render pretty-prints body with two-space indentation when it is valid
// JSON, keeping key order and number spelling. Otherwise body is returned
// unchanged and isJSON is false; that is not an error.
func Render(body string) (text string, isJSON bool) {
	if !gjson.Valid(body) {
		return body, false
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(body), "", "  "); err != nil {
		return body, false
	}
	return strings.TrimRight(buf.String(), " \t\r\n"), true
}
