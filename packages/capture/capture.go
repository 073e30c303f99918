package capture

import (
	"strings"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/tidwall/gjson"
)

const (
	// SourceStatus selects the response status code
	SourceStatus = "status"
	// SourceDuration selects the exchange duration in milliseconds
	SourceDuration = "duration"
	// headerPrefix selects a response header, e.g. "header:Content-Type"
	headerPrefix = "header:"
)

type Extractor struct {
	response *http.RawResponse
	bodyJSON gjson.Result
	isJSON   bool
}

func NewExtractor(resp *http.RawResponse) *Extractor {
	e := &Extractor{
		response: resp,
	}
	if gjson.Valid(resp.Body) {
		e.bodyJSON = gjson.Parse(resp.Body)
		e.isJSON = true
	}
	return e
}

// Extract resolves an expression against the response. "status",
// "duration" and "header:<name>" read the head; anything else is a gjson
// path into the body.
func (e *Extractor) Extract(expr string) (any, bool) {
	switch {
	case expr == SourceStatus:
		return e.response.StatusCode(), true
	case expr == SourceDuration:
		return e.response.DurationMs(), true
	case strings.HasPrefix(expr, headerPrefix):
		return e.extractFromHeader(strings.TrimPrefix(expr, headerPrefix))
	default:
		return e.extractFromBody(expr)
	}
}

func (e *Extractor) extractFromBody(path string) (any, bool) {
	if !e.isJSON {
		return nil, false
	}
	if path == "" {
		return e.bodyJSON.Value(), true
	}

	result := e.bodyJSON.Get(path)
	if !result.Exists() {
		return nil, false
	}
	return result.Value(), true
}

func (e *Extractor) extractFromHeader(name string) (any, bool) {
	name = strings.TrimSpace(name)
	for _, h := range e.response.Headers() {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return nil, false
}

// Extract is a shortcut for NewExtractor(resp).Extract(expr).
func Extract(resp *http.RawResponse, expr string) (any, bool) {
	return NewExtractor(resp).Extract(expr)
}
