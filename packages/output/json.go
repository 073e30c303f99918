package output

import (
	"encoding/json"
	"io"
	"os"

	"github.com/abdul-hamid-achik/neo/packages/http"
)

// JSONOutput is the document written for one exchange
type JSONOutput struct {
	Request  *JSONRequest  `json:"request,omitempty"`
	Response *JSONResponse `json:"response,omitempty"`
	Query    *JSONQuery    `json:"query,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// JSONRequest represents request details
type JSONRequest struct {
	Method    string `json:"method"`
	Address   string `json:"address"`
	Route     string `json:"route"`
	RequestID string `json:"requestId,omitempty"`
	Bytes     int    `json:"bytes"`
}

// JSONResponse represents response details
type JSONResponse struct {
	StatusCode int               `json:"statusCode"`
	StatusLine string            `json:"statusLine"`
	Headers    map[string]string `json:"headers,omitempty"`
	Body       any               `json:"body"`
	IsJSON     bool              `json:"isJson"`
	Duration   float64           `json:"duration"`
}

// JSONQuery represents a --query result
type JSONQuery struct {
	Path  string `json:"path"`
	Value any    `json:"value"`
	Found bool   `json:"found"`
}

// JSONFormatter collects one exchange and writes it on Flush
type JSONFormatter struct {
	writer io.Writer
	output JSONOutput
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatConnected(addr string) {
	// Connection progress is not part of the document
}

func (f *JSONFormatter) FormatRequest(spec http.RequestSpec, wire http.WireRequest) {
	req := &JSONRequest{
		Method:  spec.Method,
		Address: spec.Address(),
		Route:   spec.Route,
		Bytes:   len(wire),
	}
	for _, h := range spec.Headers {
		if h.Name == http.RequestIDHeader {
			req.RequestID = h.Value
		}
	}
	f.output.Request = req
}

func (f *JSONFormatter) FormatResponse(resp *http.RawResponse) {
	headers := make(map[string]string)
	for _, h := range resp.Headers() {
		if _, ok := headers[h.Name]; !ok {
			headers[h.Name] = h.Value
		}
	}

	var body any = resp.Body
	_, isJSON := Render(resp.Body)
	if isJSON {
		body = json.RawMessage(resp.Body)
	}

	f.output.Response = &JSONResponse{
		StatusCode: resp.StatusCode(),
		StatusLine: resp.StatusLine(),
		Headers:    headers,
		Body:       body,
		IsJSON:     isJSON,
		Duration:   float64(resp.DurationMs()),
	}
}

func (f *JSONFormatter) FormatQuery(path string, value any, found bool) {
	f.output.Query = &JSONQuery{Path: path, Value: value, Found: found}
}

func (f *JSONFormatter) FormatError(err error) {
	f.output.Error = err.Error()
}

// Flush writes the accumulated document and resets the formatter.
func (f *JSONFormatter) Flush() error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(f.output)
	f.output = JSONOutput{}
	return err
}
