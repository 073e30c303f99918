package assertions

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

// ErrAssertionFailed is wrapped by every failed Result error.
var ErrAssertionFailed = errors.New("assertion failed")

type Result struct {
	Passed   bool
	Message  string
	Expected any
	Actual   any
	Subject  string
}

// Err returns nil for a passing result.
func (r Result) Err() error {
	if r.Passed {
		return nil
	}
	return fmt.Errorf("%w: %s: %s", ErrAssertionFailed, r.Subject, r.Message)
}

type Evaluator struct {
	response *http.RawResponse
}

func NewEvaluator(resp *http.RawResponse) *Evaluator {
	return &Evaluator{response: resp}
}

// Status checks the status code parsed from the status line.
func (e *Evaluator) Status(want int) Result {
	got := e.response.StatusCode()
	r := Result{
		Subject:  "status",
		Expected: want,
		Actual:   got,
		Passed:   got == want,
	}
	if !r.Passed {
		r.Message = fmt.Sprintf("expected %d, got %d", want, got)
	}
	return r
}

// Schema validates the body against the JSON Schema stored at schemaPath.
func (e *Evaluator) Schema(schemaPath string) Result {
	r := Result{
		Subject:  "schema",
		Expected: schemaPath,
	}

	schemaData, err := os.ReadFile(schemaPath)
	if err != nil {
		r.Message = fmt.Sprintf("failed to read schema file: %v", err)
		return r
	}

	if !gjson.Valid(e.response.Body) {
		r.Message = "body is not valid JSON"
		return r
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	documentLoader := gojsonschema.NewStringLoader(e.response.Body)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		r.Message = fmt.Sprintf("schema validation error: %v", err)
		return r
	}

	if result.Valid() {
		r.Passed = true
		return r
	}

	var violations []string
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	r.Actual = violations
	r.Message = fmt.Sprintf("schema validation failed: %s", strings.Join(violations, "; "))
	return r
}

// Checks selects which assertions EvaluateAll runs. Zero values are skipped.
type Checks struct {
	Status int
	Schema string
}

func (c Checks) Empty() bool {
	return c.Status == 0 && c.Schema == ""
}

// EvaluateAll runs the configured checks in order: status, then schema.
func EvaluateAll(resp *http.RawResponse, checks Checks) []Result {
	e := NewEvaluator(resp)
	var results []Result
	if checks.Status != 0 {
		results = append(results, e.Status(checks.Status))
	}
	if checks.Schema != "" {
		results = append(results, e.Schema(checks.Schema))
	}
	return results
}

// FirstFailure returns the error of the first failed result, if any.
func FirstFailure(results []Result) error {
	for _, r := range results {
		if err := r.Err(); err != nil {
			return err
		}
	}
	return nil
}
