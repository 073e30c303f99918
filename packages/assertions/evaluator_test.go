package assertions

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/abdul-hamid-achik/neo/packages/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createResponse(status string, body string) *http.RawResponse {
	return http.NewRawResponse("HTTP/1.1 "+status+"\r\nContent-Type: application/json\r\n\r\n"+body, 0)
}

const userSchema = `{
  "type": "object",
  "required": ["id", "name"],
  "properties": {
    "id": {"type": "integer"},
    "name": {"type": "string"}
  }
}`

func writeSchema(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "user.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(userSchema), 0644))
	return path
}

func TestEvaluator_Status(t *testing.T) {
	e := NewEvaluator(createResponse("200 OK", `{}`))

	result := e.Status(200)
	assert.True(t, result.Passed)
	assert.NoError(t, result.Err())

	result = e.Status(201)
	assert.False(t, result.Passed)
	assert.Equal(t, 200, result.Actual)
	assert.True(t, errors.Is(result.Err(), ErrAssertionFailed))
	assert.Contains(t, result.Err().Error(), "expected 201, got 200")
}

func TestEvaluator_Schema(t *testing.T) {
	schemaPath := writeSchema(t)

	tests := []struct {
		name    string
		body    string
		passed  bool
		message string
	}{
		{name: "valid", body: `{"id": 1, "name": "John"}`, passed: true},
		{name: "missing field", body: `{"id": 1}`, passed: false, message: "name is required"},
		{name: "wrong type", body: `{"id": "one", "name": "John"}`, passed: false, message: "schema validation failed"},
		{name: "not json", body: `<html>`, passed: false, message: "body is not valid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NewEvaluator(createResponse("200 OK", tt.body)).Schema(schemaPath)
			assert.Equal(t, tt.passed, result.Passed, "Message: %s", result.Message)
			if tt.message != "" {
				assert.Contains(t, result.Message, tt.message)
			}
		})
	}
}

func TestEvaluator_SchemaFileMissing(t *testing.T) {
	result := NewEvaluator(createResponse("200 OK", `{}`)).Schema(filepath.Join(t.TempDir(), "missing.json"))
	assert.False(t, result.Passed)
	assert.Contains(t, result.Message, "failed to read schema file")
}

func TestEvaluateAll(t *testing.T) {
	schemaPath := writeSchema(t)
	resp := createResponse("404 Not Found", `{"id": 1, "name": "John"}`)

	assert.True(t, Checks{}.Empty())
	assert.Empty(t, EvaluateAll(resp, Checks{}))

	results := EvaluateAll(resp, Checks{Status: 200, Schema: schemaPath})
	require.Len(t, results, 2)
	assert.Equal(t, "status", results[0].Subject)
	assert.False(t, results[0].Passed)
	assert.True(t, results[1].Passed)

	err := FirstFailure(results)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}
