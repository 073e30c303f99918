package loosejson

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "single pair", input: "a:1", expected: `{"a":"1"}`},
		{name: "multiple pairs", input: "name:widget,qty:3", expected: `{"name":"widget","qty":"3"}`},
		{name: "brace wrapped", input: "{name:widget,qty:3}", expected: `{"name":"widget","qty":"3"}`},
		{name: "whitespace trimmed", input: "  { name : widget ,  qty: 3 }  ", expected: `{"name":"widget","qty":"3"}`},
		{name: "empty input", input: "", expected: `{}`},
		{name: "blank input", input: "   ", expected: `{}`},
		{name: "empty braces", input: "{}", expected: `{}`},
		{name: "value split on first colon", input: "url:http://x", expected: `{"url":"http://x"}`},
		{name: "no type inference", input: "ok:true,n:null,f:1.5", expected: `{"ok":"true","n":"null","f":"1.5"}`},
		{name: "empty value", input: "a:", expected: `{"a":""}`},
		{name: "quotes escaped", input: `msg:say "hi"`, expected: `{"msg":"say \"hi\""}`},
		{name: "html kept", input: "tag:<b>&</b>", expected: `{"tag":"<b>&</b>"}`},
		{name: "multi-byte", input: "city:Zürich", expected: `{"city":"Zürich"}`},
		{name: "repeated key last wins", input: "a:1,b:2,a:3", expected: `{"a":"3","b":"2"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.True(t, json.Valid([]byte(got)))
		})
	}
}

func TestNormalize_KeysAndValues(t *testing.T) {
	got, err := Normalize("first: one, second:two ,third:3")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(got), &decoded))
	assert.Equal(t, map[string]any{
		"first":  "one",
		"second": "two",
		"third":  "3",
	}, decoded)
}

func TestNormalize_BracesIdempotent(t *testing.T) {
	wrapped, err := Normalize("{a:1}")
	require.NoError(t, err)
	bare, err := Normalize("a:1")
	require.NoError(t, err)
	assert.Equal(t, bare, wrapped)
}

func TestNormalize_MissingColon(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		segment string
	}{
		{name: "trailing bogus segment", input: "a:1,bogus", segment: "bogus"},
		{name: "only bogus", input: "bogus", segment: "bogus"},
		{name: "trailing comma", input: "a:1,", segment: ""},
		{name: "comma inside value", input: "list:1,2", segment: "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMissingColon))

			var segErr *SegmentError
			require.True(t, errors.As(err, &segErr))
			assert.Equal(t, tt.segment, segErr.Segment)
		})
	}
}

func TestParse_Order(t *testing.T) {
	pairs, err := Parse("z:1,a:2,m:3")
	require.NoError(t, err)
	assert.Equal(t, []Pair{{Key: "z", Value: "1"}, {Key: "a", Value: "2"}, {Key: "m", Value: "3"}}, pairs)
}
