package loosejson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMissingColon is returned when a segment has no key/value separator.
var ErrMissingColon = errors.New("missing ':' between key and value")

// SegmentError reports the segment that could not be split.
type SegmentError struct {
	Index   int
	Segment string
	Err     error
}

func (e *SegmentError) Error() string {
	return fmt.Sprintf("body segment %d %q: %v", e.Index+1, e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error {
	return e.Err
}

// Pair is one key/value segment of loose input.
type Pair struct {
	Key   string
	Value string
}

// Normalize converts loose key:value text into a compact JSON object.
// Key order follows the input; a repeated key keeps its first position and
// takes the last value.
func Normalize(input string) (string, error) {
	pairs, err := Parse(input)
	if err != nil {
		return "", err
	}
	return encode(pairs)
}

// Parse splits loose input into ordered key/value pairs without encoding them.
func Parse(input string) ([]Pair, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var pairs []Pair
	index := make(map[string]int)
	for i, segment := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(segment, ":")
		if !ok {
			return nil, &SegmentError{Index: i, Segment: strings.TrimSpace(segment), Err: ErrMissingColon}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		if pos, seen := index[key]; seen {
			pairs[pos].Value = value
			continue
		}
		index[key] = len(pairs)
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, nil
}

func encode(pairs []Pair) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pairs {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, p.Key); err != nil {
			return "", err
		}
		buf.WriteByte(':')
		if err := writeString(&buf, p.Value); err != nil {
			return "", err
		}
	}
	buf.WriteByte('}')
	return buf.String(), nil
}

// writeString appends s as a JSON string literal. HTML characters are kept
// as-is so the body reads the way it was typed.
func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
