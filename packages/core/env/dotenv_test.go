package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDotEnv(t *testing.T) {
	path := writeEnvFile(t, `# local settings
HOST=localhost
export TOKEN=abc123
QUOTED="hello world"
SINGLE='x=y'
EMPTY=
 SPACED = padded 
not a pair
=novalue
`)

	vars, err := LoadDotEnv(path)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"HOST":   "localhost",
		"TOKEN":  "abc123",
		"QUOTED": "hello world",
		"SINGLE": "x=y",
		"EMPTY":  "",
		"SPACED": "padded",
	}, vars)
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	_, err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot open env file")
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"a"`, "a"},
		{`'a'`, "a"},
		{`"a'`, `"a'`},
		{`"`, `"`},
		{`plain`, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, unquote(tt.in))
		})
	}
}
