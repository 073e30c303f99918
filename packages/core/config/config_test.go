package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "GET", cfg.Method)
	assert.Equal(t, 80, cfg.Port)
	assert.Equal(t, "/", cfg.Route)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.False(t, cfg.GetNoColor())
	assert.True(t, cfg.IsDefault())
}

func TestConfig_GetTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
		wantErr bool
	}{
		{"", DefaultTimeout, false},
		{"0", 0, false},
		{"500ms", 500 * time.Millisecond, false},
		{"2m", 2 * time.Minute, false},
		{"soon", 0, true},
		{"-1s", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.timeout, func(t *testing.T) {
			cfg := &Config{Timeout: tt.timeout}
			got, err := cfg.GetTimeout()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindAndLoadConfig(t *testing.T) {
	t.Run("no file yields defaults", func(t *testing.T) {
		cfg, err := FindAndLoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.True(t, cfg.IsDefault())
	})

	t.Run("yaml file", func(t *testing.T) {
		dir := t.TempDir()
		content := `method: post
port: 8080
route: /api
timeout: 5s
verbose: true
headers:
  Authorization: Bearer {{token}}
variables:
  token: abc
`
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".neo.yaml"), []byte(content), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "post", cfg.Method)
		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "/api", cfg.Route)
		assert.True(t, cfg.GetVerbose())
		assert.False(t, cfg.GetNoColor())
		assert.Equal(t, "Bearer {{token}}", cfg.Headers["Authorization"])
		assert.Equal(t, "abc", cfg.Variables["token"])
	})

	t.Run("json file", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".neorc"), []byte(`{"port": 3000}`), 0644))

		cfg, err := FindAndLoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "GET", cfg.Method)
	})

	t.Run("invalid timeout", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "neo.yaml"), []byte("timeout: later\n"), 0644))

		_, err := FindAndLoadConfig(dir)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid timeout")
	})
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestConfig_Merge(t *testing.T) {
	base := &Config{
		Method:    "GET",
		Port:      80,
		Verbose:   BoolPtr(true),
		Headers:   map[string]string{"A": "1", "B": "2"},
		Variables: map[string]string{"x": "1"},
	}
	other := &Config{
		Port:    8080,
		Verbose: BoolPtr(false),
		Headers: map[string]string{"B": "3"},
	}

	merged := base.Merge(other)

	assert.Equal(t, "GET", merged.Method)
	assert.Equal(t, 8080, merged.Port)
	assert.False(t, merged.GetVerbose())
	assert.Equal(t, map[string]string{"A": "1", "B": "3"}, merged.Headers)
	assert.Equal(t, map[string]string{"x": "1"}, merged.Variables)
	assert.Equal(t, "2", base.Headers["B"], "base must not be mutated")
	assert.Same(t, base, base.Merge(nil))
}

func TestConfig_SaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".neo.yaml")
	cfg := DefaultConfig()
	cfg.Port = 9000
	cfg.Headers = map[string]string{"Accept": "application/json"}

	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9000, loaded.Port)
	assert.Equal(t, "application/json", loaded.Headers["Accept"])
}
