package builtin

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_Call(t *testing.T) {
	r := NewRegistry()

	t.Run("uuid", func(t *testing.T) {
		v, ok := r.Call("uuid()")
		require.True(t, ok)
		_, err := uuid.Parse(v.(string))
		assert.NoError(t, err)
	})

	t.Run("random in range", func(t *testing.T) {
		for i := 0; i < 50; i++ {
			v, ok := r.Call("random(5, 7)")
			require.True(t, ok)
			assert.GreaterOrEqual(t, v.(int), 5)
			assert.LessOrEqual(t, v.(int), 7)
		}
	})

	t.Run("randomString length", func(t *testing.T) {
		v, ok := r.Call("randomString(12)")
		require.True(t, ok)
		assert.Len(t, v.(string), 12)
	})

	t.Run("base64 quoted argument", func(t *testing.T) {
		v, ok := r.Call(`base64("user:pass")`)
		require.True(t, ok)
		assert.Equal(t, "dXNlcjpwYXNz", v)
	})

	t.Run("unknown function", func(t *testing.T) {
		_, ok := r.Call("nope()")
		assert.False(t, ok)
	})

	t.Run("not a call", func(t *testing.T) {
		_, ok := r.Call("uuid")
		assert.False(t, ok)
	})
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	r.Register("echo", func(args []string) any { return args })

	v, ok := r.Call(`echo(a, "b,c", 'd')`)
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b,c", "d"}, v)
}
