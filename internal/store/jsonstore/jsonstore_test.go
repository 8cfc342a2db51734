package jsonstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_WritesOneFilePerKey(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s, err := Open(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set("todo_app_items_v1", "[]"))

	b, err := os.ReadFile(filepath.Join(dir, "todo_app_items_v1.json"))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not linger")
}

func TestInvalidKeys(t *testing.T) {
	s, err := Open(t.TempDir())
	require.NoError(t, err)

	for _, k := range []string{"", "../escape", `a\b`} {
		assert.Error(t, s.Set(k, "x"), k)
		_, _, err := s.Get(k)
		assert.Error(t, err, k)
	}
}

func TestGet_UnreadableIsError(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)

	// a directory where the file should be cannot be read as a value
	require.NoError(t, os.Mkdir(filepath.Join(dir, "k.json"), 0o700))
	_, ok, err := s.Get("k")
	assert.Error(t, err)
	assert.False(t, ok)
}
