package history

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory_RoundTrip(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	h, err := New(file, 10)
	require.NoError(t, err)
	h.Add("ls")
	h.Add("cd /tmp")
	require.NoError(t, h.Save())

	reloaded, err := New(file, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"ls", "cd /tmp"}, reloaded.GetAll())
}

func TestHistory_TrimsToMax(t *testing.T) {
	file := filepath.Join(t.TempDir(), "history")

	h, err := New(file, 3)
	require.NoError(t, err)
	for _, cmd := range []string{"a", "b", "c", "d", "e"} {
		h.Add(cmd)
	}
	assert.Equal(t, []string{"c", "d", "e"}, h.GetAll())
}

func TestHistory_MissingFileIsEmpty(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "nope"), 10)
	require.NoError(t, err)
	assert.Empty(t, h.GetAll())
}

func TestHistory_GetAllCopies(t *testing.T) {
	h, err := New(filepath.Join(t.TempDir(), "history"), 10)
	require.NoError(t, err)
	h.Add("ls")

	items := h.GetAll()
	items[0] = "mutated"
	assert.Equal(t, []string{"ls"}, h.GetAll())
}
