package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	kv := NewMemory()

	_, ok, err := kv.Get("chat")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set("chat", `{"messages":[]}`))
	value, ok, err := kv.Get("chat")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"messages":[]}`, value)

	require.NoError(t, kv.Remove("chat"))
	_, ok, err = kv.Get("chat")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteRoundTrip(t *testing.T) {
	kv, err := NewSQLite(filepath.Join(t.TempDir(), "contentdesk.db"))
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set("session", `{"authenticated":true}`))
	// Last write wins.
	require.NoError(t, kv.Set("session", `{"authenticated":false}`))

	value, ok, err := kv.Get("session")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"authenticated":false}`, value)

	require.NoError(t, kv.Remove("session"))
	require.NoError(t, kv.Remove("session")) // idempotent
	_, ok, err = kv.Get("session")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "contentdesk.db")
	kv, err := NewSQLite(path)
	require.NoError(t, err)
	defer kv.Close()

	require.NoError(t, kv.Set("ui", `{"theme":"dark"}`))
	value, ok, err := kv.Get("ui")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"theme":"dark"}`, value)
}
