package client_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keystone-server/pkg/client"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := client.NewFileStore(filepath.Join(t.TempDir(), "state"))
	require.NoError(t, err)

	_, ok, err := store.Get("keystone:progress:demo-user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("keystone:progress:demo-user-1", []byte(`{"trustNetwork":5}`)))

	value, ok, err := store.Get("keystone:progress:demo-user-1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"trustNetwork":5}`, string(value))

	// Overwrite replaces the prior value.
	require.NoError(t, store.Set("keystone:progress:demo-user-1", []byte(`{"trustNetwork":9}`)))
	value, _, err = store.Get("keystone:progress:demo-user-1")
	require.NoError(t, err)
	assert.JSONEq(t, `{"trustNetwork":9}`, string(value))
}

func TestFileStore_SanitizesKeys(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "state")
	store, err := client.NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Set("keystone:progress:demo/user", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "keystone_progress_demo_user.json", entries[0].Name())
}

func TestMemStore_CopiesValues(t *testing.T) {
	store := client.NewMemStore()

	original := []byte(`{"crewLoyalty":1}`)
	require.NoError(t, store.Set("k", original))
	original[0] = 'X'

	value, ok, err := store.Get("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"crewLoyalty":1}`), value)

	// Mutating the returned slice does not poison the store.
	value[0] = 'Y'
	again, _, _ := store.Get("k")
	assert.Equal(t, []byte(`{"crewLoyalty":1}`), again)
}
