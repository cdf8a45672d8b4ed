package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSnapshotStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshots", "graph.json")
	store, err := NewFileSnapshotStore(path)
	require.NoError(t, err)

	// Empty store is a miss.
	_, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)

	payload := []byte(`{"snapshot_version":1}`)
	require.NoError(t, store.Save(context.Background(), payload))

	data, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload, data)
}

func TestFileSnapshotStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	store, err := NewFileSnapshotStore(path)
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), []byte("first")))
	require.NoError(t, store.Save(context.Background(), []byte("second")))

	data, found, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("second"), data)
}

func TestFileSnapshotStoreCancelledContext(t *testing.T) {
	store, err := NewFileSnapshotStore(filepath.Join(t.TempDir(), "graph.json"))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, store.Save(ctx, []byte("data")))
	_, _, err = store.Load(ctx)
	assert.Error(t, err)
}
