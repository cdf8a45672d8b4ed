package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drug-interaction-server/internal/domain"
)

func TestSnapshotRoundTrip(t *testing.T) {
	store := buildDemoStore(t)

	data, err := store.Snapshot()
	require.NoError(t, err)

	restored, err := Restore(testLogger(), data)
	require.NoError(t, err)

	assert.Equal(t, store.DrugCount(), restored.DrugCount())
	assert.Equal(t, store.InteractionCount(), restored.InteractionCount())
	assert.Equal(t, store.AllDrugs(), restored.AllDrugs())
	assert.Equal(t, store.FindPathways("warfarin", "aspirin"), restored.FindPathways("warfarin", "aspirin"))

	edge, ok := restored.DirectInteraction("simvastatin", "clarithromycin")
	require.True(t, ok)
	assert.Equal(t, domain.MAJOR, edge.Severity)
}

func TestSnapshotDeterministic(t *testing.T) {
	store := buildDemoStore(t)

	first, err := store.Snapshot()
	require.NoError(t, err)
	second, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	restored, err := Restore(testLogger(), first)
	require.NoError(t, err)
	again, err := restored.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestSnapshotCarriesVersion(t *testing.T) {
	store := buildDemoStore(t)

	data, err := store.Snapshot()
	require.NoError(t, err)

	var rec struct {
		Version int `json:"snapshot_version"`
	}
	require.NoError(t, json.Unmarshal(data, &rec))
	assert.Equal(t, 1, rec.Version)
}

func TestRestoreRejectsUnknownVersion(t *testing.T) {
	_, err := Restore(testLogger(), []byte(`{"snapshot_version": 99, "drugs": [], "interactions": []}`))
	require.Error(t, err)
}

func TestRestoreRejectsGarbage(t *testing.T) {
	_, err := Restore(testLogger(), []byte("not json"))
	require.Error(t, err)
}

func TestProviderPublish(t *testing.T) {
	store := buildDemoStore(t)

	p := NewProvider(store)
	assert.Same(t, store, p.Current())

	replacement := buildNSAIDStore(t)
	p.Publish(replacement)
	assert.Same(t, replacement, p.Current())
}
