package setup

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drug-interaction-server/internal/domain"
)

type stubConfig struct {
	cfg domain.Config
}

func (s *stubConfig) GetConfig() *domain.Config               { return &s.cfg }
func (s *stubConfig) GetServerConfig() *domain.ServerConfig   { return &s.cfg.Server }
func (s *stubConfig) GetDatasetConfig() *domain.DatasetConfig { return &s.cfg.Dataset }
func (s *stubConfig) GetCacheConfig() *domain.CacheConfig     { return &s.cfg.Cache }
func (s *stubConfig) Validate() error                         { return nil }
func (s *stubConfig) IsProduction() bool                      { return false }

type closeRecorder struct {
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func embeddedConfig() *stubConfig {
	return &stubConfig{cfg: domain.Config{
		Dataset: domain.DatasetConfig{Source: "embedded"},
	}}
}

func TestBuildRuntimeEmbedded(t *testing.T) {
	rt, err := BuildRuntime(context.Background(), embeddedConfig(), testLogger())
	require.NoError(t, err)
	defer rt.Close()

	store := rt.Provider.Current()
	assert.Equal(t, 10, store.DrugCount())
	assert.Equal(t, 6, store.InteractionCount())
}

func TestBuildRuntimeSnapshotRoundTrip(t *testing.T) {
	cfg := embeddedConfig()
	cfg.cfg.Cache.SnapshotPath = filepath.Join(t.TempDir(), "graph.snapshot")
	logger := testLogger()

	first, err := BuildRuntime(context.Background(), cfg, logger)
	require.NoError(t, err)
	first.Close()

	// Second build restores from the saved snapshot instead of the dataset.
	second, err := BuildRuntime(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer second.Close()

	assert.Equal(t, first.Provider.Current().AllDrugs(), second.Provider.Current().AllDrugs())
}

func TestReloadReleasesPreviousDatasetHandles(t *testing.T) {
	logger := testLogger()
	rt := &Runtime{log: logger}

	prev := &closeRecorder{}
	rt.datasetSrc = prev

	src, err := rt.openDatasetSource(context.Background(), embeddedConfig(), logger)
	require.NoError(t, err)
	require.NotNil(t, src)

	assert.True(t, prev.closed)
	assert.Nil(t, rt.datasetSrc)
}

func TestReloadPublishesFreshStore(t *testing.T) {
	cfg := embeddedConfig()
	logger := testLogger()

	rt, err := BuildRuntime(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer rt.Close()

	before := rt.Provider.Current()
	require.NoError(t, rt.Reload(context.Background(), cfg, logger))
	after := rt.Provider.Current()

	assert.NotSame(t, before, after)
	assert.Equal(t, before.AllDrugs(), after.AllDrugs())
}
