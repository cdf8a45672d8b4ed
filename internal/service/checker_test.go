package service

import (
	"context"
	"io"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drug-interaction-server/internal/dataset"
	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/graph"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestProvider(t *testing.T) *graph.Provider {
	t.Helper()

	src := dataset.NewEmbeddedSource()
	drugs, err := src.LoadDrugs(context.Background())
	require.NoError(t, err)
	interactions, err := src.LoadInteractions(context.Background())
	require.NoError(t, err)

	store, err := graph.Build(testLogger(), drugs, interactions)
	require.NoError(t, err)
	return graph.NewProvider(store)
}

func newTestService(t *testing.T) *InteractionService {
	t.Helper()

	svc, err := NewInteractionService(newTestProvider(t), NewRuleScorer(), 128, testLogger())
	require.NoError(t, err)
	return svc
}

// countingScorer wraps a scorer and counts Score calls, for cache tests.
type countingScorer struct {
	inner domain.Scorer
	calls atomic.Int64
}

func (c *countingScorer) Score(ctx context.Context, fs domain.FeatureSet) (domain.Prediction, error) {
	c.calls.Add(1)
	return c.inner.Score(ctx, fs)
}

func TestCheckInteractionKnownMajorPair(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.CheckInteraction(context.Background(), "Warfarin", "Aspirin")
	require.NoError(t, err)

	assert.Equal(t, "warfarin", res.DrugA)
	assert.Equal(t, "aspirin", res.DrugB)
	assert.True(t, res.Prediction.HasInteraction)
	assert.Equal(t, domain.MAJOR, res.Prediction.Severity)
	assert.InDelta(t, 0.94, res.Prediction.Confidence, 1e-9)

	require.NotEmpty(t, res.Pathways)
	assert.Equal(t, domain.PATHWAY_DIRECT, res.Pathways[0].Type)
	assert.NotEmpty(t, res.Explanation.PathwayDescription)
}

func TestCheckInteractionDirectEdgeRaisesPrediction(t *testing.T) {
	svc := newTestService(t)

	// Aspirin and ibuprofen are not in the curated scorer table and their
	// feature score stays below threshold, but the graph carries a direct
	// MODERATE edge that must win.
	res, err := svc.CheckInteraction(context.Background(), "aspirin", "ibuprofen")
	require.NoError(t, err)

	assert.True(t, res.Prediction.HasInteraction)
	assert.Equal(t, domain.MODERATE, res.Prediction.Severity)
	assert.GreaterOrEqual(t, res.Prediction.Confidence, 0.68)
}

func TestCheckInteractionNoInteraction(t *testing.T) {
	svc := newTestService(t)

	res, err := svc.CheckInteraction(context.Background(), "acetaminophen", "metformin")
	require.NoError(t, err)

	assert.False(t, res.Prediction.HasInteraction)
	assert.Equal(t, domain.SEVERITY_NONE, res.Prediction.Severity)
	assert.Empty(t, res.Pathways)
}

func TestCheckInteractionUnknownDrug(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CheckInteraction(context.Background(), "warfarin", "ghost")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}

func TestCheckInteractionSelfPair(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.CheckInteraction(context.Background(), "warfarin", " WARFARIN ")
	require.Error(t, err)

	var inputErr *domain.InvalidInputError
	assert.ErrorAs(t, err, &inputErr)
}

func TestCheckInteractionCachesPredictions(t *testing.T) {
	counting := &countingScorer{inner: NewRuleScorer()}
	svc, err := NewInteractionService(newTestProvider(t), counting, 16, testLogger())
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		_, err := svc.CheckInteraction(context.Background(), "warfarin", "aspirin")
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), counting.calls.Load())

	// Reversed order hits the same cache entry.
	_, err = svc.CheckInteraction(context.Background(), "aspirin", "warfarin")
	require.NoError(t, err)
	assert.Equal(t, int64(1), counting.calls.Load())

	svc.PurgeCache()
	_, err = svc.CheckInteraction(context.Background(), "warfarin", "aspirin")
	require.NoError(t, err)
	assert.Equal(t, int64(2), counting.calls.Load())
}
