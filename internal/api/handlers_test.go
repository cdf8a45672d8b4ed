package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drug-interaction-server/internal/dataset"
	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/graph"
	"github.com/drug-interaction-server/internal/service"
)

// stubConfig provides fixed configuration for handler tests.
type stubConfig struct {
	cfg domain.Config
}

func (s *stubConfig) GetConfig() *domain.Config               { return &s.cfg }
func (s *stubConfig) GetServerConfig() *domain.ServerConfig   { return &s.cfg.Server }
func (s *stubConfig) GetDatasetConfig() *domain.DatasetConfig { return &s.cfg.Dataset }
func (s *stubConfig) GetCacheConfig() *domain.CacheConfig     { return &s.cfg.Cache }
func (s *stubConfig) Validate() error                         { return nil }
func (s *stubConfig) IsProduction() bool                      { return false }

func newTestServer(t *testing.T) *Server {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	src := dataset.NewEmbeddedSource()
	drugs, err := src.LoadDrugs(context.Background())
	require.NoError(t, err)
	interactions, err := src.LoadInteractions(context.Background())
	require.NoError(t, err)

	store, err := graph.Build(logger, drugs, interactions)
	require.NoError(t, err)
	provider := graph.NewProvider(store)

	checker, err := service.NewInteractionService(provider, service.NewRuleScorer(), 128, logger)
	require.NoError(t, err)
	risk := service.NewRiskAggregator(checker, 4, 20, logger)

	cfg := &stubConfig{cfg: domain.Config{
		Logging: domain.LoggingConfig{Level: "info"},
		Risk:    domain.RiskConfig{MaxWorkers: 4, MaxMedications: 20, MaxAlternatives: 3},
	}}

	return NewServer(cfg, provider, checker, risk, logger)
}

func doRequest(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "healthy", payload["status"])
	assert.EqualValues(t, 10, payload["drugs"])
	assert.EqualValues(t, 6, payload["interactions"])
}

func TestListDrugs(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.EqualValues(t, 10, payload["count"])
}

func TestGetDrug(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs/Warfarin", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "warfarin", payload["id"])
	assert.Equal(t, "anticoagulant", payload["class"])
}

func TestGetDrugNotFound(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDrugStatistics(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs/warfarin/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.EqualValues(t, 2, payload["total_interactions"])
}

func TestSearch(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search?q=war", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.EqualValues(t, 1, payload["count"])
}

func TestSearchRequiresQuery(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/search", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimilarity(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/similarity?drug_a=warfarin&drug_b=aspirin", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.InDelta(t, 0.5, payload["similarity"].(float64), 1e-9)
}

func TestSimilarityUnknownDrug(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/similarity?drug_a=warfarin&drug_b=ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPathways(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/pathways?drug_a=warfarin&drug_b=aspirin", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.EqualValues(t, 2, payload["count"])
}

func TestAlternatives(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs/simvastatin/alternatives?against=clarithromycin", "")
	require.Equal(t, http.StatusOK, w.Code)

	payload := decodeBody(t, w)
	assert.Equal(t, "simvastatin", payload["drug"])
	assert.Equal(t, "clarithromycin", payload["against"])
}

func TestAlternativesRequiresAgainst(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodGet, "/api/v1/drugs/simvastatin/alternatives", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckInteractions(t *testing.T) {
	server := newTestServer(t)

	w := doRequest(t, server, http.MethodPost, "/api/v1/interactions/check",
		`{"medications": ["warfarin", "aspirin", "ibuprofen"]}`)
	require.Equal(t, http.StatusOK, w.Code)

	var payload checkResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.Equal(t, domain.RISK_HIGH, payload.OverallRisk)
	assert.Len(t, payload.Interactions, 3)
	assert.Contains(t, payload.Recommendation, "Avoid")

	for _, pair := range payload.Interactions {
		assert.True(t, pair.Severity.IsValid())
		assert.NotEmpty(t, pair.Explanation.PathwayDescription)
	}
}

func TestCheckInteractionsValidation(t *testing.T) {
	server := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ""},
		{"missing field", `{}`},
		{"single medication", `{"medications": ["warfarin"]}`},
		{"unknown medication", `{"medications": ["warfarin", "ghost"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(t, server, http.MethodPost, "/api/v1/interactions/check", tt.body)
			assert.True(t, w.Code == http.StatusBadRequest || w.Code == http.StatusNotFound,
				"unexpected status %d", w.Code)
		})
	}
}
