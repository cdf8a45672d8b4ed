package domain

import (
	"context"
)

// Scorer turns a drug pair's feature set into an interaction prediction.
// Implementations must be deterministic: identical feature sets always
// produce identical predictions. The default scorer is a rule table; a
// trained model can be swapped in behind this interface.
type Scorer interface {
	Score(ctx context.Context, features FeatureSet) (Prediction, error)
}

// ScorerFunc adapts a plain function to the Scorer interface.
type ScorerFunc func(ctx context.Context, features FeatureSet) (Prediction, error)

// Score implements Scorer.
func (f ScorerFunc) Score(ctx context.Context, features FeatureSet) (Prediction, error) {
	return f(ctx, features)
}

// DatasetSource supplies the curated drug and interaction records the graph
// is built from. Implementations exist for the embedded demo dataset, JSON
// files, SQLite and Postgres.
type DatasetSource interface {
	LoadDrugs(ctx context.Context) ([]DrugNode, error)
	LoadInteractions(ctx context.Context) ([]InteractionEdge, error)
}

// SnapshotStore persists a serialized graph snapshot. The payload is the
// graph package's versioned record format; stores treat it as opaque bytes.
type SnapshotStore interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, bool, error) // ok=false on cache miss
}

// ConfigManager defines the interface for configuration management
type ConfigManager interface {
	GetConfig() *Config
	GetServerConfig() *ServerConfig
	GetDatasetConfig() *DatasetConfig
	GetCacheConfig() *CacheConfig
	Validate() error
	IsProduction() bool
}
