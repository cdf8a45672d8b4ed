package graph

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
)

// snapshotVersion identifies the serialized record schema. Bump it whenever
// the field layout changes; Restore rejects unknown versions instead of
// guessing.
const snapshotVersion = 1

// snapshotRecord is the explicit, inspectable on-disk form of a Store.
// Drugs keep their dataset insertion order so a restored graph answers
// AllDrugs identically.
type snapshotRecord struct {
	Version      int                      `json:"snapshot_version"`
	Drugs        []domain.DrugNode        `json:"drugs"`
	Interactions []domain.InteractionEdge `json:"interactions"`
}

// Snapshot serializes the store into its versioned record format.
func (s *Store) Snapshot() ([]byte, error) {
	record := snapshotRecord{
		Version: snapshotVersion,
		Drugs:   make([]domain.DrugNode, 0, len(s.order)),
	}
	for _, id := range s.order {
		record.Drugs = append(record.Drugs, s.drugs[id])
	}
	// Pair map iteration is unordered; emit edges in first-drug dataset
	// order so snapshots of the same graph are byte-identical.
	for _, id := range s.order {
		for _, e := range s.adjacency[id] {
			if e.kind == relationInteractsWith && e.interaction.DrugA == id {
				record.Interactions = append(record.Interactions, *e.interaction)
			}
		}
	}

	data, err := json.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding graph snapshot: %w", err)
	}
	return data, nil
}

// Restore rebuilds a Store from a serialized snapshot. The restored graph
// preserves drug ordering and every query result of the original.
func Restore(logger *logrus.Logger, data []byte) (*Store, error) {
	var record snapshotRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding graph snapshot: %w", err)
	}
	if record.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d (expected %d)", record.Version, snapshotVersion)
	}

	store, err := Build(logger, record.Drugs, record.Interactions)
	if err != nil {
		return nil, fmt.Errorf("rebuilding graph from snapshot: %w", err)
	}
	return store, nil
}
