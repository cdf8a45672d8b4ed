package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/drug-interaction-server/internal/domain"
)

// JSONSource loads the dataset from two JSON files: a drug array and an
// interaction array. The file formats mirror the snapshot record layout so
// curated exports can be served directly.
type JSONSource struct {
	drugsPath        string
	interactionsPath string
}

// NewJSONSource creates a JSON file dataset source.
func NewJSONSource(drugsPath, interactionsPath string) *JSONSource {
	return &JSONSource{
		drugsPath:        drugsPath,
		interactionsPath: interactionsPath,
	}
}

// LoadDrugs reads and decodes the drug file.
func (j *JSONSource) LoadDrugs(ctx context.Context) ([]domain.DrugNode, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(j.drugsPath)
	if err != nil {
		return nil, fmt.Errorf("reading drugs file: %w", err)
	}

	var drugs []domain.DrugNode
	if err := json.Unmarshal(data, &drugs); err != nil {
		return nil, fmt.Errorf("decoding drugs file %s: %w", j.drugsPath, err)
	}
	return drugs, nil
}

// LoadInteractions reads and decodes the interaction file.
func (j *JSONSource) LoadInteractions(ctx context.Context) ([]domain.InteractionEdge, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(j.interactionsPath)
	if err != nil {
		return nil, fmt.Errorf("reading interactions file: %w", err)
	}

	var interactions []domain.InteractionEdge
	if err := json.Unmarshal(data, &interactions); err != nil {
		return nil, fmt.Errorf("decoding interactions file %s: %w", j.interactionsPath, err)
	}
	return interactions, nil
}
