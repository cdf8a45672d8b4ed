package dataset

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drug-interaction-server/internal/domain"
)

func TestEmbeddedSource(t *testing.T) {
	src := NewEmbeddedSource()

	drugs, err := src.LoadDrugs(context.Background())
	require.NoError(t, err)
	require.Len(t, drugs, 10)

	byID := make(map[string]domain.DrugNode, len(drugs))
	for _, d := range drugs {
		assert.NotEmpty(t, d.ID)
		assert.NotEmpty(t, d.Label)
		byID[d.ID] = d
	}

	warfarin := byID["warfarin"]
	assert.Equal(t, "anticoagulant", warfarin.Class)
	assert.Equal(t, []string{"CYP2C9", "CYP1A2"}, warfarin.Enzymes)
	assert.InDelta(t, 99.0, warfarin.Properties.ProteinBinding, 1e-9)

	interactions, err := src.LoadInteractions(context.Background())
	require.NoError(t, err)
	require.Len(t, interactions, 6)

	for _, ix := range interactions {
		assert.True(t, ix.Severity.IsValid())
		assert.NotEqual(t, domain.SEVERITY_NONE, ix.Severity)
		assert.Contains(t, byID, ix.DrugA)
		assert.Contains(t, byID, ix.DrugB)
	}
}
