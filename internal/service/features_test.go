package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drug-interaction-server/internal/domain"
)

func TestExtractOverlapAndClass(t *testing.T) {
	extractor := NewFeatureExtractor()

	a := domain.DrugNode{ID: "Warfarin", Class: "anticoagulant", Enzymes: []string{"CYP2C9", "CYP1A2"},
		Properties: domain.DrugProperties{ProteinBinding: 99.0, HalfLife: 40.0, MolecularWeight: 308.3}}
	b := domain.DrugNode{ID: "aspirin", Class: "antiplatelet", Enzymes: []string{"CYP2C9"},
		Properties: domain.DrugProperties{ProteinBinding: 90.0, HalfLife: 0.3, MolecularWeight: 180.2}}

	fs := extractor.Extract(a, b)

	assert.Equal(t, "warfarin", fs.DrugA)
	assert.Equal(t, "aspirin", fs.DrugB)
	assert.Equal(t, 1, fs.EnzymeOverlap)
	assert.False(t, fs.SameDrugClass)
	assert.False(t, fs.HighProteinBindingBoth)
	assert.InDelta(t, 9.0, fs.ProteinBindingDiff, 1e-9)
	assert.InDelta(t, 40.0/0.3, fs.HalfLifeRatio, 1e-9)
}

func TestExtractAppliesDefaults(t *testing.T) {
	extractor := NewFeatureExtractor()

	// No curated properties on either side: ratio features fall back to the
	// neutral value 1.
	fs := extractor.Extract(
		domain.DrugNode{ID: "a", Class: "supplement"},
		domain.DrugNode{ID: "b", Class: "supplement"},
	)

	assert.True(t, fs.SameDrugClass)
	assert.Zero(t, fs.EnzymeOverlap)
	assert.False(t, fs.HighProteinBindingBoth)
	assert.InDelta(t, 1.0, fs.HalfLifeRatio, 1e-9)
	assert.InDelta(t, 1.0, fs.MolecularWeightRatio, 1e-9)
}

func TestExtractRatioOrderIndependent(t *testing.T) {
	extractor := NewFeatureExtractor()

	a := domain.DrugNode{ID: "a", Properties: domain.DrugProperties{HalfLife: 2.0, MolecularWeight: 100.0}}
	b := domain.DrugNode{ID: "b", Properties: domain.DrugProperties{HalfLife: 20.0, MolecularWeight: 400.0}}

	ab := extractor.Extract(a, b)
	ba := extractor.Extract(b, a)

	assert.Equal(t, ab.HalfLifeRatio, ba.HalfLifeRatio)
	assert.Equal(t, ab.MolecularWeightRatio, ba.MolecularWeightRatio)
	assert.InDelta(t, 10.0, ab.HalfLifeRatio, 1e-9)
	assert.InDelta(t, 4.0, ab.MolecularWeightRatio, 1e-9)
}

func TestExtractHighProteinBindingBoth(t *testing.T) {
	extractor := NewFeatureExtractor()

	fs := extractor.Extract(
		domain.DrugNode{ID: "a", Properties: domain.DrugProperties{ProteinBinding: 99.0}},
		domain.DrugNode{ID: "b", Properties: domain.DrugProperties{ProteinBinding: 95.0}},
	)
	assert.True(t, fs.HighProteinBindingBoth)

	// 90 is the threshold, not above it.
	fs = extractor.Extract(
		domain.DrugNode{ID: "a", Properties: domain.DrugProperties{ProteinBinding: 99.0}},
		domain.DrugNode{ID: "b", Properties: domain.DrugProperties{ProteinBinding: 90.0}},
	)
	assert.False(t, fs.HighProteinBindingBoth)
}
