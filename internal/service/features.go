// Package service implements the interaction analysis pipeline on top of the
// graph store: feature extraction, scoring, explanation and multi-drug risk
// aggregation.
package service

import (
	"math"

	"github.com/drug-interaction-server/internal/domain"
)

// Property fallbacks for drugs with incomplete curation. Half-life and
// molecular weight use population-typical values so ratio features stay
// meaningful; protein binding defaults to zero, which is the conservative
// choice for the binding features.
const (
	defaultHalfLife        = 12.0
	defaultMolecularWeight = 300.0

	highProteinBindingThreshold = 90.0
)

// FeatureExtractor derives the pairwise feature set consumed by scorers.
type FeatureExtractor struct{}

// NewFeatureExtractor creates a feature extractor.
func NewFeatureExtractor() *FeatureExtractor {
	return &FeatureExtractor{}
}

// Extract computes the symmetric pairwise features for two drug records.
func (f *FeatureExtractor) Extract(a, b domain.DrugNode) domain.FeatureSet {
	propsA := withDefaults(a.Properties)
	propsB := withDefaults(b.Properties)

	overlap := 0
	seen := make(map[string]struct{}, len(a.Enzymes))
	for _, enz := range a.Enzymes {
		seen[enz] = struct{}{}
	}
	for _, enz := range b.Enzymes {
		if _, ok := seen[enz]; ok {
			overlap++
		}
	}

	return domain.FeatureSet{
		DrugA:         domain.CanonicalID(a.ID),
		DrugB:         domain.CanonicalID(b.ID),
		EnzymeOverlap: overlap,
		SameDrugClass: a.Class != "" && a.Class == b.Class,
		HighProteinBindingBoth: propsA.ProteinBinding > highProteinBindingThreshold &&
			propsB.ProteinBinding > highProteinBindingThreshold,
		ProteinBindingDiff:   math.Abs(propsA.ProteinBinding - propsB.ProteinBinding),
		HalfLifeRatio:        safeRatio(propsA.HalfLife, propsB.HalfLife),
		MolecularWeightRatio: safeRatio(propsA.MolecularWeight, propsB.MolecularWeight),
	}
}

func withDefaults(p domain.DrugProperties) domain.DrugProperties {
	if p.HalfLife <= 0 {
		p.HalfLife = defaultHalfLife
	}
	if p.MolecularWeight <= 0 {
		p.MolecularWeight = defaultMolecularWeight
	}
	return p
}

// safeRatio returns max/min so the ratio is >= 1 and independent of argument
// order. A non-positive operand yields the neutral ratio 1.
func safeRatio(x, y float64) float64 {
	if x <= 0 || y <= 0 {
		return 1.0
	}
	if x < y {
		x, y = y, x
	}
	return x / y
}
