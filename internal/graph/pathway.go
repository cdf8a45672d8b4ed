package graph

import (
	"fmt"

	"github.com/drug-interaction-server/internal/domain"
)

// FindPathways enumerates the interaction explanations connecting two drugs,
// in fixed priority order: direct interaction record first, then one
// enzyme-mediated pathway per shared enzyme, then a class-effect pathway.
// Callers treat the first pathway as the primary mechanism, so this order is
// part of the contract.
//
// Unknown drugs produce an empty result, not an error: "no pathway" is a
// valid answer for a pair the graph cannot connect.
func (s *Store) FindPathways(a, b string) []domain.Pathway {
	drugA := domain.CanonicalID(a)
	drugB := domain.CanonicalID(b)
	if !s.HasDrug(drugA) || !s.HasDrug(drugB) {
		return nil
	}

	var pathways []domain.Pathway

	if ix, ok := s.DirectInteraction(drugA, drugB); ok {
		pathways = append(pathways, domain.Pathway{
			Type:      domain.PATHWAY_DIRECT,
			Path:      []string{drugA, drugB},
			Mechanism: ix.Mechanism,
			Severity:  ix.Severity,
		})
	}

	// Shared metabolism implies possible competition for the enzyme. The
	// blanket MODERATE severity is a curated simplification: the graph has
	// no per-enzyme severity data.
	for _, enz := range s.sharedEnzymes(drugA, drugB) {
		pathways = append(pathways, domain.Pathway{
			Type:      domain.PATHWAY_ENZYME_MEDIATED,
			Path:      []string{drugA, enz, drugB},
			Mechanism: fmt.Sprintf("competitive_inhibition_via_%s", enz),
			Severity:  domain.MODERATE,
		})
	}

	if s.SameClass(drugA, drugB) {
		nodeA, _ := s.DrugInfo(drugA)
		pathways = append(pathways, domain.Pathway{
			Type:      domain.PATHWAY_CLASS_EFFECT,
			Path:      []string{drugA, nodeA.Class, drugB},
			Mechanism: "additive_pharmacological_effect",
			Severity:  domain.MODERATE,
		})
	}

	return pathways
}
