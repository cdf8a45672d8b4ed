// Package dataset supplies the curated drug and interaction records the
// knowledge graph is built from. Sources exist for an embedded demo set,
// JSON files, SQLite and Postgres; they all satisfy domain.DatasetSource.
package dataset

import (
	"context"

	"github.com/drug-interaction-server/internal/domain"
)

// EmbeddedSource serves the built-in demonstration dataset. It is the
// default source so the server runs without any external files; production
// deployments point the dataset config at a real database instead.
type EmbeddedSource struct{}

// NewEmbeddedSource creates the embedded demo dataset source.
func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

// LoadDrugs returns the demo drug records in curated order.
func (e *EmbeddedSource) LoadDrugs(ctx context.Context) ([]domain.DrugNode, error) {
	return []domain.DrugNode{
		{ID: "warfarin", Label: "Warfarin", Class: "anticoagulant", Enzymes: []string{"CYP2C9", "CYP1A2"},
			Properties: domain.DrugProperties{ProteinBinding: 99.0, HalfLife: 40.0, MolecularWeight: 308.3}},
		{ID: "aspirin", Label: "Aspirin", Class: "antiplatelet", Enzymes: []string{"CYP2C9"},
			Properties: domain.DrugProperties{ProteinBinding: 90.0, HalfLife: 0.3, MolecularWeight: 180.2}},
		{ID: "lisinopril", Label: "Lisinopril", Class: "ace_inhibitor", Enzymes: nil,
			Properties: domain.DrugProperties{ProteinBinding: 25.0, HalfLife: 12.0, MolecularWeight: 405.5}},
		{ID: "metformin", Label: "Metformin", Class: "biguanide", Enzymes: []string{"OCT1", "OCT2"},
			Properties: domain.DrugProperties{HalfLife: 6.2, MolecularWeight: 129.2}},
		{ID: "simvastatin", Label: "Simvastatin", Class: "statin", Enzymes: []string{"CYP3A4"},
			Properties: domain.DrugProperties{ProteinBinding: 95.0, HalfLife: 2.0, MolecularWeight: 418.6}},
		{ID: "clarithromycin", Label: "Clarithromycin", Class: "macrolide", Enzymes: []string{"CYP3A4"},
			Properties: domain.DrugProperties{ProteinBinding: 70.0, HalfLife: 4.0, MolecularWeight: 748.0}},
		{ID: "levothyroxine", Label: "Levothyroxine", Class: "thyroid_hormone", Enzymes: []string{"UGT1A1"},
			Properties: domain.DrugProperties{ProteinBinding: 99.7, HalfLife: 168.0, MolecularWeight: 776.9}},
		{ID: "calcium", Label: "Calcium", Class: "supplement", Enzymes: nil},
		{ID: "acetaminophen", Label: "Acetaminophen", Class: "analgesic", Enzymes: []string{"CYP2E1", "UGT1A1"},
			Properties: domain.DrugProperties{ProteinBinding: 25.0, HalfLife: 2.5, MolecularWeight: 151.2}},
		{ID: "ibuprofen", Label: "Ibuprofen", Class: "nsaid", Enzymes: []string{"CYP2C9"},
			Properties: domain.DrugProperties{ProteinBinding: 99.0, HalfLife: 2.0, MolecularWeight: 206.3}},
	}, nil
}

// LoadInteractions returns the demo interaction records.
func (e *EmbeddedSource) LoadInteractions(ctx context.Context) ([]domain.InteractionEdge, error) {
	return []domain.InteractionEdge{
		{DrugA: "warfarin", DrugB: "aspirin", Mechanism: "increases_bleeding_risk", Severity: domain.MAJOR,
			RiskScore: 0.89, Evidence: []string{"PMID:12345678", "PMID:87654321"}},
		{DrugA: "warfarin", DrugB: "ibuprofen", Mechanism: "increases_bleeding_risk", Severity: domain.MAJOR,
			RiskScore: 0.85, Evidence: []string{"PMID:11111111"}},
		{DrugA: "simvastatin", DrugB: "clarithromycin", Mechanism: "increases_concentration", Severity: domain.MAJOR,
			RiskScore: 0.92},
		{DrugA: "levothyroxine", DrugB: "calcium", Mechanism: "decreases_absorption", Severity: domain.MODERATE,
			RiskScore: 0.62},
		{DrugA: "metformin", DrugB: "lisinopril", Mechanism: "increases_lactic_acidosis_risk", Severity: domain.MODERATE,
			RiskScore: 0.58},
		{DrugA: "aspirin", DrugB: "ibuprofen", Mechanism: "additive_gastric_mucosa_effects", Severity: domain.MODERATE,
			RiskScore: 0.68, Evidence: []string{"PMID:22222222"}},
	}, nil
}
