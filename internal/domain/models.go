package domain

import (
	"fmt"
	"sort"
	"strings"
)

// DrugProperties holds optional pharmacokinetic attributes of a drug.
// Zero values mean "unknown"; the feature extractor substitutes defaults.
type DrugProperties struct {
	ProteinBinding  float64 `json:"protein_binding,omitempty"`  // percent bound, 0-100
	HalfLife        float64 `json:"half_life,omitempty"`        // hours
	MolecularWeight float64 `json:"molecular_weight,omitempty"` // g/mol
}

// DrugNode represents a drug in the knowledge graph. Immutable after the
// graph is built.
type DrugNode struct {
	ID         string         `json:"id"` // canonical lowercase name
	Label      string         `json:"label"`
	Class      string         `json:"class,omitempty"`
	Enzymes    []string       `json:"enzymes"`
	Properties DrugProperties `json:"properties"`
}

// EnzymeNode represents a metabolizing enzyme or transport protein.
type EnzymeNode struct {
	ID string `json:"id"`
}

// InteractionEdge represents a documented interaction between an unordered
// drug pair. DrugA and DrugB are stored in canonical sort order.
type InteractionEdge struct {
	DrugA     string   `json:"drug_a"`
	DrugB     string   `json:"drug_b"`
	Mechanism string   `json:"mechanism"`
	Severity  Severity `json:"severity"`
	RiskScore float64  `json:"risk_score,omitempty"` // [0,1]
	Evidence  []string `json:"evidence,omitempty"`
}

// CanonicalPair returns the two ids of an unordered drug pair in canonical
// sort order. All symmetric lookups key on this ordering.
func CanonicalPair(a, b string) (string, string) {
	a = CanonicalID(a)
	b = CanonicalID(b)
	if a > b {
		return b, a
	}
	return a, b
}

// PairKey returns a stable string key for an unordered drug pair.
func PairKey(a, b string) string {
	x, y := CanonicalPair(a, b)
	return x + "|" + y
}

// CanonicalID normalizes a drug name into its graph id form.
func CanonicalID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Pathway represents one reconstructed reason two drugs may interact:
// a direct interaction record, a shared metabolizing enzyme, or a shared
// therapeutic class.
type Pathway struct {
	Type      PathwayType `json:"type"`
	Path      []string    `json:"path"` // ordered node ids
	Mechanism string      `json:"mechanism"`
	Severity  Severity    `json:"severity"`
}

// AlternativeCandidate is a same-class substitute proposal with its safety
// ranking score.
type AlternativeCandidate struct {
	Drug        string  `json:"drug"`
	SafetyScore float64 `json:"safety_score"` // [0.5, 1.0], higher = preferred
	Reason      string  `json:"reason"`
}

// FeatureSet holds the derived signals for one drug pair, consumed by the
// scoring function and the explanation generator. DrugA/DrugB carry the
// canonical ids so rule-table scorers can match known pairs.
type FeatureSet struct {
	DrugA                  string  `json:"drug_a"`
	DrugB                  string  `json:"drug_b"`
	EnzymeOverlap          int     `json:"enzyme_overlap"`
	SameDrugClass          bool    `json:"same_drug_class"`
	HighProteinBindingBoth bool    `json:"high_protein_binding_both"`
	ProteinBindingDiff     float64 `json:"protein_binding_diff"`
	HalfLifeRatio          float64 `json:"half_life_ratio"`        // >= 1
	MolecularWeightRatio   float64 `json:"molecular_weight_ratio"` // >= 1
}

// Prediction is the scoring function's verdict for one drug pair.
type Prediction struct {
	HasInteraction bool     `json:"has_interaction"`
	Confidence     float64  `json:"confidence"` // [0,1]
	Severity       Severity `json:"severity"`   // SEVERITY_NONE when no interaction
}

// Validate ensures a prediction is usable by the risk aggregation path.
func (p *Prediction) Validate() error {
	if p.Confidence < 0 || p.Confidence > 1 {
		return fmt.Errorf("prediction validation: confidence %.3f out of range [0,1]", p.Confidence)
	}
	if !p.Severity.IsValid() {
		return fmt.Errorf("prediction validation: %w", ErrInvalidSeverity)
	}
	if p.HasInteraction && p.Severity == SEVERITY_NONE {
		return fmt.Errorf("prediction validation: interaction flagged without severity")
	}
	return nil
}

// KeyFactor is one weighted feature contribution in an explanation.
type KeyFactor struct {
	Feature string  `json:"feature"`
	Weight  float64 `json:"weight"`
}

// RiskContributors splits the explanation weight between pharmacodynamic
// (shared-class) and pharmacokinetic (metabolism, binding, clearance)
// mechanisms. Both fractions sum to 1 whenever any factor fired, else 0.
type RiskContributors struct {
	Pharmacodynamic float64 `json:"pharmacodynamic"`
	Pharmacokinetic float64 `json:"pharmacokinetic"`
}

// Explanation is the feature-weighted rationale for a flagged interaction.
type Explanation struct {
	KeyFactors         []KeyFactor      `json:"key_factors"` // sorted descending by weight
	RiskContributors   RiskContributors `json:"risk_contributors"`
	PathwayDescription string           `json:"pathway_description"`
}

// PairResult is the scored outcome for one drug pair inside a multi-drug
// risk assessment.
type PairResult struct {
	DrugA      string   `json:"drug_a"`
	DrugB      string   `json:"drug_b"`
	Severity   Severity `json:"severity"`
	Confidence float64  `json:"confidence"`
}

// RiskAssessment is the aggregate result of checking every pair in an
// n-drug medication list.
type RiskAssessment struct {
	Interactions      []PairResult `json:"interactions"` // only pairs with an interaction
	OverallRisk       RiskLevel    `json:"overall_risk"`
	OverallConfidence float64      `json:"overall_confidence"` // mean over found interactions, 0 if none
}

// DrugStatistics summarizes a single drug's position in the graph.
type DrugStatistics struct {
	Drug                 string           `json:"drug"`
	TotalInteractions    int              `json:"total_interactions"`
	SeverityDistribution map[Severity]int `json:"severity_distribution"`
	Class                string           `json:"class,omitempty"`
	SameClassDrugs       []string         `json:"same_class_drugs"`
	HighRiskPartners     []PairRisk       `json:"high_risk_partners"`
}

// PairRisk names one high-severity interaction partner of a drug.
type PairRisk struct {
	Drug      string   `json:"drug"`
	Severity  Severity `json:"severity"`
	RiskScore float64  `json:"risk_score"`
}

// SortKeyFactors orders key factors descending by weight, with the feature
// label as a stable tie-break so explanations are deterministic.
func SortKeyFactors(factors []KeyFactor) {
	sort.SliceStable(factors, func(i, j int) bool {
		if factors[i].Weight != factors[j].Weight {
			return factors[i].Weight > factors[j].Weight
		}
		return factors[i].Feature < factors[j].Feature
	})
}
