package service

import (
	"fmt"
	"strings"

	"github.com/drug-interaction-server/internal/domain"
)

// Factor labels used in explanations. The weights reflect each factor's
// relative contribution to interaction risk and were tuned against the
// curated interaction set.
const (
	factorEnzymeOverlap      = "enzyme_overlap"
	factorSameDrugClass      = "same_drug_class"
	factorProteinBindingBoth = "protein_binding_both"
	factorHalfLifeRatio      = "half_life_ratio"
	factorMolecularWeight    = "molecular_weight_ratio"
)

var factorWeights = map[string]float64{
	factorEnzymeOverlap:      0.31,
	factorSameDrugClass:      0.28,
	factorProteinBindingBoth: 0.22,
	factorHalfLifeRatio:      0.12,
	factorMolecularWeight:    0.07,
}

// Ratio features only matter once the two drugs diverge substantially.
const ratioThreshold = 2.0

// Explainer turns a feature set into a human-readable account of why a
// pair was flagged.
type Explainer struct{}

// NewExplainer creates an explainer.
func NewExplainer() *Explainer {
	return &Explainer{}
}

// Explain builds the explanation for a scored pair. Key factors are sorted
// by contribution, and the risk contributor split is normalized so the
// pharmacodynamic and pharmacokinetic shares sum to one when any factor
// fired; with no factors both shares are zero.
func (e *Explainer) Explain(fs domain.FeatureSet) domain.Explanation {
	var factors []domain.KeyFactor

	if fs.EnzymeOverlap > 0 {
		frac := float64(fs.EnzymeOverlap) / 3.0
		if frac > 1.0 {
			frac = 1.0
		}
		factors = append(factors, domain.KeyFactor{
			Feature: factorEnzymeOverlap,
			Weight:  factorWeights[factorEnzymeOverlap] * frac,
		})
	}
	if fs.SameDrugClass {
		factors = append(factors, domain.KeyFactor{
			Feature: factorSameDrugClass,
			Weight:  factorWeights[factorSameDrugClass],
		})
	}
	if fs.HighProteinBindingBoth {
		factors = append(factors, domain.KeyFactor{
			Feature: factorProteinBindingBoth,
			Weight:  factorWeights[factorProteinBindingBoth],
		})
	}
	if fs.HalfLifeRatio > ratioThreshold {
		factors = append(factors, domain.KeyFactor{
			Feature: factorHalfLifeRatio,
			Weight:  factorWeights[factorHalfLifeRatio] * ratioContribution(fs.HalfLifeRatio),
		})
	}
	// The molecular weight ratio stays in the weight table for reporting
	// but never contributes a key factor.

	domain.SortKeyFactors(factors)

	return domain.Explanation{
		KeyFactors:         factors,
		RiskContributors:   splitContributors(factors),
		PathwayDescription: describeFeatures(fs),
	}
}

// ratioContribution maps a ratio in (2, inf) onto (0.25, 1]: a ratio of 5
// or more counts as a full contribution.
func ratioContribution(ratio float64) float64 {
	c := (ratio - 1.0) / 4.0
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// splitContributors buckets factor contributions into pharmacodynamic
// (shared pharmacology) and pharmacokinetic (metabolism and disposition)
// shares. With no active factors both shares stay zero.
func splitContributors(factors []domain.KeyFactor) domain.RiskContributors {
	var dynamic, kinetic float64
	for _, f := range factors {
		if f.Feature == factorSameDrugClass {
			dynamic += f.Weight
		} else {
			kinetic += f.Weight
		}
	}

	total := dynamic + kinetic
	if total == 0 {
		return domain.RiskContributors{}
	}
	return domain.RiskContributors{
		Pharmacodynamic: dynamic / total,
		Pharmacokinetic: kinetic / total,
	}
}

// describeFeatures renders one sentence per fired feature, in fixed
// priority order, with a generic fallback when nothing fired.
func describeFeatures(fs domain.FeatureSet) string {
	var parts []string

	if fs.EnzymeOverlap > 0 {
		parts = append(parts, fmt.Sprintf(
			"%s and %s are both metabolized by shared enzymes, potentially leading to competitive inhibition",
			fs.DrugA, fs.DrugB))
	}
	if fs.SameDrugClass {
		parts = append(parts,
			"Both medications belong to the same therapeutic class, which may result in additive pharmacological effects")
	}
	if fs.HighProteinBindingBoth {
		parts = append(parts,
			"Both drugs have high protein binding (>90%), which can lead to displacement interactions and increased free drug concentrations")
	}
	if fs.HalfLifeRatio > ratioThreshold {
		parts = append(parts, fmt.Sprintf(
			"The drugs have a large half-life disparity (ratio %.1f), which can cause mismatched accumulation and washout",
			fs.HalfLifeRatio))
	}

	if len(parts) == 0 {
		return fmt.Sprintf(
			"The interaction between %s and %s may occur through multiple pharmacological pathways.",
			fs.DrugA, fs.DrugB)
	}
	return strings.Join(parts, ". ") + "."
}

// RecommendationFor returns the clinical guidance template for a risk level.
func RecommendationFor(level domain.RiskLevel) string {
	switch level {
	case domain.RISK_CRITICAL:
		return "Do not co-administer. A contraindicated combination was detected; seek immediate clinical guidance."
	case domain.RISK_HIGH:
		return "Avoid this combination if possible. Consult the prescriber before co-administration."
	case domain.RISK_MODERATE:
		return "Use with caution. Monitor for adverse effects and consider dose adjustment."
	default:
		return "No significant interactions identified. Follow standard dosing guidance."
	}
}
