package service

import (
	"context"

	"github.com/drug-interaction-server/internal/domain"
)

// Rule weights for the fallback scoring path. A pair flags as interacting
// when its accumulated score exceeds interactionThreshold.
const (
	baselineScore       = 0.10
	sameClassScore      = 0.30
	enzymeOverlapScore  = 0.20
	proteinBindingScore = 0.15

	interactionThreshold = 0.5
)

// RuleScorer is the default domain.Scorer. It combines a curated table of
// well-documented interaction pairs with pharmacology feature rules, and is
// fully deterministic: the same feature set always yields the same
// prediction.
type RuleScorer struct {
	knownPairs map[string]domain.Prediction
}

// NewRuleScorer creates a rule scorer seeded with the curated pair table.
func NewRuleScorer() *RuleScorer {
	known := map[string]domain.Prediction{
		domain.PairKey("warfarin", "aspirin"):           {HasInteraction: true, Confidence: 0.94, Severity: domain.MAJOR},
		domain.PairKey("warfarin", "ibuprofen"):         {HasInteraction: true, Confidence: 0.90, Severity: domain.MAJOR},
		domain.PairKey("simvastatin", "clarithromycin"): {HasInteraction: true, Confidence: 0.92, Severity: domain.MAJOR},
		domain.PairKey("levothyroxine", "calcium"):      {HasInteraction: true, Confidence: 0.82, Severity: domain.MODERATE},
		domain.PairKey("metformin", "lisinopril"):       {HasInteraction: true, Confidence: 0.78, Severity: domain.MODERATE},
	}
	return &RuleScorer{knownPairs: known}
}

// Score predicts whether the pair described by the feature set interacts.
func (r *RuleScorer) Score(ctx context.Context, fs domain.FeatureSet) (domain.Prediction, error) {
	if err := ctx.Err(); err != nil {
		return domain.Prediction{}, err
	}

	if pred, ok := r.knownPairs[domain.PairKey(fs.DrugA, fs.DrugB)]; ok {
		return pred, nil
	}

	score := baselineScore
	if fs.SameDrugClass {
		score += sameClassScore
	}
	if fs.EnzymeOverlap > 0 {
		frac := float64(fs.EnzymeOverlap) / 3.0
		if frac > 1.0 {
			frac = 1.0
		}
		score += enzymeOverlapScore * frac
	}
	if fs.HighProteinBindingBoth {
		score += proteinBindingScore
	}

	if score <= interactionThreshold {
		return domain.Prediction{
			HasInteraction: false,
			Confidence:     1.0 - score,
			Severity:       domain.SEVERITY_NONE,
		}, nil
	}

	severity := domain.MINOR
	confidence := 0.68
	if fs.SameDrugClass || fs.EnzymeOverlap >= 2 {
		severity = domain.MODERATE
		confidence = 0.82
	}
	return domain.Prediction{
		HasInteraction: true,
		Confidence:     confidence,
		Severity:       severity,
	}, nil
}
