package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
)

const defaultRiskWorkers = 4

// RiskAggregator evaluates every pair in a medication list concurrently and
// folds the pairwise results into an overall risk assessment. Results are
// independent of input order: the medication list is canonicalized and
// sorted before pairing. Duplicate medications are rejected as invalid
// input rather than silently collapsed.
type RiskAggregator struct {
	checker        *InteractionService
	maxWorkers     int
	maxMedications int
	logger         *logrus.Logger
}

// NewRiskAggregator creates a risk aggregator. maxMedications of zero or
// less disables the list-size limit.
func NewRiskAggregator(checker *InteractionService, maxWorkers, maxMedications int, logger *logrus.Logger) *RiskAggregator {
	if maxWorkers <= 0 {
		maxWorkers = defaultRiskWorkers
	}
	return &RiskAggregator{
		checker:        checker,
		maxWorkers:     maxWorkers,
		maxMedications: maxMedications,
		logger:         logger,
	}
}

// AssessRisk analyzes all pairs in the medication list and aggregates them
// into an overall risk level. At least two medications are required, the
// list must not repeat a drug, and every medication must exist in the
// graph.
func (r *RiskAggregator) AssessRisk(ctx context.Context, medications []string) (*domain.RiskAssessment, error) {
	meds, err := canonicalMedications(medications)
	if err != nil {
		return nil, err
	}
	if len(meds) < 2 {
		return nil, domain.NewInvalidInputError("medications", "at least two distinct medications are required")
	}
	if r.maxMedications > 0 && len(meds) > r.maxMedications {
		return nil, domain.NewInvalidInputError("medications",
			fmt.Sprintf("medication list exceeds the limit of %d", r.maxMedications))
	}
	sort.Strings(meds)

	type pair struct{ a, b string }
	var pairs []pair
	for i := 0; i < len(meds); i++ {
		for j := i + 1; j < len(meds); j++ {
			pairs = append(pairs, pair{a: meds[i], b: meds[j]})
		}
	}

	results := make([]*CheckResult, len(pairs))
	errs := make([]error, len(pairs))

	sem := make(chan struct{}, r.maxWorkers)
	var wg sync.WaitGroup
	for i, p := range pairs {
		wg.Add(1)
		go func(i int, p pair) {
			defer wg.Done()
			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[i] = ctx.Err()
				return
			}
			results[i], errs[i] = r.checker.CheckInteraction(ctx, p.a, p.b)
		}(i, p)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	var interactions []domain.PairResult
	maxScore := 0
	confidenceSum := 0.0
	for _, res := range results {
		if !res.Prediction.HasInteraction {
			continue
		}
		interactions = append(interactions, domain.PairResult{
			DrugA:      res.DrugA,
			DrugB:      res.DrugB,
			Severity:   res.Prediction.Severity,
			Confidence: res.Prediction.Confidence,
		})
		if score := res.Prediction.Severity.Score(); score > maxScore {
			maxScore = score
		}
		confidenceSum += res.Prediction.Confidence
	}

	overallConfidence := 0.0
	if len(interactions) > 0 {
		overallConfidence = confidenceSum / float64(len(interactions))
	}

	assessment := &domain.RiskAssessment{
		Interactions:      interactions,
		OverallRisk:       domain.RiskLevelFromScore(maxScore),
		OverallConfidence: overallConfidence,
	}

	r.logger.WithFields(logrus.Fields{
		"medications":  len(meds),
		"pairs":        len(pairs),
		"interactions": len(interactions),
		"overall_risk": assessment.OverallRisk.String(),
	}).Info("Risk assessment completed")

	return assessment, nil
}

// canonicalMedications lowercases and trims the list, dropping empty
// entries. A drug appearing twice after canonicalization is invalid input.
func canonicalMedications(ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		cid := domain.CanonicalID(id)
		if cid == "" {
			continue
		}
		if _, ok := seen[cid]; ok {
			return nil, domain.NewInvalidInputError("medications",
				fmt.Sprintf("duplicate medication %q in request", cid))
		}
		seen[cid] = struct{}{}
		out = append(out, cid)
	}
	return out, nil
}
