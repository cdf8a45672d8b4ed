package service

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
	"github.com/drug-interaction-server/internal/graph"
)

// CheckResult is the full analysis of a single drug pair.
type CheckResult struct {
	DrugA       string
	DrugB       string
	Prediction  domain.Prediction
	Features    domain.FeatureSet
	Pathways    []domain.Pathway
	Explanation domain.Explanation
}

// InteractionService runs the pairwise analysis pipeline: feature
// extraction, scoring, pathway lookup and explanation. Predictions are
// cached per canonical pair; the cache must be purged when a new graph
// snapshot is published.
type InteractionService struct {
	provider  *graph.Provider
	extractor *FeatureExtractor
	scorer    domain.Scorer
	explainer *Explainer
	cache     *lru.Cache[string, domain.Prediction]
	logger    *logrus.Logger
}

// NewInteractionService creates the pairwise analysis service. A cacheSize
// of zero or less disables prediction caching.
func NewInteractionService(provider *graph.Provider, scorer domain.Scorer, cacheSize int, logger *logrus.Logger) (*InteractionService, error) {
	if provider == nil {
		return nil, fmt.Errorf("graph provider is required")
	}
	if scorer == nil {
		scorer = NewRuleScorer()
	}

	svc := &InteractionService{
		provider:  provider,
		extractor: NewFeatureExtractor(),
		scorer:    scorer,
		explainer: NewExplainer(),
		logger:    logger,
	}
	if cacheSize > 0 {
		cache, err := lru.New[string, domain.Prediction](cacheSize)
		if err != nil {
			return nil, fmt.Errorf("creating prediction cache: %w", err)
		}
		svc.cache = cache
	}
	return svc, nil
}

// CheckInteraction analyzes one pair of drugs. Both drugs must exist in the
// graph; a pair the graph cannot connect still yields a result with an
// empty pathway list.
func (s *InteractionService) CheckInteraction(ctx context.Context, drugA, drugB string) (*CheckResult, error) {
	store := s.provider.Current()

	nodeA, err := store.DrugInfo(drugA)
	if err != nil {
		return nil, err
	}
	nodeB, err := store.DrugInfo(drugB)
	if err != nil {
		return nil, err
	}
	if nodeA.ID == nodeB.ID {
		return nil, domain.NewInvalidInputError("drugs", "cannot check a drug against itself")
	}

	features := s.extractor.Extract(nodeA, nodeB)
	prediction, err := s.predict(ctx, features)
	if err != nil {
		return nil, err
	}

	pathways := store.FindPathways(nodeA.ID, nodeB.ID)

	// A curated direct edge is stronger evidence than any feature rule, so
	// it can only raise the prediction, never lower it.
	if edge, ok := store.DirectInteraction(nodeA.ID, nodeB.ID); ok {
		prediction.HasInteraction = true
		if edge.Severity.Score() > prediction.Severity.Score() {
			prediction.Severity = edge.Severity
		}
		if edge.RiskScore > prediction.Confidence {
			prediction.Confidence = edge.RiskScore
		}
	}

	s.logger.WithFields(logrus.Fields{
		"drug_a":          nodeA.ID,
		"drug_b":          nodeB.ID,
		"has_interaction": prediction.HasInteraction,
		"severity":        prediction.Severity.String(),
	}).Debug("Interaction check completed")

	return &CheckResult{
		DrugA:       nodeA.ID,
		DrugB:       nodeB.ID,
		Prediction:  prediction,
		Features:    features,
		Pathways:    pathways,
		Explanation: s.explainer.Explain(features),
	}, nil
}

// PurgeCache drops all cached predictions. Call after publishing a new
// graph snapshot.
func (s *InteractionService) PurgeCache() {
	if s.cache != nil {
		s.cache.Purge()
	}
}

func (s *InteractionService) predict(ctx context.Context, features domain.FeatureSet) (domain.Prediction, error) {
	key := domain.PairKey(features.DrugA, features.DrugB)
	if s.cache != nil {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}
	}

	prediction, err := s.scorer.Score(ctx, features)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("scoring pair %s: %w", key, err)
	}
	if err := prediction.Validate(); err != nil {
		return domain.Prediction{}, fmt.Errorf("scorer returned invalid prediction for %s: %w", key, err)
	}

	if s.cache != nil {
		s.cache.Add(key, prediction)
	}
	return prediction, nil
}
