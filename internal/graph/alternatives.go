package graph

import (
	"fmt"
	"sort"

	"github.com/drug-interaction-server/internal/domain"
)

// maxContextRank caps RankByContext results.
const maxContextRank = 10

// FindAlternatives proposes same-class substitutes for drug that have no
// documented interaction with interactingDrug, ranked descending by safety
// score. Lower enzyme-set similarity to the original drug is treated as
// safer (less shared metabolism). Ties keep dataset order.
func (s *Store) FindAlternatives(drug, interactingDrug string, maxResults int) []domain.AlternativeCandidate {
	cid := domain.CanonicalID(drug)
	node, ok := s.drugs[cid]
	if !ok || node.Class == "" || maxResults <= 0 {
		return nil
	}
	other := domain.CanonicalID(interactingDrug)

	var candidates []domain.AlternativeCandidate
	for _, member := range s.byClass[node.Class] {
		if member == cid {
			continue
		}
		if _, interacts := s.DirectInteraction(member, other); interacts {
			continue
		}
		safety := 0.9 - 0.3*s.Similarity(member, cid)
		if safety < 0.5 {
			safety = 0.5
		}
		if safety > 1.0 {
			safety = 1.0
		}
		candidates = append(candidates, domain.AlternativeCandidate{
			Drug:        member,
			SafetyScore: safety,
			Reason:      fmt.Sprintf("Same therapeutic class (%s) without known interaction with %s", node.Class, other),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SafetyScore > candidates[j].SafetyScore
	})

	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}
	return candidates
}

// RankByContext ranks same-class substitutes for drug by how cleanly they
// fit an existing medication list: ascending by count of direct interactions
// with the context drugs, dataset order on ties, at most 10 results. Drugs
// already in the context are excluded.
func (s *Store) RankByContext(drug string, contextDrugs []string) []domain.AlternativeCandidate {
	cid := domain.CanonicalID(drug)
	node, ok := s.drugs[cid]
	if !ok || node.Class == "" {
		return nil
	}

	inContext := make(map[string]struct{}, len(contextDrugs))
	for _, c := range contextDrugs {
		inContext[domain.CanonicalID(c)] = struct{}{}
	}

	type ranked struct {
		candidate domain.AlternativeCandidate
		conflicts int
	}
	var pool []ranked
	for _, member := range s.byClass[node.Class] {
		if member == cid {
			continue
		}
		if _, taken := inContext[member]; taken {
			continue
		}
		conflicts := 0
		for ctx := range inContext {
			if _, interacts := s.DirectInteraction(member, ctx); interacts {
				conflicts++
			}
		}
		pool = append(pool, ranked{
			candidate: domain.AlternativeCandidate{
				Drug:        member,
				SafetyScore: 1.0 - 0.1*float64(conflicts),
				Reason:      fmt.Sprintf("Same therapeutic class (%s), %d known conflicts with current medications", node.Class, conflicts),
			},
			conflicts: conflicts,
		})
	}

	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].conflicts < pool[j].conflicts
	})

	limit := len(pool)
	if limit > maxContextRank {
		limit = maxContextRank
	}
	out := make([]domain.AlternativeCandidate, 0, limit)
	for _, r := range pool[:limit] {
		c := r.candidate
		if c.SafetyScore < 0.5 {
			c.SafetyScore = 0.5
		}
		out = append(out, c)
	}
	return out
}
