// Package graph implements the drug knowledge graph: an immutable,
// adjacency-based store of drug and enzyme nodes with typed relationship
// edges, plus the query operations built on top of it (pathway search,
// similarity, alternative ranking).
//
// A Store is built once from a curated dataset and is safe for unbounded
// concurrent readers afterwards; no query mutates it.
package graph

import (
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/drug-interaction-server/internal/domain"
)

// relationKind tags the adjacency edges so relation-specific payloads stay
// explicit instead of hiding in a generic property map.
type relationKind string

const (
	relationInteractsWith relationKind = "interacts_with"
	relationMetabolizedBy relationKind = "metabolized_by"
)

// edge is one directed adjacency entry. interaction is set only for
// interacts_with edges.
type edge struct {
	kind        relationKind
	neighbor    string
	interaction *domain.InteractionEdge
}

// Store is the immutable knowledge graph snapshot.
type Store struct {
	drugs     map[string]domain.DrugNode
	order     []string // drug ids in dataset insertion order
	enzymes   map[string]domain.EnzymeNode
	enzymeSet map[string]map[string]struct{} // drug id -> enzyme ids
	pairs     map[string]domain.InteractionEdge
	adjacency map[string][]edge
	byClass   map[string][]string // class -> drug ids in dataset order
}

// Build constructs a Store from drug and interaction records. Nodes are
// added before edges; an interaction referencing an unknown drug fails the
// whole build with a DataIntegrityError rather than being skipped.
func Build(logger *logrus.Logger, drugs []domain.DrugNode, interactions []domain.InteractionEdge) (*Store, error) {
	s := &Store{
		drugs:     make(map[string]domain.DrugNode, len(drugs)),
		order:     make([]string, 0, len(drugs)),
		enzymes:   make(map[string]domain.EnzymeNode),
		enzymeSet: make(map[string]map[string]struct{}, len(drugs)),
		pairs:     make(map[string]domain.InteractionEdge, len(interactions)),
		adjacency: make(map[string][]edge),
		byClass:   make(map[string][]string),
	}

	for _, d := range drugs {
		id := domain.CanonicalID(d.ID)
		if id == "" {
			return nil, domain.NewDataIntegrityError("drug record with empty id")
		}
		if _, dup := s.drugs[id]; dup {
			return nil, domain.NewDataIntegrityError("duplicate drug id %q", id)
		}

		node := d
		node.ID = id
		node.Enzymes = append([]string(nil), d.Enzymes...)
		s.drugs[id] = node
		s.order = append(s.order, id)

		set := make(map[string]struct{}, len(node.Enzymes))
		for _, enz := range node.Enzymes {
			set[enz] = struct{}{}
			if _, ok := s.enzymes[enz]; !ok {
				s.enzymes[enz] = domain.EnzymeNode{ID: enz}
			}
			s.adjacency[id] = append(s.adjacency[id], edge{kind: relationMetabolizedBy, neighbor: enz})
			s.adjacency[enz] = append(s.adjacency[enz], edge{kind: relationMetabolizedBy, neighbor: id})
		}
		s.enzymeSet[id] = set

		if node.Class != "" {
			s.byClass[node.Class] = append(s.byClass[node.Class], id)
		}
	}

	for _, ix := range interactions {
		a, b := domain.CanonicalPair(ix.DrugA, ix.DrugB)
		if a == b {
			return nil, domain.NewDataIntegrityError("self-interaction for drug %q", a)
		}
		if _, ok := s.drugs[a]; !ok {
			return nil, domain.NewDataIntegrityError("interaction %s-%s references unknown drug %q", a, b, a)
		}
		if _, ok := s.drugs[b]; !ok {
			return nil, domain.NewDataIntegrityError("interaction %s-%s references unknown drug %q", a, b, b)
		}
		if !ix.Severity.IsValid() || ix.Severity == domain.SEVERITY_NONE {
			return nil, domain.NewDataIntegrityError("interaction %s-%s has invalid severity %q", a, b, ix.Severity)
		}
		key := domain.PairKey(a, b)
		if _, dup := s.pairs[key]; dup {
			return nil, domain.NewDataIntegrityError("duplicate interaction record for pair %s-%s", a, b)
		}

		stored := ix
		stored.DrugA = a
		stored.DrugB = b
		stored.Evidence = append([]string(nil), ix.Evidence...)
		s.pairs[key] = stored

		ref := s.pairs[key]
		s.adjacency[a] = append(s.adjacency[a], edge{kind: relationInteractsWith, neighbor: b, interaction: &ref})
		s.adjacency[b] = append(s.adjacency[b], edge{kind: relationInteractsWith, neighbor: a, interaction: &ref})
	}

	logger.WithFields(logrus.Fields{
		"drugs":        len(s.drugs),
		"enzymes":      len(s.enzymes),
		"interactions": len(s.pairs),
	}).Info("Knowledge graph built")

	return s, nil
}

// HasDrug reports whether a drug id exists in the graph.
func (s *Store) HasDrug(id string) bool {
	_, ok := s.drugs[domain.CanonicalID(id)]
	return ok
}

// DrugInfo returns the drug node for an id. Unknown ids get a NotFoundError,
// never a fabricated stub record.
func (s *Store) DrugInfo(id string) (domain.DrugNode, error) {
	node, ok := s.drugs[domain.CanonicalID(id)]
	if !ok {
		return domain.DrugNode{}, domain.NewDrugNotFoundError(domain.CanonicalID(id))
	}
	return node, nil
}

// AllDrugs returns every drug record in dataset insertion order. The order
// is stable across calls and across snapshot round-trips.
func (s *Store) AllDrugs() []domain.DrugNode {
	drugs := make([]domain.DrugNode, 0, len(s.order))
	for _, id := range s.order {
		drugs = append(drugs, s.drugs[id])
	}
	return drugs
}

// EnzymesOf returns the enzyme ids a drug is metabolized by, in dataset
// order. Unknown drugs yield an empty slice.
func (s *Store) EnzymesOf(id string) []string {
	node, ok := s.drugs[domain.CanonicalID(id)]
	if !ok {
		return nil
	}
	return append([]string(nil), node.Enzymes...)
}

// DirectInteraction returns the stored interaction edge for an unordered
// drug pair. The lookup is symmetric: (a,b) and (b,a) are the same pair.
func (s *Store) DirectInteraction(a, b string) (domain.InteractionEdge, bool) {
	ix, ok := s.pairs[domain.PairKey(a, b)]
	return ix, ok
}

// SameClass reports whether both drugs carry the same non-empty therapeutic
// class.
func (s *Store) SameClass(a, b string) bool {
	na, ok := s.drugs[domain.CanonicalID(a)]
	if !ok || na.Class == "" {
		return false
	}
	nb, ok := s.drugs[domain.CanonicalID(b)]
	if !ok {
		return false
	}
	return na.Class == nb.Class
}

// ClassMembers returns the drug ids sharing a therapeutic class, in dataset
// order.
func (s *Store) ClassMembers(class string) []string {
	return append([]string(nil), s.byClass[class]...)
}

// DrugCount returns the number of drug nodes.
func (s *Store) DrugCount() int {
	return len(s.drugs)
}

// InteractionCount returns the number of interaction edges.
func (s *Store) InteractionCount() int {
	return len(s.pairs)
}

// Statistics summarizes a drug's interactions and class neighbors.
func (s *Store) Statistics(id string) (domain.DrugStatistics, error) {
	cid := domain.CanonicalID(id)
	node, ok := s.drugs[cid]
	if !ok {
		return domain.DrugStatistics{}, domain.NewDrugNotFoundError(cid)
	}

	stats := domain.DrugStatistics{
		Drug:                 cid,
		Class:                node.Class,
		SeverityDistribution: make(map[domain.Severity]int),
	}

	for _, e := range s.adjacency[cid] {
		if e.kind != relationInteractsWith {
			continue
		}
		stats.TotalInteractions++
		stats.SeverityDistribution[e.interaction.Severity]++
		if e.interaction.Severity == domain.MAJOR || e.interaction.Severity == domain.CONTRAINDICATED {
			stats.HighRiskPartners = append(stats.HighRiskPartners, domain.PairRisk{
				Drug:      e.neighbor,
				Severity:  e.interaction.Severity,
				RiskScore: e.interaction.RiskScore,
			})
		}
	}

	if node.Class != "" {
		for _, other := range s.byClass[node.Class] {
			if other != cid {
				stats.SameClassDrugs = append(stats.SameClassDrugs, other)
			}
		}
	}

	return stats, nil
}

// Search returns drugs whose id or label contains the query as a
// case-insensitive substring, in dataset order, capped at limit.
func (s *Store) Search(query string, limit int) []domain.DrugNode {
	q := domain.CanonicalID(query)
	if q == "" || limit <= 0 {
		return nil
	}
	var results []domain.DrugNode
	for _, id := range s.order {
		node := s.drugs[id]
		if strings.Contains(id, q) || strings.Contains(strings.ToLower(node.Label), q) {
			results = append(results, node)
			if len(results) >= limit {
				break
			}
		}
	}
	return results
}

// ShortestPath finds the shortest connection between two drugs across both
// interaction and metabolism edges, passing through enzyme nodes where
// needed. ok is false when either drug is unknown or no path exists.
func (s *Store) ShortestPath(a, b string) (path []string, ok bool) {
	start := domain.CanonicalID(a)
	goal := domain.CanonicalID(b)
	if !s.HasDrug(start) || !s.HasDrug(goal) {
		return nil, false
	}
	if start == goal {
		return []string{start}, true
	}

	visited := map[string]struct{}{start: {}}
	queue := [][]string{{start}}
	for len(queue) > 0 {
		path := queue[0]
		queue = queue[1:]
		current := path[len(path)-1]
		for _, e := range s.adjacency[current] {
			if _, seen := visited[e.neighbor]; seen {
				continue
			}
			next := append(append([]string(nil), path...), e.neighbor)
			if e.neighbor == goal {
				return next, true
			}
			visited[e.neighbor] = struct{}{}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// sharedEnzymes returns the enzymes metabolizing both drugs, ordered by
// drug a's enzyme list so pathway output is deterministic.
func (s *Store) sharedEnzymes(a, b string) []string {
	setB, ok := s.enzymeSet[domain.CanonicalID(b)]
	if !ok {
		return nil
	}
	var shared []string
	for _, enz := range s.EnzymesOf(a) {
		if _, hit := setB[enz]; hit {
			shared = append(shared, enz)
		}
	}
	return shared
}

func (s *Store) enzymeUnionSize(a, b string) int {
	union := make(map[string]struct{})
	for enz := range s.enzymeSet[domain.CanonicalID(a)] {
		union[enz] = struct{}{}
	}
	for enz := range s.enzymeSet[domain.CanonicalID(b)] {
		union[enz] = struct{}{}
	}
	return len(union)
}

// Enzymes returns all enzyme ids known to the graph, sorted.
func (s *Store) Enzymes() []string {
	ids := make([]string, 0, len(s.enzymes))
	for id := range s.enzymes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
