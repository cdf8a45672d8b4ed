package graph

// Similarity computes the Jaccard similarity of two drugs' enzyme sets:
// |intersection| / |union|, 0 when the union is empty. Symmetric, and
// reflexive for any drug with at least one enzyme.
func (s *Store) Similarity(a, b string) float64 {
	union := s.enzymeUnionSize(a, b)
	if union == 0 {
		return 0
	}
	shared := len(s.sharedEnzymes(a, b))
	return float64(shared) / float64(union)
}
