package similarity

// Jaccard returns |a ∩ b| / |a ∪ b| for two token sets.
// The result is in [0, 1], symmetric in its arguments, and 1.0 only for
// identical non-empty sets. Two empty sets score 0.0 by convention so
// the empty union never divides by zero.
func Jaccard(a, b TokenSet) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0.0
	}

	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}

	intersection := 0
	for tok := range small {
		if large.Contains(tok) {
			intersection++
		}
	}

	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
