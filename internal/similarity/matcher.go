package similarity

import (
	"sort"

	"github.com/madhubv/doc-scanner/internal/model"
)

// Default filter and ranking parameters, overridable via configuration.
const (
	DefaultThreshold = 0.1
	DefaultTopK      = 5
)

// Match scores the candidate token set against every document in the
// corpus and returns the ranked matches. Only documents scoring strictly
// above threshold are kept; results are sorted descending by similarity
// with ties preserving corpus insertion order, then truncated to topK.
// The corpus is never mutated. An empty corpus, or one where nothing
// clears the threshold, yields an empty (non-nil) result.
func Match(candidate TokenSet, corpus []model.Document, threshold float64, topK int) []model.MatchResult {
	results := make([]model.MatchResult, 0, len(corpus))
	for _, doc := range corpus {
		score := Jaccard(candidate, Normalize(doc.Content))
		if score > threshold {
			results = append(results, model.MatchResult{
				DocumentID: doc.ID,
				Title:      doc.Title,
				CreatedAt:  doc.CreatedAt,
				Similarity: score,
			})
		}
	}

	// Stable keeps insertion order for equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if topK >= 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}
