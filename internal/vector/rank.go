package vector

import (
	"math"
	"sort"
)

// TitleWeight scales title similarity relative to content similarity.
// Titles are treated as a stronger relevance signal than sampled body
// text. Both the constant and the max-combination rule in Rank are
// tunable heuristics, not validated physical constants.
const TitleWeight = 1.5

// CosineSimilarity computes the cosine similarity between two vectors.
// Returns a value between -1 and 1, where 1 means identical direction.
// Mismatched lengths, empty vectors, and zero-norm vectors all score 0
// rather than faulting.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	denominator := float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB)))
	if denominator == 0 {
		return 0
	}

	return dot / denominator
}

// Rank scores every record against the query vector and returns the top
// limit paper IDs, best match first.
//
// A record's score is the maximum of its weighted title similarity and
// its unweighted content similarity, so a strong match on either signal
// alone surfaces the paper; summing would penalize records missing one
// vector. Records with neither vector score 0. Ties keep scan order, so
// ranking is deterministic for a fixed input order.
func Rank(query []float32, records []Record, limit int) []int64 {
	if limit <= 0 || len(records) == 0 {
		return nil
	}

	type scored struct {
		paperID int64
		score   float32
	}

	results := make([]scored, 0, len(records))
	for _, rec := range records {
		var titleScore, contentScore float32
		if len(rec.TitleVector) > 0 {
			titleScore = CosineSimilarity(query, rec.TitleVector) * TitleWeight
		}
		if len(rec.ContentVector) > 0 {
			contentScore = CosineSimilarity(query, rec.ContentVector)
		}

		score := titleScore
		if contentScore > score {
			score = contentScore
		}
		results = append(results, scored{paperID: rec.PaperID, score: score})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.paperID
	}
	return ids
}
