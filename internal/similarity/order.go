package similarity

// OrderSimilar returns a permutation of ids that greedily chains each
// question to its most similar not-yet-placed neighbor. A chain starts at
// the remaining question with the highest own MaxSimilarity (first
// encountered wins ties) and extends by strict-maximum ItemSimilarity from
// the current tail, again first-encountered on ties. The remaining pool is
// an ordered slice so tie-breaks do not depend on map iteration order.
//
// The outer loop restarts a fresh chain if the inner scan ever dead-ends;
// with the current metric every non-empty pool yields a next candidate, so a
// single chain consumes the whole bucket, but the restart keeps the shape
// correct should the metric ever produce dominant sentinels.
//
// Buckets of two or fewer are returned as-is. Cost is O(n²) metric
// evaluations per call, fine for buckets in the low hundreds.
func (ix *Index) OrderSimilar(ids []string) []string {
	out := append([]string(nil), ids...)
	if len(ids) <= 2 {
		return out
	}
	remaining := out
	out = make([]string, 0, len(ids))
	for len(remaining) > 0 {
		start := 0
		startScore := ix.meta[remaining[0]].MaxSimilarity
		for i := 1; i < len(remaining); i++ {
			if s := ix.meta[remaining[i]].MaxSimilarity; s > startScore {
				startScore, start = s, i
			}
		}
		tail := remaining[start]
		remaining = append(remaining[:start], remaining[start+1:]...)
		out = append(out, tail)

		for len(remaining) > 0 {
			next := -1
			best := -1.0
			for i, cand := range remaining {
				if s := ix.ItemSimilarity(tail, cand); s > best {
					best, next = s, i
				}
			}
			if next < 0 {
				break
			}
			tail = remaining[next]
			remaining = append(remaining[:next], remaining[next+1:]...)
			out = append(out, tail)
		}
	}
	return out
}
