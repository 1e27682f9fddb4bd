package similarity

// bigrams returns every contiguous 2-rune substring of s. A string shorter
// than 2 runes yields nil.
func bigrams(s string) []string {
	r := []rune(s)
	if len(r) < 2 {
		return nil
	}
	out := make([]string, 0, len(r)-1)
	for i := 0; i+2 <= len(r); i++ {
		out = append(out, string(r[i:i+2]))
	}
	return out
}

// Similarity scores two strings in [0,1] with the Dice coefficient over
// character bigrams of their normalized forms. Matching is multiset-aware:
// each bigram occurrence on one side consumes at most one occurrence on the
// other, so repeated bigrams are not over-counted. Equal normalized inputs
// score exactly 1; an input that normalizes to fewer than 2 runes scores 0.
func Similarity(a, b string) float64 {
	na, nb := Normalize(a), Normalize(b)
	ga, gb := bigrams(na), bigrams(nb)
	if len(ga) == 0 || len(gb) == 0 {
		return 0
	}
	if na == nb {
		return 1
	}
	counts := make(map[string]int, len(ga))
	for _, g := range ga {
		counts[g]++
	}
	matches := 0
	for _, g := range gb {
		if counts[g] > 0 {
			counts[g]--
			matches++
		}
	}
	return 2 * float64(matches) / float64(len(ga)+len(gb))
}
