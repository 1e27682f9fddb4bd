package similarity

import (
	"strings"
	"unicode/utf8"
)

// Config tunes the similar-option detector.
type Config struct {
	Threshold float64 // minimum best-pair score for a question to count as "has similar options"
	MinLen    int     // minimum normalized option length (runes) for a pair to be compared
}

// DefaultConfig returns the stock detector tuning.
func DefaultConfig() Config {
	return Config{Threshold: 0.88, MinLen: 6}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Threshold <= 0 {
		c.Threshold = d.Threshold
	}
	if c.MinLen <= 0 {
		c.MinLen = d.MinLen
	}
	return c
}

// Meta is the derived similar-options metadata of one question. It is a pure
// function of the question's current options and is never persisted.
type Meta struct {
	HasSimilar    bool       `json:"hasSimilar"`
	MaxSimilarity float64    `json:"maxSimilarity"`
	ClusterKey    string     `json:"clusterKey,omitempty"` // empty when no pair meets the threshold
	BestPair      *[2]string `json:"bestPair,omitempty"`   // original texts of the best-scoring pair
}

// Options that exceed this length and contain one another get a floor score
// of containmentFloor even when their bigram overlap is lower.
const (
	containmentMinLen = 10
	containmentFloor  = 0.92
)

// OptionMeta scans every unordered option pair of a question and reports the
// best-scoring one. Pairs are skipped unless both normalized forms reach
// cfg.MinLen and neither is a bare answer label ("a" through "d"). Equal
// normalized forms score exactly 1. Ties keep the first pair found in
// (i ascending, j ascending) order.
func OptionMeta(options []string, cfg Config) Meta {
	cfg = cfg.withDefaults()
	var meta Meta
	if len(options) < 2 {
		return meta
	}
	norm := make([]string, len(options))
	for i, o := range options {
		norm[i] = Normalize(o)
	}
	best := 0.0
	bestI, bestJ := -1, -1
	for i := 0; i < len(options); i++ {
		for j := i + 1; j < len(options); j++ {
			a, b := norm[i], norm[j]
			if utf8.RuneCountInString(a) < cfg.MinLen || utf8.RuneCountInString(b) < cfg.MinLen {
				continue
			}
			if isAnswerLabel(a) || isAnswerLabel(b) {
				continue
			}
			var score float64
			if a == b {
				score = 1
			} else {
				score = Similarity(a, b)
				if utf8.RuneCountInString(a) > containmentMinLen && utf8.RuneCountInString(b) > containmentMinLen &&
					(strings.Contains(a, b) || strings.Contains(b, a)) && score < containmentFloor {
					score = containmentFloor
				}
			}
			if score > best || bestI < 0 {
				best = score
				bestI, bestJ = i, j
			}
		}
	}
	if bestI < 0 {
		return meta
	}
	meta.MaxSimilarity = best
	meta.BestPair = &[2]string{options[bestI], options[bestJ]}
	if best >= cfg.Threshold {
		meta.HasSimilar = true
		meta.ClusterKey = clusterKey(norm[bestI], norm[bestJ])
	}
	return meta
}

// clusterKey builds an order-independent key for a confusable option pair:
// the two normalized strings sorted lexicographically and pipe-joined.
func clusterKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "|" + b
}

func isAnswerLabel(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'd'
}
