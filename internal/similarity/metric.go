package similarity

// Item is one question as seen by the engine: a stable id plus its extracted
// option texts.
type Item struct {
	ID      string
	Options []string
}

// Index memoizes per-question metadata and normalized option lists for one
// immutable snapshot of a question collection. The cross-question metric is
// called O(n²) times during ordering, so both caches are built up front.
// Rebuild by constructing a new Index whenever the collection changes.
type Index struct {
	cfg  Config
	ids  []string // insertion order; keeps tie-breaks reproducible
	meta map[string]Meta
	norm map[string][]string // normalized, non-empty options per id
}

// NewIndex computes the caches for items. Duplicate ids keep the first entry.
func NewIndex(items []Item, cfg Config) *Index {
	ix := &Index{
		cfg:  cfg.withDefaults(),
		meta: make(map[string]Meta, len(items)),
		norm: make(map[string][]string, len(items)),
	}
	for _, it := range items {
		if _, dup := ix.meta[it.ID]; dup {
			continue
		}
		ix.ids = append(ix.ids, it.ID)
		ix.meta[it.ID] = OptionMeta(it.Options, ix.cfg)
		ns := make([]string, 0, len(it.Options))
		for _, o := range it.Options {
			if n := Normalize(o); n != "" {
				ns = append(ns, n)
			}
		}
		ix.norm[it.ID] = ns
	}
	return ix
}

// IDs returns the indexed ids in insertion order.
func (ix *Index) IDs() []string {
	return append([]string(nil), ix.ids...)
}

// Meta returns the cached similar-options metadata for id. Unknown ids get
// the zero Meta.
func (ix *Index) Meta(id string) Meta {
	return ix.meta[id]
}

// ItemSimilarity scores two indexed questions in [0,1] by the symmetrized
// best-match average over their normalized option sets. bestAvg alone is a
// one-directional precision-like measure; averaging both directions makes
// the score symmetric. Either side without usable options scores 0.
func (ix *Index) ItemSimilarity(aID, bID string) float64 {
	a, b := ix.norm[aID], ix.norm[bID]
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	return (bestAvg(a, b) + bestAvg(b, a)) / 2
}

// bestAvg averages, over every x in xs, the best similarity of x against ys.
func bestAvg(xs, ys []string) float64 {
	total := 0.0
	for _, x := range xs {
		best := 0.0
		for _, y := range ys {
			if s := Similarity(x, y); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(xs))
}
