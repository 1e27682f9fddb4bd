package similarity

// The shuffle must replay identically for the same seed across runs and
// platforms: the UI recomputes the displayed list on every state change and
// a "random" order may not jitter while the filter state stays the same.
// Seed hashing is FNV-1a over the seed bytes; draws come from a splitmix32
// mixer. Both sets of constants are fixed and part of the contract.
const (
	fnvOffset32 uint32 = 2166136261
	fnvPrime32  uint32 = 16777619

	splitmixGamma uint32 = 0x9E3779B9
	splitmixMulA  uint32 = 0x21F0AAAD
	splitmixMulB  uint32 = 0x735A2D97
)

// hashSeed folds a seed string into a 32-bit FNV-1a hash.
func hashSeed(seed string) uint32 {
	h := fnvOffset32
	for i := 0; i < len(seed); i++ {
		h ^= uint32(seed[i])
		h *= fnvPrime32
	}
	return h
}

// drawSource is a splitmix32 generator: the state advances by a fixed odd
// gamma and each draw is finalized with xorshift-multiply rounds.
type drawSource struct{ state uint32 }

func (d *drawSource) next() uint32 {
	d.state += splitmixGamma
	z := d.state
	z ^= z >> 16
	z *= splitmixMulA
	z ^= z >> 15
	z *= splitmixMulB
	z ^= z >> 15
	return z
}

// draw maps the next 32-bit value into [0,1).
func (d *drawSource) draw() float64 {
	return float64(d.next()) / (1 << 32)
}

// SeededShuffle returns a Fisher-Yates permutation of seq driven entirely by
// seed: the same (seq, seed) pair always yields the same order. The input
// slice is copied, never mutated.
func SeededShuffle[T any](seq []T, seed string) []T {
	out := append([]T(nil), seq...)
	src := &drawSource{state: hashSeed(seed)}
	for i := len(out) - 1; i >= 1; i-- {
		j := int(src.draw() * float64(i+1))
		out[i], out[j] = out[j], out[i]
	}
	return out
}
