package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // deterministic test data
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Perm returns a permutation of [0,n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// IntStream returns n values drawn uniformly from [0, distinct).
func (r *RNG) IntStream(n, distinct int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]int, n)
	for i := range out {
		out[i] = r.rand.Intn(distinct)
	}
	return out
}

// ZipfStream returns n values in [0, distinct) following Zipf's law with skew s:
// a few values repeat very often, most appear rarely.
func (r *RNG) ZipfStream(n, distinct int, s float64) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Cumulative weights, computed once for the whole stream.
	cdf := make([]float64, distinct)
	var total float64
	for k := range distinct {
		total += 1.0 / math.Pow(float64(k+1), s)
		cdf[k] = total
	}

	out := make([]int, n)
	for i := range out {
		u := r.rand.Float64() * total
		lo, hi := 0, distinct-1
		for lo < hi {
			mid := (lo + hi) / 2
			if cdf[mid] < u {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		out[i] = lo
	}
	return out
}

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Words returns n random lowercase words of length 1..maxLen.
func (r *RNG) Words(n, maxLen int) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, n)
	buf := make([]byte, maxLen)
	for i := range out {
		l := 1 + r.rand.Intn(maxLen)
		for j := range l {
			buf[j] = alphabet[r.rand.Intn(len(alphabet))]
		}
		out[i] = string(buf[:l])
	}
	return out
}

// FirstSeen is the reference answer for a duplicate tracker: for each value,
// whether an equal value occurred earlier in vals.
func FirstSeen[T comparable](vals []T) []bool {
	seen := make(map[T]struct{}, len(vals))
	out := make([]bool, len(vals))
	for i, v := range vals {
		_, out[i] = seen[v]
		seen[v] = struct{}{}
	}
	return out
}

// Distinct returns the number of distinct values in vals.
func Distinct[T comparable](vals []T) int {
	seen := make(map[T]struct{}, len(vals))
	for _, v := range vals {
		seen[v] = struct{}{}
	}
	return len(seen)
}
