package dupetrack

import (
	"bytes"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/text/cases"

	"github.com/hupe1980/dupetrack/internal/table"
)

// Hasher supplies hashing and equality for tracked values.
//
// Implementations must keep the two consistent: Equal(a, b) implies
// Hash(a) == Hash(b). This is not checked at runtime; an inconsistent pair
// makes HasSeen report duplicates as first occurrences.
type Hasher[T any] = table.Hasher[T]

type comparableHasher[T comparable] struct {
	seed maphash.Seed
}

func (h comparableHasher[T]) Hash(v T) uint64 { return maphash.Comparable(h.seed, v) }
func (comparableHasher[T]) Equal(a, b T) bool { return a == b }

// ComparableHasher returns the natural hasher for T: maphash.Comparable and ==.
//
// As with Go maps, floating-point NaNs never compare equal, so every NaN is a
// first occurrence.
func ComparableHasher[T comparable](seed maphash.Seed) Hasher[T] {
	return comparableHasher[T]{seed: seed}
}

type funcHasher[T any] struct {
	hash  func(T) uint64
	equal func(a, b T) bool
}

func (h funcHasher[T]) Hash(v T) uint64   { return h.hash(v) }
func (h funcHasher[T]) Equal(a, b T) bool { return h.equal(a, b) }

// HashFunc adapts a pair of functions to a Hasher.
func HashFunc[T any](hash func(T) uint64, equal func(a, b T) bool) Hasher[T] {
	if hash == nil || equal == nil {
		panic(ErrNilHasher)
	}
	return funcHasher[T]{hash: hash, equal: equal}
}

type stringHasher struct{}

func (stringHasher) Hash(s string) uint64   { return xxhash.Sum64String(s) }
func (stringHasher) Equal(a, b string) bool { return a == b }

// StringHasher hashes strings with xxHash64. Unlike ComparableHasher it is
// stable across processes.
func StringHasher() Hasher[string] {
	return stringHasher{}
}

type bytesHasher struct{}

func (bytesHasher) Hash(b []byte) uint64   { return xxhash.Sum64(b) }
func (bytesHasher) Equal(a, b []byte) bool { return bytes.Equal(a, b) }

// BytesHasher hashes byte slices by content with xxHash64.
//
// The tracker stores the slice header, not a copy: callers must not modify a
// slice after passing it to HasSeen.
func BytesHasher() Hasher[[]byte] {
	return bytesHasher{}
}

type foldHasher struct {
	caser cases.Caser
}

func (h foldHasher) Hash(s string) uint64 {
	return xxhash.Sum64String(h.caser.String(s))
}

func (h foldHasher) Equal(a, b string) bool {
	return a == b || h.caser.String(a) == h.caser.String(b)
}

// FoldHasher treats strings that are equal under Unicode case folding as
// duplicates. The returned Hasher is not safe for concurrent use.
func FoldHasher() Hasher[string] {
	return foldHasher{caser: cases.Fold()}
}
