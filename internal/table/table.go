package table

import (
	"iter"
	"math"
	"math/bits"
)

// DefaultMaxLoadFactor is the average chain length that triggers a rehash.
const DefaultMaxLoadFactor = 1.0

// fibonacci is 2^64 / phi, used to spread hashes across buckets.
const fibonacci = 0x9E3779B97F4A7C15

// Node is a single set element.
type Node[T any] struct {
	next  *Node[T]
	hash  uint64
	value T
}

// Value returns the stored element.
func (n *Node[T]) Value() T {
	return n.value
}

// Hasher supplies hashing and equality for T.
//
// Equal(a, b) must imply Hash(a) == Hash(b). The table does not check this.
type Hasher[T any] interface {
	Hash(v T) uint64
	Equal(a, b T) bool
}

// NodeAllocator hands out zeroed nodes. Nodes are never returned to it.
type NodeAllocator[T any] interface {
	Alloc() *Node[T]
}

// Table is a separate-chaining hash set. It is not safe for concurrent use.
type Table[T any] struct {
	buckets  []*Node[T]
	shift    uint
	count    int
	maxLoad  float64
	hasher   Hasher[T]
	alloc    NodeAllocator[T]
	onRehash func(from, to int)
}

// Init prepares t with room for at least buckets buckets.
func (t *Table[T]) Init(buckets int, h Hasher[T], a NodeAllocator[T], maxLoad float64) {
	if maxLoad <= 0 || math.IsNaN(maxLoad) || math.IsInf(maxLoad, 0) {
		maxLoad = DefaultMaxLoadFactor
	}
	t.hasher = h
	t.alloc = a
	t.maxLoad = maxLoad
	t.count = 0
	t.setBuckets(roundBuckets(buckets))
}

// OnRehash registers fn to be called after every rehash with the old and new
// bucket counts.
func (t *Table[T]) OnRehash(fn func(from, to int)) {
	t.onRehash = fn
}

// Insert adds v unless an equal element is present. It reports whether v was
// added. The chain is walked once; a miss links a new node in place.
func (t *Table[T]) Insert(v T) bool {
	h := t.hasher.Hash(v)
	idx := t.index(h)
	for n := t.buckets[idx]; n != nil; n = n.next {
		if n.hash == h && t.hasher.Equal(n.value, v) {
			return false
		}
	}

	if float64(t.count+1) > t.maxLoad*float64(len(t.buckets)) {
		t.rehash(len(t.buckets) * 2)
		idx = t.index(h)
	}

	n := t.alloc.Alloc()
	n.hash = h
	n.value = v
	n.next = t.buckets[idx]
	t.buckets[idx] = n
	t.count++
	return true
}

// Contains reports whether an element equal to v is present.
func (t *Table[T]) Contains(v T) bool {
	return t.find(v) != nil
}

// Find returns the stored element equal to v.
func (t *Table[T]) Find(v T) (T, bool) {
	if n := t.find(v); n != nil {
		return n.value, true
	}
	var zero T
	return zero, false
}

func (t *Table[T]) find(v T) *Node[T] {
	h := t.hasher.Hash(v)
	for n := t.buckets[t.index(h)]; n != nil; n = n.next {
		if n.hash == h && t.hasher.Equal(n.value, v) {
			return n
		}
	}
	return nil
}

// Delete removes the element equal to v and reports whether it was present.
// The node's memory is not reused.
func (t *Table[T]) Delete(v T) bool {
	h := t.hasher.Hash(v)
	link := &t.buckets[t.index(h)]
	for n := *link; n != nil; n = *link {
		if n.hash == h && t.hasher.Equal(n.value, v) {
			*link = n.next
			*n = Node[T]{}
			t.count--
			return true
		}
		link = &n.next
	}
	return false
}

// Clear removes all elements and keeps the bucket array.
func (t *Table[T]) Clear() {
	clear(t.buckets)
	t.count = 0
}

// Len returns the number of elements.
func (t *Table[T]) Len() int {
	return t.count
}

// BucketCount returns the number of buckets.
func (t *Table[T]) BucketCount() int {
	return len(t.buckets)
}

// LoadFactor returns the average number of elements per bucket.
func (t *Table[T]) LoadFactor() float64 {
	if len(t.buckets) == 0 {
		return 0
	}
	return float64(t.count) / float64(len(t.buckets))
}

// MaxLoadFactor returns the load factor that triggers growth.
func (t *Table[T]) MaxLoadFactor() float64 {
	return t.maxLoad
}

// Reserve grows the bucket array so that n elements fit without a rehash.
// It never shrinks the table.
func (t *Table[T]) Reserve(n int) {
	if n <= 0 {
		return
	}
	t.Rehash(int(math.Ceil(float64(n) / t.maxLoad)))
}

// Rehash resizes the bucket array to at least buckets buckets, or to whatever
// the current element count requires if that is larger. It never shrinks.
func (t *Table[T]) Rehash(buckets int) {
	need := int(math.Ceil(float64(t.count) / t.maxLoad))
	buckets = roundBuckets(max(buckets, need))
	if buckets <= len(t.buckets) {
		return
	}
	t.rehash(buckets)
}

func (t *Table[T]) rehash(buckets int) {
	old := t.buckets
	t.setBuckets(buckets)
	for _, head := range old {
		for n := head; n != nil; {
			next := n.next
			idx := t.index(n.hash)
			n.next = t.buckets[idx]
			t.buckets[idx] = n
			n = next
		}
	}
	if t.onRehash != nil {
		t.onRehash(len(old), buckets)
	}
}

// All iterates over the elements in unspecified order. The table must not be
// modified during iteration.
func (t *Table[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, head := range t.buckets {
			for n := head; n != nil; n = n.next {
				if !yield(n.value) {
					return
				}
			}
		}
	}
}

// Values returns the elements as a slice in unspecified order.
func (t *Table[T]) Values() []T {
	out := make([]T, 0, t.count)
	for v := range t.All() {
		out = append(out, v)
	}
	return out
}

func (t *Table[T]) setBuckets(n int) {
	t.buckets = make([]*Node[T], n)
	t.shift = uint(64 - bits.TrailingZeros(uint(n)))
}

func (t *Table[T]) index(h uint64) int {
	return int((h * fibonacci) >> t.shift)
}

// roundBuckets returns the smallest power of two >= n, and at least 1.
func roundBuckets(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
