//go:build dupetrack.noarena

package arena

// Enabled reports whether the inline arena path is compiled in.
const Enabled = false

// Allocator is the node allocator trackers are built on.
type Allocator[E any] = Heap[E]

// NewAllocator ignores inline and returns a heap allocator.
func NewAllocator[E any](inline []E) Allocator[E] {
	return NewHeap(inline)
}
