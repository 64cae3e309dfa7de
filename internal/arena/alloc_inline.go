//go:build !dupetrack.noarena

package arena

// Enabled reports whether the inline arena path is compiled in.
const Enabled = true

// Allocator is the node allocator trackers are built on.
type Allocator[E any] = Bump[E]

// NewAllocator seeds the build's allocator with inline.
func NewAllocator[E any](inline []E) Allocator[E] {
	return NewBump(inline)
}
