package dupetrack

import "github.com/hupe1980/dupetrack/internal/table"

// DefaultInlineCapacity is the inline capacity of NewDefault trackers.
const DefaultInlineCapacity = 64

// Node is one hash set element as laid out in the inline arena.
type Node[T any] = table.Node[T]

// Inline arena shapes. The array length is the number of elements a tracker
// holds before its allocator spills to the heap.
type (
	Inline8[T any]    = [8]Node[T]
	Inline16[T any]   = [16]Node[T]
	Inline32[T any]   = [32]Node[T]
	Inline64[T any]   = [64]Node[T]
	Inline128[T any]  = [128]Node[T]
	Inline256[T any]  = [256]Node[T]
	Inline512[T any]  = [512]Node[T]
	Inline1024[T any] = [1024]Node[T]
)

// Slab is the set of inline arena shapes a Tracker can embed. The shape is a
// type parameter so the arena size is fixed at compile time.
type Slab[T any] interface {
	~[8]Node[T] | ~[16]Node[T] | ~[32]Node[T] | ~[64]Node[T] |
		~[128]Node[T] | ~[256]Node[T] | ~[512]Node[T] | ~[1024]Node[T]
}
