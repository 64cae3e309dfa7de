// Package arena provides the inline node arena used by duplicate trackers.
//
// A tracker embeds a fixed-size array of hash-set nodes in its own struct. The
// arena hands those slots out sequentially (bump allocation) and, once they are
// used up, spills to heap chunks. Slots are never moved or individually freed,
// so pointers handed out stay valid for the lifetime of the owner.
//
// # Build-time selection
//
// The preferred path (Bump) is compiled by default. Building with the
// dupetrack.noarena tag swaps Allocator for Heap, which allocates every node
// with new. Both expose the same method set:
//
//	go build -tags dupetrack.noarena ./...
//
// make test-noarena runs the whole suite against the fallback.
//
// # Sizing
//
// SizeFor estimates how many bytes a hash set needs for n elements. It is an
// estimate only: an under-estimate means earlier spilling, never corruption.
package arena
