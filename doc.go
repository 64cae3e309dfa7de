// Package dupetrack reports, for a stream of values, whether each one has been
// seen before.
//
// A Tracker is a hash set tuned for the common case of a small, short-lived
// set: its nodes come from an arena embedded in the Tracker, sized at compile
// time by the slab type parameter, and only spill to the heap once that arena
// is full.
//
// # Quick Start
//
//	t := dupetrack.NewDefault[string]()
//	for _, s := range []string{"a", "b", "a"} {
//	    if t.HasSeen(s) {
//	        fmt.Println("duplicate:", s)
//	    }
//	}
//
// Pick the inline capacity with the second type parameter:
//
//	t := dupetrack.New[int, dupetrack.Inline256[int]]()
//
// Types without natural equality, or with a custom notion of it, use NewFunc:
//
//	t := dupetrack.NewFunc[[]byte, dupetrack.Inline64[[]byte]](dupetrack.BytesHasher())
//	u := dupetrack.NewFunc[string, dupetrack.Inline64[string]](dupetrack.FoldHasher())
//
// # Allocation
//
// HasSeen is one hash lookup plus, for a new value, one node allocation. Nodes
// are taken from the inline arena first, then from geometrically growing heap
// chunks. Building with the dupetrack.noarena tag compiles a heap-only
// allocator instead; results are identical either way, only allocation
// behavior differs. Stats shows which path ran and how much spilled.
//
// # Integer IDs
//
// Uint32Tracker (roaring bitmap) and DenseTracker (plain bitset) skip hashing
// entirely for integer identifiers. DenseTracker suits small ID ranges that are
// reset often.
//
// # Copying
//
// A Tracker must not be copied after New: its set points into its own inline
// arena. go vet flags copies, and every method panics with ErrCopied when
// called on one.
//
// # Errors
//
// Tracker operations do not return errors. Running out of memory is fatal, as
// for built-in maps. Misuse panics with ErrCopied, ErrUninitialized,
// ErrNegativeReserve or ErrNilHasher.
//
// # Concurrency
//
// Trackers are single-owner. Guard them externally or keep one per goroutine.
package dupetrack
