package dupetrack

import (
	"unsafe"

	"github.com/hupe1980/dupetrack/internal/arena"
	"github.com/hupe1980/dupetrack/internal/table"
)

// HashSet is the set a Tracker is built on. Set gives direct access to it.
type HashSet[T any] = table.Table[T]

// noCopy makes go vet's copylocks check flag Tracker copies.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Tracker reports whether a value has been seen before.
//
// The hash set's nodes are carved from S, an inline array embedded in the
// Tracker itself, and spill to the heap once it is full. Because the set
// points into the Tracker's own memory, a Tracker must not be copied: every
// method panics with ErrCopied on a copy. Use the *Tracker returned by New.
//
// A Tracker is not safe for concurrent use.
type Tracker[T any, S Slab[T]] struct {
	_ noCopy

	self *Tracker[T, S]

	// slab must stay ahead of alloc and set: it is the memory they draw from.
	slab  S
	alloc arena.Allocator[Node[T]]
	set   HashSet[T]

	logger  *Logger
	metrics MetricsCollector
}

// New creates a Tracker using the natural hash and equality of T.
func New[T comparable, S Slab[T]](opts ...Option) *Tracker[T, S] {
	o := applyOptions(opts)
	return newTracker[T, S](ComparableHasher[T](o.seed), o)
}

// NewFunc creates a Tracker with a custom Hasher.
func NewFunc[T any, S Slab[T]](h Hasher[T], opts ...Option) *Tracker[T, S] {
	if h == nil {
		panic(ErrNilHasher)
	}
	return newTracker[T, S](h, applyOptions(opts))
}

// NewDefault creates a Tracker with DefaultInlineCapacity inline slots.
func NewDefault[T comparable](opts ...Option) *Tracker[T, Inline64[T]] {
	return New[T, Inline64[T]](opts...)
}

func newTracker[T any, S Slab[T]](h Hasher[T], o options) *Tracker[T, S] {
	t := &Tracker[T, S]{
		logger:  o.logger,
		metrics: o.metricsCollector,
	}
	t.self = t

	inline := unsafe.Slice((*Node[T])(unsafe.Pointer(&t.slab)), len(t.slab)) //nolint:gosec // S is an array of Node[T]
	t.alloc = arena.NewAllocator(inline)
	t.alloc.OnSpill(t.spilled)

	// The inline capacity is a floor: asking for fewer buckets changes nothing.
	t.set.Init(max(o.capacity, len(t.slab)), h, &t.alloc, o.maxLoadFactor)
	t.set.OnRehash(t.rehashed)
	t.metrics.RecordRehash(0, t.set.BucketCount())

	return t
}

func (t *Tracker[T, S]) copyCheck() {
	if t.self != t {
		if t.self == nil {
			panic(ErrUninitialized)
		}
		panic(ErrCopied)
	}
}

// HasSeen inserts v and reports whether an equal value was already present.
//
// This is a single lookup: the insert itself detects the duplicate.
func (t *Tracker[T, S]) HasSeen(v T) bool {
	t.copyCheck()
	seen := !t.set.Insert(v)
	t.metrics.RecordHasSeen(seen)
	return seen
}

// Contains reports whether a value equal to v has been seen, without
// recording v.
func (t *Tracker[T, S]) Contains(v T) bool {
	t.copyCheck()
	return t.set.Contains(v)
}

// Reserve pre-sizes the set for n elements. Existing elements are unaffected.
// It panics with ErrNegativeReserve if n is negative.
func (t *Tracker[T, S]) Reserve(n int) {
	t.copyCheck()
	if n < 0 {
		panic(ErrNegativeReserve)
	}
	t.logger.LogReserve(n, t.set.BucketCount())
	t.set.Reserve(n)
}

// Set returns the underlying hash set for iteration or inspection.
//
// Elements removed through the set are not returned to the inline arena; use
// Reset to start over with the arena rewound.
func (t *Tracker[T, S]) Set() *HashSet[T] {
	t.copyCheck()
	return &t.set
}

// Len returns the number of distinct values seen.
func (t *Tracker[T, S]) Len() int {
	t.copyCheck()
	return t.set.Len()
}

// Reset forgets every value and rewinds the inline arena.
// The bucket array is kept.
func (t *Tracker[T, S]) Reset() {
	t.copyCheck()
	t.set.Clear()
	t.alloc.Reset()
}

// InlineCapacity returns the number of elements the inline arena holds.
func (t *Tracker[T, S]) InlineCapacity() int {
	return len(t.slab)
}

// ArenaEnabled reports whether this build draws nodes from the inline arena.
// It is false when built with the dupetrack.noarena tag.
func (t *Tracker[T, S]) ArenaEnabled() bool {
	return arena.Enabled
}

// Stats is a snapshot of a Tracker's size and memory use.
type Stats struct {
	Len        int
	Buckets    int
	LoadFactor float64

	ArenaEnabled   bool
	InlineCapacity int
	// InlineBytes is the size of the embedded slab.
	InlineBytes uintptr
	// EstimatedBytes is arena.SizeFor for the inline capacity.
	EstimatedBytes uintptr

	InlineUsed   int
	Spilled      int
	SpillChunks  int
	BytesSpilled uint64
}

// Stats returns a snapshot of the tracker.
func (t *Tracker[T, S]) Stats() Stats {
	t.copyCheck()

	var zero T
	as := t.alloc.Stats()
	return Stats{
		Len:            t.set.Len(),
		Buckets:        t.set.BucketCount(),
		LoadFactor:     t.set.LoadFactor(),
		ArenaEnabled:   arena.Enabled,
		InlineCapacity: len(t.slab),
		InlineBytes:    unsafe.Sizeof(t.slab),
		EstimatedBytes: arena.SizeFor(unsafe.Sizeof(zero), uintptr(len(t.slab))),
		InlineUsed:     as.InlineUsed,
		Spilled:        as.Spilled,
		SpillChunks:    as.SpillChunks,
		BytesSpilled:   as.BytesSpilled,
	}
}

func (t *Tracker[T, S]) spilled(chunk int) {
	t.logger.LogSpill(&t.alloc, chunk, t.set.Len())
	t.metrics.RecordSpill(chunk)
}

func (t *Tracker[T, S]) rehashed(from, to int) {
	t.logger.LogRehash(from, to, t.set.Len())
	t.metrics.RecordRehash(from, to)
}
