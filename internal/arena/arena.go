package arena

import (
	"fmt"
	"unsafe"
)

const (
	// MinChunkSize is the smallest spill chunk, in elements.
	MinChunkSize = 8
	// MaxChunkSize caps geometric chunk growth, in elements.
	MaxChunkSize = 4096
)

// Stats tracks arena usage.
//
//   - InlineCapacity: slots in the embedded slab
//   - InlineUsed: slots handed out from the slab
//   - Spilled: slots handed out from heap chunks
//   - SpillChunks: heap chunks allocated since the last Reset
//   - BytesInline / BytesSpilled: the same figures in bytes
type Stats struct {
	InlineCapacity int
	InlineUsed     int
	Spilled        int
	SpillChunks    int
	BytesInline    uint64
	BytesSpilled   uint64
}

// Allocs returns the total number of slots handed out.
func (s Stats) Allocs() int {
	return s.InlineUsed + s.Spilled
}

// Bump is a monotonic allocator seeded from an inline slab.
//
// The slab is owned by the caller (typically a field of the same struct that
// holds the Bump) and must outlive every pointer returned by Alloc. Bump is not
// safe for concurrent use.
type Bump[E any] struct {
	inline    []E
	used      int
	chunk     []E
	chunkUsed int
	nextChunk int
	spilled   int
	chunks    int
	onSpill   func(chunk int)
}

// NewBump creates a Bump that draws from inline before touching the heap.
func NewBump[E any](inline []E) Bump[E] {
	return Bump[E]{inline: inline}
}

// OnSpill registers fn to be called with the chunk size (in elements) every
// time the allocator has to grab a new heap chunk.
func (b *Bump[E]) OnSpill(fn func(chunk int)) {
	b.onSpill = fn
}

// Alloc returns a pointer to a zeroed slot.
func (b *Bump[E]) Alloc() *E {
	if b.used < len(b.inline) {
		p := &b.inline[b.used]
		b.used++
		var zero E
		*p = zero
		return p
	}

	if b.chunkUsed == len(b.chunk) {
		b.grow()
	}

	p := &b.chunk[b.chunkUsed]
	b.chunkUsed++
	b.spilled++
	return p
}

func (b *Bump[E]) grow() {
	size := b.nextChunk
	if size == 0 {
		size = max(len(b.inline), MinChunkSize)
	}
	size = min(size, MaxChunkSize)

	// The previous chunk stays reachable through the nodes that point into it.
	b.chunk = make([]E, size)
	b.chunkUsed = 0
	b.chunks++
	b.nextChunk = min(size*2, MaxChunkSize)

	if b.onSpill != nil {
		b.onSpill(size)
	}
}

// Reset rewinds the inline slab and drops all spill chunks.
//
// Every pointer previously returned by Alloc becomes invalid: the slab slots
// will be handed out again.
func (b *Bump[E]) Reset() {
	clear(b.inline[:b.used])
	b.used = 0
	b.chunk = nil
	b.chunkUsed = 0
	b.nextChunk = 0
	b.spilled = 0
	b.chunks = 0
}

// Stats returns the current usage figures.
func (b *Bump[E]) Stats() Stats {
	var zero E
	size := uint64(unsafe.Sizeof(zero))
	return Stats{
		InlineCapacity: len(b.inline),
		InlineUsed:     b.used,
		Spilled:        b.spilled,
		SpillChunks:    b.chunks,
		BytesInline:    uint64(b.used) * size,
		BytesSpilled:   uint64(b.spilled) * size,
	}
}

// Usage returns the inline slab utilization as a percentage.
func (b *Bump[E]) Usage() float64 {
	if len(b.inline) == 0 {
		return 0
	}
	return float64(b.used) / float64(len(b.inline)) * 100
}

func (b *Bump[E]) String() string {
	s := b.Stats()
	return fmt.Sprintf(
		"Bump{inline: %d/%d, spilled: %d, chunks: %d, usage: %.1f%%}",
		s.InlineUsed, s.InlineCapacity, s.Spilled, s.SpillChunks, b.Usage(),
	)
}
