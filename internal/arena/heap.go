package arena

import (
	"fmt"
	"unsafe"
)

// Heap is the fallback allocator: every slot comes from new.
// It has the same method set as Bump.
type Heap[E any] struct {
	allocs int
}

// NewHeap returns a Heap allocator. The inline slab is ignored.
func NewHeap[E any](_ []E) Heap[E] {
	return Heap[E]{}
}

// OnSpill is a no-op: a Heap never owns inline memory to spill from.
func (h *Heap[E]) OnSpill(func(chunk int)) {}

// Alloc returns a pointer to a freshly allocated zero value.
func (h *Heap[E]) Alloc() *E {
	h.allocs++
	return new(E)
}

// Reset forgets the allocation count.
func (h *Heap[E]) Reset() {
	h.allocs = 0
}

func (h *Heap[E]) String() string {
	return fmt.Sprintf("Heap{allocs: %d}", h.allocs)
}

// Stats reports every allocation as spilled.
func (h *Heap[E]) Stats() Stats {
	var zero E
	return Stats{
		Spilled:      h.allocs,
		BytesSpilled: uint64(h.allocs) * uint64(unsafe.Sizeof(zero)),
	}
}
