package arena

import (
	"runtime"
	"testing"
)

// The slab is embedded in the owner, so pointers into it keep the owner alive.
func TestBump_PointersSurviveGC(t *testing.T) {
	type owner struct {
		slab  [16]node
		alloc Bump[node]
	}

	o := &owner{}
	o.alloc = NewBump(o.slab[:])

	ptrs := make([]*node, 0, 64)
	for i := 0; i < 64; i++ {
		p := o.alloc.Alloc()
		p.value = string(rune('a' + i%26))
		p.hash = uint64(i)
		ptrs = append(ptrs, p)
	}
	o = nil

	runtime.GC()
	runtime.GC()

	for i, p := range ptrs {
		if p.hash != uint64(i) || p.value != string(rune('a'+i%26)) {
			t.Fatalf("slot %d corrupted after GC: %+v", i, *p)
		}
	}
}

// BenchmarkBumpInline allocates only from the inline slab, resetting between rounds.
func BenchmarkBumpInline(b *testing.B) {
	var slab [64]node
	a := NewBump(slab[:])

	b.ReportAllocs()
	for b.Loop() {
		for j := 0; j < len(slab); j++ {
			_ = a.Alloc()
		}
		a.Reset()
	}
}

// BenchmarkBumpSpill allocates well past the inline slab.
func BenchmarkBumpSpill(b *testing.B) {
	var slab [64]node
	a := NewBump(slab[:])

	b.ReportAllocs()
	for b.Loop() {
		for j := 0; j < 1024; j++ {
			_ = a.Alloc()
		}
		a.Reset()
	}
}

// BenchmarkHeap is the fallback path for comparison.
func BenchmarkHeap(b *testing.B) {
	var h Heap[node]

	b.ReportAllocs()
	for b.Loop() {
		for j := 0; j < 64; j++ {
			p := h.Alloc()
			runtime.KeepAlive(p)
		}
	}
}
