package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type node struct {
	next  *node
	hash  uint64
	value string
}

func TestBump_InlineFirst(t *testing.T) {
	var slab [4]node
	b := NewBump(slab[:])

	for i := range slab {
		p := b.Alloc()
		assert.Same(t, &slab[i], p, "slot %d should come from the slab", i)
	}

	s := b.Stats()
	assert.Equal(t, 4, s.InlineCapacity)
	assert.Equal(t, 4, s.InlineUsed)
	assert.Zero(t, s.Spilled)
	assert.Zero(t, s.SpillChunks)
	assert.InDelta(t, 100.0, b.Usage(), 1e-9)
}

func TestBump_Spill(t *testing.T) {
	var slab [2]node
	b := NewBump(slab[:])

	var chunks []int
	b.OnSpill(func(chunk int) { chunks = append(chunks, chunk) })

	ptrs := make([]*node, 0, 100)
	for i := 0; i < 100; i++ {
		p := b.Alloc()
		require.NotNil(t, p)
		p.hash = uint64(i)
		ptrs = append(ptrs, p)
	}

	// Earlier slots are untouched by later spills.
	for i, p := range ptrs {
		assert.Equal(t, uint64(i), p.hash)
	}

	s := b.Stats()
	assert.Equal(t, 2, s.InlineUsed)
	assert.Equal(t, 98, s.Spilled)
	assert.Equal(t, 100, s.Allocs())
	assert.Equal(t, len(chunks), s.SpillChunks)
	require.NotEmpty(t, chunks)
	assert.Equal(t, MinChunkSize, chunks[0])
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, min(chunks[i-1]*2, MaxChunkSize), chunks[i])
	}
}

func TestBump_ChunkGrowthCapped(t *testing.T) {
	b := NewBump[uint64](nil)

	var last int
	b.OnSpill(func(chunk int) { last = chunk })

	for i := 0; i < 3*MaxChunkSize; i++ {
		_ = b.Alloc()
	}
	assert.Equal(t, MaxChunkSize, last)
}

func TestBump_ResetZeroesSlab(t *testing.T) {
	var slab [3]node
	b := NewBump(slab[:])

	p := b.Alloc()
	p.value = "stale"
	p.hash = 42
	_ = b.Alloc()
	_ = b.Alloc()
	_ = b.Alloc() // spills

	b.Reset()

	s := b.Stats()
	assert.Zero(t, s.InlineUsed)
	assert.Zero(t, s.Spilled)
	assert.Zero(t, s.SpillChunks)
	assert.Equal(t, node{}, slab[0])

	q := b.Alloc()
	assert.Same(t, &slab[0], q)
	assert.Equal(t, node{}, *q)
}

func TestBump_AllocZeroesReusedSlot(t *testing.T) {
	var slab [1]node
	b := NewBump(slab[:])

	slab[0].value = "garbage"
	p := b.Alloc()
	assert.Empty(t, p.value)
}

func TestBump_String(t *testing.T) {
	var slab [2]node
	b := NewBump(slab[:])
	_ = b.Alloc()
	assert.Equal(t, "Bump{inline: 1/2, spilled: 0, chunks: 0, usage: 50.0%}", b.String())
}

func TestHeap(t *testing.T) {
	var slab [8]node
	h := NewHeap(slab[:])
	h.OnSpill(func(int) { t.Fatal("heap allocator must never spill") })

	p := h.Alloc()
	q := h.Alloc()
	assert.NotSame(t, p, q)
	for i := range slab {
		assert.NotSame(t, &slab[i], p)
	}

	s := h.Stats()
	assert.Zero(t, s.InlineCapacity)
	assert.Equal(t, 2, s.Spilled)
	assert.Equal(t, 2, s.Allocs())

	assert.Equal(t, "Heap{allocs: 2}", h.String())

	h.Reset()
	assert.Zero(t, h.Stats().Spilled)
}

func TestNewAllocator(t *testing.T) {
	var slab [4]node
	a := NewAllocator(slab[:])
	p := a.Alloc()
	require.NotNil(t, p)

	if Enabled {
		assert.Same(t, &slab[0], p)
		assert.Equal(t, 1, a.Stats().InlineUsed)
	} else {
		assert.Equal(t, 1, a.Stats().Spilled)
	}
}
