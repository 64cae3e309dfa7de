package table

import (
	"hash/maphash"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intHasher struct{ seed maphash.Seed }

func (h intHasher) Hash(v int) uint64   { return maphash.Comparable(h.seed, v) }
func (h intHasher) Equal(a, b int) bool { return a == b }

// collide sends every value to the same hash.
type collide struct{}

func (collide) Hash(int) uint64     { return 7 }
func (collide) Equal(a, b int) bool { return a == b }

type heapAlloc[T any] struct{ n int }

func (a *heapAlloc[T]) Alloc() *Node[T] {
	a.n++
	return new(Node[T])
}

func newTable(t *testing.T, buckets int, h Hasher[int]) (*Table[int], *heapAlloc[int]) {
	t.Helper()
	a := &heapAlloc[int]{}
	tbl := &Table[int]{}
	tbl.Init(buckets, h, a, 0)
	return tbl, a
}

func TestTable_InsertContains(t *testing.T) {
	tbl, a := newTable(t, 4, intHasher{maphash.MakeSeed()})

	assert.True(t, tbl.Insert(1))
	assert.True(t, tbl.Insert(2))
	assert.False(t, tbl.Insert(1))
	assert.True(t, tbl.Contains(1))
	assert.True(t, tbl.Contains(2))
	assert.False(t, tbl.Contains(3))
	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, 2, a.n, "a duplicate insert must not allocate")
}

func TestTable_Collisions(t *testing.T) {
	tbl, _ := newTable(t, 1, collide{})

	for i := 0; i < 100; i++ {
		require.True(t, tbl.Insert(i))
	}
	for i := 0; i < 100; i++ {
		assert.False(t, tbl.Insert(i))
		assert.True(t, tbl.Contains(i))
	}
	assert.Equal(t, 100, tbl.Len())
}

func TestTable_Growth(t *testing.T) {
	tbl, _ := newTable(t, 1, intHasher{maphash.MakeSeed()})

	var rehashes [][2]int
	tbl.OnRehash(func(from, to int) { rehashes = append(rehashes, [2]int{from, to}) })

	for i := 0; i < 1000; i++ {
		tbl.Insert(i)
	}

	assert.LessOrEqual(t, tbl.LoadFactor(), tbl.MaxLoadFactor())
	assert.Equal(t, 1024, tbl.BucketCount())
	require.NotEmpty(t, rehashes)
	for _, r := range rehashes {
		assert.Equal(t, r[0]*2, r[1])
	}
	for i := 0; i < 1000; i++ {
		assert.True(t, tbl.Contains(i))
	}
}

func TestTable_ReserveKeepsElements(t *testing.T) {
	tbl, a := newTable(t, 2, intHasher{maphash.MakeSeed()})
	for i := 0; i < 10; i++ {
		tbl.Insert(i)
	}
	allocs := a.n

	tbl.Reserve(5000)
	assert.GreaterOrEqual(t, tbl.BucketCount(), 5000)
	assert.Equal(t, allocs, a.n, "rehash relinks nodes without allocating")
	assert.Equal(t, 10, tbl.Len())
	for i := 0; i < 10; i++ {
		assert.True(t, tbl.Contains(i))
	}

	before := tbl.BucketCount()
	tbl.Reserve(1)
	tbl.Reserve(0)
	tbl.Reserve(-3)
	assert.Equal(t, before, tbl.BucketCount(), "reserve never shrinks")
}

func TestTable_Delete(t *testing.T) {
	tbl, _ := newTable(t, 1, collide{})
	for i := 0; i < 5; i++ {
		tbl.Insert(i)
	}

	assert.True(t, tbl.Delete(2))
	assert.False(t, tbl.Delete(2))
	assert.False(t, tbl.Contains(2))
	assert.Equal(t, 4, tbl.Len())

	// Head and tail of the chain.
	assert.True(t, tbl.Delete(4))
	assert.True(t, tbl.Delete(0))
	assert.ElementsMatch(t, []int{1, 3}, tbl.Values())

	assert.True(t, tbl.Insert(2))
	assert.True(t, tbl.Contains(2))
}

func TestTable_Clear(t *testing.T) {
	tbl, _ := newTable(t, 8, intHasher{maphash.MakeSeed()})
	for i := 0; i < 20; i++ {
		tbl.Insert(i)
	}
	buckets := tbl.BucketCount()

	tbl.Clear()
	assert.Zero(t, tbl.Len())
	assert.Equal(t, buckets, tbl.BucketCount())
	assert.False(t, tbl.Contains(3))
	assert.Empty(t, tbl.Values())
}

func TestTable_FindReturnsStoredElement(t *testing.T) {
	tbl := &Table[string]{}
	tbl.Init(4, foldASCII{}, &heapAlloc[string]{}, 0)

	tbl.Insert("Hello")
	got, ok := tbl.Find("HELLO")
	require.True(t, ok)
	assert.Equal(t, "Hello", got)

	_, ok = tbl.Find("bye")
	assert.False(t, ok)
}

func TestTable_AllStopsEarly(t *testing.T) {
	tbl, _ := newTable(t, 8, intHasher{maphash.MakeSeed()})
	for i := 0; i < 10; i++ {
		tbl.Insert(i)
	}

	n := 0
	for range tbl.All() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)

	vals := tbl.Values()
	slices.Sort(vals)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, vals)
}

func TestTable_CustomMaxLoad(t *testing.T) {
	tbl := &Table[int]{}
	tbl.Init(1, intHasher{maphash.MakeSeed()}, &heapAlloc[int]{}, 4)
	for i := 0; i < 4; i++ {
		tbl.Insert(i)
	}
	assert.Equal(t, 1, tbl.BucketCount())
	tbl.Insert(4)
	assert.Equal(t, 2, tbl.BucketCount())
	assert.InDelta(t, 4.0, tbl.MaxLoadFactor(), 1e-9)
}

func TestTable_InvalidMaxLoadFallsBack(t *testing.T) {
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		tbl := &Table[int]{}
		tbl.Init(8, intHasher{maphash.MakeSeed()}, &heapAlloc[int]{}, f)
		for i := 0; i < 1000; i++ {
			tbl.Insert(i)
		}
		assert.InDelta(t, DefaultMaxLoadFactor, tbl.MaxLoadFactor(), 0, "maxLoad %v", f)
		assert.GreaterOrEqual(t, tbl.BucketCount(), 1000, "maxLoad %v", f)
	}
}

func TestRoundBuckets(t *testing.T) {
	tests := map[int]int{-1: 1, 0: 1, 1: 1, 2: 2, 3: 4, 64: 64, 65: 128, 1000: 1024}
	for in, want := range tests {
		assert.Equal(t, want, roundBuckets(in), "roundBuckets(%d)", in)
	}
}

type foldASCII struct{}

func (foldASCII) Hash(s string) uint64 {
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		h ^= uint64(c)
		h *= 1099511628211
	}
	return h
}

func (foldASCII) Equal(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		x, y := a[i], b[i]
		if 'A' <= x && x <= 'Z' {
			x += 'a' - 'A'
		}
		if 'A' <= y && y <= 'Z' {
			y += 'a' - 'A'
		}
		if x != y {
			return false
		}
	}
	return true
}

func BenchmarkTable_Insert(b *testing.B) {
	h := intHasher{maphash.MakeSeed()}
	b.ReportAllocs()
	for b.Loop() {
		tbl := &Table[int]{}
		tbl.Init(64, h, &heapAlloc[int]{}, 0)
		for j := 0; j < 1024; j++ {
			tbl.Insert(j)
		}
	}
}
