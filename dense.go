package dupetrack

import (
	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/dupetrack/internal/conv"
	"github.com/hupe1980/dupetrack/internal/visited"
)

// Uint32Tracker is a Tracker specialization for integer identifiers, backed by
// a roaring bitmap instead of a hash set. It pays off for dense or clustered
// IDs, where a bitmap container is far smaller than one node per element.
//
// It is not safe for concurrent use. Unlike Tracker it holds no inline memory
// and may be copied, but copies share the bitmap.
type Uint32Tracker struct {
	bm      *roaring.Bitmap
	metrics MetricsCollector
}

// NewUint32 creates an empty Uint32Tracker. Only WithMetricsCollector has an
// effect; the other options are hash-set tuning.
func NewUint32(opts ...Option) *Uint32Tracker {
	o := applyOptions(opts)
	return &Uint32Tracker{
		bm:      roaring.New(),
		metrics: o.metricsCollector,
	}
}

// HasSeen adds v and reports whether it was already present.
func (t *Uint32Tracker) HasSeen(v uint32) bool {
	seen := !t.bm.CheckedAdd(v)
	t.metrics.RecordHasSeen(seen)
	return seen
}

// Contains reports whether v has been seen.
func (t *Uint32Tracker) Contains(v uint32) bool {
	return t.bm.Contains(v)
}

// Reserve is accepted for API parity. Roaring containers size themselves per
// 64Ki block, so there is nothing to pre-allocate.
func (t *Uint32Tracker) Reserve(n int) {
	if n < 0 {
		panic(ErrNegativeReserve)
	}
}

// Set returns the underlying bitmap.
func (t *Uint32Tracker) Set() *roaring.Bitmap {
	return t.bm
}

// Len returns the number of distinct values seen.
func (t *Uint32Tracker) Len() int {
	return conv.SaturateInt(t.bm.GetCardinality())
}

// Reset forgets every value.
func (t *Uint32Tracker) Reset() {
	t.bm.Clear()
}

// SizeInBytes estimates the bitmap's memory footprint.
func (t *Uint32Tracker) SizeInBytes() uint64 {
	return t.bm.GetSizeInBytes()
}

// DenseTracker tracks IDs drawn from a small range [0, n) in a bitset. Reset
// only touches the IDs seen since the last Reset, which suits trackers reused
// per request or per traversal.
//
// It is not safe for concurrent use.
type DenseTracker struct {
	set     *visited.Set
	metrics MetricsCollector
}

// NewDense creates a DenseTracker sized by WithCapacity for IDs below that
// bound. Larger IDs grow the bitset.
func NewDense(opts ...Option) *DenseTracker {
	o := applyOptions(opts)
	return &DenseTracker{
		set:     visited.New(uint(max(o.capacity, 0))),
		metrics: o.metricsCollector,
	}
}

// HasSeen marks id and reports whether it was already marked.
func (t *DenseTracker) HasSeen(id uint) bool {
	seen := t.set.Visit(id)
	t.metrics.RecordHasSeen(seen)
	return seen
}

// Contains reports whether id has been seen.
func (t *DenseTracker) Contains(id uint) bool {
	return t.set.Visited(id)
}

// Reserve grows the bitset to hold IDs below n.
func (t *DenseTracker) Reserve(n int) {
	if n < 0 {
		panic(ErrNegativeReserve)
	}
	t.set.EnsureCapacity(uint(n))
}

// Set returns the seen IDs in first-seen order. The slice is only valid until
// the next HasSeen or Reset.
func (t *DenseTracker) Set() []uint {
	return t.set.IDs()
}

// Len returns the number of distinct IDs seen.
func (t *DenseTracker) Len() int {
	return t.set.Len()
}

// Reset forgets every ID. The bitset keeps its size.
func (t *DenseTracker) Reset() {
	t.set.Reset()
}
