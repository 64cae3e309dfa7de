// Package pool provides object pools for the line pipeline.
// Uses sync.Pool so steady-state batches are reused instead of reallocated.
package pool

import "sync"

// DefaultBatchSize is the initial capacity of pooled line batches.
const DefaultBatchSize = 512

// maxPooledBatch caps the capacity of batches kept for reuse, so one huge
// batch does not pin memory forever.
const maxPooledBatch = DefaultBatchSize * 16

// Batch is a reusable slice of input lines.
type Batch struct {
	Lines []string
}

var batchPool = sync.Pool{
	New: func() any {
		return &Batch{Lines: make([]string, 0, DefaultBatchSize)}
	},
}

// Get retrieves an empty Batch from the pool.
func Get() *Batch {
	return batchPool.Get().(*Batch)
}

// Put returns b to the pool. The caller must not use b afterwards.
func Put(b *Batch) {
	if cap(b.Lines) > maxPooledBatch {
		return
	}
	b.Reset()
	batchPool.Put(b)
}

// Reset empties the batch, dropping its string references.
func (b *Batch) Reset() {
	clear(b.Lines)
	b.Lines = b.Lines[:0]
}

// Len returns the number of lines in the batch.
func (b *Batch) Len() int {
	return len(b.Lines)
}
