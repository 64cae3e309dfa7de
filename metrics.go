package dupetrack

import "sync/atomic"

// MetricsCollector defines an interface for collecting tracker metrics.
// Implement this interface to integrate with monitoring systems; package
// prommetrics provides a Prometheus implementation.
//
// Methods are called synchronously from the tracker's goroutine. A collector
// shared by several trackers must be safe for concurrent use.
type MetricsCollector interface {
	// RecordHasSeen is called after each HasSeen with its result.
	RecordHasSeen(duplicate bool)

	// RecordSpill is called when the inline arena is exhausted and the
	// allocator grabs a heap chunk of chunk elements.
	RecordSpill(chunk int)

	// RecordRehash is called after the bucket array grows. It is also called
	// once at construction with from == 0 to report the initial bucket count.
	RecordRehash(from, to int)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordHasSeen(bool)    {}
func (NoopMetricsCollector) RecordSpill(int)       {}
func (NoopMetricsCollector) RecordRehash(int, int) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	Lookups      atomic.Int64
	Duplicates   atomic.Int64
	Spills       atomic.Int64
	SpilledSlots atomic.Int64
	Rehashes     atomic.Int64
	Buckets      atomic.Int64
}

// RecordHasSeen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHasSeen(duplicate bool) {
	b.Lookups.Add(1)
	if duplicate {
		b.Duplicates.Add(1)
	}
}

// RecordSpill implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSpill(chunk int) {
	b.Spills.Add(1)
	b.SpilledSlots.Add(int64(chunk))
}

// RecordRehash implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRehash(from, to int) {
	if from > 0 {
		b.Rehashes.Add(1)
	}
	b.Buckets.Store(int64(to))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		Lookups:      b.Lookups.Load(),
		Duplicates:   b.Duplicates.Load(),
		Unique:       b.Lookups.Load() - b.Duplicates.Load(),
		Spills:       b.Spills.Load(),
		SpilledSlots: b.SpilledSlots.Load(),
		Rehashes:     b.Rehashes.Load(),
		Buckets:      b.Buckets.Load(),
	}
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	Lookups      int64
	Duplicates   int64
	Unique       int64
	Spills       int64
	SpilledSlots int64
	Rehashes     int64
	Buckets      int64
}
