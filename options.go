package dupetrack

import "hash/maphash"

type options struct {
	capacity         int
	maxLoadFactor    float64
	seed             maphash.Seed
	seeded           bool
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures a Tracker.
//
// Options tune performance and observability only. None of them changes which
// values HasSeen reports as duplicates.
type Option func(*options)

// WithCapacity sets the initial bucket count hint.
//
// Values below the tracker's inline capacity are raised to it: the inline
// arena is sized at compile time and is always fully usable.
func WithCapacity(n int) Option {
	return func(o *options) {
		o.capacity = n
	}
}

// WithMaxLoadFactor sets the average chain length that triggers a rehash.
// Non-positive, NaN and infinite values select table.DefaultMaxLoadFactor (1.0).
func WithMaxLoadFactor(f float64) Option {
	return func(o *options) {
		o.maxLoadFactor = f
	}
}

// WithSeed fixes the maphash seed used by New. Trackers built with the same
// seed hash identically, which makes bucket layout reproducible in tests.
// It has no effect on NewFunc.
func WithSeed(seed maphash.Seed) Option {
	return func(o *options) {
		o.seed = seed
		o.seeded = true
	}
}

// WithLogger configures structured logging for arena spills and rehashes.
// Pass nil to disable logging.
//
// Example:
//
//	t := dupetrack.NewDefault[string](
//	    dupetrack.WithLogger(dupetrack.NewTextLogger(slog.LevelDebug)),
//	)
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &dupetrack.BasicMetricsCollector{}
//	t := dupetrack.NewDefault[int](dupetrack.WithMetricsCollector(metrics))
//	// ... use tracker ...
//	stats := metrics.GetStats()
//	fmt.Printf("duplicates: %d of %d\n", stats.Duplicates, stats.Lookups)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if !o.seeded {
		o.seed = maphash.MakeSeed()
	}
	return o
}
