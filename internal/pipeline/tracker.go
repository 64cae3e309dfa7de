package pipeline

import (
	"fmt"
	"hash/maphash"

	"github.com/hupe1980/dupetrack"
	"github.com/hupe1980/dupetrack/internal/config"
	"github.com/hupe1980/dupetrack/internal/conv"
)

// lineTracker hides the Tracker instantiation chosen for the configured
// capacity behind a single interface.
type lineTracker interface {
	HasSeen(key string) (bool, error)
	Len() int
	Stats() dupetrack.Stats
}

type stringTracker[S dupetrack.Slab[string]] struct {
	t *dupetrack.Tracker[string, S]
}

func (s stringTracker[S]) HasSeen(key string) (bool, error) { return s.t.HasSeen(key), nil }
func (s stringTracker[S]) Len() int                         { return s.t.Len() }
func (s stringTracker[S]) Stats() dupetrack.Stats           { return s.t.Stats() }

type numericTracker struct {
	t *dupetrack.Uint32Tracker
}

func (n numericTracker) HasSeen(key string) (bool, error) {
	v, err := conv.ParseUint32(key)
	if err != nil {
		return false, err
	}
	return n.t.HasSeen(v), nil
}

func (n numericTracker) Len() int { return n.t.Len() }

func (n numericTracker) Stats() dupetrack.Stats {
	return dupetrack.Stats{Len: n.t.Len()}
}

// newLineTracker picks the smallest inline shape that holds cfg.Capacity
// lines, or the largest shape plus a capacity hint beyond that.
func newLineTracker(cfg config.Config, opts ...dupetrack.Option) lineTracker {
	if cfg.Numeric {
		return numericTracker{t: dupetrack.NewUint32(opts...)}
	}

	h := hasherFor(cfg)
	opts = append(opts, dupetrack.WithCapacity(cfg.Capacity))

	switch c := cfg.Capacity; {
	case c <= 8:
		return newStringTracker[dupetrack.Inline8[string]](h, opts)
	case c <= 16:
		return newStringTracker[dupetrack.Inline16[string]](h, opts)
	case c <= 32:
		return newStringTracker[dupetrack.Inline32[string]](h, opts)
	case c <= 64:
		return newStringTracker[dupetrack.Inline64[string]](h, opts)
	case c <= 128:
		return newStringTracker[dupetrack.Inline128[string]](h, opts)
	case c <= 256:
		return newStringTracker[dupetrack.Inline256[string]](h, opts)
	case c <= 512:
		return newStringTracker[dupetrack.Inline512[string]](h, opts)
	default:
		return newStringTracker[dupetrack.Inline1024[string]](h, opts)
	}
}

func newStringTracker[S dupetrack.Slab[string]](h dupetrack.Hasher[string], opts []dupetrack.Option) lineTracker {
	return stringTracker[S]{t: dupetrack.NewFunc[string, S](h, opts...)}
}

// hasherFor returns the line hasher. Case folding always hashes with xxhash.
func hasherFor(cfg config.Config) dupetrack.Hasher[string] {
	switch {
	case cfg.IgnoreCase:
		return dupetrack.FoldHasher()
	case cfg.Hash == config.HashMaphash:
		return dupetrack.ComparableHasher[string](maphash.MakeSeed())
	case cfg.Hash == config.HashXX, cfg.Hash == "":
		return dupetrack.StringHasher()
	default:
		panic(fmt.Sprintf("pipeline: unvalidated hash %q", cfg.Hash))
	}
}
