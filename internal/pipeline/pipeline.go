// Package pipeline runs the dupetrack CLI: inputs are read and decoded on
// one goroutine while a second goroutine owns the tracker and writes output.
package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/hupe1980/dupetrack"
	"github.com/hupe1980/dupetrack/internal/config"
	"github.com/hupe1980/dupetrack/internal/conv"
	"github.com/hupe1980/dupetrack/internal/input"
	"github.com/hupe1980/dupetrack/internal/pool"
)

// BatchSize is the number of lines handed from the reader to the tracker
// goroutine at a time.
const BatchSize = pool.DefaultBatchSize

// ErrNotNumeric is returned in numeric mode for a line that is not an
// unsigned 32-bit integer.
var ErrNotNumeric = conv.ErrNotNumeric

// Summary describes a completed run.
type Summary struct {
	Inputs     int
	Lines      int64
	Unique     int64
	Duplicates int64

	// Tracker is the final tracker snapshot. In numeric mode only Len is set.
	Tracker dupetrack.Stats
}

type options struct {
	logger  *dupetrack.Logger
	metrics dupetrack.MetricsCollector
}

// Option configures Run.
type Option func(*options)

// WithLogger sets the logger for progress and tracker events.
func WithLogger(l *dupetrack.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector forwards tracker metrics to mc.
func WithMetricsCollector(mc dupetrack.MetricsCollector) Option {
	return func(o *options) {
		o.metrics = mc
	}
}

type batch struct {
	path  string
	first int64
	*pool.Batch
}

// Run deduplicates the lines of inputs (stdin when empty) into out according
// to cfg. cfg must have passed Validate.
func Run(ctx context.Context, cfg config.Config, inputs []string, out io.Writer, opts ...Option) (Summary, error) {
	o := options{
		logger:  dupetrack.NoopLogger(),
		metrics: dupetrack.NoopMetricsCollector{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	if len(inputs) == 0 {
		inputs = []string{input.Stdin}
	}

	lt := newLineTracker(cfg,
		dupetrack.WithLogger(o.logger),
		dupetrack.WithMetricsCollector(o.metrics),
	)

	var sum Summary
	ch := make(chan batch, 4)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(ch)
		return produce(gctx, inputs, ch, o.logger, &sum.Inputs)
	})

	g.Go(func() error {
		return consume(gctx, cfg, lt, ch, out, o.logger, &sum)
	})

	err := g.Wait()
	sum.Tracker = lt.Stats()
	return sum, err
}

func produce(ctx context.Context, inputs []string, ch chan<- batch, logger *dupetrack.Logger, opened *int) error {
	send := func(b batch) error {
		select {
		case ch <- b:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	for _, path := range inputs {
		rc, format, err := input.Open(path)
		if err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
		*opened++
		logger.Debug("input opened", "path", path, "format", format.String())

		cur := batch{path: path, first: 1, Batch: pool.Get()}
		n := int64(0)
		err = input.Lines(ctx, rc, func(line string) error {
			n++
			cur.Lines = append(cur.Lines, line)
			if cur.Len() < BatchSize {
				return nil
			}
			if err := send(cur); err != nil {
				return err
			}
			cur = batch{path: path, first: n + 1, Batch: pool.Get()}
			return nil
		})
		closeErr := rc.Close()
		if err != nil {
			pool.Put(cur.Batch)
			return fmt.Errorf("read %s: %w", path, err)
		}
		if closeErr != nil {
			pool.Put(cur.Batch)
			return fmt.Errorf("close %s: %w", path, closeErr)
		}
		if cur.Len() == 0 {
			pool.Put(cur.Batch)
			continue
		}
		if err := send(cur); err != nil {
			return err
		}
	}
	return nil
}

func consume(ctx context.Context, cfg config.Config, lt lineTracker, ch <-chan batch, out io.Writer, logger *dupetrack.Logger, sum *Summary) error {
	w := bufio.NewWriter(out)

	var progress *rate.Sometimes
	if cfg.ProgressInterval > 0 {
		progress = &rate.Sometimes{Interval: cfg.ProgressInterval}
	}

	for b := range ch {
		for i, line := range b.Lines {
			key := line
			if cfg.Trim {
				key = strings.TrimSpace(key)
			}

			seen, err := lt.HasSeen(key)
			if err != nil {
				return fmt.Errorf("%s:%d: %w", b.path, b.first+int64(i), err)
			}

			sum.Lines++
			if seen {
				sum.Duplicates++
			} else {
				sum.Unique++
			}

			if err := emit(w, cfg.Mode, seen, line); err != nil {
				return err
			}
		}
		pool.Put(b.Batch)

		if progress != nil {
			progress.Do(func() {
				logger.Info("progress", "lines", sum.Lines, "unique", sum.Unique, "duplicates", sum.Duplicates)
			})
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return w.Flush()
}

func emit(w *bufio.Writer, mode config.Mode, seen bool, line string) error {
	switch mode {
	case config.ModeUnique:
		if seen {
			return nil
		}
	case config.ModeDuplicates:
		if !seen {
			return nil
		}
	case config.ModeAnnotate:
		tag := "new\t"
		if seen {
			tag = "dup\t"
		}
		if _, err := w.WriteString(tag); err != nil {
			return err
		}
	default:
		return nil
	}

	if _, err := w.WriteString(line); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
