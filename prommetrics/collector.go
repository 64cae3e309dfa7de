// Package prommetrics exports dupetrack metrics to Prometheus.
package prommetrics

import (
	prom "github.com/prometheus/client_golang/prometheus"
)

// Collector implements dupetrack.MetricsCollector using Prometheus metrics.
// It is safe to share between trackers.
type Collector struct {
	lookups *prom.CounterVec
	spills  prom.Counter
	slots   prom.Counter
	rehash  prom.Counter
	buckets prom.Gauge
}

// Option configures a Collector.
type Option func(*config)

type config struct {
	namespace   string
	constLabels prom.Labels
}

// WithNamespace overrides the metric namespace ("dupetrack").
func WithNamespace(ns string) Option {
	return func(c *config) {
		c.namespace = ns
	}
}

// WithConstLabels attaches labels to every metric, e.g. to tell trackers apart.
func WithConstLabels(l prom.Labels) Option {
	return func(c *config) {
		c.constLabels = l
	}
}

// New constructs a Collector and registers its metrics with reg.
// A nil reg gets a fresh private registry.
func New(reg prom.Registerer, opts ...Option) (*Collector, error) {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	cfg := config{namespace: "dupetrack"}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Collector{
		lookups: prom.NewCounterVec(prom.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "hasseen_total",
			Help:        "HasSeen calls by result (first or duplicate)",
			ConstLabels: cfg.constLabels,
		}, []string{"result"}),
		spills: prom.NewCounter(prom.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "arena_spills_total",
			Help:        "Heap chunks allocated after the inline arena was exhausted",
			ConstLabels: cfg.constLabels,
		}),
		slots: prom.NewCounter(prom.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "arena_spilled_slots_total",
			Help:        "Node slots reserved in heap chunks",
			ConstLabels: cfg.constLabels,
		}),
		rehash: prom.NewCounter(prom.CounterOpts{
			Namespace:   cfg.namespace,
			Name:        "rehash_total",
			Help:        "Bucket array resizes",
			ConstLabels: cfg.constLabels,
		}),
		buckets: prom.NewGauge(prom.GaugeOpts{
			Namespace:   cfg.namespace,
			Name:        "buckets",
			Help:        "Current bucket count of the hash set",
			ConstLabels: cfg.constLabels,
		}),
	}

	for _, m := range []prom.Collector{c.lookups, c.spills, c.slots, c.rehash, c.buckets} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics if registration fails.
func MustNew(reg prom.Registerer, opts ...Option) *Collector {
	c, err := New(reg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordHasSeen implements dupetrack.MetricsCollector.
func (c *Collector) RecordHasSeen(duplicate bool) {
	if c == nil {
		return
	}
	res := "first"
	if duplicate {
		res = "duplicate"
	}
	c.lookups.WithLabelValues(res).Inc()
}

// RecordSpill implements dupetrack.MetricsCollector.
func (c *Collector) RecordSpill(chunk int) {
	if c == nil {
		return
	}
	c.spills.Inc()
	c.slots.Add(float64(chunk))
}

// RecordRehash implements dupetrack.MetricsCollector.
func (c *Collector) RecordRehash(from, to int) {
	if c == nil {
		return
	}
	if from > 0 {
		c.rehash.Inc()
	}
	c.buckets.Set(float64(to))
}
