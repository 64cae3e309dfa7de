// Package testutil provides testing utilities for dupetrack.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic generators for value streams with a controlled
// share of duplicates, and a map-based reference oracle.
//
// # Random Streams
//
//	rng := testutil.NewRNG(seed)
//	ints := rng.IntStream(10_000, 500)      // 10k values, 500 distinct at most
//	skew := rng.ZipfStream(10_000, 500, 1.2) // same, power-law repeats
//	words := rng.Words(1_000, 8)             // random lowercase words
//
// # Reference Oracle
//
//	want := testutil.FirstSeen(ints) // []bool, true where a value repeats
package testutil
