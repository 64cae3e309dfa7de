// Package conv provides checked integer conversions for values read from
// untrusted input.
//
// Use cases:
//   - Parsing numeric keys from input lines (ParseUint32)
//   - Narrowing counters reported by bitmaps and hash sets
//
// For conversions that are provably safe, use direct type casts instead.
package conv
