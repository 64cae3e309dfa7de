// Package visited tracks small non-negative integer IDs in a bitset, with a
// dirty list so Reset costs O(visited) rather than O(capacity).
package visited

import "github.com/bits-and-blooms/bitset"

// Set tracks visited IDs.
type Set struct {
	bits  *bitset.BitSet
	dirty []uint
}

// New creates a set sized for IDs below capacity. Larger IDs grow it.
func New(capacity uint) *Set {
	return &Set{
		bits:  bitset.New(capacity),
		dirty: make([]uint, 0, 128),
	}
}

// Visit marks id as visited and reports whether it already was.
func (s *Set) Visit(id uint) bool {
	if s.bits.Test(id) {
		return true
	}
	// Set extends the bitset for ids past its length.
	s.bits.Set(id)
	s.dirty = append(s.dirty, id)
	return false
}

// Visited returns true if id has been visited.
func (s *Set) Visited(id uint) bool {
	return s.bits.Test(id)
}

// Len returns the number of visited IDs.
func (s *Set) Len() int {
	return len(s.dirty)
}

// IDs returns the visited IDs in first-visit order. The slice is owned by
// the set and is only valid until the next Visit or Reset.
func (s *Set) IDs() []uint {
	return s.dirty
}

// Reset clears the visited status for all IDs visited since the last Reset.
func (s *Set) Reset() {
	for _, id := range s.dirty {
		s.bits.Clear(id)
	}
	s.dirty = s.dirty[:0]
}

// Capacity returns the number of IDs the set holds without growing.
func (s *Set) Capacity() uint {
	return s.bits.Len()
}

// EnsureCapacity ensures IDs below capacity can be visited without growing.
func (s *Set) EnsureCapacity(capacity uint) {
	if capacity <= s.bits.Len() {
		return
	}
	grown := bitset.New(capacity)
	grown.InPlaceUnion(s.bits)
	s.bits = grown
}
