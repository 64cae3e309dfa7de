// Package table implements the chained hash set behind a duplicate tracker.
//
// Nodes are obtained from a NodeAllocator and are never moved: a rehash only
// relinks them into a new bucket array. That lets the allocator hand out
// slots from memory embedded in the owning tracker.
package table
