package arena

import "unsafe"

const (
	// PointerSize is the size of a machine pointer.
	PointerSize = unsafe.Sizeof(uintptr(0))

	// NodeOverhead is the estimated per-element overhead of a chained hash
	// set node: the next pointer plus the cached hash.
	NodeOverhead = PointerSize + unsafe.Sizeof(uint64(0))

	// MaxAlign is the strictest alignment any Go value needs on supported
	// platforms.
	MaxAlign = 16
)

// SizeFor returns the estimated number of bytes a hash set needs to hold count
// elements of elemSize bytes: one node per element plus one bucket pointer per
// element.
func SizeFor(elemSize, count uintptr) uintptr {
	return (NodeOverhead+elemSize)*count + PointerSize*count
}

