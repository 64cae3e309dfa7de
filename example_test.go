package dupetrack_test

import (
	"fmt"
	"slices"

	"github.com/hupe1980/dupetrack"
)

// Example demonstrates reporting repeated values from a stream.
func Example() {
	t := dupetrack.NewDefault[string]()

	for _, s := range []string{"a", "b", "a", "c", "b", "b"} {
		fmt.Println(s, t.HasSeen(s))
	}

	vals := t.Set().Values()
	slices.Sort(vals)
	fmt.Println(vals)
	// Output:
	// a false
	// b false
	// a true
	// c false
	// b true
	// b true
	// [a b c]
}

// ExampleNew shows choosing the inline capacity at compile time.
func ExampleNew() {
	t := dupetrack.New[int, dupetrack.Inline256[int]](dupetrack.WithCapacity(1024))

	for i := 0; i < 200; i++ {
		t.HasSeen(i % 150)
	}

	fmt.Println("distinct:", t.Len())
	fmt.Println("inline capacity:", t.InlineCapacity())
	// Output:
	// distinct: 150
	// inline capacity: 256
}

// ExampleNewFunc uses case-insensitive equality.
func ExampleNewFunc() {
	t := dupetrack.NewFunc[string, dupetrack.Inline16[string]](dupetrack.FoldHasher())

	for _, s := range []string{"Go", "GO", "go", "Rust"} {
		if t.HasSeen(s) {
			fmt.Println("duplicate:", s)
		}
	}
	// Output:
	// duplicate: GO
	// duplicate: go
}

// ExampleTracker_Stats inspects how much of the inline arena was used.
func ExampleTracker_Stats() {
	t := dupetrack.New[int, dupetrack.Inline32[int]]()
	for i := 0; i < 10; i++ {
		t.HasSeen(i)
	}

	s := t.Stats()
	fmt.Println(s.Len, s.InlineCapacity)
	// Output: 10 32
}

// ExampleNewUint32 tracks dense integer IDs in a roaring bitmap.
func ExampleNewUint32() {
	t := dupetrack.NewUint32()

	var seen []bool
	for _, id := range []uint32{7, 8, 7, 1_000_000, 8} {
		seen = append(seen, t.HasSeen(id))
	}
	fmt.Println(seen)
	fmt.Println(t.Set().ToArray())
	// Output:
	// [false false true false true]
	// [7 8 1000000]
}

// ExampleNewDense reuses one tracker per traversal.
func ExampleNewDense() {
	t := dupetrack.NewDense(dupetrack.WithCapacity(64))

	for _, walk := range [][]uint{{1, 2, 1}, {2, 3, 3}} {
		var revisits int
		for _, id := range walk {
			if t.HasSeen(id) {
				revisits++
			}
		}
		fmt.Println(t.Set(), revisits)
		t.Reset()
	}
	// Output:
	// [1 2] 1
	// [2 3] 1
}
