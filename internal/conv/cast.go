package conv

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrNotNumeric is returned by ParseUint32 for input that is not an unsigned
// 32-bit integer.
var ErrNotNumeric = errors.New("not an unsigned 32-bit integer")

// ParseUint32 parses a decimal, 0x-hex, 0o-octal or 0b-binary integer.
// Surrounding whitespace is ignored.
func ParseUint32(s string) (uint32, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotNumeric, s)
	}
	return uint32(v), nil
}

// Uint64ToInt converts uint64 to int safely.
func Uint64ToInt(v uint64) (int, error) {
	if v > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// SaturateInt converts v to int, clamping at math.MaxInt.
func SaturateInt(v uint64) int {
	n, err := Uint64ToInt(v)
	if err != nil {
		return math.MaxInt
	}
	return n
}
