// Package input opens line-oriented inputs, transparently decoding gzip, zstd
// and lz4 streams.
package input

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Format is the detected encoding of an input stream.
type Format uint8

const (
	// FormatPlain is an unencoded stream.
	FormatPlain Format = iota
	// FormatGzip is a gzip stream.
	FormatGzip
	// FormatZstd is a zstd frame.
	FormatZstd
	// FormatLZ4 is an lz4 frame.
	FormatLZ4
)

func (f Format) String() string {
	switch f {
	case FormatGzip:
		return "gzip"
	case FormatZstd:
		return "zstd"
	case FormatLZ4:
		return "lz4"
	default:
		return "plain"
	}
}

// Stdin is the path that selects standard input.
const Stdin = "-"

// MaxLineSize is the longest line Lines accepts.
const MaxLineSize = 1 << 20

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// Detect peeks at the first bytes of r without consuming them.
func Detect(r *bufio.Reader) (Format, error) {
	head, err := r.Peek(4)
	if err != nil && !errors.Is(err, io.EOF) {
		return FormatPlain, err
	}
	switch {
	case bytes.HasPrefix(head, magicZstd):
		return FormatZstd, nil
	case bytes.HasPrefix(head, magicLZ4):
		return FormatLZ4, nil
	case bytes.HasPrefix(head, magicGzip):
		return FormatGzip, nil
	default:
		return FormatPlain, nil
	}
}

type readCloser struct {
	io.Reader
	closers []func() error
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewReader wraps r with the decoder its leading bytes call for.
// Closing the result releases the decoder; it does not close r.
func NewReader(r io.Reader) (io.ReadCloser, Format, error) {
	br := bufio.NewReader(r)
	format, err := Detect(br)
	if err != nil {
		return nil, format, err
	}

	switch format {
	case FormatGzip:
		zr, err := gzip.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("gzip: %w", err)
		}
		return &readCloser{Reader: zr, closers: []func() error{zr.Close}}, format, nil
	case FormatZstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, format, fmt.Errorf("zstd: %w", err)
		}
		return dec.IOReadCloser(), format, nil
	case FormatLZ4:
		return io.NopCloser(lz4.NewReader(br)), format, nil
	default:
		return io.NopCloser(br), format, nil
	}
}

// Open opens path (or stdin for "-") and decodes it.
func Open(path string) (io.ReadCloser, Format, error) {
	if path == Stdin {
		return NewReader(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, FormatPlain, err
	}
	rc, format, err := NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, format, fmt.Errorf("%s: %w", path, err)
	}
	return &readCloser{Reader: rc, closers: []func() error{rc.Close, f.Close}}, format, nil
}

// Lines calls fn for every line of r, without the trailing newline (and
// carriage return). It stops early when ctx is done or fn returns an error.
func Lines(ctx context.Context, r io.Reader, fn func(line string) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), MaxLineSize)

	n := 0
	for sc.Scan() {
		if n++; n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		line := sc.Bytes()
		if l := len(line); l > 0 && line[l-1] == '\r' {
			line = line[:l-1]
		}
		if err := fn(string(line)); err != nil {
			return err
		}
	}
	return sc.Err()
}
