package dupetrack

import "errors"

// Misuse of a Tracker panics with one of these values; recover and match them
// with errors.Is. A Tracker has no recoverable errors.
var (
	// ErrCopied means a Tracker was copied by value after construction.
	// Its set would still point into the original's inline arena.
	ErrCopied = errors.New("dupetrack: illegal use of Tracker copied by value")

	// ErrUninitialized means a zero Tracker was used instead of one from New.
	ErrUninitialized = errors.New("dupetrack: Tracker used without New")

	// ErrNegativeReserve means Reserve was called with a negative count.
	ErrNegativeReserve = errors.New("dupetrack: negative reserve count")

	// ErrNilHasher means NewFunc was called with a nil Hasher.
	ErrNilHasher = errors.New("dupetrack: nil hasher")
)
