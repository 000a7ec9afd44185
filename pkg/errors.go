package cache

import "errors"

// Sentinel errors returned by Cache methods. Compare with errors.Is; none of
// these are ever panicked.
var (
	// ErrUnknownRequest is returned by Advance/Release when the request id
	// does not name a live entry (never issued, or already Evicted and
	// removed from the cache). KeyForRequest reports the same case by
	// returning false.
	ErrUnknownRequest = errors.New("cache: unknown request")

	// ErrInvalidTransition is returned when Advance is asked to move an
	// entry somewhere other than the next state in its canonical chain or
	// Evicted, or when Release is called on a request whose refcount is
	// already zero.
	ErrInvalidTransition = errors.New("cache: invalid residency transition")

	// ErrInsufficientBudget is returned when admitting a payload into
	// Resident would exceed the cache's memory budget even after evicting
	// every eligible (refcount == 0, Resident) entry.
	ErrInsufficientBudget = errors.New("cache: insufficient budget even after eviction")
)

var errInvalidBudget = errors.New("cache: budget bytes must be > 0")
