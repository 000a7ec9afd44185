package cache

// diskmirror.go is the optional write-only Badger-backed eviction log: a
// side diagnostic store, not authoritative cache state. Nothing in this file
// is ever read back into a live Cache.
//
// © 2025 geoscene-runtime authors. MIT License.

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

type diskMirror interface {
	recordEviction(key CacheKey, lastState ResidencyState, sizeBytes int64)
}

type noopMirror struct{}

func (noopMirror) recordEviction(CacheKey, ResidencyState, int64) {}

type badgerMirror struct {
	db *badger.DB
}

func newBadgerMirror(db *badger.DB) *badgerMirror {
	return &badgerMirror{db: db}
}

// recordEviction appends a record of the form "<state>|<sizeBytes>" keyed by
// the encoded CacheKey. Write errors are swallowed: the mirror is purely
// diagnostic and must never affect cache correctness.
func (m *badgerMirror) recordEviction(key CacheKey, lastState ResidencyState, sizeBytes int64) {
	val := fmt.Sprintf("%s|%d", lastState, sizeBytes)
	_ = m.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key.encode()), []byte(val))
	})
}
