package cache

// cache.go is the public entry point: a single memory-budgeted store with
// an explicit residency state machine and exact global LRU eviction over
// the whole key space.
//
// © 2025 geoscene-runtime authors. MIT License.

import (
	"sync"

	"go.uber.org/zap"

	"github.com/voskan/geoscene-runtime/internal/genring"
)

type entry struct {
	req          Request
	key          CacheKey
	state        ResidencyState
	payload      []byte
	genID        uint32
	hasGen       bool
	sizeBytes    int64
	refcount     uint32
	lastTouchSeq uint64
}

// Cache is a content-addressed, memory-budgeted store for scene resource
// payloads, tracked through an explicit residency state machine. A single
// memory budget and a single monotonic touch counter are shared by every
// entry, so eviction always picks the least-recently-touched eligible entry
// across the whole cache.
type Cache struct {
	mu sync.Mutex

	byReq       map[Request]*entry
	byKey       map[CacheKey]*entry
	ledger      *genring.Ledger
	budgetBytes int64
	usedBytes   int64

	touchSeq uint64
	nextReq  uint64

	metrics metricsSink
	mirror  diskMirror
	logger  *zap.Logger
}

// New constructs a Cache with the given total memory budget. budgetBytes
// must be positive.
func New(budgetBytes int64, opts ...Option) (*Cache, error) {
	cfg := defaultConfig(budgetBytes)
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	metrics := newMetricsSink(cfg.registry)
	var mirror diskMirror = noopMirror{}
	if cfg.mirrorDB != nil {
		mirror = newBadgerMirror(cfg.mirrorDB)
	}
	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Cache{
		byReq:       make(map[Request]*entry),
		byKey:       make(map[CacheKey]*entry),
		ledger:      genring.New(cfg.genBudget),
		budgetBytes: cfg.budgetBytes,
		metrics:     metrics,
		mirror:      mirror,
		logger:      logger,
	}, nil
}

func (c *Cache) nextTouch() uint64 {
	c.touchSeq++
	return c.touchSeq
}

func (c *Cache) nextRequest() Request {
	c.nextReq++
	return Request(c.nextReq)
}

// Request returns the Request tracking key, creating a fresh entry in
// StateRequested if one does not already exist, or bumping the refcount and
// touch of the existing one. Request coalescing is implicit: concurrent
// callers for the same key always observe the same Request id, since the
// whole check-or-create step runs under the cache's mutex (see
// internal/streaming for a case where golang.org/x/sync/singleflight earns
// its keep instead, coalescing concurrent Submit calls that may block on
// queue capacity).
func (c *Cache) Request(key CacheKey) Request {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.byKey[key]; ok {
		ent.refcount++
		ent.lastTouchSeq = c.nextTouch()
		c.metrics.incRequest(true)
		return ent.req
	}

	ent := &entry{
		req:          c.nextRequest(),
		key:          key,
		state:        StateRequested,
		refcount:     1,
		lastTouchSeq: c.nextTouch(),
	}
	c.byReq[ent.req] = ent
	c.byKey[key] = ent
	c.metrics.incRequest(false)
	return ent.req
}

// Advance moves req's entry to next. sizeBytes/payload are only consulted
// when next is StateResident; callers pass zero/nil otherwise. Transitioning
// into Resident runs admission (and, if needed, eviction) logic;
// transitioning to Evicted from any other state evicts the entry directly
// once its refcount is zero, and reports ErrInvalidTransition before that.
func (c *Cache) Advance(req Request, next ResidencyState, sizeBytes int64, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.byReq[req]
	if !ok {
		return ErrUnknownRequest
	}
	if !isValidForwardTransition(ent.state, next) {
		return ErrInvalidTransition
	}

	switch next {
	case StateResident:
		return c.admitResident(ent, sizeBytes, payload)
	case StateEvicted:
		// No entry may reach Evicted while still referenced; a caller
		// wanting to cancel a referenced entry must Release down to zero
		// first.
		if ent.refcount != 0 {
			return ErrInvalidTransition
		}
		c.evictEntry(ent)
		c.metrics.incAdvance(next)
		return nil
	default:
		ent.state = next
		c.metrics.incAdvance(next)
		return nil
	}
}

// admitResident runs the deterministic eviction sweep: evict refcount==0
// Resident entries in ascending (lastTouchSeq, Dataset, ResourceID) order
// until the incoming payload fits, or fail admission (evicting the admitted
// entry itself) if it never will.
func (c *Cache) admitResident(ent *entry, sizeBytes int64, payload []byte) error {
	if sizeBytes < 0 {
		sizeBytes = 0
	}

	evicted := 0
	for c.usedBytes+sizeBytes > c.budgetBytes {
		victim := c.pickEvictionVictim(ent.req)
		if victim == nil {
			break
		}
		c.evictEntry(victim)
		evicted++
	}
	if evicted > 0 {
		c.logger.Debug("eviction sweep", zap.Int("evicted", evicted), zap.Int64("used_bytes", c.usedBytes))
	}

	if c.usedBytes+sizeBytes > c.budgetBytes {
		c.logger.Warn("admission failed: insufficient budget",
			zap.String("dataset", ent.key.Dataset),
			zap.String("resource_id", ent.key.ResourceID),
			zap.Int64("size_bytes", sizeBytes))
		c.evictEntry(ent)
		c.metrics.incAdvance(StateEvicted)
		return ErrInsufficientBudget
	}

	genID, stored := c.ledger.Alloc(payload)
	ent.genID = genID
	ent.hasGen = true
	ent.payload = stored
	ent.sizeBytes = sizeBytes
	ent.state = StateResident
	ent.lastTouchSeq = c.nextTouch()
	c.usedBytes += sizeBytes

	c.metrics.incAdvance(StateResident)
	c.metrics.setResidentBytes(c.usedBytes)

	if c.ledger.CheckRotationNeeded() {
		c.ledger.Rotate()
	}
	return nil
}

// pickEvictionVictim returns the eligible entry (Resident, refcount == 0,
// not excludeReq) with the smallest lastTouchSeq across the whole cache,
// breaking ties by (Dataset, ResourceID) byte order. The result is
// independent of map iteration order since it is the unique minimum of a
// strict total order.
func (c *Cache) pickEvictionVictim(excludeReq Request) *entry {
	var best *entry
	for _, ent := range c.byReq {
		if ent.req == excludeReq {
			continue
		}
		if ent.state != StateResident || ent.refcount != 0 {
			continue
		}
		if best == nil || ent.lastTouchSeq < best.lastTouchSeq ||
			(ent.lastTouchSeq == best.lastTouchSeq && ent.key.less(best.key)) {
			best = ent
		}
	}
	return best
}

// evictEntry removes ent from both indices, reclaims its budget and
// generation-tagged bytes, and records it in the diagnostic mirror.
func (c *Cache) evictEntry(ent *entry) {
	delete(c.byReq, ent.req)
	delete(c.byKey, ent.key)

	if ent.state == StateResident {
		c.usedBytes -= ent.sizeBytes
	}
	if ent.hasGen {
		c.ledger.Release(ent.genID)
	}

	lastState := ent.state
	ent.state = StateEvicted
	c.mirror.recordEviction(ent.key, lastState, ent.sizeBytes)
	c.metrics.incEvict()
	c.metrics.setResidentBytes(c.usedBytes)
}

// Release decrements req's refcount, making the entry eligible for eviction
// once it reaches zero and is Resident. Releasing a request whose refcount
// is already zero is a double-release and reports ErrInvalidTransition.
func (c *Cache) Release(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.byReq[req]
	if !ok {
		return ErrUnknownRequest
	}
	if ent.refcount == 0 {
		return ErrInvalidTransition
	}
	ent.refcount--
	c.metrics.incRelease()
	return nil
}

// KeyForRequest returns the CacheKey backing req, if it is still live.
func (c *Cache) KeyForRequest(req Request) (CacheKey, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.byReq[req]
	if !ok {
		return CacheKey{}, false
	}
	return ent.key, true
}

// Len returns the total number of live (non-Evicted) entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.byReq)
}

// SizeBytes returns the total Resident payload bytes currently admitted.
func (c *Cache) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usedBytes
}
