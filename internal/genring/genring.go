// Package genring maintains a ledger of *generations* — byte-arena-backed
// allocation epochs used by the content cache to bulk-release evicted
// payload memory in O(1) once a generation's last live entry is gone.
//
// A *generation* owns:
//   - a bytearena.Arena payloads are copied into;
//   - a live-entry count incremented on admission and decremented on
//     eviction;
//   - a monotonically increasing ID so the cache can tag entries with the
//     generation that backs their payload bytes.
//
// A generation's arena is never released while any entry still resident in
// it is live, or the next read of that entry's payload would observe freed
// memory. The ledger keeps an open-ended map of generations and only frees a
// generation's arena once its live-entry count reaches zero and it is no
// longer the active generation.
//
// Concurrency model: the Ledger does not lock itself — callers (the cache)
// are expected to hold their own mutex across any sequence of calls that
// must appear atomic.
//
// © 2025 geoscene-runtime authors. MIT License.
package genring

import "github.com/voskan/geoscene-runtime/internal/bytearena"

type generation struct {
	id          uint32
	ar          *bytearena.Arena // nil once freed
	liveEntries int
	bytes       int64
	retiring    bool // true once rotated out; frees when liveEntries hits 0
}

// Ledger tracks allocation generations for cache payload bytes.
type Ledger struct {
	gens        map[uint32]*generation
	activeID    uint32
	nextID      uint32
	perGenBytes int64
}

// New constructs a ledger whose active generation rotates once its
// attributed bytes exceed perGenBytes.
func New(perGenBytes int64) *Ledger {
	if perGenBytes <= 0 {
		panic("genring: perGenBytes must be positive")
	}
	l := &Ledger{
		gens:        make(map[uint32]*generation),
		perGenBytes: perGenBytes,
	}
	l.nextID = 1
	first := &generation{id: l.nextID, ar: bytearena.New()}
	l.gens[first.id] = first
	l.activeID = first.id
	return l
}

// Active returns the id of the generation new allocations land in.
func (l *Ledger) Active() uint32 { return l.activeID }

// Alloc copies payload into the active generation's arena, tags it with
// that generation's id, and returns the arena-owned copy.
func (l *Ledger) Alloc(payload []byte) (genID uint32, stored []byte) {
	g := l.gens[l.activeID]
	stored = g.ar.AllocBytes(payload)
	g.bytes += int64(len(payload))
	g.liveEntries++
	return g.id, stored
}

// Release marks one fewer live entry against genID. If that generation has
// since been rotated out and has no remaining live entries, its arena is
// freed immediately.
func (l *Ledger) Release(genID uint32) {
	g, ok := l.gens[genID]
	if !ok {
		return
	}
	g.liveEntries--
	if g.retiring && g.liveEntries <= 0 {
		l.freeGeneration(g)
	}
}

// CheckRotationNeeded reports whether the active generation has exceeded its
// byte budget and should be rotated.
func (l *Ledger) CheckRotationNeeded() bool {
	return l.gens[l.activeID].bytes > l.perGenBytes
}

// Rotate retires the active generation (it keeps serving Release calls for
// entries already tagged with it, but takes no new allocations) and opens a
// fresh one. Returns the retired generation's id.
func (l *Ledger) Rotate() uint32 {
	old := l.gens[l.activeID]
	old.retiring = true
	retiredID := old.id

	l.nextID++
	fresh := &generation{id: l.nextID, ar: bytearena.New()}
	l.gens[fresh.id] = fresh
	l.activeID = fresh.id

	if old.liveEntries <= 0 {
		l.freeGeneration(old)
	}
	return retiredID
}

func (l *Ledger) freeGeneration(g *generation) {
	if g.ar == nil {
		return
	}
	g.ar.Free()
	g.ar = nil
	delete(l.gens, g.id)
}

// LiveBytes sums the attributed bytes of every still-open generation.
func (l *Ledger) LiveBytes() int64 {
	var total int64
	for _, g := range l.gens {
		total += g.bytes
	}
	return total
}

// GenerationCount returns how many generations remain open (active plus any
// retiring generations with entries still live).
func (l *Ledger) GenerationCount() int { return len(l.gens) }
