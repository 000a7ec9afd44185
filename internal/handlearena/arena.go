package handlearena

// slot holds one value cell plus its current generation. A slot whose
// occupied flag is false is free; its value is the zero value of T.
type slot[T any] struct {
	generation uint32
	value      T
	occupied   bool
}

// Arena is a deterministic generational arena: allocation reuses freed
// indices via a LIFO free list, and every reuse bumps the slot's generation
// so handles minted before a Free can never resolve after reuse.
//
// Arena is not safe for concurrent use; callers in this module are always
// single-threaded.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// New constructs an empty arena.
func New[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Len returns the number of currently occupied slots.
func (a *Arena[T]) Len() int { return a.live }

// Capacity returns the total number of slots ever allocated (occupied + free).
func (a *Arena[T]) Capacity() int { return len(a.slots) }

// Alloc stores value in a free slot (preferring LIFO reuse) and returns its
// Handle.
func (a *Arena[T]) Alloc(value T) Handle {
	if n := len(a.free); n > 0 {
		idx := a.free[n-1]
		a.free = a.free[:n-1]
		s := &a.slots[idx]
		s.value = value
		s.occupied = true
		a.live++
		return NewHandle(idx, s.generation)
	}

	idx := uint32(len(a.slots))
	a.slots = append(a.slots, slot[T]{value: value, occupied: true})
	a.live++
	return NewHandle(idx, 0)
}

// IsValid reports whether h still resolves to an occupied slot.
func (a *Arena[T]) IsValid(h Handle) bool {
	if int(h.index) >= len(a.slots) {
		return false
	}
	s := &a.slots[h.index]
	return s.occupied && s.generation == h.generation
}

// Get returns a pointer to the value referenced by h, or nil if h is stale
// or the slot is empty. The pointer is valid until the next Free of the same
// handle or the next Alloc, whichever comes first (Alloc may grow the slot
// slice and move its backing array).
func (a *Arena[T]) Get(h Handle) (*T, bool) {
	if int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return nil, false
	}
	return &s.value, true
}

// Free removes the value referenced by h, bumping the slot's generation and
// returning the index to the free list. Returns the freed value and true on
// success; returns the zero value and false for a stale or double free,
// leaving the arena untouched.
func (a *Arena[T]) Free(h Handle) (T, bool) {
	var zero T
	if int(h.index) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[h.index]
	if !s.occupied || s.generation != h.generation {
		return zero, false
	}

	v := s.value
	s.value = zero
	s.occupied = false
	s.generation++ // wraps after 2^32 frees, deemed acceptable
	a.free = append(a.free, h.index)
	a.live--
	return v, true
}

// Iter calls fn for every occupied slot in ascending index order, stopping
// early if fn returns false.
func (a *Arena[T]) Iter(fn func(h Handle, value *T) bool) {
	for i := range a.slots {
		s := &a.slots[i]
		if !s.occupied {
			continue
		}
		if !fn(NewHandle(uint32(i), s.generation), &s.value) {
			return
		}
	}
}
