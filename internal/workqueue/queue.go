// Package workqueue implements a bounded, cost-gated priority queue that
// underlies streaming request scheduling. Priority ties are
// broken by submission order (seq), never by map/heap iteration order, so
// pop order is a deterministic function of the push history alone.
//
// © 2025 geoscene-runtime authors. MIT License.
package workqueue

import (
	"container/heap"
	"errors"

	"github.com/voskan/geoscene-runtime/internal/runtime"
)

// WorkID stably identifies a pushed item for later Cancel.
type WorkID uint64

// ErrFull is returned by TryPushWithCost when the number of non-cancelled
// items already equals the configured max.
var ErrFull = errors.New("workqueue: full")

type item[T any] struct {
	id        WorkID
	priority  int32
	cost      uint32
	seq       uint64
	payload   T
	cancelled bool
	heapIndex int
}

// itemHeap orders live items by (-priority, seq): numerically greatest
// priority first, ties broken by smallest seq (earliest submission).
// Cancelled items remain in the heap (lazily skipped on pop) so that Cancel
// never needs to scan or re-heapify.
type itemHeap[T any] []*item[T]

func (h itemHeap[T]) Len() int { return len(h) }

func (h itemHeap[T]) Less(i, j int) bool {
	a, b := h[i], h[j]
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.seq < b.seq
}

func (h itemHeap[T]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIndex = i
	h[j].heapIndex = j
}

func (h *itemHeap[T]) Push(x any) {
	it := x.(*item[T])
	it.heapIndex = len(*h)
	*h = append(*h, it)
}

func (h *itemHeap[T]) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return it
}

// Queue is a bounded priority queue over payloads of type T.
type Queue[T any] struct {
	heap       itemHeap[T]
	byID       map[WorkID]*item[T]
	maxPending int
	nextSeq    uint64
	nextID     WorkID
	liveCount  int
}

// New constructs a queue that rejects pushes once the number of
// non-cancelled items reaches maxPending. A maxPending of zero or less
// leaves the queue unbounded.
func New[T any](maxPending int) *Queue[T] {
	return &Queue[T]{
		byID:       make(map[WorkID]*item[T]),
		maxPending: maxPending,
	}
}

// Len returns the number of live (non-cancelled) items.
func (q *Queue[T]) Len() int { return q.liveCount }

// IsEmpty reports whether the queue has no live items.
func (q *Queue[T]) IsEmpty() bool { return q.liveCount == 0 }

// TryPushWithCost pushes payload with the given priority and cost, assigning
// the next monotonic seq. Fails with ErrFull when the queue is at capacity.
func (q *Queue[T]) TryPushWithCost(priority int32, cost uint32, payload T) (WorkID, error) {
	if q.maxPending > 0 && q.liveCount >= q.maxPending {
		var zero WorkID
		return zero, ErrFull
	}

	q.nextID++
	id := q.nextID
	it := &item[T]{
		id:       id,
		priority: priority,
		cost:     cost,
		seq:      q.nextSeq,
		payload:  payload,
	}
	q.nextSeq++

	heap.Push(&q.heap, it)
	q.byID[id] = it
	q.liveCount++
	return id, nil
}

// Cancel marks id's item cancelled in place. Returns true iff id was present
// and live. Cancelling an already-cancelled or already-popped id is a no-op
// returning false.
func (q *Queue[T]) Cancel(id WorkID) bool {
	it, ok := q.byID[id]
	if !ok || it.cancelled {
		return false
	}
	it.cancelled = true
	delete(q.byID, id)
	q.liveCount--
	return true
}

// PopNextWithBudget selects the live item with the highest priority
// (numerically greatest), breaking ties by smallest seq. If its cost fits
// the budget, the budget is consumed, the item is removed, and it is
// returned. Otherwise PopNextWithBudget returns false without mutating the
// queue or the budget — no lower-priority item is popped in its place.
func (q *Queue[T]) PopNextWithBudget(budget *runtime.FrameBudget) (WorkID, int32, T, bool) {
	var zero T

	// Discard cancelled items sitting at the heap top; they were already
	// excluded from liveCount at cancellation time.
	for q.heap.Len() > 0 && q.heap[0].cancelled {
		heap.Pop(&q.heap)
	}
	if q.heap.Len() == 0 {
		return 0, 0, zero, false
	}

	top := q.heap[0]
	if !budget.TryConsume(top.cost) {
		return 0, 0, zero, false
	}

	heap.Pop(&q.heap)
	delete(q.byID, top.id)
	q.liveCount--
	return top.id, top.priority, top.payload, true
}
