// Package streaming implements the streaming orchestration layer: a small,
// deterministic join between the content-addressed cache and the priority
// work queue. Queue ordering is handled entirely by workqueue; Pipeline only
// tracks which WorkID is still pending for which cache Request so a cancel
// can reach the right queue slot.
//
// © 2025 geoscene-runtime authors. MIT License.
package streaming

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/voskan/geoscene-runtime/internal/runtime"
	"github.com/voskan/geoscene-runtime/internal/workqueue"
	cache "github.com/voskan/geoscene-runtime/pkg"
)

// Pipeline joins a Cache and a priority work queue: Submit requests a cache
// entry and enqueues work for it; PopNextWithBudget dequeues the next
// affordable item and resolves it back to a CacheKey.
type Pipeline struct {
	cache *cache.Cache
	queue *workqueue.Queue[cache.Request]

	mu      sync.Mutex
	pending map[cache.Request]workqueue.WorkID

	// submitGroup coalesces concurrent Submit calls for the same key: unlike
	// pkg/cache's Request (a pure in-memory map operation under one mutex),
	// Submit also pushes onto a capacity-bounded queue, an operation that
	// can fail transiently under contention — singleflight.Group collapses
	// concurrent callers racing to submit the same key onto one queue push.
	submitGroup singleflight.Group
}

// New constructs a Pipeline over a fresh Cache with the given total memory
// budget and a work queue accepting at most maxPending items.
func New(cacheBudgetBytes int64, maxPending int, opts ...cache.Option) (*Pipeline, error) {
	c, err := cache.New(cacheBudgetBytes, opts...)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		cache:   c,
		queue:   workqueue.New[cache.Request](maxPending),
		pending: make(map[cache.Request]workqueue.WorkID),
	}, nil
}

// Cache exposes the underlying Cache for direct Advance/Release calls.
func (p *Pipeline) Cache() *cache.Cache { return p.cache }

// QueueLen returns the number of items currently queued.
func (p *Pipeline) QueueLen() int { return p.queue.Len() }

type submitResult struct {
	req cache.Request
	err error
}

// Submit requests key from the cache and enqueues the resulting Request
// with the given priority and cost. Concurrent submits for the same key
// coalesce onto a single queue push.
func (p *Pipeline) Submit(key cache.CacheKey, priority int32, costUnits uint32) (cache.Request, error) {
	groupKey := key.Dataset + "\x00" + key.ResourceID + "\x00" + strconv.FormatInt(int64(priority), 10) + "\x00" + strconv.FormatUint(uint64(costUnits), 10)

	v, err, _ := p.submitGroup.Do(groupKey, func() (any, error) {
		req := p.cache.Request(key)
		workID, err := p.queue.TryPushWithCost(priority, costUnits, req)
		if err != nil {
			return submitResult{req: req, err: err}, nil
		}
		p.mu.Lock()
		p.pending[req] = workID
		p.mu.Unlock()
		return submitResult{req: req}, nil
	})
	res := v.(submitResult)
	if err != nil {
		return 0, err
	}
	return res.req, res.err
}

// Cancel removes req's pending queue entry, if any. Returns true if a
// pending entry was found and cancelled.
func (p *Pipeline) Cancel(req cache.Request) bool {
	p.mu.Lock()
	workID, ok := p.pending[req]
	if ok {
		delete(p.pending, req)
	}
	p.mu.Unlock()
	if !ok {
		return false
	}
	return p.queue.Cancel(workID)
}

// PopNextWithBudget dequeues the next affordable request (strict priority,
// FIFO tie-break, per workqueue.Queue.PopNextWithBudget) and resolves it to
// its CacheKey. Returns false if nothing could be popped within budget, or
// if the popped request's cache entry is no longer live.
func (p *Pipeline) PopNextWithBudget(budget *runtime.FrameBudget) (cache.Request, cache.CacheKey, bool) {
	_, _, req, ok := p.queue.PopNextWithBudget(budget)
	if !ok {
		return 0, cache.CacheKey{}, false
	}
	p.mu.Lock()
	delete(p.pending, req)
	p.mu.Unlock()

	key, ok := p.cache.KeyForRequest(req)
	if !ok {
		return 0, cache.CacheKey{}, false
	}
	return req, key, true
}
