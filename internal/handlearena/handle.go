// Package handlearena implements the generational slot allocator that
// underpins the world's entity table: entities resolve through a Handle
// rather than a raw index, so that a stale reference can never alias a
// reused slot.
//
// © 2025 geoscene-runtime authors. MIT License.
package handlearena

// Handle is a non-owning reference into an Arena: an index paired with the
// generation that was current when the slot was allocated. A Handle is only
// meaningful within the Arena that produced it.
type Handle struct {
	index      uint32
	generation uint32
}

// NewHandle constructs a Handle from its raw parts. Exported for callers that
// serialize/deserialize handles (e.g. selection sets, which mint
// generation-0 handles by convention).
func NewHandle(index, generation uint32) Handle {
	return Handle{index: index, generation: generation}
}

// Index returns the slot index this handle refers to.
func (h Handle) Index() uint32 { return h.index }

// Generation returns the generation this handle was minted at.
func (h Handle) Generation() uint32 { return h.generation }
