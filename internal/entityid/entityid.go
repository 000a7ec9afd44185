// Package entityid defines the stable identifier entities are referenced by
// across the selection set, interval tree, and world packages.
//
// © 2025 geoscene-runtime authors. MIT License.
package entityid

import "github.com/voskan/geoscene-runtime/internal/handlearena"

// ID is a generational reference to an entity's slot in the world's arena.
// Structures that only ever index entities by position (selection sets)
// mint generation-0 IDs by convention.
type ID struct {
	handle handlearena.Handle
}

// New constructs an ID from a handle.
func New(h handlearena.Handle) ID { return ID{handle: h} }

// FromIndex constructs an ID with generation 0, the selection-set
// convention.
func FromIndex(index uint32) ID { return ID{handle: handlearena.NewHandle(index, 0)} }

// Index returns the underlying slot index.
func (id ID) Index() uint32 { return id.handle.Index() }

// Generation returns the underlying generation.
func (id ID) Generation() uint32 { return id.handle.Generation() }

// Handle returns the underlying generational handle.
func (id ID) Handle() handlearena.Handle { return id.handle }
