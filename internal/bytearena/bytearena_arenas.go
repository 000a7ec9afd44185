//go:build goexperiment.arenas

// Package bytearena provides a thin, GC-friendly home for the bulk byte
// payloads held by resident cache entries. This build wraps Go's
// experimental arena package directly for byte-slice-grain allocation.
//
// © 2025 geoscene-runtime authors. MIT License.
package bytearena

import "arena"

// Arena owns a single off-heap region. AllocBytes copies into that region;
// Free releases the entire region in O(1), invalidating every slice it
// returned.
type Arena struct {
	a *arena.Arena
}

// New opens a fresh off-heap region.
func New() *Arena {
	return &Arena{a: arena.NewArena()}
}

// AllocBytes copies buf into the arena and returns the arena-owned copy.
func (a *Arena) AllocBytes(buf []byte) []byte {
	dst := arena.MakeSlice[byte](a.a, len(buf), len(buf))
	copy(dst, buf)
	return dst
}

// Free releases the entire region. After Free, no previously-returned slice
// should be read.
func (a *Arena) Free() {
	a.a.Free()
}
