//go:build !goexperiment.arenas

// Package bytearena provides a thin, GC-friendly home for the bulk byte
// payloads held by resident cache entries: a minimal New/Free/AllocBytes
// surface over a byte-slice-grain allocator.
//
// This file is the default build: it has no dependency on the experimental
// arena package, so the module compiles on stock toolchains. Build with
// -tags goexperiment.arenas (and a toolchain that supports it) to switch to
// the real off-heap arena in bytearena_arenas.go, which holds the identical
// contract.
//
// © 2025 geoscene-runtime authors. MIT License.
package bytearena

// Arena owns a growable collection of byte buffers. In this build it is a
// plain heap-backed accumulator; Free simply drops the references so the GC
// can reclaim them, rather than releasing a single off-heap region in O(1).
type Arena struct {
	bufs [][]byte
}

// New constructs an empty arena.
func New() *Arena {
	return &Arena{}
}

// AllocBytes copies buf into the arena and returns the arena-owned copy.
func (a *Arena) AllocBytes(buf []byte) []byte {
	dst := make([]byte, len(buf))
	copy(dst, buf)
	a.bufs = append(a.bufs, dst)
	return dst
}

// Free releases every buffer held by the arena. After Free, no
// previously-returned slice should be read.
func (a *Arena) Free() {
	a.bufs = nil
}
