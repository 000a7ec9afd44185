// Package selection implements a deterministic bitset used to track entity
// membership. Iteration always yields indices in ascending order via
// trailing-zero-count over 64-bit words, so results never depend on
// insertion order or map iteration.
//
// © 2025 geoscene-runtime authors. MIT License.
package selection

import (
	"math/bits"

	"github.com/voskan/geoscene-runtime/internal/entityid"
)

// EntityIndex identifies an entity by its arena slot index only; selection
// sets do not track generations (entities referenced purely by index, which
// by convention are generation 0).
type EntityIndex = uint32

// Set is a packed bit-vector over entity indices.
type Set struct {
	words []uint64
	count int
}

// New constructs an empty selection set.
func New() *Set {
	return &Set{}
}

// WithMaxIndex constructs an empty set pre-sized to hold indices up to and
// including maxIndexInclusive.
func WithMaxIndex(maxIndexInclusive uint32) *Set {
	s := &Set{}
	s.ensureCapacity(maxIndexInclusive)
	return s
}

// Len returns the population count.
func (s *Set) Len() int { return s.count }

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool { return s.count == 0 }

// Clear empties the set.
func (s *Set) Clear() {
	s.words = s.words[:0]
	s.count = 0
}

func wordBit(index uint32) (int, uint32) {
	return int(index / 64), index % 64
}

// Contains reports whether index is a member.
func (s *Set) Contains(index EntityIndex) bool {
	word, bit := wordBit(index)
	if word >= len(s.words) {
		return false
	}
	return s.words[word]&(uint64(1)<<bit) != 0
}

// Insert adds index to the set. Returns true if the set changed.
func (s *Set) Insert(index EntityIndex) bool {
	s.ensureCapacity(index)
	word, bit := wordBit(index)
	mask := uint64(1) << bit
	if s.words[word]&mask != 0 {
		return false
	}
	s.words[word] |= mask
	s.count++
	return true
}

// Remove deletes index from the set. Returns true if the set changed.
func (s *Set) Remove(index EntityIndex) bool {
	word, bit := wordBit(index)
	if word >= len(s.words) {
		return false
	}
	mask := uint64(1) << bit
	if s.words[word]&mask == 0 {
		return false
	}
	s.words[word] &^= mask
	s.count--
	return true
}

func (s *Set) ensureCapacity(index uint32) {
	word, _ := wordBit(index)
	if word >= len(s.words) {
		grown := make([]uint64, word+1)
		copy(grown, s.words)
		s.words = grown
	}
}

func (s *Set) recountLen() {
	n := 0
	for _, w := range s.words {
		n += bits.OnesCount64(w)
	}
	s.count = n
}

// Union returns a new set containing every member of s or other.
func (s *Set) Union(other *Set) *Set {
	out := s.Clone()
	out.UnionInPlace(other)
	return out
}

// Intersect returns a new set containing members present in both s and
// other.
func (s *Set) Intersect(other *Set) *Set {
	out := s.Clone()
	out.IntersectInPlace(other)
	return out
}

// Diff returns a new set containing members of s not present in other.
func (s *Set) Diff(other *Set) *Set {
	out := s.Clone()
	out.DiffInPlace(other)
	return out
}

// Clone returns a deep copy of s.
func (s *Set) Clone() *Set {
	words := make([]uint64, len(s.words))
	copy(words, s.words)
	return &Set{words: words, count: s.count}
}

// UnionInPlace mutates s to be the union of s and other.
func (s *Set) UnionInPlace(other *Set) {
	maxWords := len(other.words)
	if len(s.words) > maxWords {
		maxWords = len(s.words)
	}
	if len(s.words) < maxWords {
		grown := make([]uint64, maxWords)
		copy(grown, s.words)
		s.words = grown
	}
	for i, ow := range other.words {
		s.words[i] |= ow
	}
	s.recountLen()
}

// IntersectInPlace mutates s to be the intersection of s and other.
func (s *Set) IntersectInPlace(other *Set) {
	minWords := len(other.words)
	if len(s.words) < minWords {
		minWords = len(s.words)
	}
	for i := 0; i < minWords; i++ {
		s.words[i] &= other.words[i]
	}
	for i := minWords; i < len(s.words); i++ {
		s.words[i] = 0
	}
	s.recountLen()
}

// DiffInPlace mutates s to be s \ other.
func (s *Set) DiffInPlace(other *Set) {
	minWords := len(other.words)
	if len(s.words) < minWords {
		minWords = len(s.words)
	}
	for i := 0; i < minWords; i++ {
		s.words[i] &^= other.words[i]
	}
	s.recountLen()
}

// IterIndices calls fn for every member index in ascending order, stopping
// early if fn returns false.
func (s *Set) IterIndices(fn func(index EntityIndex) bool) {
	for wordIdx, w := range s.words {
		base := uint32(wordIdx) * 64
		for w != 0 {
			tz := bits.TrailingZeros64(w)
			w &= w - 1
			if !fn(base + uint32(tz)) {
				return
			}
		}
	}
}

// Indices returns every member index in ascending order.
func (s *Set) Indices() []EntityIndex {
	out := make([]EntityIndex, 0, s.count)
	s.IterIndices(func(index EntityIndex) bool {
		out = append(out, index)
		return true
	})
	return out
}

// IterEntities calls fn for every member in ascending index order, wrapped
// as entityid.ID values with generation 0 (selection sets index into the
// world by index only).
func (s *Set) IterEntities(fn func(id entityid.ID) bool) {
	s.IterIndices(func(index EntityIndex) bool {
		return fn(entityid.FromIndex(index))
	})
}

// Entities returns every member in ascending index order, wrapped as
// entityid.ID values with generation 0.
func (s *Set) Entities() []entityid.ID {
	out := make([]entityid.ID, 0, s.count)
	s.IterEntities(func(id entityid.ID) bool {
		out = append(out, id)
		return true
	})
	return out
}
