// Package manifest implements the scene package manifest and its canonical,
// platform-independent content hash, using github.com/zeebo/blake3 over a
// deterministic byte-stream encoding of the manifest fields.
//
// © 2025 geoscene-runtime authors. MIT License.
package manifest

import (
	"encoding/binary"
	"encoding/hex"
	"sort"

	"github.com/zeebo/blake3"
)

// Version is the only scene manifest version this module understands.
const Version = "1.0"

// SceneManifest describes a scene package: its chunk inventory and identity.
type SceneManifest struct {
	Version     string       `json:"version"`
	PackageID   string       `json:"package_id"`
	Name        *string      `json:"name,omitempty"`
	ContentHash *string      `json:"content_hash,omitempty"`
	Chunks      []ChunkEntry `json:"chunks"`
}

// ChunkEntry is one data chunk referenced by a manifest.
type ChunkEntry struct {
	ID             string   `json:"id"`
	Kind           string   `json:"kind"`
	Path           string   `json:"path"`
	ContentHash    *string  `json:"content_hash,omitempty"`
	SourceBlobHash *string  `json:"source_blob_hash,omitempty"`
	LonLatBoundsQ  *[4]int32 `json:"lon_lat_bounds_q,omitempty"`
	TimeBoundsUs   *[2]int64 `json:"time_bounds_us,omitempty"`
	FeatureCount   *uint32  `json:"feature_count,omitempty"`
}

// New constructs an empty manifest with the current Version and the given
// package id (overwritten once ComputeAndSetIdentity is called).
func New(packageID string) *SceneManifest {
	return &SceneManifest{
		Version:   Version,
		PackageID: packageID,
		Chunks:    []ChunkEntry{},
	}
}

func pushString(buf []byte, s string) []byte {
	buf = append(buf, s...)
	return append(buf, 0)
}

func pushOptString(buf []byte, s *string) []byte {
	if s == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	return pushString(buf, *s)
}

func pushOptI32Array4(buf []byte, v *[4]int32) []byte {
	if v == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	var tmp [4]byte
	for _, x := range v {
		binary.LittleEndian.PutUint32(tmp[:], uint32(x))
		buf = append(buf, tmp[:]...)
	}
	return buf
}

func pushOptI64Array2(buf []byte, v *[2]int64) []byte {
	if v == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	var tmp [8]byte
	for _, x := range v {
		binary.LittleEndian.PutUint64(tmp[:], uint64(x))
		buf = append(buf, tmp[:]...)
	}
	return buf
}

func pushOptU32(buf []byte, v *uint32) []byte {
	if v == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], *v)
	return append(buf, tmp[:]...)
}

// ComputeContentHashHex returns the manifest's canonical content hash as
// lowercase hex. The hash is stable across platforms and does not depend on
// ContentHash or PackageID themselves; chunks are hashed in (Kind, Path, ID)
// canonical order regardless of their order in Chunks.
func (m *SceneManifest) ComputeContentHashHex() string {
	chunks := make([]ChunkEntry, len(m.Chunks))
	copy(chunks, m.Chunks)
	sort.Slice(chunks, func(i, j int) bool {
		a, b := chunks[i], chunks[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.ID < b.ID
	})

	buf := make([]byte, 0, 1024)
	buf = pushString(buf, m.Version)
	buf = pushOptString(buf, m.Name)

	for _, c := range chunks {
		buf = pushString(buf, c.ID)
		buf = pushString(buf, c.Kind)
		buf = pushString(buf, c.Path)
		buf = pushOptString(buf, c.ContentHash)
		buf = pushOptString(buf, c.SourceBlobHash)
		buf = pushOptI32Array4(buf, c.LonLatBoundsQ)
		buf = pushOptI64Array2(buf, c.TimeBoundsUs)
		buf = pushOptU32(buf, c.FeatureCount)
	}

	sum := blake3.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// ComputeAndSetIdentity computes the manifest's content hash and sets both
// ContentHash and PackageID to it (the convention: package_id == content_hash
// once a manifest is finalized).
func (m *SceneManifest) ComputeAndSetIdentity() {
	h := m.ComputeContentHashHex()
	m.ContentHash = &h
	m.PackageID = h
}

