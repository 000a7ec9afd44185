// Package scenepkg loads a scene package's manifest and chunk inventory off
// disk.
//
// © 2025 geoscene-runtime authors. MIT License.
package scenepkg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voskan/geoscene-runtime/internal/manifest"
)

// ManifestFileName is the well-known manifest file inside a scene package
// root.
const ManifestFileName = "scene.manifest.json"

// ScenePackage is a loaded manifest plus the root directory its chunk paths
// are relative to.
type ScenePackage struct {
	root     string
	Manifest *manifest.SceneManifest
}

// ErrUnsupportedVersion is returned by Load when the manifest's version
// field is not manifest.Version.
type ErrUnsupportedVersion struct {
	Found string
}

func (e *ErrUnsupportedVersion) Error() string {
	return fmt.Sprintf("scenepkg: unsupported manifest version %q", e.Found)
}

// Load reads root/scene.manifest.json, parses it with encoding/json
// (unknown fields are ignored, matching the default json.Unmarshal
// behavior), and rejects any version other than manifest.Version.
func Load(root string) (*ScenePackage, error) {
	manifestPath := filepath.Join(root, ManifestFileName)
	payload, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, fmt.Errorf("scenepkg: reading %s: %w", manifestPath, err)
	}

	var m manifest.SceneManifest
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, fmt.Errorf("scenepkg: parsing %s: %w", manifestPath, err)
	}

	if m.Version != manifest.Version {
		return nil, &ErrUnsupportedVersion{Found: m.Version}
	}

	return &ScenePackage{root: root, Manifest: &m}, nil
}

// Root returns the scene package's root directory.
func (p *ScenePackage) Root() string { return p.root }

// ChunkPath returns the path to a chunk entry's file, resolved against the
// package root (absolute only when the root is).
func (p *ScenePackage) ChunkPath(c manifest.ChunkEntry) string {
	return filepath.Join(p.root, c.Path)
}
