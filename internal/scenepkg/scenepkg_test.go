package scenepkg

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/voskan/geoscene-runtime/internal/manifest"
)

func writeManifest(t *testing.T, dir string, m *manifest.SceneManifest) {
	t.Helper()
	payload, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("marshal manifest: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFileName), payload, 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
}

func TestLoadReadsManifestAndChunks(t *testing.T) {
	dir := t.TempDir()
	m := manifest.New("demo-package")
	name := "Demo"
	m.Name = &name
	m.Chunks = []manifest.ChunkEntry{
		{ID: "chunk-1", Kind: "terrain", Path: "chunks/terrain-1.bin"},
	}
	writeManifest(t, dir, m)

	pkg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pkg.Root() != dir {
		t.Fatalf("expected root %q, got %q", dir, pkg.Root())
	}
	if len(pkg.Manifest.Chunks) != 1 || pkg.Manifest.Chunks[0].ID != "chunk-1" {
		t.Fatalf("unexpected chunks: %+v", pkg.Manifest.Chunks)
	}
	want := filepath.Join(dir, "chunks/terrain-1.bin")
	if got := pkg.ChunkPath(pkg.Manifest.Chunks[0]); got != want {
		t.Fatalf("expected chunk path %q, got %q", want, got)
	}
}

func TestLoadRejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	m := manifest.New("demo-package")
	m.Version = "2.0"
	writeManifest(t, dir, m)

	_, err := Load(dir)
	if err == nil {
		t.Fatal("expected an error for unsupported version")
	}
	var verErr *ErrUnsupportedVersion
	if !errors.As(err, &verErr) {
		t.Fatalf("expected ErrUnsupportedVersion, got %v", err)
	}
	if verErr.Found != "2.0" {
		t.Fatalf("expected found version 2.0, got %q", verErr.Found)
	}
}

func TestLoadMissingManifestReturnsError(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load(dir); err == nil {
		t.Fatal("expected an error for a missing manifest file")
	}
}
