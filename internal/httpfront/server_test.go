package httpfront

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func newTestServer(t *testing.T, stacURL string) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	cfg := Config{TerrainRoot: root, StacURL: stacURL, Addr: "127.0.0.1:0"}
	s, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s, root
}

func TestHealthzReturnsOK(t *testing.T) {
	s, _ := newTestServer(t, "http://127.0.0.1:1")
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestTilesetServesFileWhenPresent(t *testing.T) {
	s, root := newTestServer(t, "http://127.0.0.1:1")
	metaDir := filepath.Join(root, "metadata")
	if err := os.MkdirAll(metaDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(metaDir, "tileset.json"), []byte(`{"ok":true}`), 0o644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/terrain/tileset.json", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"ok":true}` {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}
}

func TestTilesetMissingReturns404(t *testing.T) {
	s, _ := newTestServer(t, "http://127.0.0.1:1")
	req := httptest.NewRequest(http.MethodGet, "/terrain/tileset.json", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestTileServesFileByZXY(t *testing.T) {
	s, root := newTestServer(t, "http://127.0.0.1:1")
	tileDir := filepath.Join(root, "tiles", "3", "4")
	if err := os.MkdirAll(tileDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tileDir, "5.bin"), []byte{0xAA, 0xBB}, 0o644); err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/terrain/tiles/3/4/5.bin", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Bytes()[0] != 0xAA || rec.Body.Bytes()[1] != 0xBB {
		t.Fatalf("unexpected tile bytes: %v", rec.Body.Bytes())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/octet-stream" {
		t.Fatalf("expected application/octet-stream, got %q", ct)
	}
}

func TestStacCollectionsProxiesUpstream(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections" {
			t.Errorf("expected upstream path /collections, got %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"collections":[]}`))
	}))
	defer upstream.Close()

	s, _ := newTestServer(t, upstream.URL)
	req := httptest.NewRequest(http.MethodGet, "/stac/collections", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != `{"collections":[]}` {
		t.Fatalf("unexpected proxied body: %s", rec.Body.String())
	}
}

func TestStacSearchReturns502WhenUpstreamUnreachable(t *testing.T) {
	s, _ := newTestServer(t, "http://127.0.0.1:1")
	req := httptest.NewRequest(http.MethodPost, "/stac/search", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestConfigFromEnvFallsBackToDefaults(t *testing.T) {
	os.Unsetenv("TERRAIN_ROOT")
	os.Unsetenv("STAC_URL")
	os.Unsetenv("TERRAIN_ADDR")

	cfg := ConfigFromEnv()
	def := DefaultConfig()
	if cfg != def {
		t.Fatalf("expected default config, got %+v", cfg)
	}
}
