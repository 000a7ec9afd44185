// Package httpfront implements the terrain/STAC HTTP front-end: a thin
// net/http server exposing local tileset/tile files and a reverse proxy to
// an upstream STAC API, using net/http+httputil.ReverseProxy rather than a
// web framework.
//
// © 2025 geoscene-runtime authors. MIT License.
package httpfront

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Config holds the three environment-driven settings the original reads
// via env::var: TERRAIN_ROOT, STAC_URL, TERRAIN_ADDR.
type Config struct {
	TerrainRoot string
	StacURL     string
	Addr        string
}

// DefaultConfig mirrors the original's unwrap_or_else fallbacks.
func DefaultConfig() Config {
	return Config{
		TerrainRoot: "data/terrain",
		StacURL:     "https://copernicus-dem-30m-stac.s3.amazonaws.com",
		Addr:        "127.0.0.1:9100",
	}
}

// ConfigFromEnv reads TERRAIN_ROOT, STAC_URL, and TERRAIN_ADDR, falling
// back to DefaultConfig's values for any unset variable.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("TERRAIN_ROOT"); v != "" {
		cfg.TerrainRoot = v
	}
	if v := os.Getenv("STAC_URL"); v != "" {
		cfg.StacURL = v
	}
	if v := os.Getenv("TERRAIN_ADDR"); v != "" {
		cfg.Addr = v
	}
	return cfg
}

// Server is the terrain/STAC HTTP front-end.
type Server struct {
	cfg    Config
	logger *zap.Logger
	proxy  *httputil.ReverseProxy
	mux    *http.ServeMux
}

// New builds a Server ready to be handed to an http.Server. A nil logger
// is replaced with zap.NewNop(), matching the cache package's convention.
func New(cfg Config, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	upstream, err := url.Parse(strings.TrimRight(cfg.StacURL, "/"))
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger}
	s.proxy = &httputil.ReverseProxy{
		Rewrite: func(r *httputil.ProxyRequest) {
			r.SetURL(upstream)
			r.Out.Host = upstream.Host
		},
		ErrorHandler: s.proxyError,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.HandleFunc("GET /terrain/tileset.json", s.handleTileset)
	mux.HandleFunc("GET /terrain/tiles/{z}/{x}/{y}", s.handleTile)
	mux.HandleFunc("GET /stac/collections", s.handleStacCollections)
	mux.HandleFunc("POST /stac/search", s.handleStacSearch)
	s.mux = mux

	return s, nil
}

// Handler returns the server's root http.Handler, with request logging
// wrapped around the route mux.
func (s *Server) Handler() http.Handler {
	return s.withLogging(s.mux)
}

// ListenAndServe builds an http.Server bound to cfg.Addr and serves until
// it errors or the process is terminated.
func (s *Server) ListenAndServe() error {
	s.logger.Info("terrain server listening", zap.String("addr", s.cfg.Addr))
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleTileset(w http.ResponseWriter, r *http.Request) {
	path := filepath.Join(s.cfg.TerrainRoot, "metadata", "tileset.json")
	serveFile(s.logger, w, path, "application/json")
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	z, errZ := strconv.ParseUint(r.PathValue("z"), 10, 32)
	x, errX := strconv.ParseUint(r.PathValue("x"), 10, 32)
	yRaw := strings.TrimSuffix(r.PathValue("y"), ".bin")
	y, errY := strconv.ParseUint(yRaw, 10, 32)
	if errZ != nil || errX != nil || errY != nil {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	path := filepath.Join(s.cfg.TerrainRoot, "tiles",
		strconv.FormatUint(z, 10), strconv.FormatUint(x, 10),
		strconv.FormatUint(y, 10)+".bin")
	serveFile(s.logger, w, path, "application/octet-stream")
}

func serveFile(logger *zap.Logger, w http.ResponseWriter, path, contentType string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("file read failed", zap.String("path", path), zap.Error(err))
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}

func (s *Server) handleStacCollections(w http.ResponseWriter, r *http.Request) {
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/collections"
	s.proxy.ServeHTTP(w, r2)
}

func (s *Server) handleStacSearch(w http.ResponseWriter, r *http.Request) {
	r2 := r.Clone(r.Context())
	r2.URL.Path = "/search"
	s.proxy.ServeHTTP(w, r2)
}

func (s *Server) proxyError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("stac proxy failed", zap.Error(err))
	http.Error(w, "stac unavailable", http.StatusBadGateway)
}
