// Command terrain-server runs the terrain/STAC HTTP front-end: local
// tileset/tile files under TERRAIN_ROOT, plus a reverse proxy to the STAC
// API at STAC_URL.
//
// © 2025 geoscene-runtime authors. MIT License.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/voskan/geoscene-runtime/internal/httpfront"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "terrain-server: building logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := httpfront.ConfigFromEnv()
	srv, err := httpfront.New(cfg, logger)
	if err != nil {
		logger.Fatal("building server", zap.Error(err))
	}

	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}
