package cache

// config.go defines the internal configuration object and the set of
// functional options passed to New.
//
// © 2025 geoscene-runtime authors. MIT License.

import (
	"github.com/dgraph-io/badger/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Option configures a Cache at construction time.
type Option func(*config)

type config struct {
	budgetBytes int64
	genBudget   int64

	registry *prometheus.Registry
	logger   *zap.Logger
	mirrorDB *badger.DB
}

func defaultConfig(totalBudgetBytes int64) *config {
	genBudget := totalBudgetBytes / 4
	if genBudget <= 0 {
		genBudget = totalBudgetBytes
	}
	return &config{
		budgetBytes: totalBudgetBytes,
		genBudget:   genBudget,
		logger:      zap.NewNop(),
	}
}

// WithMetrics enables Prometheus metrics collection. Passing nil leaves
// metrics disabled (the default).
func WithMetrics(reg *prometheus.Registry) Option {
	return func(c *config) { c.registry = reg }
}

// WithLogger plugs an external zap.Logger. The cache only logs slow/abnormal
// events (admission failures, eviction sweeps) — never on the Request/
// Release hot path.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithDiskMirror enables a write-only Badger-backed diagnostic log: every
// transition to Evicted is recorded as a key/value record so operators can
// audit eviction history after a crash. The mirror is never read back into a
// live Cache; this does not grant the cache persistence across restarts.
func WithDiskMirror(db *badger.DB) Option {
	return func(c *config) { c.mirrorDB = db }
}

func applyOptions(cfg *config, opts []Option) error {
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.budgetBytes <= 0 {
		return errInvalidBudget
	}
	return nil
}
