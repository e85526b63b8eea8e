// Package cache provides the local key/value store that backs offline
// operation: cached documents, the durable write queue, the device identity
// and login sessions all live here. Keys are scoped by a namespace prefix.
package cache

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/requisition-service/internal/config"
)

// Store is the uniform async-capable persistence contract. A missing key is
// reported by the bool, not an error; errors are reserved for engine failures.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the configured store. When the embedded database cannot be
// opened the store degrades to a pure in-memory map with a logged warning;
// callers never see the open failure.
func Open(cfg config.CacheConfig, logger *zap.Logger) Store {
	if cfg.InMemory {
		return NewMemoryStore(cfg.Namespace)
	}
	store, err := NewBadgerStore(cfg)
	if err != nil {
		logger.Warn("local cache engine unavailable; falling back to in-memory store",
			zap.String("dir", cfg.Dir), zap.Error(err))
		return NewMemoryStore(cfg.Namespace)
	}
	logger.Info("local cache opened", zap.String("dir", cfg.Dir))
	return store
}
