package factory

import (
	"github.com/inboxkit/email-classifier/internal/adapters/cache"
	"github.com/inboxkit/email-classifier/internal/config"
	"github.com/inboxkit/email-classifier/internal/core"
	"go.uber.org/zap"
)

// CacheFactory creates result caches based on configuration
type CacheFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewCacheFactory creates a new cache factory
func NewCacheFactory(cfg *config.Config, logger *zap.Logger) *CacheFactory {
	return &CacheFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateResultCache creates the result cache from the configuration
func (f *CacheFactory) CreateResultCache() core.ResultCache {
	capacity := f.cfg.GetInt("cache.capacity")
	return cache.NewFIFOCache(capacity, f.logger)
}

// IsCacheEnabled returns whether result caching is enabled
func (f *CacheFactory) IsCacheEnabled() bool {
	return f.cfg.GetBool("cache.enabled")
}
