package cache

import (
	"fmt"

	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/pos/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// POSViewCacheFactory creates the POS view cache based on configuration
type POSViewCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           config.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*POSViewCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *POSViewCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *POSViewCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewPOSViewCacheFactory creates a new factory
func NewPOSViewCacheFactory(redisCfg config.RedisConfig, cacheCfg config.CacheConfig, opts ...FactoryOption) *POSViewCacheFactory {
	f := &POSViewCacheFactory{
		redisConfig:           redisCfg,
		cacheConfig:           cacheCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateCache returns a Redis cache when Redis is enabled and reachable, the
// in-memory cache otherwise. The Redis client is returned so the caller can
// share and close it; it is nil for the in-memory cache.
func (f *POSViewCacheFactory) CreateCache() (appcatalog.POSViewCache, *redis.Client, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("redis disabled, using in-memory pos view cache")
		return NewInMemoryPOSViewCache(f.cacheConfig.StockViewTTL, f.logger), nil, nil
	}

	client, err := NewRedisClient(f.redisConfig)
	if err == nil {
		f.logger.Info("using Redis pos view cache", zap.String("addr", f.redisConfig.Addr()))
		return NewRedisPOSViewCache(client, f.cacheConfig.StockViewTTL, f.logger), client, nil
	}
	if !f.allowInMemoryFallback {
		return nil, nil, fmt.Errorf("redis required for pos view cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory pos view cache. "+
		"Views may be stale on other instances until they expire.",
		zap.Error(err),
	)
	return NewInMemoryPOSViewCache(f.cacheConfig.StockViewTTL, f.logger), nil, nil
}
