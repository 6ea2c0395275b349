package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryPOSViewCache keeps POS views in process memory.
// WARNING: views are not shared between instances, so an invalidation on one
// instance leaves the others stale until their TTL expires.
type InMemoryPOSViewCache struct {
	views   sync.Map // map[uuid.UUID]*cacheEntry[appcatalog.POSView]
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

// NewInMemoryPOSViewCache creates an in-memory cache and starts its cleanup loop.
// ttl <= 0 uses the default.
func NewInMemoryPOSViewCache(ttl time.Duration, logger *zap.Logger) *InMemoryPOSViewCache {
	if ttl <= 0 {
		ttl = defaultPOSViewTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	c := &InMemoryPOSViewCache{
		ttl:    ttl,
		logger: logger,
		stopCh: make(chan struct{}),
	}
	go c.cleanupExpired()
	return c
}

// Get returns the cached view of a branch
func (c *InMemoryPOSViewCache) Get(_ context.Context, branchID uuid.UUID) (*appcatalog.POSView, bool, error) {
	if value, ok := c.views.Load(branchID); ok {
		entry := value.(*cacheEntry[appcatalog.POSView])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.value, true, nil
		}
		c.views.Delete(branchID)
	}
	atomic.AddInt64(&c.misses, 1)
	return nil, false, nil
}

// Set stores a view
func (c *InMemoryPOSViewCache) Set(_ context.Context, view *appcatalog.POSView) error {
	if view == nil {
		return nil
	}
	c.views.Store(view.BranchID, &cacheEntry[appcatalog.POSView]{
		value:     view,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// Invalidate drops the views of the given branches
func (c *InMemoryPOSViewCache) Invalidate(_ context.Context, branchIDs ...uuid.UUID) error {
	for _, id := range branchIDs {
		c.views.Delete(id)
	}
	return nil
}

// InvalidateAll drops every view
func (c *InMemoryPOSViewCache) InvalidateAll(_ context.Context) error {
	c.views.Range(func(key, _ any) bool {
		c.views.Delete(key)
		return true
	})
	return nil
}

// Close stops the cleanup loop
func (c *InMemoryPOSViewCache) Close() error {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryPOSViewCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Count returns the number of entries, expired ones included
func (c *InMemoryPOSViewCache) Count() int {
	n := 0
	c.views.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

func (c *InMemoryPOSViewCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			c.doCleanup()
		}
	}
}

func (c *InMemoryPOSViewCache) doCleanup() {
	removed := 0
	c.views.Range(func(key, value any) bool {
		if value.(*cacheEntry[appcatalog.POSView]).isExpired() {
			c.views.Delete(key)
			removed++
		}
		return true
	})
	if removed > 0 {
		c.logger.Debug("cleaned up expired pos views", zap.Int("removed", removed))
	}
}

// Ensure InMemoryPOSViewCache implements appcatalog.POSViewCache
var _ appcatalog.POSViewCache = (*InMemoryPOSViewCache)(nil)
