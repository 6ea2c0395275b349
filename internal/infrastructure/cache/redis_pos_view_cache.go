package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultPOSViewTTL = 5 * time.Minute
	posViewKeyPrefix  = "pos:view:"
	scanBatchSize     = 100
)

// RedisPOSViewCache stores POS views as JSON in Redis, one key per branch,
// so every API instance shares the same views and invalidations.
type RedisPOSViewCache struct {
	client redis.UniversalClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisPOSViewCache creates a Redis-backed POS view cache. ttl <= 0 uses the default.
func NewRedisPOSViewCache(client redis.UniversalClient, ttl time.Duration, logger *zap.Logger) *RedisPOSViewCache {
	if ttl <= 0 {
		ttl = defaultPOSViewTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisPOSViewCache{client: client, ttl: ttl, logger: logger}
}

func posViewKey(branchID uuid.UUID) string {
	return posViewKeyPrefix + branchID.String()
}

// Get loads the view of a branch
func (c *RedisPOSViewCache) Get(ctx context.Context, branchID uuid.UUID) (*appcatalog.POSView, bool, error) {
	data, err := c.client.Get(ctx, posViewKey(branchID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read pos view: %w", err)
	}

	var view appcatalog.POSView
	if err := json.Unmarshal(data, &view); err != nil {
		// A view written by an incompatible version is treated as a miss
		c.logger.Warn("dropping undecodable pos view", zap.String("branch_id", branchID.String()), zap.Error(err))
		_ = c.client.Del(ctx, posViewKey(branchID)).Err()
		return nil, false, nil
	}
	return &view, true, nil
}

// Set stores the view under its branch
func (c *RedisPOSViewCache) Set(ctx context.Context, view *appcatalog.POSView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to encode pos view: %w", err)
	}
	if err := c.client.Set(ctx, posViewKey(view.BranchID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write pos view: %w", err)
	}
	return nil
}

// Invalidate deletes the views of the given branches
func (c *RedisPOSViewCache) Invalidate(ctx context.Context, branchIDs ...uuid.UUID) error {
	if len(branchIDs) == 0 {
		return nil
	}
	keys := make([]string, len(branchIDs))
	for i, id := range branchIDs {
		keys[i] = posViewKey(id)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pos views: %w", err)
	}
	return nil
}

// InvalidateAll deletes every POS view key
func (c *RedisPOSViewCache) InvalidateAll(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, posViewKeyPrefix+"*", scanBatchSize).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan pos views: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate pos views: %w", err)
	}
	c.logger.Debug("invalidated all pos views", zap.Int("keys", len(keys)))
	return nil
}

// Ensure RedisPOSViewCache implements appcatalog.POSViewCache
var _ appcatalog.POSViewCache = (*RedisPOSViewCache)(nil)
