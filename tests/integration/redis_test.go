package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	appcatalog "github.com/pos/backend/internal/application/catalog"
	"github.com/pos/backend/internal/infrastructure/auth"
	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPOSViewCache(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	client := NewTestRedis(t)
	c := cache.NewRedisPOSViewCache(client, time.Minute, nil)
	ctx := context.Background()

	centro, norte := uuid.New(), uuid.New()
	view := func(branchID uuid.UUID) *appcatalog.POSView {
		return &appcatalog.POSView{
			BranchID:    branchID,
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
			Products: []appcatalog.POSProduct{
				{ID: uuid.New(), Name: "Agua", Price: decimal.NewFromInt(10), CategoryID: uuid.New()},
			},
		}
	}

	t.Run("miss then hit", func(t *testing.T) {
		_, found, err := c.Get(ctx, centro)
		require.NoError(t, err)
		assert.False(t, found)

		stored := view(centro)
		require.NoError(t, c.Set(ctx, stored))

		got, found, err := c.Get(ctx, centro)
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, stored.BranchID, got.BranchID)
		require.Len(t, got.Products, 1)
		assert.True(t, stored.Products[0].Price.Equal(got.Products[0].Price))
	})

	t.Run("entries expire", func(t *testing.T) {
		ttl, err := client.TTL(ctx, "pos:view:"+centro.String()).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})

	t.Run("invalidate one branch", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, view(norte)))
		require.NoError(t, c.Invalidate(ctx, centro))

		_, found, err := c.Get(ctx, centro)
		require.NoError(t, err)
		assert.False(t, found)
		_, found, err = c.Get(ctx, norte)
		require.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("invalidate all", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, view(centro)))
		require.NoError(t, c.InvalidateAll(ctx))

		for _, id := range []uuid.UUID{centro, norte} {
			_, found, err := c.Get(ctx, id)
			require.NoError(t, err)
			assert.False(t, found)
		}
	})

	t.Run("undecodable entry is a miss", func(t *testing.T) {
		require.NoError(t, client.Set(ctx, "pos:view:"+centro.String(), "{not json", time.Minute).Err())

		_, found, err := c.Get(ctx, centro)
		require.NoError(t, err)
		assert.False(t, found)
		exists, err := client.Exists(ctx, "pos:view:"+centro.String()).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})
}

func TestRedisTokenBlacklist(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	blacklist := auth.NewRedisTokenBlacklist(NewTestRedis(t))
	ctx := context.Background()
	userID := uuid.New()
	issued := time.Now().Add(-time.Minute)

	revoked, err := blacklist.IsRevoked(ctx, userID, issued)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, blacklist.RevokeUserTokens(ctx, userID, time.Hour))

	revoked, err = blacklist.IsRevoked(ctx, userID, issued)
	require.NoError(t, err)
	assert.True(t, revoked, "tokens issued before the revocation are rejected")

	revoked, err = blacklist.IsRevoked(ctx, userID, time.Now().Add(2*time.Second))
	require.NoError(t, err)
	assert.False(t, revoked, "tokens issued afterwards stay valid")

	revoked, err = blacklist.IsRevoked(ctx, uuid.New(), issued)
	require.NoError(t, err)
	assert.False(t, revoked)
}
