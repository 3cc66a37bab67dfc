package services

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/yashrajoria/restaurant-service/models"
	"go.uber.org/zap"
)

func newTestRedisClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:       "localhost:0",
		MaxRetries: -1,
		Dialer: func(ctx context.Context, network, addr string) (net.Conn, error) {
			return nil, errors.New("redis disabled in tests")
		},
	})
}

func TestCacheManager_NilIsNoop(t *testing.T) {
	var cm *CacheManager
	var menus []models.Menu

	key, hit := cm.Get(context.Background(), "top-rated:4", &menus)
	assert.False(t, hit)
	assert.Empty(t, key)

	cm.SetAsync("k", menus)
	cm.Invalidate(context.Background())

	noClient := NewCacheManager(nil, "menus", time.Minute, nil, zap.NewNop())
	_, hit = noClient.Get(context.Background(), "top-rated:4", &menus)
	assert.False(t, hit)
}

func TestCacheManager_UnreachableRedisMisses(t *testing.T) {
	client := newTestRedisClient()
	defer client.Close()

	cm := NewCacheManager(client, "menus", time.Minute, nil, zap.NewNop())
	var summary models.StatisticsSummary

	key, hit := cm.Get(context.Background(), "summary", &summary)
	assert.False(t, hit)
	assert.Empty(t, key)

	assert.NotPanics(t, func() { cm.Invalidate(context.Background()) })
}

func TestCacheManager_Keys(t *testing.T) {
	cm := NewCacheManager(nil, "menus", time.Minute, nil, zap.NewNop())
	assert.Equal(t, "restaurant:menus:version", cm.versionKey())
	assert.Equal(t, "restaurant:menus:v7:top-rated:4", cm.key(7, "top-rated:4"))
}
