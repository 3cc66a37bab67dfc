package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	awspkg "github.com/yashrajoria/restaurant-service/pkg/aws"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "restaurant:"

// CacheManager caches read models in Redis under a versioned namespace.
// Bumping the version invalidates every key of the namespace at once; stale
// keys expire on their TTL. A nil manager or nil client caches nothing.
type CacheManager struct {
	redis     *redis.Client
	namespace string
	ttl       time.Duration
	metrics   *awspkg.MetricsClient
	logger    *zap.Logger
}

func NewCacheManager(client *redis.Client, namespace string, ttl time.Duration, metrics *awspkg.MetricsClient, logger *zap.Logger) *CacheManager {
	return &CacheManager{
		redis:     client,
		namespace: namespace,
		ttl:       ttl,
		metrics:   metrics,
		logger:    logger,
	}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// Get looks up name in the current version and decodes it into dest. The
// returned key is where a fresh value should be stored on a miss; it is empty
// when caching is unavailable.
func (cm *CacheManager) Get(ctx context.Context, name string, dest interface{}) (string, bool) {
	if !cm.enabled() {
		return "", false
	}

	version, err := cm.getCacheVersion(ctx)
	if err != nil {
		cm.logger.Warn("cache version unavailable", zap.String("namespace", cm.namespace), zap.Error(err))
		return "", false
	}

	key := cm.key(version, name)
	data, err := cm.redis.Get(ctx, key).Bytes()
	if err != nil {
		cm.record(awspkg.MetricCacheMisses)
		return key, false
	}

	if err := json.Unmarshal(data, dest); err != nil {
		cm.logger.Warn("failed to unmarshal cached value", zap.String("key", key), zap.Error(err))
		return key, false
	}

	cm.record(awspkg.MetricCacheHits)
	return key, true
}

// SetAsync stores value under key in the background.
func (cm *CacheManager) SetAsync(key string, value interface{}) {
	if !cm.enabled() || key == "" {
		return
	}

	data, err := json.Marshal(value)
	if err != nil {
		cm.logger.Warn("failed to marshal value for cache", zap.String("key", key), zap.Error(err))
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.redis.Set(ctx, key, data, cm.ttl).Err(); err != nil {
			cm.logger.Warn("failed to cache value", zap.String("key", key), zap.Error(err))
		}
	}()
}

// Invalidate bumps the namespace version. Failures are logged only.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if !cm.enabled() {
		return
	}

	newVersion, err := cm.redis.Incr(ctx, cm.versionKey()).Result()
	if err != nil {
		cm.logger.Error("failed to invalidate cache", zap.String("namespace", cm.namespace), zap.Error(err))
		return
	}
	cm.logger.Debug("cache invalidated", zap.String("namespace", cm.namespace), zap.Int64("new_version", newVersion))
}

// getCacheVersion retrieves the current cache version with retry logic
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, cm.versionKey()).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}

		if errors.Is(err, redis.Nil) {
			if ok, err := cm.redis.SetNX(ctx, cm.versionKey(), 1, 0).Result(); err == nil {
				if ok {
					return 1, nil
				}
				continue
			}
		}

		if i < maxRetries-1 {
			time.Sleep(50 * time.Millisecond)
		}
	}

	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (cm *CacheManager) versionKey() string {
	return cacheKeyPrefix + cm.namespace + ":version"
}

func (cm *CacheManager) key(version int64, name string) string {
	return fmt.Sprintf("%s%s:v%d:%s", cacheKeyPrefix, cm.namespace, version, name)
}

func (cm *CacheManager) record(metric string) {
	if !cm.metrics.IsEnabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = cm.metrics.RecordCount(ctx, metric, map[string]string{"Cache": cm.namespace})
	}()
}
