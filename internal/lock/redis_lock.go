package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Only the owner token may delete the key.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
else
	return 0
end
`)

// RedisLocker implements Locker with SET NX and a token-checked release.
type RedisLocker struct {
	client redis.UniversalClient
	prefix string
	logger *zap.Logger
}

func NewRedisLocker(client redis.UniversalClient, prefix string, logger *zap.Logger) *RedisLocker {
	return &RedisLocker{client: client, prefix: prefix, logger: logger}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (*LockResult, error) {
	fullKey := l.prefix + key
	value := uuid.NewString()

	acquired, err := l.client.SetNX(ctx, fullKey, value, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", fullKey, err)
	}
	if !acquired {
		return &LockResult{Key: fullKey}, nil
	}

	l.logger.Debug("lock acquired",
		zap.String("key", fullKey),
		zap.Duration("ttl", ttl))

	return &LockResult{Key: fullKey, Value: value, acquired: true}, nil
}

func (l *RedisLocker) Release(ctx context.Context, lr *LockResult) error {
	if !lr.IsAcquired() {
		return nil
	}

	deleted, err := releaseScript.Run(ctx, l.client, []string{lr.Key}, lr.Value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", lr.Key, err)
	}
	if deleted == 0 {
		l.logger.Warn("lock expired or taken over before release",
			zap.String("key", lr.Key))
	}
	return nil
}
