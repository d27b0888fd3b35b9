package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/polkiloo/storefront/internal/config"
)

const redisKeyPrefix = "storefront:"

// Module provides the configured Store and the shared Cache handle.
var Module = fx.Options(
	fx.Provide(newStore),
	fx.Provide(newCache),
)

type storeParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *zap.Logger
}

func newStore(p storeParams) (Store, error) {
	switch p.Config.CacheBackend {
	case "", config.CacheBackendNone:
		return NopStore{}, nil
	case config.CacheBackendMemory:
		return NewMemoryStore(p.Config.CacheSize)
	case config.CacheBackendRedis:
		opts, err := redis.ParseURL(p.Config.RedisURI)
		if err != nil {
			return nil, fmt.Errorf("parse redis uri: %w", err)
		}
		client := redis.NewClient(opts)
		registerRedisLifecycle(p.Lifecycle, client, p.Logger)
		return NewRedisStore(client, redisKeyPrefix), nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", p.Config.CacheBackend)
	}
}

type redisConn interface {
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

func registerRedisLifecycle(lc fx.Lifecycle, client redisConn, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := client.Ping(ctx).Err(); err != nil {
				logger.Warn("redis unreachable, cached calls will reload", zap.Error(err))
			}
			return nil
		},
		OnStop: func(context.Context) error {
			return client.Close()
		},
	})
}

type cacheParams struct {
	fx.In

	Store    Store
	Logger   *zap.Logger
	Recorder Recorder `optional:"true"`
}

func newCache(p cacheParams) *Cache {
	return New(p.Store, WithLogger(p.Logger.Named("cache")), WithRecorder(p.Recorder))
}
