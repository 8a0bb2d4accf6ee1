package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Lc  fx.Lifecycle
	Cfg config.Config
	Log *zap.Logger
}

// Provide selects the toggle store from FEATURE_STORE.
func Provide(p Params) domain.Store {
	if p.Cfg.FeatureStore != config.FeatureStoreRedis {
		p.Log.Info("feature store initialized", zap.String("backend", config.FeatureStoreMemory))
		return NewMemory()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     p.Cfg.RedisAddr,
		Password: p.Cfg.RedisPassword,
		DB:       p.Cfg.RedisDB,
	})
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	p.Log.Info("feature store initialized",
		zap.String("backend", config.FeatureStoreRedis),
		zap.String("addr", p.Cfg.RedisAddr),
	)
	return NewRedis(client, DefaultRedisKey)
}
