package store

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
)

const DefaultRedisKey = "cosmocats:features"

// Redis keeps toggles in a single hash so every replica sees the same state.
type Redis struct {
	client redis.Cmdable
	key    string
}

func NewRedis(client redis.Cmdable, key string) *Redis {
	if key == "" {
		key = DefaultRedisKey
	}
	return &Redis{client: client, key: key}
}

func (r *Redis) IsEnabled(ctx context.Context, name string) (bool, error) {
	value, err := r.client.HGet(ctx, r.key, domain.NormalizeName(name)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "1", nil
}

func (r *Redis) Set(ctx context.Context, name string, enabled bool) error {
	name = domain.NormalizeName(name)
	if name == "" {
		return domain.ErrInvalidName
	}
	return r.client.HSet(ctx, r.key, name, encodeBool(enabled)).Err()
}

func (r *Redis) List(ctx context.Context) ([]domain.Feature, error) {
	values, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	items := make([]domain.Feature, 0, len(values))
	for name, value := range values {
		items = append(items, domain.Feature{Name: name, Enabled: value == "1"})
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	return items, nil
}

func encodeBool(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

var _ domain.Store = (*Redis)(nil)
