package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUnknownIsDisabled(t *testing.T) {
	m := NewMemory()
	enabled, err := m.IsEnabled(context.Background(), "never-set")
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestMemorySetAndList(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, " Kitty-Products ", true))
	require.NoError(t, m.Set(ctx, "cosmo-cats", false))
	assert.ErrorIs(t, m.Set(ctx, "  ", true), domain.ErrInvalidName)

	enabled, err := m.IsEnabled(ctx, "kitty-products")
	require.NoError(t, err)
	assert.True(t, enabled)

	items, err := m.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Feature{
		{Name: "cosmo-cats", Enabled: false},
		{Name: "kitty-products", Enabled: true},
	}, items)
}

func TestMemoryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = m.Set(ctx, "cosmo-cats", i%2 == 0)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = m.IsEnabled(ctx, "cosmo-cats")
		}()
	}
	wg.Wait()
}

func TestRedisUnreachableReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	r := NewRedis(client, "")
	enabled, err := r.IsEnabled(context.Background(), "cosmo-cats")
	assert.Error(t, err)
	assert.False(t, enabled)
}
