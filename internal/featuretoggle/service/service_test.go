package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, st domain.Store) domain.Service {
	t.Helper()
	svc, err := New(Params{Log: zap.NewNop(), Store: st})
	require.NoError(t, err)
	return svc
}

func TestEnforceFailsClosedForUnknownFeature(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	for _, name := range []string{"cosmo-cats", "kitty-products", "anything-else", ""} {
		err := svc.Enforce(context.Background(), name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, domain.ErrFeatureDisabled))
	}
}

func TestEnforceCarriesFeatureName(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	err := svc.Enforce(context.Background(), "cosmo-cats")
	var disabled *domain.DisabledError
	require.True(t, errors.As(err, &disabled))
	assert.Equal(t, "cosmo-cats", disabled.Feature)
	assert.Equal(t, "Feature toggle 'cosmo-cats' is not enabled", err.Error())
}

func TestEnableDisableRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemory())

	feature, err := svc.Enable(ctx, "Cosmo-Cats")
	require.NoError(t, err)
	assert.Equal(t, &domain.Feature{Name: "cosmo-cats", Enabled: true}, feature)
	assert.NoError(t, svc.Enforce(ctx, "cosmo-cats"))

	_, err = svc.Disable(ctx, "cosmo-cats")
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Enforce(ctx, "cosmo-cats"), domain.ErrFeatureDisabled)
}

func TestEnableRejectsUnknownFeature(t *testing.T) {
	svc := newTestService(t, store.NewMemory())

	_, err := svc.Enable(context.Background(), "warp-drive")
	assert.ErrorIs(t, err, domain.ErrUnknownFeature)
	_, err = svc.Enable(context.Background(), " ")
	assert.ErrorIs(t, err, domain.ErrInvalidName)
}

func TestSeedFromConfig(t *testing.T) {
	holder, err := config.NewFeatureConfigHolderFromPaths(t.TempDir())
	require.NoError(t, err)

	svc, err := New(Params{Log: zap.NewNop(), Store: store.NewMemory(), Seed: holder})
	require.NoError(t, err)

	assert.NoError(t, svc.Enforce(context.Background(), "cosmo-cats"))
	assert.ErrorIs(t, svc.Enforce(context.Background(), "kitty-products"), domain.ErrFeatureDisabled)

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEnforceTreatsStoreErrorAsDisabled(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	svc := newTestService(t, store.NewRedis(client, ""))
	assert.ErrorIs(t, svc.Enforce(context.Background(), "cosmo-cats"), domain.ErrFeatureDisabled)
}

func TestGuardSkipsWrappedCallWhenDisabled(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemory())

	calls := 0
	guarded := Guard(svc, "kitty-products", func(context.Context) ([]string, error) {
		calls++
		return []string{"ok"}, nil
	})

	out, err := guarded(ctx)
	assert.ErrorIs(t, err, domain.ErrFeatureDisabled)
	assert.Nil(t, out)
	assert.Equal(t, 0, calls)

	_, err = svc.Enable(ctx, "kitty-products")
	require.NoError(t, err)

	out, err = guarded(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"ok"}, out)
	assert.Equal(t, 1, calls)
}

func TestGuardPassesErrorsThrough(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, store.NewMemory())
	_, err := svc.Enable(ctx, "cosmo-cats")
	require.NoError(t, err)

	boom := errors.New("boom")
	guarded := Guard(svc, "cosmo-cats", func(context.Context) (int, error) { return 7, boom })
	out, err := guarded(ctx)
	assert.Same(t, boom, err)
	assert.Equal(t, 7, out)
}
