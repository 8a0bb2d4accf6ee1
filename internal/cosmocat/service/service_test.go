package service

import (
	"context"
	"testing"

	featuredomain "github.com/smallbiznis/cosmocats/internal/featuretoggle/domain"
	featureservice "github.com/smallbiznis/cosmocats/internal/featuretoggle/service"
	"github.com/smallbiznis/cosmocats/internal/featuretoggle/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setup(t *testing.T) (*Service, featuredomain.Service) {
	t.Helper()
	toggles, err := featureservice.New(featureservice.Params{Log: zap.NewNop(), Store: store.NewMemory()})
	require.NoError(t, err)
	return New(Params{Log: zap.NewNop(), Gate: toggles}).(*Service), toggles
}

func TestListCosmoCatsFollowsToggle(t *testing.T) {
	ctx := context.Background()
	svc, toggles := setup(t)

	_, err := svc.ListCosmoCats(ctx)
	assert.ErrorIs(t, err, featuredomain.ErrFeatureDisabled)

	_, err = toggles.Enable(ctx, featuredomain.FeatureCosmoCats)
	require.NoError(t, err)

	cats, err := svc.ListCosmoCats(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nebula Thing 1", "Orbit Thing 2", "Star Thing 3"}, cats)

	// the other listing has its own toggle
	_, err = svc.ListKittyProducts(ctx)
	assert.ErrorIs(t, err, featuredomain.ErrFeatureDisabled)
}

func TestListKittyProductsFollowsToggle(t *testing.T) {
	ctx := context.Background()
	svc, toggles := setup(t)

	_, err := toggles.Enable(ctx, featuredomain.FeatureKittyProducts)
	require.NoError(t, err)

	products, err := svc.ListKittyProducts(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Kitty Star Thing 1", "Kitty Cosmic Thing 2", "Kitty Space Thing 3"}, products)

	_, err = toggles.Disable(ctx, featuredomain.FeatureKittyProducts)
	require.NoError(t, err)
	_, err = svc.ListKittyProducts(ctx)
	assert.ErrorIs(t, err, featuredomain.ErrFeatureDisabled)
}

func TestListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc, toggles := setup(t)
	_, err := toggles.Enable(ctx, featuredomain.FeatureCosmoCats)
	require.NoError(t, err)

	first, err := svc.ListCosmoCats(ctx)
	require.NoError(t, err)
	first[0] = "mutated"

	second, err := svc.ListCosmoCats(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nebula Thing 1", second[0])
}
