package authorization

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	enforcer, err := NewEnforcer()
	require.NoError(t, err)
	return NewService(Params{Log: zap.NewNop(), Enforcer: enforcer})
}

func TestUserRole(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, []string{"USER"}, ObjectCatalog, ActionRead))
	assert.NoError(t, svc.Authorize(ctx, []string{"user"}, ObjectCatalog, ActionWrite))
	assert.NoError(t, svc.Authorize(ctx, []string{"USER"}, ObjectOrder, ActionWrite))
	assert.ErrorIs(t, svc.Authorize(ctx, []string{"USER"}, ObjectFeature, ActionWrite), ErrForbidden)
}

func TestAdminInheritsUser(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.NoError(t, svc.Authorize(ctx, []string{"ADMIN"}, ObjectFeature, ActionWrite))
	assert.NoError(t, svc.Authorize(ctx, []string{"ROLE_ADMIN"}, ObjectCatalog, ActionWrite))
	assert.NoError(t, svc.Authorize(ctx, []string{"ADMIN"}, ObjectOrder, ActionRead))
}

func TestUnknownOrMissingRoles(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.Authorize(ctx, nil, ObjectCatalog, ActionRead), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, []string{"", "GUEST"}, ObjectCatalog, ActionRead), ErrForbidden)
	assert.ErrorIs(t, svc.Authorize(ctx, []string{"USER"}, "", ActionRead), ErrInvalidObject)
	assert.ErrorIs(t, svc.Authorize(ctx, []string{"USER"}, ObjectCatalog, " "), ErrInvalidAction)
}
