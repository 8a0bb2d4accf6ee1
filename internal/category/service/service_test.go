package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/cosmocats/internal/category/domain"
	"github.com/smallbiznis/cosmocats/internal/category/repository"
	"github.com/smallbiznis/cosmocats/internal/clock"
	"github.com/smallbiznis/cosmocats/internal/migration"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setup(t *testing.T) (domain.Service, *gorm.DB, *clock.FakeClock) {
	t.Helper()

	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	clk := clock.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	svc := New(Params{
		DB:    conn,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clk,
		Repo:  repository.Provide(),
	})
	return svc, conn, clk
}

func TestCreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, err := svc.Create(ctx, domain.CreateRequest{Type: "cosmic_food", Description: "  Snacks from orbit  "})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCosmicFood, created.Type)
	assert.Equal(t, "Snacks from orbit", created.Description)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, domain.TypeCosmicFood, got.Type)

	byType, err := svc.GetByType(ctx, "COSMIC_FOOD")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byType.ID)
}

func TestCreateRejectsDuplicateType(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD", Description: "again"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCreateValidation(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Type: "ROCKS"})
	assert.ErrorIs(t, err, domain.ErrInvalidType)

	long := make([]byte, domain.MaxDescriptionLength+1)
	for i := range long {
		long[i] = 'a'
	}
	_, err = svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD", Description: string(long)})
	assert.ErrorIs(t, err, domain.ErrInvalidDescription)
}

func TestGetMissing(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	_, err := svc.Get(ctx, "12345")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, domain.ErrInvalidID)

	_, err = svc.GetByType(ctx, "INTERGALACTIC_PETS")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	_, err := svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD", Description: "Milk and Nebula cheese"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Type: "SPACE_ACCESSORIES", Description: "Helmets"})
	require.NoError(t, err)

	found, err := svc.Search(ctx, "nebula")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, domain.TypeCosmicFood, found[0].Type)

	_, err = svc.Search(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidKeyword)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc, _, clk := setup(t)

	food, err := svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, domain.CreateRequest{Type: "SPACE_ACCESSORIES"})
	require.NoError(t, err)

	taken := "SPACE_ACCESSORIES"
	_, err = svc.Update(ctx, food.ID, domain.UpdateRequest{Type: &taken})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	clk.Advance(time.Minute)
	description := "Freeze dried comets"
	updated, err := svc.Update(ctx, food.ID, domain.UpdateRequest{Description: &description})
	require.NoError(t, err)
	assert.Equal(t, domain.TypeCosmicFood, updated.Type)
	assert.Equal(t, description, updated.Description)
	assert.True(t, updated.UpdatedAt.After(food.UpdatedAt))

	_, err = svc.Update(ctx, "98765", domain.UpdateRequest{Description: &description})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveCacheIsInvalidatedOnWrite(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setup(t)

	created, err := svc.Create(ctx, domain.CreateRequest{Type: "COSMIC_FOOD"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, "cosmic_food")
	require.NoError(t, err)
	assert.Equal(t, created.ID, snowflake.ID(resolved.ID).String())

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.Resolve(ctx, "COSMIC_FOOD")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	svc, conn, _ := setup(t)

	created, err := svc.Create(ctx, domain.CreateRequest{Type: "ANTI_GRAVITY_TOYS"})
	require.NoError(t, err)

	id, err := snowflake.ParseString(created.ID)
	require.NoError(t, err)
	require.NoError(t, conn.Exec(
		`INSERT INTO products (id, name, description, price, quantity, category_id, status, created_at, updated_at)
		 VALUES (1, 'Star Ball', 'A ball of stars', 10, 1, ?, 'AVAILABLE', ?, ?)`,
		id.Int64(), time.Now().UTC(), time.Now().UTC(),
	).Error)

	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrInUse)

	require.NoError(t, conn.Exec(`DELETE FROM products`).Error)
	require.NoError(t, svc.Delete(ctx, created.ID))
	assert.ErrorIs(t, svc.Delete(ctx, created.ID), domain.ErrNotFound)
}
