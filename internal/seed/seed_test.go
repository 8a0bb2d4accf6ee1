package seed_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	categorydomain "github.com/smallbiznis/cosmocats/internal/category/domain"
	"github.com/smallbiznis/cosmocats/internal/migration"
	productdomain "github.com/smallbiznis/cosmocats/internal/product/domain"
	"github.com/smallbiznis/cosmocats/internal/seed"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		require.NoError(t, seed.EnsureCategories(ctx, conn, node))
		require.NoError(t, seed.EnsureSampleProducts(ctx, conn, node))
	}

	var categories []categorydomain.Category
	require.NoError(t, conn.Order("type").Find(&categories).Error)
	require.Len(t, categories, len(categorydomain.Types))
	seen := map[categorydomain.Type]bool{}
	for _, c := range categories {
		assert.False(t, seen[c.Type], c.Type)
		seen[c.Type] = true
		assert.Equal(t, seed.CategoryDescription(c.Type), c.Description)
	}

	var names []string
	require.NoError(t, conn.Model(&productdomain.Product{}).Order("name").Pluck("name", &names).Error)
	assert.Equal(t, []string{"Cosmic Milk", "Galaxy Star Ball", "Space Laser"}, names)
}

func TestEnsureCategoriesKeepsExistingRows(t *testing.T) {
	ctx := context.Background()
	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, migration.AutoMigrate(conn))
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, conn.Exec(
		`INSERT INTO categories (id, type, description, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		42, categorydomain.TypeCosmicFood, "hand made", now, now,
	).Error)

	require.NoError(t, seed.EnsureCategories(ctx, conn, node))

	var existing categorydomain.Category
	require.NoError(t, conn.Where("type = ?", categorydomain.TypeCosmicFood).First(&existing).Error)
	assert.EqualValues(t, 42, existing.ID)
	assert.Equal(t, "hand made", existing.Description)

	var count int64
	require.NoError(t, conn.Model(&categorydomain.Category{}).Count(&count).Error)
	assert.EqualValues(t, len(categorydomain.Types), count)
}

func TestSeedRequiresHandles(t *testing.T) {
	assert.Error(t, seed.EnsureCategories(context.Background(), nil, nil))
	assert.Error(t, seed.EnsureSampleProducts(context.Background(), nil, nil))
}
