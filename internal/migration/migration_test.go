package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/smallbiznis/cosmocats/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	entries, err := fs.ReadDir(embeddedMigrations, migrationsDir)
	require.NoError(t, err)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, e := range entries {
		name := e.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		}
	}
	require.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}

func TestAutoMigrateCreatesTables(t *testing.T) {
	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(conn))

	for _, table := range []string{"categories", "products", "orders", "order_items"} {
		assert.True(t, conn.Migrator().HasTable(table), table)
	}
	// running twice is a no-op
	require.NoError(t, AutoMigrate(conn))
}

func TestApplyUsesAutoMigrateOutsidePostgres(t *testing.T) {
	conn, err := db.NewTest(t.Name())
	require.NoError(t, err)
	require.NoError(t, Apply(conn, "sqlite"))
	assert.True(t, conn.Migrator().HasTable("products"))
}
