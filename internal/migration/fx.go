package migration

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/seed"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config, genID *snowflake.Node, log *zap.Logger) error {
		if err := Apply(conn, cfg.DBType); err != nil {
			return err
		}

		ctx := context.Background()
		if err := seed.EnsureCategories(ctx, conn, genID); err != nil {
			return err
		}
		if cfg.SeedSampleData {
			if err := seed.EnsureSampleProducts(ctx, conn, genID); err != nil {
				return err
			}
			log.Info("sample catalog data ensured")
		}
		return nil
	}),
)

// Apply migrates the schema for the given database type.
func Apply(conn *gorm.DB, dbType string) error {
	if dbType != "postgres" {
		return AutoMigrate(conn)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return err
	}
	return RunMigrations(sqlDB)
}
