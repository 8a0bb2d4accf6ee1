package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/cosmocats/internal/clock"
	"github.com/smallbiznis/cosmocats/internal/config"
	"github.com/smallbiznis/cosmocats/internal/migration"
	"github.com/smallbiznis/cosmocats/internal/observability"
	"github.com/smallbiznis/cosmocats/internal/server"
	"github.com/smallbiznis/cosmocats/pkg/db"
	"go.uber.org/fx"
)

func main() {
	// prices and totals go out as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface and the domain modules it pulls in
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
