package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/raizsolar/backoffice/internal/config"
	"github.com/raizsolar/backoffice/internal/migration"
	"github.com/raizsolar/backoffice/internal/observability"
	"github.com/raizsolar/backoffice/internal/seed"
	"github.com/raizsolar/backoffice/internal/server"
	"github.com/raizsolar/backoffice/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		seed.Module,
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
