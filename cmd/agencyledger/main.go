package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/gatoke/agencyledger/internal/agency"
	"github.com/gatoke/agencyledger/internal/clock"
	"github.com/gatoke/agencyledger/internal/config"
	"github.com/gatoke/agencyledger/internal/migration"
	"github.com/gatoke/agencyledger/internal/observability"
	"github.com/gatoke/agencyledger/internal/server"
	"github.com/gatoke/agencyledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		agency.Module,
		migration.Module,
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
