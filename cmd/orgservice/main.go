package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"

	"github.com/debatehub/orgservice/internal/clock"
	"github.com/debatehub/orgservice/internal/config"
	"github.com/debatehub/orgservice/internal/logger"
	"github.com/debatehub/orgservice/internal/migration"
	"github.com/debatehub/orgservice/internal/notification"
	"github.com/debatehub/orgservice/internal/organization"
	"github.com/debatehub/orgservice/internal/transaction"
	"github.com/debatehub/orgservice/internal/user"
	"github.com/debatehub/orgservice/pkg/db"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		transaction.Module,

		// Functional domains
		user.Module,
		organization.Module,
		notification.Module,

		migration.Module,
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
