// Package migration brings the schema up to date on startup.
package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/debatehub/orgservice/internal/organization/event"
	orgrepo "github.com/debatehub/orgservice/internal/organization/repository"
	userrepo "github.com/debatehub/orgservice/internal/user/repository"
)

// Run migrates every table the persistence adapters own.
func Run(conn *gorm.DB) error {
	var models []any
	models = append(models, userrepo.Models()...)
	models = append(models, orgrepo.Models()...)
	models = append(models, event.Models()...)
	return conn.AutoMigrate(models...)
}

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		return Run(conn)
	}),
)
