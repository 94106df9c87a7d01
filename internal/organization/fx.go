package organization

import (
	"go.uber.org/fx"

	"github.com/debatehub/orgservice/internal/organization/event"
	"github.com/debatehub/orgservice/internal/organization/repository"
	"github.com/debatehub/orgservice/internal/organization/service"
)

var Module = fx.Module("organization.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(event.NewOutboxPublisher),
	fx.Provide(service.NewDomainService),
	fx.Provide(service.NewService),
)
