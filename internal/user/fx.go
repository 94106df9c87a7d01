package user

import (
	"go.uber.org/fx"

	"github.com/debatehub/orgservice/internal/user/repository"
)

var Module = fx.Module("user.service",
	fx.Provide(repository.NewRepository),
)
