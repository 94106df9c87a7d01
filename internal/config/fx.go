package config

import "go.uber.org/fx"

// Module wires configuration and the hot-reloadable policy holder.
var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewPolicyHolder),
)
