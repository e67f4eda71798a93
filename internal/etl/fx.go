package etl

import "go.uber.org/fx"

var Module = fx.Module("etl",
	fx.Provide(NewMetrics),
	fx.Provide(NewRunner),
)
