package load

import (
	"github.com/railzwaylabs/salesetl/internal/load/service"
	"go.uber.org/fx"
)

var Module = fx.Module("load",
	fx.Provide(service.NewLoader),
)
