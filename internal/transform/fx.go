package transform

import (
	"github.com/railzwaylabs/salesetl/internal/transform/service"
	"go.uber.org/fx"
)

var Module = fx.Module("transform",
	fx.Provide(service.NewCleaner),
	fx.Provide(service.NewTransformer),
)
