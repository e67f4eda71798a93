package extract

import (
	"github.com/railzwaylabs/salesetl/internal/extract/service"
	"go.uber.org/fx"
)

var Module = fx.Module("extract",
	fx.Provide(service.NewReader),
)
