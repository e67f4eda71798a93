// Package observability provides the shared zap logger.
package observability

import (
	"os"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("observability",
	fx.Provide(NewLogger),
)

func NewLogger() (*zap.Logger, error) {
	if os.Getenv("SALESETL_ENV") == "development" {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
