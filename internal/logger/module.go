package logger

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Module wires the zap logger for dependency injection and flushes it on shutdown.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerSync),
)

func registerSync(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			// stdout sync fails with EINVAL on some terminals.
			_ = log.Sync()
			return nil
		},
	})
}
