package telemetry

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
)

func Module() fx.Option {
	return fx.Invoke(register)
}

func register(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) {
	var shutdown ShutdownFunc
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			shutdown, err = Init(ctx, cfg.Telemetry)
			if err != nil {
				// telemetry is optional; the service runs without exporters
				logger.Warn("telemetry init failed", zap.Error(err))
				return nil
			}
			if cfg.Telemetry.OTLPEndpoint != "" {
				logger.Info("telemetry exporting", zap.String("endpoint", cfg.Telemetry.OTLPEndpoint))
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if shutdown == nil {
				return nil
			}
			return shutdown(ctx)
		},
	})
}
