package logging

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ronappleton/autotests-backend/internal/config"
)

func Module() fx.Option {
	return fx.Options(
		fx.Provide(New),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)
}

// New builds the service logger. When a forward URL is configured, entries at
// info and above are also shipped to it in the background.
func New(lc fx.Lifecycle, cfg config.Config) (*zap.Logger, error) {
	logger, fwd, err := build(cfg)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			if fwd != nil {
				fwd.close(ctx)
			}
			return nil
		},
	})
	return logger, nil
}

func build(cfg config.Config) (*zap.Logger, *forwarder, error) {
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", cfg.Logging.Level, err)
	}

	zcfg := zap.NewProductionConfig()
	if cfg.Logging.Development {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build(zap.Fields(zap.String("service", cfg.Telemetry.ServiceName)))
	if err != nil {
		return nil, nil, err
	}
	if cfg.Logging.ForwardURL == "" {
		return logger, nil, nil
	}

	fwd := newForwarder(cfg.Logging.ForwardURL, cfg.Logging.ForwardAPIKey, cfg.Telemetry.ServiceName)
	fwd.start()
	return attachForwarder(logger, fwd, zapcore.InfoLevel), fwd, nil
}
