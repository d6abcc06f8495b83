package grpc

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/ronappleton/autotests-backend/internal/config"
)

func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			NewHealth,
			NewServer,
		),
		fx.Invoke(lifecycleHook),
	)
}

func lifecycleHook(lc fx.Lifecycle, log *zap.Logger, cfg config.Config, srv *grpc.Server, hs *health.Server) {
	if !cfg.GRPC.Enabled {
		log.Info("grpc server disabled")
		return
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			lis, err := NewListener(cfg)
			if err != nil {
				return err
			}
			log.Info("grpc server starting", zap.String("addr", lis.Addr().String()))
			hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
			go func() {
				if err := srv.Serve(lis); err != nil {
					log.Error("grpc server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("grpc server stopping")
			hs.Shutdown()
			srv.GracefulStop()
			return nil
		},
	})
}
