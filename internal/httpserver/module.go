package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/ronappleton/autotests-backend/internal/config"
	"github.com/ronappleton/autotests-backend/internal/order"
	"github.com/ronappleton/autotests-backend/internal/workflow"
)

// OrderRunner runs one order through the provisioning workflow.
type OrderRunner interface {
	Run(ctx context.Context, o order.Order) workflow.Result
}

type Server struct {
	cfg    config.Config
	runner OrderRunner
	logger *zap.Logger
	srv    *http.Server
}

func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			func(e *workflow.Engine) OrderRunner { return e },
			NewServer,
		),
		fx.Invoke(RegisterHooks),
	)
}

func NewServer(cfg config.Config, runner OrderRunner, logger *zap.Logger) *Server {
	s := &Server{cfg: cfg, runner: runner, logger: logger.Named("http")}
	s.srv = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler is the traced router, exposed for tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/orders", s.handleOrders)
	mux.HandleFunc("/orders/", s.handleOrderByID)
	return otelhttp.NewHandler(mux, "http.server",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
	)
}

func RegisterHooks(lc fx.Lifecycle, server *Server) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			server.logger.Info("http server starting", zap.String("addr", server.srv.Addr))
			go func() {
				if err := server.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					server.logger.Error("http server error", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			server.logger.Info("http server stopping")
			return server.srv.Shutdown(shutdownCtx)
		},
	})
}
