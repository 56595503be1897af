// Command dispatchworker runs dispatch cycles on Pub/Sub push triggers instead
// of an in-process ticker.
package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"chime/config"
	"chime/internal/delivery"
	"chime/internal/delivery/worker"
	"chime/internal/delivery/worker/handler"
	"chime/internal/domain/schedule"
	"chime/internal/domain/service"
	logs "chime/internal/infra/log"
	"chime/internal/infra/notification"
	"chime/internal/infra/persistence/postgres"
	"chime/internal/infra/pubsub"
	"chime/internal/infra/telemetry"
	"chime/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectHandler(),
		injectDelivery(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			telemetry.NewMeterProvider,
		),
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			notification.NewPushGateway,
			telemetry.NewDispatchMetrics,
			func(cfg *config.Config) *schedule.Normalizer {
				return schedule.NewNormalizer(cfg.Notification.Timezone())
			},
			schedule.NewAdvancer,
			func() service.Clock { return service.SystemClock{} },
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDispatchService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					params.Logger.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
