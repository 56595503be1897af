package main

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"chime/config"
	"chime/internal/delivery"
	"chime/internal/delivery/http"
	"chime/internal/delivery/http/middleware"
	"chime/internal/delivery/http/router/handler"
	"chime/internal/delivery/scheduler"
	"chime/internal/domain/schedule"
	"chime/internal/domain/service"
	"chime/internal/infra/auth"
	logs "chime/internal/infra/log"
	"chime/internal/infra/notification"
	"chime/internal/infra/persistence/postgres"
	"chime/internal/infra/pubsub"
	"chime/internal/infra/telemetry"
	"chime/internal/usecase/impl"
)

type startServerParams struct {
	fx.In

	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
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
			postgres.NewDeviceRepository,
			postgres.NewReminderRepository,
			postgres.NewTaskRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewJWTService,
			notification.NewPushGateway,
			telemetry.NewDispatchMetrics,
			newNormalizer,
			schedule.NewAdvancer,
			newClock,
		),
	)
}

// newNormalizer resolves reminder timezones against the configured default zone.
func newNormalizer(cfg *config.Config) *schedule.Normalizer {
	return schedule.NewNormalizer(cfg.Notification.Timezone())
}

func newClock() service.Clock {
	return service.SystemClock{}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewDeviceService,
			impl.NewReminderService,
			impl.NewDispatchService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewDeviceHandler,
			handler.NewReminderHandler,
			handler.NewDispatchHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				scheduler.NewScheduler,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer runs every delivery in the background. A delivery failing to
// serve shuts the whole application down.
func startServer(ctx context.Context, params startServerParams) {
	for _, d := range params.Deliveries {
		go func() {
			if err := d.Serve(ctx); err != nil {
				params.Logger.Error("Failed to start server", slog.Any("error", err))
				if shutdownErr := params.Shutdowner.Shutdown(fx.ExitCode(1)); shutdownErr != nil {
					params.Logger.Error("Failed to shut down", slog.Any("error", shutdownErr))
				}
			}
		}()
	}
}
