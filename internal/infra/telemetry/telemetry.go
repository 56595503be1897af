// Package telemetry wires OpenTelemetry metrics for the dispatcher.
package telemetry

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.uber.org/fx"

	"chime/config"
)

const (
	defaultExportInterval = 15 * time.Second
	defaultServiceName    = "chime"
)

type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewMeterProvider returns an OTLP-exporting meter provider, or a noop one
// when telemetry is disabled. The exporting provider is flushed on stop.
func NewMeterProvider(params Params) (metric.MeterProvider, error) {
	cfg := params.Config.Telemetry
	if cfg == nil || !cfg.Enabled {
		params.Logger.Info("Telemetry disabled, using noop meter provider")

		return noop.NewMeterProvider(), nil
	}

	provider, err := newSDKProvider(params.Ctx, cfg, params.Config.Env.Env)
	if err != nil {
		return nil, err
	}
	otel.SetMeterProvider(provider)

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			params.Logger.Info("Shutting down meter provider")

			return errors.WithStack(provider.Shutdown(ctx))
		},
	})

	params.Logger.Info("Telemetry enabled",
		slog.String("endpoint", cfg.Endpoint),
		slog.Duration("export_interval", exportInterval(cfg)),
	)

	return provider, nil
}

func newSDKProvider(ctx context.Context, cfg *config.TelemetryConfig, env string) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetricgrpc.Option{}
	if cfg.Endpoint != "" {
		opts = append(opts, otlpmetricgrpc.WithEndpoint(cfg.Endpoint))
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "create otlp metric exporter")
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName(cfg)),
			semconv.DeploymentEnvironment(env),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build telemetry resource")
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter,
			sdkmetric.WithInterval(exportInterval(cfg)),
		)),
		sdkmetric.WithResource(res),
	), nil
}

func exportInterval(cfg *config.TelemetryConfig) time.Duration {
	if cfg.ExportInterval <= 0 {
		return defaultExportInterval
	}

	return cfg.ExportInterval
}

func serviceName(cfg *config.TelemetryConfig) string {
	if name := strings.TrimSpace(cfg.ServiceName); name != "" {
		return name
	}

	return defaultServiceName
}
