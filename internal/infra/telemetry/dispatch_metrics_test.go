package telemetry

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/fx/fxtest"

	"chime/config"
	"chime/internal/domain/entity"
)

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := make(map[string]metricdata.Aggregation)
	for _, scope := range rm.ScopeMetrics {
		for _, m := range scope.Metrics {
			out[m.Name] = m.Data
		}
	}

	return out
}

func sumByAttr(t *testing.T, data metricdata.Aggregation, key string) map[string]int64 {
	t.Helper()

	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "expected int64 sum, got %T", data)

	out := make(map[string]int64)
	for _, dp := range sum.DataPoints {
		value, _ := dp.Attributes.Value(attribute.Key(key))
		out[value.AsString()] += dp.Value
	}

	return out
}

func TestDispatchMetrics_RecordCycle(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	metrics, err := NewDispatchMetrics(provider)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordCycle(ctx, &entity.DispatchReport{
		Dispatched:      2,
		SkippedNoDevice: 1,
		Rescheduled:     1,
		Retired:         1,
		RemovedTokens:   3,
	}, 250*time.Millisecond, nil)
	metrics.RecordCycle(ctx, nil, time.Second, errors.New("commit failed"))
	metrics.RecordSkippedTick(ctx)

	data := collect(t, reader)

	cycles := sumByAttr(t, data["chime.dispatch.cycles"], "result")
	assert.Equal(t, int64(1), cycles["ok"])
	assert.Equal(t, int64(1), cycles["error"])

	reminders := sumByAttr(t, data["chime.dispatch.reminders"], "outcome")
	assert.Equal(t, int64(2), reminders["dispatched"])
	assert.Equal(t, int64(1), reminders["skipped_no_device"])
	assert.Equal(t, int64(1), reminders["retired"])
	assert.Zero(t, reminders["transient_failure"])

	removed := sumByAttr(t, data["chime.dispatch.removed_tokens"], "")
	assert.Equal(t, int64(3), removed[""])

	skipped := sumByAttr(t, data["chime.dispatch.skipped_ticks"], "")
	assert.Equal(t, int64(1), skipped[""])

	_, ok := data["chime.dispatch.cycle.duration"].(metricdata.Histogram[float64])
	assert.True(t, ok)
}

func TestDispatchMetrics_Noop(t *testing.T) {
	metrics, err := NewDispatchMetrics(noop.NewMeterProvider())
	require.NoError(t, err)

	assert.NotPanics(t, func() {
		metrics.RecordCycle(context.Background(), &entity.DispatchReport{Dispatched: 1}, time.Second, nil)
		metrics.RecordSkippedTick(context.Background())
	})
}

func TestNewMeterProvider_DisabledIsNoop(t *testing.T) {
	provider, err := NewMeterProvider(Params{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, ok := provider.(noop.MeterProvider)
	assert.True(t, ok)
}

func TestExportIntervalAndServiceName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, defaultExportInterval, exportInterval(&config.TelemetryConfig{}))
	assert.Equal(t, 5*time.Second, exportInterval(&config.TelemetryConfig{ExportInterval: 5 * time.Second}))
	assert.Equal(t, defaultServiceName, serviceName(&config.TelemetryConfig{ServiceName: "  "}))
	assert.Equal(t, "chime-worker", serviceName(&config.TelemetryConfig{ServiceName: "chime-worker"}))
}
