package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

const meterName = "chime/internal/usecase/dispatch"

// DispatchMetrics holds the dispatcher's OpenTelemetry instruments.
type DispatchMetrics struct {
	cycles       metric.Int64Counter
	cycleSeconds metric.Float64Histogram
	skippedTicks metric.Int64Counter
	reminders    metric.Int64Counter
	removed      metric.Int64Counter
}

// NewDispatchMetrics creates the dispatch instruments on the given provider.
func NewDispatchMetrics(provider metric.MeterProvider) (service.DispatchMetrics, error) {
	meter := provider.Meter(meterName)

	cycles, err := meter.Int64Counter(
		"chime.dispatch.cycles",
		metric.WithDescription("Dispatch cycles run, by result"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	cycleSeconds, err := meter.Float64Histogram(
		"chime.dispatch.cycle.duration",
		metric.WithDescription("Duration of dispatch cycles in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	skippedTicks, err := meter.Int64Counter(
		"chime.dispatch.skipped_ticks",
		metric.WithDescription("Scheduler ticks skipped because a cycle was running"),
		metric.WithUnit("{tick}"),
	)
	if err != nil {
		return nil, err
	}

	reminders, err := meter.Int64Counter(
		"chime.dispatch.reminders",
		metric.WithDescription("Reminders handled by dispatch cycles, by outcome"),
		metric.WithUnit("{reminder}"),
	)
	if err != nil {
		return nil, err
	}

	removed, err := meter.Int64Counter(
		"chime.dispatch.removed_tokens",
		metric.WithDescription("Device tokens disabled after permanent delivery failures"),
		metric.WithUnit("{token}"),
	)
	if err != nil {
		return nil, err
	}

	return &DispatchMetrics{
		cycles:       cycles,
		cycleSeconds: cycleSeconds,
		skippedTicks: skippedTicks,
		reminders:    reminders,
		removed:      removed,
	}, nil
}

// RecordCycle records one finished cycle. report may be nil when the cycle failed early.
func (m *DispatchMetrics) RecordCycle(ctx context.Context, report *entity.DispatchReport, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	resultAttr := metric.WithAttributes(attribute.String("result", result))

	m.cycles.Add(ctx, 1, resultAttr)
	m.cycleSeconds.Record(ctx, elapsed.Seconds(), resultAttr)

	if report == nil {
		return
	}

	for outcome, n := range map[string]int{
		"dispatched":          report.Dispatched,
		"skipped_no_device":   report.SkippedNoDevice,
		"transient_failure":   report.TransientFailures,
		"email_placeholder":   report.EmailPlaceholders,
		"rescheduled":         report.Rescheduled,
		"retired":             report.Retired,
		"gateway_unavailable": boolCount(report.GatewayUnavailable),
	} {
		if n > 0 {
			m.reminders.Add(ctx, int64(n), metric.WithAttributes(attribute.String("outcome", outcome)))
		}
	}

	if report.RemovedTokens > 0 {
		m.removed.Add(ctx, int64(report.RemovedTokens))
	}
}

// RecordSkippedTick counts a tick dropped because the cycle guard was held.
func (m *DispatchMetrics) RecordSkippedTick(ctx context.Context) {
	m.skippedTicks.Add(ctx, 1)
}

func boolCount(b bool) int {
	if b {
		return 1
	}

	return 0
}
