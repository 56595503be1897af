package service

import (
	"context"
	"time"

	"chime/internal/domain/entity"
)

// DispatchMetrics records the outcome of dispatch cycles.
type DispatchMetrics interface {
	RecordCycle(ctx context.Context, report *entity.DispatchReport, elapsed time.Duration, err error)
	RecordSkippedTick(ctx context.Context)
}
