package usecase

import (
	"context"

	"github.com/pkg/errors"

	"chime/internal/domain/entity"
)

// ErrCycleInProgress is returned by TryDispatchDue when another cycle holds the guard.
var ErrCycleInProgress = errors.New("dispatch cycle already in progress")

// DispatchUsecase runs reminder dispatch cycles. At most one cycle runs at a
// time across every caller.
type DispatchUsecase interface {
	// DispatchDue waits for the running cycle, if any, then runs one cycle
	DispatchDue(ctx context.Context) (*entity.DispatchReport, error)

	// TryDispatchDue runs one cycle unless another is running, in which case it
	// returns ErrCycleInProgress immediately
	TryDispatchDue(ctx context.Context) (*entity.DispatchReport, error)
}
