package service

import (
	"context"

	"github.com/pkg/errors"

	"chime/internal/domain/entity"
)

// ErrGatewayUnavailable is returned when no delivery is possible, e.g. the
// provider credentials are missing. It is not retried within the process.
var ErrGatewayUnavailable = errors.New("push gateway unavailable")

// PushGateway delivers rendered notifications to device tokens.
type PushGateway interface {
	// SendMulticast delivers msg to every token, splitting the tokens into
	// provider-sized chunks, and aggregates the per-token outcomes.
	SendMulticast(ctx context.Context, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error)
}
