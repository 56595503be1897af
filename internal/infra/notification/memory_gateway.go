package notification

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/pkg/errors"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

// TokenOutcome scripts how the memory gateway answers for a token.
type TokenOutcome int

const (
	TokenDelivered TokenOutcome = iota
	TokenTransientFailure
	TokenPermanentFailure
)

// SentMessage is one chunk recorded by the memory gateway.
type SentMessage struct {
	Tokens  []string
	Message entity.PushMessage
}

// MemoryGateway is an in-process push gateway. It records every chunk it is
// asked to deliver and answers per token according to scripted outcomes,
// which makes it the gateway for local runs and dispatch tests.
type MemoryGateway struct {
	multicast *multicaster
	logger    *slog.Logger

	mu          sync.Mutex
	outcomes    map[string]TokenOutcome
	sent        []SentMessage
	unavailable bool
	chunkErr    error
}

// NewMemoryGateway creates an in-memory gateway honouring the notification chunk settings.
func NewMemoryGateway(cfg *config.NotificationConfig, logger *slog.Logger) *MemoryGateway {
	return &MemoryGateway{
		multicast: newMulticaster("memory-gateway", cfg, logger),
		logger:    logger,
		outcomes:  make(map[string]TokenOutcome),
	}
}

// SetOutcome scripts the answer for token. Unscripted tokens are delivered.
func (g *MemoryGateway) SetOutcome(token string, outcome TokenOutcome) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.outcomes[token] = outcome
}

// SetUnavailable makes every following send report service.ErrGatewayUnavailable.
func (g *MemoryGateway) SetUnavailable(unavailable bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.unavailable = unavailable
}

// FailChunks makes every chunk send fail with err until called with nil.
func (g *MemoryGateway) FailChunks(err error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.chunkErr = err
}

// Sent returns a copy of the recorded chunks.
func (g *MemoryGateway) Sent() []SentMessage {
	g.mu.Lock()
	defer g.mu.Unlock()

	return slices.Clone(g.sent)
}

// Reset forgets recorded chunks and scripted outcomes.
func (g *MemoryGateway) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.sent = nil
	g.outcomes = make(map[string]TokenOutcome)
	g.unavailable = false
	g.chunkErr = nil
}

// SendMulticast implements service.PushGateway.
func (g *MemoryGateway) SendMulticast(ctx context.Context, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error) {
	if len(tokens) == 0 {
		return &entity.MulticastResult{}, nil
	}

	g.mu.Lock()
	unavailable := g.unavailable
	g.mu.Unlock()
	if unavailable {
		return nil, service.ErrGatewayUnavailable
	}

	result, err := g.multicast.send(ctx, tokens, msg, g.sendChunk)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("[MemoryGateway] multicast recorded",
		slog.Int("tokens", len(tokens)),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
	)

	return result, nil
}

func (g *MemoryGateway) sendChunk(_ context.Context, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chunkErr != nil {
		return nil, errors.WithStack(g.chunkErr)
	}

	g.sent = append(g.sent, SentMessage{Tokens: slices.Clone(tokens), Message: *msg})

	result := &entity.MulticastResult{}
	for _, token := range tokens {
		switch g.outcomes[token] {
		case TokenPermanentFailure:
			result.FailureCount++
			result.Failures = append(result.Failures, entity.TokenFailure{Token: token, Reason: "unregistered", Permanent: true})
		case TokenTransientFailure:
			result.FailureCount++
			result.Failures = append(result.Failures, entity.TokenFailure{Token: token, Reason: "unavailable"})
		default:
			result.SuccessCount++
		}
	}

	return result, nil
}
