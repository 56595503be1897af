package notification

import (
	"context"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

// ErrCircuitOpen is returned for a chunk rejected by an open breaker.
var ErrCircuitOpen = errors.New("push provider circuit breaker is open")

const (
	defaultBreakerMaxRequests = 1
	defaultBreakerTimeout     = 60 * time.Second
	defaultMaxRetries         = 2
	defaultInitialInterval    = 200 * time.Millisecond
	defaultMaxInterval        = 5 * time.Second
)

// chunkFunc delivers a single provider-sized chunk.
type chunkFunc func(ctx context.Context, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error)

// guardedSender runs chunk sends through a circuit breaker and a bounded
// exponential retry. Only chunk-level transport errors are retried, per-token
// failures are part of a successful response.
type guardedSender struct {
	breaker *gobreaker.CircuitBreaker[*entity.MulticastResult]
	retry   config.RetryConfig
}

func newGuardedSender(name string, cfg *config.NotificationConfig, logger *slog.Logger) *guardedSender {
	var breakerCfg config.BreakerConfig
	var retryCfg config.RetryConfig
	if cfg != nil {
		breakerCfg = cfg.Breaker
		retryCfg = cfg.Retry
	}

	if breakerCfg.MaxRequests == 0 {
		breakerCfg.MaxRequests = defaultBreakerMaxRequests
	}
	if breakerCfg.Timeout <= 0 {
		breakerCfg.Timeout = defaultBreakerTimeout
	}
	if retryCfg.MaxRetries == 0 {
		retryCfg.MaxRetries = defaultMaxRetries
	}
	if retryCfg.InitialInterval <= 0 {
		retryCfg.InitialInterval = defaultInitialInterval
	}
	if retryCfg.MaxInterval <= 0 {
		retryCfg.MaxInterval = defaultMaxInterval
	}

	breaker := gobreaker.NewCircuitBreaker[*entity.MulticastResult](gobreaker.Settings{
		Name:        name,
		MaxRequests: breakerCfg.MaxRequests,
		Interval:    breakerCfg.Interval,
		Timeout:     breakerCfg.Timeout,
		ReadyToTrip: readyToTrip,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("[PushGateway] circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})

	return &guardedSender{breaker: breaker, retry: retryCfg}
}

// readyToTrip opens the breaker once at least 5 calls were made and half of them failed.
func readyToTrip(counts gobreaker.Counts) bool {
	if counts.Requests < 5 {
		return false
	}

	return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.5
}

func (s *guardedSender) send(ctx context.Context, tokens []string, msg *entity.PushMessage, fn chunkFunc) (*entity.MulticastResult, error) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retry.InitialInterval
	bo.MaxInterval = s.retry.MaxInterval
	bo.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(bo, s.retry.MaxRetries), ctx)

	var result *entity.MulticastResult
	operation := func() error {
		res, err := s.breaker.Execute(func() (*entity.MulticastResult, error) {
			return fn(ctx, tokens, msg)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
				return backoff.Permanent(ErrCircuitOpen)
			}
			if ctx.Err() != nil || errors.Is(err, service.ErrGatewayUnavailable) {
				return backoff.Permanent(err)
			}

			return err
		}
		result = res

		return nil
	}

	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return result, nil
}

func (s *guardedSender) state() gobreaker.State {
	return s.breaker.State()
}
