package notification

import (
	"context"
	"log/slog"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
	"chime/internal/util"
)

const defaultSendConcurrency = 4

// multicaster splits tokens into provider-sized chunks, sends them
// concurrently and aggregates every chunk before returning.
type multicaster struct {
	chunkSize   int
	concurrency int
	sender      *guardedSender
	logger      *slog.Logger
}

func newMulticaster(name string, cfg *config.NotificationConfig, logger *slog.Logger) *multicaster {
	concurrency := defaultSendConcurrency
	if cfg != nil && cfg.SendConcurrency > 0 {
		concurrency = cfg.SendConcurrency
	}

	return &multicaster{
		chunkSize:   cfg.MulticastChunkSize(),
		concurrency: concurrency,
		sender:      newGuardedSender(name, cfg, logger),
		logger:      logger,
	}
}

// send delivers msg to every token. A chunk that still fails after retries
// counts its tokens as transient failures; the call only errors when no chunk
// could be sent at all or the gateway is unavailable.
func (m *multicaster) send(ctx context.Context, tokens []string, msg *entity.PushMessage, fn chunkFunc) (*entity.MulticastResult, error) {
	chunks := chunkTokens(tokens, m.chunkSize)
	if len(chunks) == 0 {
		return &entity.MulticastResult{}, nil
	}

	results := make([]*entity.MulticastResult, len(chunks))
	chunkErrs := make([]error, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, chunk := range chunks {
		g.Go(func() error {
			res, err := m.sender.send(gctx, chunk, msg, fn)
			if errors.Is(err, service.ErrGatewayUnavailable) {
				return err
			}
			results[i], chunkErrs[i] = res, err

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	aggregate := &entity.MulticastResult{}
	var lastErr error
	failedChunks := 0
	for i, chunk := range chunks {
		if err := chunkErrs[i]; err != nil {
			failedChunks++
			lastErr = err
			m.logger.Warn("[PushGateway] chunk delivery failed",
				slog.Int("chunk", i),
				slog.Int("tokens", len(chunk)),
				slog.Any("error", err),
			)
			aggregate.Merge(transientChunk(chunk, err))

			continue
		}
		aggregate.Merge(results[i])
	}

	if failedChunks == len(chunks) {
		return nil, errors.Wrap(lastErr, "multicast failed for every chunk")
	}

	return aggregate, nil
}

func transientChunk(tokens []string, err error) *entity.MulticastResult {
	res := &entity.MulticastResult{FailureCount: len(tokens)}
	for _, token := range tokens {
		res.Failures = append(res.Failures, entity.TokenFailure{Token: token, Reason: err.Error()})
	}

	return res
}

// chunkTokens splits tokens into consecutive slices of at most size entries.
func chunkTokens(tokens []string, size int) [][]string {
	if size <= 0 {
		size = config.MaxMulticastTokens
	}

	chunks := make([][]string, 0, (len(tokens)+size-1)/size)
	for start := 0; start < len(tokens); start += size {
		end := min(start+size, len(tokens))
		chunks = append(chunks, tokens[start:end])
	}

	return chunks
}

func maskedTokens(tokens []string) []string {
	masked := make([]string, len(tokens))
	for i, token := range tokens {
		masked[i] = util.MaskToken(token)
	}

	return masked
}
