package notification

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testNotificationConfig(chunkSize int) *config.NotificationConfig {
	return &config.NotificationConfig{
		ChunkSize:       chunkSize,
		SendConcurrency: 1,
		Retry: config.RetryConfig{
			MaxRetries:      1,
			InitialInterval: time.Millisecond,
			MaxInterval:     2 * time.Millisecond,
		},
	}
}

func makeTokens(n int) []string {
	tokens := make([]string, n)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("token-%04d", i)
	}

	return tokens
}

func TestMemoryGateway_ChunksAtConfiguredSize(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(2), testLogger())

	msg := &entity.PushMessage{Title: "Task Reminder", Body: "Reminder at 2025-01-08 09:00"}
	result, err := gw.SendMulticast(context.Background(), makeTokens(5), msg)
	require.NoError(t, err)

	assert.Equal(t, 5, result.SuccessCount)
	assert.True(t, result.Delivered())

	sent := gw.Sent()
	require.Len(t, sent, 3)
	assert.Len(t, sent[0].Tokens, 2)
	assert.Len(t, sent[1].Tokens, 2)
	assert.Len(t, sent[2].Tokens, 1)
	assert.Equal(t, "Task Reminder", sent[0].Message.Title)
}

func TestMemoryGateway_ProviderCeiling(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(0), testLogger())

	result, err := gw.SendMulticast(context.Background(), makeTokens(config.MaxMulticastTokens+1), &entity.PushMessage{})
	require.NoError(t, err)
	assert.Equal(t, config.MaxMulticastTokens+1, result.SuccessCount)

	sent := gw.Sent()
	require.Len(t, sent, 2)
	assert.Len(t, sent[0].Tokens, config.MaxMulticastTokens)
	assert.Len(t, sent[1].Tokens, 1)
}

func TestMemoryGateway_ScriptedOutcomes(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(10), testLogger())
	gw.SetOutcome("dead", TokenPermanentFailure)
	gw.SetOutcome("flaky", TokenTransientFailure)

	result, err := gw.SendMulticast(context.Background(), []string{"ok", "dead", "flaky"}, &entity.PushMessage{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.FailureCount)
	assert.Equal(t, []string{"dead"}, result.InvalidTokens())
}

func TestMemoryGateway_Unavailable(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(10), testLogger())
	gw.SetUnavailable(true)

	_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
	require.ErrorIs(t, err, service.ErrGatewayUnavailable)
	assert.Empty(t, gw.Sent())
}

func TestMemoryGateway_EmptyTokens(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(10), testLogger())

	result, err := gw.SendMulticast(context.Background(), nil, &entity.PushMessage{})
	require.NoError(t, err)
	assert.False(t, result.Delivered())
	assert.Empty(t, gw.Sent())
}

func TestMemoryGateway_AllChunksFail(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(10), testLogger())
	gw.FailChunks(errors.New("connection reset"))

	_, err := gw.SendMulticast(context.Background(), []string{"a", "b"}, &entity.PushMessage{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrGatewayUnavailable)
}

func TestMemoryGateway_Reset(t *testing.T) {
	gw := NewMemoryGateway(testNotificationConfig(10), testLogger())
	gw.SetOutcome("dead", TokenPermanentFailure)
	gw.SetUnavailable(true)
	gw.Reset()

	result, err := gw.SendMulticast(context.Background(), []string{"dead"}, &entity.PushMessage{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestChunkTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		tokens int
		size   int
		want   []int
	}{
		{name: "empty", tokens: 0, size: 3, want: []int{}},
		{name: "exact multiple", tokens: 6, size: 3, want: []int{3, 3}},
		{name: "remainder", tokens: 7, size: 3, want: []int{3, 3, 1}},
		{name: "non-positive size uses ceiling", tokens: 2, size: 0, want: []int{2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			chunks := chunkTokens(makeTokens(tt.tokens), tt.size)
			sizes := make([]int, 0, len(chunks))
			for _, c := range chunks {
				sizes = append(sizes, len(c))
			}
			assert.Equal(t, tt.want, sizes)
		})
	}
}
