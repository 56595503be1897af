package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"chime/internal/domain/service"
)

const (
	localSubscription   = "projects/local/subscriptions/reminder-dispatched-sub"
	localRequestTimeout = 10 * time.Second
)

// PushMessage mirrors the envelope Google Pub/Sub uses for push subscriptions.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localHTTPPublisher stands in for a push subscription during development: each
// event is POSTed to a local endpoint in the Pub/Sub push envelope.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

// NewLocalHTTPPublisher creates a local HTTP publisher for development
func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: localRequestTimeout},
		logger:     logger.With(slog.String("endpoint", endpoint)),
		now:        time.Now,
	}
}

// PublishDispatched POSTs the events one by one and keeps going past failures.
func (p *localHTTPPublisher) PublishDispatched(ctx context.Context, events []*service.ReminderDispatchedEvent) error {
	batch := batchResult{total: len(events)}

	for _, event := range events {
		if ctx.Err() != nil {
			batch.fail(errors.WithStack(ctx.Err()))

			continue
		}
		if err := p.post(ctx, event); err != nil {
			batch.fail(err)
		}
	}

	p.logger.Debug("[LocalPubSub] Reminder events pushed",
		slog.Int("published", batch.total-batch.failed),
		slog.Int("failed", batch.failed),
	)

	return batch.err()
}

func (p *localHTTPPublisher) post(ctx context.Context, event *service.ReminderDispatchedEvent) error {
	encoded, err := encodeEvent(event)
	if err != nil {
		return err
	}

	var envelope PushMessage
	envelope.Subscription = localSubscription
	envelope.Message.Data = base64.StdEncoding.EncodeToString(encoded.data)
	envelope.Message.Attributes = encoded.attributes
	envelope.Message.MessageID = uuid.NewString()
	envelope.Message.PublishTime = p.now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(envelope)
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if event.RequestID != "" {
		req.Header.Set("X-Request-Id", event.RequestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "push reminder %s", event.ReminderID)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return errors.Errorf("push reminder %s: endpoint returned status %d", event.ReminderID, resp.StatusCode)
	}

	return nil
}

// Close is a no-op; the HTTP client holds no resources worth releasing.
func (p *localHTTPPublisher) Close() error {
	return nil
}
