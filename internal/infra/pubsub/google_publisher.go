package pubsub

import (
	"context"
	"fmt"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"

	"chime/internal/domain/service"
)

type googlePubSubPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

// NewGooglePubSubPublisher creates a publisher bound to an existing topic. A
// missing topic fails startup instead of the first cycle.
func NewGooglePubSubPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (service.EventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.Wrap(err, "create pubsub client")
	}

	topic := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()

		return nil, errors.Wrapf(err, "topic %s is not reachable", topic)
	}

	return &googlePubSubPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger.With(slog.String("topic", topic)),
	}, nil
}

// PublishDispatched hands every event to the client's batcher before waiting
// for any ack.
func (p *googlePubSubPublisher) PublishDispatched(ctx context.Context, events []*service.ReminderDispatchedEvent) error {
	batch := batchResult{total: len(events)}

	type pending struct {
		reminderID string
		result     *pubsub.PublishResult
	}
	inflight := make([]pending, 0, len(events))

	for _, event := range events {
		encoded, err := encodeEvent(event)
		if err != nil {
			batch.fail(err)

			continue
		}
		inflight = append(inflight, pending{
			reminderID: encoded.reminderID,
			result: p.publisher.Publish(ctx, &pubsub.Message{
				Data:       encoded.data,
				Attributes: encoded.attributes,
			}),
		})
	}

	for _, item := range inflight {
		if _, err := item.result.Get(ctx); err != nil {
			batch.fail(errors.Wrapf(err, "publish reminder %s", item.reminderID))
		}
	}

	p.logger.Debug("[GooglePubSub] Reminder events published",
		slog.Int("published", batch.total-batch.failed),
		slog.Int("failed", batch.failed),
	)

	return batch.err()
}

// Close flushes pending messages and releases the client.
func (p *googlePubSubPublisher) Close() error {
	p.publisher.Stop()

	return errors.WithStack(p.client.Close())
}
