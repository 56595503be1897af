package pubsub

import (
	"encoding/json"

	"github.com/pkg/errors"

	"chime/internal/domain/service"
)

const eventTypeReminderDispatched = "reminder_dispatched"

// encodedEvent is an event ready for the wire.
type encodedEvent struct {
	reminderID string
	data       []byte
	attributes map[string]string
}

func encodeEvent(event *service.ReminderDispatchedEvent) (encodedEvent, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return encodedEvent{}, errors.Wrapf(err, "encode reminder %s", event.ReminderID)
	}

	return encodedEvent{
		reminderID: event.ReminderID,
		data:       data,
		attributes: eventAttributes(event),
	}, nil
}

// eventAttributes are the message attributes subscribers filter on.
func eventAttributes(event *service.ReminderDispatchedEvent) map[string]string {
	attributes := map[string]string{
		"event_type":  eventTypeReminderDispatched,
		"reminder_id": event.ReminderID,
		"task_id":     event.TaskID,
		"user_id":     event.UserID,
		"channel":     event.Channel,
		"outcome":     event.Outcome,
	}
	if event.RequestID != "" {
		attributes["request_id"] = event.RequestID
	}

	return attributes
}

// batchResult counts lost events and keeps the first failure.
type batchResult struct {
	total  int
	failed int
	first  error
}

func (b *batchResult) fail(err error) {
	b.failed++
	if b.first == nil {
		b.first = err
	}
}

func (b *batchResult) err() error {
	if b.failed == 0 {
		return nil
	}

	return errors.Wrapf(b.first, "%d of %d reminder events not published", b.failed, b.total)
}
