package service

import (
	"context"
	"time"
)

// ReminderDispatchedEvent is published after a dispatch cycle commits.
type ReminderDispatchedEvent struct {
	RequestID   string     `json:"request_id,omitempty"` // For distributed tracing
	ReminderID  string     `json:"reminder_id"`
	TaskID      string     `json:"task_id"`
	UserID      string     `json:"user_id"`
	Channel     string     `json:"channel"`
	FiredAt     time.Time  `json:"fired_at"`
	TriggeredAt time.Time  `json:"triggered_at"`
	Outcome     string     `json:"outcome"`
	NextFireAt  *time.Time `json:"next_fire_at,omitempty"`
	Delivered   int        `json:"delivered"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishDispatched publishes the outcomes of one committed cycle. Events are
	// independent: a failed event does not stop the others, and the returned
	// error reports how many were lost.
	PublishDispatched(ctx context.Context, events []*ReminderDispatchedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
