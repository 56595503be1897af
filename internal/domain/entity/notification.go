package entity

import (
	"time"

	"github.com/google/uuid"
)

// PushMessage is a rendered reminder notification.
type PushMessage struct {
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data"`
	Silent bool              `json:"silent"` // Data-only delivery, no visible notification payload.
}

// TokenFailure is the delivery failure of a single token.
type TokenFailure struct {
	Token     string
	Reason    string
	Permanent bool // The token is unregistered or invalid and must not be used again.
}

// MulticastResult aggregates the outcome of a multicast delivery across all chunks.
type MulticastResult struct {
	SuccessCount int
	FailureCount int
	Failures     []TokenFailure
}

// Delivered reports whether at least one token received the message.
func (r *MulticastResult) Delivered() bool {
	return r != nil && r.SuccessCount > 0
}

// InvalidTokens returns the tokens that failed permanently.
func (r *MulticastResult) InvalidTokens() []string {
	if r == nil {
		return nil
	}

	tokens := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		if f.Permanent {
			tokens = append(tokens, f.Token)
		}
	}

	return tokens
}

// Merge adds another chunk's outcome to the aggregate.
func (r *MulticastResult) Merge(other *MulticastResult) {
	if other == nil {
		return
	}
	r.SuccessCount += other.SuccessCount
	r.FailureCount += other.FailureCount
	r.Failures = append(r.Failures, other.Failures...)
}

// ReminderOutcome is the state a dispatched reminder moves to.
type ReminderOutcome string

const (
	OutcomeRescheduled ReminderOutcome = "rescheduled"
	OutcomeRetired     ReminderOutcome = "retired"
)

// DispatchedReminder records one reminder advanced by a dispatch cycle.
type DispatchedReminder struct {
	ReminderID  uuid.UUID       `json:"reminder_id"`
	TaskID      uuid.UUID       `json:"task_id"`
	UserID      uuid.UUID       `json:"user_id"`
	Channel     Channel         `json:"channel"`
	FiredAt     time.Time       `json:"fired_at"`
	TriggeredAt time.Time       `json:"triggered_at"`
	Outcome     ReminderOutcome `json:"outcome"`
	NextFireAt  *time.Time      `json:"next_fire_at,omitempty"`
	Delivered   int             `json:"delivered"`
}

// DispatchReport summarises one dispatch cycle.
type DispatchReport struct {
	StartedAt          time.Time
	Selected           int
	Dispatched         int
	SkippedNoDevice    int
	TransientFailures  int
	EmailPlaceholders  int
	Rescheduled        int
	Retired            int
	RemovedTokens      int
	GatewayUnavailable bool
	Reminders          []DispatchedReminder
}

// ChangedState reports whether the cycle wrote anything: a reminder marked
// triggered, advanced or retired, or a device removed.
func (r *DispatchReport) ChangedState() bool {
	return r.Dispatched > 0 || r.Rescheduled > 0 || r.Retired > 0 || r.RemovedTokens > 0
}
