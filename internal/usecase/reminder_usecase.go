package usecase

import (
	"context"

	"github.com/google/uuid"

	"chime/internal/domain/entity"
)

// ReminderInput is one submitted reminder of a task.
//
// RemindAt and ExpiresAt accept either an RFC3339 instant or a wall-clock time
// ("2006-01-02T15:04[:05]") interpreted in Timezone.
type ReminderInput struct {
	ID          *uuid.UUID `json:"id"`
	RemindAt    string     `json:"remind_at" validate:"required"`
	Timezone    string     `json:"timezone" validate:"omitempty,max=64"`
	Channel     string     `json:"channel" validate:"omitempty,oneof=push local email"`
	RepeatRule  string     `json:"repeat_rule" validate:"omitempty,oneof=none daily weekly monthly"`
	RepeatEvery int        `json:"repeat_every" validate:"omitempty,min=1,max=365"`
	Active      *bool      `json:"active"`
	ExpiresAt   *string    `json:"expires_at"`
}

// ReminderUsecase defines the interface for task reminder use cases
type ReminderUsecase interface {
	// ReplaceTaskReminders makes the task's stored reminders match inputs exactly,
	// reusing existing rows by id or by scheduling fingerprint
	ReplaceTaskReminders(ctx context.Context, userID, taskID uuid.UUID, inputs []ReminderInput) ([]*entity.Reminder, error)

	// ListTaskReminders retrieves the task's reminders ordered by fire time
	ListTaskReminders(ctx context.Context, userID, taskID uuid.UUID) ([]*entity.Reminder, error)
}
