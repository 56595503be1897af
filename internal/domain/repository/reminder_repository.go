package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"chime/internal/domain/entity"
)

// DueQuery selects reminders for one dispatch cycle.
type DueQuery struct {
	Now      time.Time
	Window   time.Duration
	Statuses []entity.TaskStatus
}

// From returns the lower bound of the due window.
func (q DueQuery) From() time.Time {
	return q.Now.Add(-q.Window)
}

// To returns the upper bound of the due window.
func (q DueQuery) To() time.Time {
	return q.Now.Add(q.Window)
}

// ReminderRepository stores the reminders of tasks.
type ReminderRepository interface {
	// ListByTask retrieves a task's reminders ordered by fire time.
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entity.Reminder, error)

	// Create persists new reminders and fills their generated fields.
	Create(ctx context.Context, reminders []*entity.Reminder) error

	// Update persists every mutable field of a reminder.
	Update(ctx context.Context, reminder *entity.Reminder) error

	// DeleteByIDs removes reminders of a task.
	DeleteByIDs(ctx context.Context, taskID uuid.UUID, ids []uuid.UUID) error

	// FindDue selects active, unexpired, not yet triggered reminders whose fire time
	// lies in the window and whose task status is listed, earliest first.
	FindDue(ctx context.Context, query DueQuery) ([]*entity.DueReminder, error)

	// SaveDispatchState persists fire time, active flag and last trigger time together.
	SaveDispatchState(ctx context.Context, reminder *entity.Reminder) error
}
