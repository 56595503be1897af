package entity

import "github.com/google/uuid"

// TaskStatus is the lifecycle status of the task owning reminders.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusCancelled  TaskStatus = "cancelled"
)

// ActionableTaskStatuses are the statuses whose reminders still fire.
var ActionableTaskStatuses = []TaskStatus{TaskStatusPending, TaskStatusInProgress}

// IsActionable reports whether reminders of a task in this status should be dispatched.
func (s TaskStatus) IsActionable() bool {
	return s == TaskStatusPending || s == TaskStatusInProgress
}

// Task is the subset of a task the reminder engine reads.
type Task struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}
