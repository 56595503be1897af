package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"chime/internal/domain/entity"
)

// ErrTaskNotFound is returned when a task does not exist.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository reads the tasks owning reminders. Tasks are written elsewhere.
type TaskRepository interface {
	// FindByID retrieves a task.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error)
}
