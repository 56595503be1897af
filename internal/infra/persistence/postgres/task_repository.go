package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"chime/internal/domain/entity"
	"chime/internal/domain/repository"
	"chime/internal/infra/persistence/model"
)

// taskRepository reads the task columns reminders depend on.
type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB) repository.TaskRepository {
	return &taskRepository{db: db}
}

// FindByID retrieves a task.
func (repo *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Task, error) {
	var taskM model.TaskModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Take(&taskM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, errors.Wrap(err, "failed to find task")
	}

	return &entity.Task{
		ID:     taskM.ID,
		UserID: taskM.UserID,
		Title:  taskM.Title,
		Status: entity.TaskStatus(taskM.Status),
	}, nil
}
