package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/infra/persistence/model"
)

// reminderRepository implements the repository.ReminderRepository interface.
type reminderRepository struct {
	db *gorm.DB
}

// NewReminderRepository is the constructor for reminderRepository.
func NewReminderRepository(db *gorm.DB) repository.ReminderRepository {
	return &reminderRepository{
		db: db,
	}
}

// dueReminderRow is a reminder joined with the task columns dispatch needs.
type dueReminderRow struct {
	ID              uuid.UUID
	TaskID          uuid.UUID
	FireAt          time.Time
	Timezone        string
	Channel         string
	RepeatRule      string
	RepeatEvery     int
	Active          bool
	LastTriggeredAt *time.Time
	ExpiresAt       *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
	UserID          uuid.UUID
	TaskTitle       string
	TaskStatus      string
}

// ListByTask retrieves a task's reminders ordered by fire time.
func (repo *reminderRepository) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*entity.Reminder, error) {
	var reminderModels []*model.TaskReminderModel

	if err := repo.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Order("fire_at ASC, created_at ASC").
		Find(&reminderModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list reminders by task")
	}

	reminders := make([]*entity.Reminder, 0, len(reminderModels))
	for _, reminderM := range reminderModels {
		reminders = append(reminders, toReminderDomain(reminderM))
	}

	return reminders, nil
}

// Create persists new reminders and copies the generated ids back.
func (repo *reminderRepository) Create(ctx context.Context, reminders []*entity.Reminder) error {
	if len(reminders) == 0 {
		return nil
	}

	reminderModels := make([]*model.TaskReminderModel, 0, len(reminders))
	for _, r := range reminders {
		reminderModels = append(reminderModels, fromReminderDomain(r))
	}

	if err := repo.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(&reminderModels).Error; err != nil {
		switch classifyConstraint(err) {
		case foreignKeyViolation:
			return domainerrors.ErrTaskNotFound.WrapMessage("reminder references a missing task")
		case checkViolation:
			return domainerrors.ErrInvalidReminder.WrapMessage("reminder violates a check constraint")
		default:
			return domainerrors.NewDatabaseExecuteError(err, "failed to create reminders")
		}
	}

	for i, reminderM := range reminderModels {
		reminders[i].ID = reminderM.ID
		reminders[i].CreatedAt = reminderM.CreatedAt
		reminders[i].UpdatedAt = reminderM.UpdatedAt
	}

	return nil
}

// Update persists every mutable field of a reminder.
func (repo *reminderRepository) Update(ctx context.Context, reminder *entity.Reminder) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskReminderModel{}).
		Where("id = ? AND task_id = ?", reminder.ID, reminder.TaskID).
		Updates(map[string]any{
			"fire_at":           reminder.FireAt.UTC(),
			"timezone":          reminder.Timezone,
			"channel":           string(reminder.Channel),
			"repeat_rule":       string(reminder.RepeatRule),
			"repeat_every":      reminder.RepeatEvery,
			"active":            reminder.Active,
			"last_triggered_at": reminder.LastTriggeredAt,
			"expires_at":        reminder.ExpiresAt,
		})

	if result.Error != nil {
		if classifyConstraint(result.Error) == checkViolation {
			return domainerrors.ErrInvalidReminder.WrapMessage("reminder violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update reminder")
	}

	if result.RowsAffected == 0 {
		return errors.Errorf("reminder %s of task %s vanished during update", reminder.ID, reminder.TaskID)
	}

	return nil
}

// DeleteByIDs removes reminders of a task.
func (repo *reminderRepository) DeleteByIDs(ctx context.Context, taskID uuid.UUID, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	if err := repo.db.WithContext(ctx).
		Where("task_id = ? AND id IN ?", taskID, ids).
		Delete(&model.TaskReminderModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete reminders")
	}

	return nil
}

// FindDue selects the reminders of one dispatch cycle. Rows are locked so an
// overlapping cycle on another connection skips them instead of redelivering.
func (repo *reminderRepository) FindDue(ctx context.Context, query repository.DueQuery) ([]*entity.DueReminder, error) {
	statuses := make([]string, 0, len(query.Statuses))
	for _, s := range query.Statuses {
		statuses = append(statuses, string(s))
	}
	if len(statuses) == 0 {
		return []*entity.DueReminder{}, nil
	}

	var rows []*dueReminderRow
	if err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Table("task_reminders AS r").
		Select("r.id, r.task_id, r.fire_at, r.timezone, r.channel, r.repeat_rule, r.repeat_every, r.active, "+
			"r.last_triggered_at, r.expires_at, r.created_at, r.updated_at, "+
			"t.user_id AS user_id, t.title AS task_title, t.status AS task_status").
		Joins("JOIN tasks AS t ON t.id = r.task_id AND t.deleted_at IS NULL").
		Where("r.active = ?", true).
		Where("r.fire_at BETWEEN ? AND ?", query.From(), query.To()).
		Where("r.expires_at IS NULL OR r.expires_at >= ?", query.Now).
		Where("r.last_triggered_at IS NULL OR r.last_triggered_at < r.fire_at").
		Where("t.status IN ?", statuses).
		Order("r.fire_at ASC, r.id ASC").
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate, Table: clause.Table{Name: "r"}, Options: clause.LockingOptionsSkipLocked}).
		Scan(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "failed to select due reminders")
	}

	due := make([]*entity.DueReminder, 0, len(rows))
	for _, row := range rows {
		due = append(due, &entity.DueReminder{
			Reminder: &entity.Reminder{
				ID:              row.ID,
				TaskID:          row.TaskID,
				FireAt:          row.FireAt.UTC(),
				Timezone:        row.Timezone,
				Channel:         entity.Channel(row.Channel),
				RepeatRule:      entity.RepeatRule(row.RepeatRule),
				RepeatEvery:     row.RepeatEvery,
				Active:          row.Active,
				LastTriggeredAt: utcPtr(row.LastTriggeredAt),
				ExpiresAt:       utcPtr(row.ExpiresAt),
				CreatedAt:       row.CreatedAt,
				UpdatedAt:       row.UpdatedAt,
			},
			UserID:     row.UserID,
			TaskTitle:  row.TaskTitle,
			TaskStatus: entity.TaskStatus(row.TaskStatus),
		})
	}

	return due, nil
}

// SaveDispatchState persists the fields a dispatch cycle advances, together.
func (repo *reminderRepository) SaveDispatchState(ctx context.Context, reminder *entity.Reminder) error {
	result := repo.db.WithContext(ctx).
		Model(&model.TaskReminderModel{}).
		Where("id = ?", reminder.ID).
		Updates(map[string]any{
			"fire_at":           reminder.FireAt.UTC(),
			"active":            reminder.Active,
			"last_triggered_at": reminder.LastTriggeredAt,
		})

	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to save reminder dispatch state")
	}

	return nil
}

// --- Mapper Functions ---

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()

	return &v
}

// toReminderDomain converts a GORM TaskReminderModel to a domain Reminder entity.
func toReminderDomain(data *model.TaskReminderModel) *entity.Reminder {
	if data == nil {
		return nil
	}

	return &entity.Reminder{
		ID:              data.ID,
		TaskID:          data.TaskID,
		FireAt:          data.FireAt.UTC(),
		Timezone:        data.Timezone,
		Channel:         entity.Channel(data.Channel),
		RepeatRule:      entity.RepeatRule(data.RepeatRule),
		RepeatEvery:     data.RepeatEvery,
		Active:          data.Active,
		LastTriggeredAt: utcPtr(data.LastTriggeredAt),
		ExpiresAt:       utcPtr(data.ExpiresAt),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

// fromReminderDomain converts a domain Reminder entity to a GORM TaskReminderModel.
func fromReminderDomain(data *entity.Reminder) *model.TaskReminderModel {
	if data == nil {
		return nil
	}

	return &model.TaskReminderModel{
		ID:              data.ID,
		TaskID:          data.TaskID,
		FireAt:          data.FireAt.UTC(),
		Timezone:        data.Timezone,
		Channel:         string(data.Channel),
		RepeatRule:      string(data.RepeatRule),
		RepeatEvery:     data.RepeatEvery,
		Active:          data.Active,
		LastTriggeredAt: utcPtr(data.LastTriggeredAt),
		ExpiresAt:       utcPtr(data.ExpiresAt),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}
