package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	deliverycontext "chime/internal/delivery/context"
	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/domain/schedule"
	"chime/internal/domain/service"
	"chime/internal/errors"
	"chime/internal/usecase"
)

const maxRepeatEvery = 365

type reminderService struct {
	txManager repository.TransactionManager
	zones     *schedule.Normalizer
	clock     service.Clock
	logger    *slog.Logger
}

// NewReminderService creates a new reminder service instance
func NewReminderService(
	txManager repository.TransactionManager,
	zones *schedule.Normalizer,
	clock service.Clock,
	logger *slog.Logger,
) usecase.ReminderUsecase {
	return &reminderService{
		txManager: txManager,
		zones:     zones,
		clock:     clock,
		logger:    logger,
	}
}

func (s *reminderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// ReplaceTaskReminders reconciles the task's reminders with inputs inside one transaction.
func (s *reminderService) ReplaceTaskReminders(ctx context.Context, userID, taskID uuid.UUID, inputs []usecase.ReminderInput) ([]*entity.Reminder, error) {
	drafts := make([]entity.ReminderDraft, 0, len(inputs))
	for i := range inputs {
		draft, err := s.buildDraft(&inputs[i])
		if err != nil {
			return nil, err
		}
		drafts = append(drafts, draft)
	}

	var reminders []*entity.Reminder
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := checkTaskOwnership(ctx, repoFactory.NewTaskRepository(), userID, taskID); err != nil {
			return err
		}

		reminderRepo := repoFactory.NewReminderRepository()
		existing, err := reminderRepo.ListByTask(ctx, taskID)
		if err != nil {
			return errors.Wrap(err, "failed to list task reminders")
		}

		plan := schedule.PlanReconciliation(taskID, existing, drafts)
		if err := s.applyPlan(ctx, reminderRepo, taskID, &plan); err != nil {
			return err
		}

		s.log(ctx).Info("Task reminders reconciled",
			slog.String("task_id", taskID.String()),
			slog.Int("created", len(plan.Create)),
			slog.Int("updated", len(plan.Update)),
			slog.Int("deleted", len(plan.Delete)),
		)

		if plan.Empty() {
			reminders = existing

			return nil
		}

		reminders, err = reminderRepo.ListByTask(ctx, taskID)
		if err != nil {
			return errors.Wrap(err, "failed to reload task reminders")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reminders, nil
}

// ListTaskReminders retrieves the reminders of a task owned by the user
func (s *reminderService) ListTaskReminders(ctx context.Context, userID, taskID uuid.UUID) ([]*entity.Reminder, error) {
	var reminders []*entity.Reminder
	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := checkTaskOwnership(ctx, repoFactory.NewTaskRepository(), userID, taskID); err != nil {
			return err
		}

		var err error
		reminders, err = repoFactory.NewReminderRepository().ListByTask(ctx, taskID)
		if err != nil {
			return errors.Wrap(err, "failed to list task reminders")
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return reminders, nil
}

func (s *reminderService) applyPlan(ctx context.Context, reminderRepo repository.ReminderRepository, taskID uuid.UUID, plan *schedule.ReconcilePlan) error {
	now := s.clock.Now()

	if len(plan.Delete) > 0 {
		ids := make([]uuid.UUID, 0, len(plan.Delete))
		for _, r := range plan.Delete {
			ids = append(ids, r.ID)
		}
		if err := reminderRepo.DeleteByIDs(ctx, taskID, ids); err != nil {
			return errors.Wrap(err, "failed to delete reminders")
		}
	}

	for _, r := range plan.Update {
		r.UpdatedAt = now
		if err := reminderRepo.Update(ctx, r); err != nil {
			return errors.Wrap(err, "failed to update reminder")
		}
	}

	if len(plan.Create) > 0 {
		for _, r := range plan.Create {
			r.ID = uuid.New()
			r.CreatedAt = now
			r.UpdatedAt = now
		}
		if err := reminderRepo.Create(ctx, plan.Create); err != nil {
			return errors.Wrap(err, "failed to create reminders")
		}
	}

	return nil
}

// buildDraft validates one input and normalises its times to UTC.
func (s *reminderService) buildDraft(input *usecase.ReminderInput) (entity.ReminderDraft, error) {
	channel := entity.ChannelPush
	if v := strings.TrimSpace(input.Channel); v != "" {
		channel = entity.Channel(strings.ToLower(v))
		if !channel.IsValid() {
			return entity.ReminderDraft{}, domainerrors.ErrInvalidChannel.WithDetails(input.Channel)
		}
	}

	rule := entity.RepeatNone
	if v := strings.TrimSpace(input.RepeatRule); v != "" {
		rule = entity.RepeatRule(strings.ToLower(v))
		if !rule.IsValid() {
			return entity.ReminderDraft{}, domainerrors.ErrInvalidReminder.WithDetails("unknown repeat_rule " + input.RepeatRule)
		}
	}

	every := input.RepeatEvery
	if every == 0 {
		every = 1
	}
	if every < 1 || every > maxRepeatEvery {
		return entity.ReminderDraft{}, domainerrors.ErrInvalidReminder.WithDetails("repeat_every must be between 1 and 365")
	}

	if len(input.Timezone) > 64 {
		return entity.ReminderDraft{}, domainerrors.ErrInvalidReminder.WithDetails("timezone is too long")
	}

	fireAt, zone, err := s.zones.ParseLocal(input.RemindAt, input.Timezone)
	if err != nil {
		return entity.ReminderDraft{}, domainerrors.ErrInvalidReminder.WithDetails("remind_at: " + err.Error())
	}

	var expiresAt *time.Time
	if input.ExpiresAt != nil && strings.TrimSpace(*input.ExpiresAt) != "" {
		expires, _, err := s.zones.ParseLocal(*input.ExpiresAt, input.Timezone)
		if err != nil {
			return entity.ReminderDraft{}, domainerrors.ErrInvalidReminder.WithDetails("expires_at: " + err.Error())
		}
		expiresAt = &expires
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	return entity.ReminderDraft{
		ID:          input.ID,
		FireAt:      fireAt,
		Timezone:    zone,
		Channel:     channel,
		RepeatRule:  rule,
		RepeatEvery: every,
		Active:      active,
		ExpiresAt:   expiresAt,
	}, nil
}

func checkTaskOwnership(ctx context.Context, taskRepo repository.TaskRepository, userID, taskID uuid.UUID) error {
	task, err := taskRepo.FindByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound
		}

		return errors.Wrap(err, "failed to find task")
	}

	if task.UserID != userID {
		return domainerrors.ErrTaskOwnershipViolation
	}

	return nil
}
