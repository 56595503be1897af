package impl

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/domain/schedule"
	"chime/internal/domain/service"
	mockRepo "chime/internal/mocks/repository"
	"chime/internal/usecase"
)

type reminderServiceFixtures struct {
	service   usecase.ReminderUsecase
	txManager *mockRepo.MockTransactionManager
}

func createTestReminderService(t *testing.T) reminderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	service := NewReminderService(txManager, schedule.NewNormalizer("UTC"), service.FixedClock(testNow), discardLogger())

	return reminderServiceFixtures{
		service:   service,
		txManager: txManager,
	}
}

func ownedTask(repos txRepos, userID, taskID uuid.UUID) {
	repos.tasks.EXPECT().
		FindByID(mock.Anything, taskID).
		Return(&entity.Task{ID: taskID, UserID: userID, Title: "Pay rent", Status: entity.TaskStatusPending}, nil)
}

func TestReminderService_ReplaceTaskReminders_CreatesNormalisedRows(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()
	expires := "2025-03-01T00:00"
	inputs := []usecase.ReminderInput{{
		RemindAt:   "2025-01-01T09:00",
		Timezone:   "Asia/Shanghai",
		RepeatRule: "weekly",
		ExpiresAt:  &expires,
	}}

	var created []*entity.Reminder
	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(nil, nil).Once()
		repos.reminders.EXPECT().
			Create(ctx, mock.AnythingOfType("[]*entity.Reminder")).
			Run(func(_ context.Context, reminders []*entity.Reminder) {
				created = reminders
			}).
			Return(nil)
		repos.reminders.EXPECT().
			ListByTask(ctx, taskID).
			RunAndReturn(func(context.Context, uuid.UUID) ([]*entity.Reminder, error) {
				return created, nil
			}).
			Once()
	})

	reminders, err := fx.service.ReplaceTaskReminders(ctx, userID, taskID, inputs)
	require.NoError(t, err)
	require.Len(t, reminders, 1)

	r := reminders[0]
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, taskID, r.TaskID)
	assert.Equal(t, time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC), r.FireAt)
	assert.Equal(t, "Asia/Shanghai", r.Timezone)
	assert.Equal(t, entity.ChannelPush, r.Channel)
	assert.Equal(t, entity.RepeatWeekly, r.RepeatRule)
	assert.Equal(t, 1, r.RepeatEvery)
	assert.True(t, r.Active)
	require.NotNil(t, r.ExpiresAt)
	assert.Equal(t, time.Date(2025, 2, 28, 16, 0, 0, 0, time.UTC), *r.ExpiresAt)
}

func TestReminderService_ReplaceTaskReminders_IdenticalPayloadReusesRow(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()
	triggered := time.Date(2024, 12, 25, 1, 0, 0, 0, time.UTC)
	existing := &entity.Reminder{
		ID:              uuid.New(),
		TaskID:          taskID,
		FireAt:          time.Date(2025, 1, 1, 1, 0, 0, 0, time.UTC),
		Timezone:        "Asia/Shanghai",
		Channel:         entity.ChannelLocal,
		RepeatRule:      entity.RepeatDaily,
		RepeatEvery:     2,
		Active:          true,
		LastTriggeredAt: &triggered,
	}
	inputs := []usecase.ReminderInput{{
		RemindAt:    "2025-01-01T09:00",
		Timezone:    "Asia/Shanghai",
		Channel:     "local",
		RepeatRule:  "daily",
		RepeatEvery: 2,
	}}

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return([]*entity.Reminder{existing}, nil).Twice()
		repos.reminders.EXPECT().Update(ctx, existing).Return(nil)
	})

	reminders, err := fx.service.ReplaceTaskReminders(ctx, userID, taskID, inputs)
	require.NoError(t, err)
	require.Len(t, reminders, 1)
	assert.Equal(t, existing.ID, reminders[0].ID)
	assert.Equal(t, &triggered, reminders[0].LastTriggeredAt)
	assert.Equal(t, testNow, reminders[0].UpdatedAt)
}

func TestReminderService_ReplaceTaskReminders_EmptySetDeletesAll(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()
	first := &entity.Reminder{ID: uuid.New(), TaskID: taskID, Channel: entity.ChannelPush, RepeatRule: entity.RepeatNone, RepeatEvery: 1}
	second := &entity.Reminder{ID: uuid.New(), TaskID: taskID, Channel: entity.ChannelEmail, RepeatRule: entity.RepeatNone, RepeatEvery: 1}

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return([]*entity.Reminder{first, second}, nil).Once()
		repos.reminders.EXPECT().DeleteByIDs(ctx, taskID, []uuid.UUID{first.ID, second.ID}).Return(nil)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(nil, nil).Once()
	})

	reminders, err := fx.service.ReplaceTaskReminders(ctx, userID, taskID, nil)
	require.NoError(t, err)
	assert.Empty(t, reminders)
}

func TestReminderService_ReplaceTaskReminders_UnknownZoneDegradesToUTC(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(nil, nil).Once()
		repos.reminders.EXPECT().
			Create(ctx, mock.MatchedBy(func(reminders []*entity.Reminder) bool {
				return len(reminders) == 1 &&
					reminders[0].Timezone == "UTC" &&
					reminders[0].FireAt.Equal(time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC))
			})).
			Return(nil)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(nil, nil).Once()
	})

	_, err := fx.service.ReplaceTaskReminders(ctx, userID, taskID, []usecase.ReminderInput{{
		RemindAt: "2025-01-01 09:00",
		Timezone: "Mars/Olympus_Mons",
	}})
	require.NoError(t, err)
}

func TestReminderService_ReplaceTaskReminders_TaskNotFound(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	taskID := uuid.New()

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		repos.tasks.EXPECT().FindByID(ctx, taskID).Return(nil, repository.ErrTaskNotFound)
	})

	_, err := fx.service.ReplaceTaskReminders(ctx, uuid.New(), taskID, nil)
	assert.ErrorIs(t, err, domainerrors.ErrTaskNotFound)
}

func TestReminderService_ReplaceTaskReminders_ForeignTask(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	taskID := uuid.New()

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, uuid.New(), taskID)
	})

	_, err := fx.service.ReplaceTaskReminders(ctx, uuid.New(), taskID, []usecase.ReminderInput{{RemindAt: "2025-01-01T09:00"}})
	assert.ErrorIs(t, err, domainerrors.ErrTaskOwnershipViolation)
}

func TestReminderService_ReplaceTaskReminders_InvalidInput(t *testing.T) {
	tests := []struct {
		name    string
		input   usecase.ReminderInput
		wantErr error
	}{
		{name: "unknown channel", input: usecase.ReminderInput{RemindAt: "2025-01-01T09:00", Channel: "sms"}, wantErr: domainerrors.ErrInvalidChannel},
		{name: "unknown rule", input: usecase.ReminderInput{RemindAt: "2025-01-01T09:00", RepeatRule: "yearly"}, wantErr: domainerrors.ErrInvalidReminder},
		{name: "repeat every too large", input: usecase.ReminderInput{RemindAt: "2025-01-01T09:00", RepeatEvery: 400}, wantErr: domainerrors.ErrInvalidReminder},
		{name: "negative repeat every", input: usecase.ReminderInput{RemindAt: "2025-01-01T09:00", RepeatEvery: -1}, wantErr: domainerrors.ErrInvalidReminder},
		{name: "unparsable time", input: usecase.ReminderInput{RemindAt: "tomorrow"}, wantErr: domainerrors.ErrInvalidReminder},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestReminderService(t)

			_, err := fx.service.ReplaceTaskReminders(context.Background(), uuid.New(), uuid.New(), []usecase.ReminderInput{tt.input})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReminderService_ReplaceTaskReminders_CreateFailureAborts(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(nil, nil).Once()
		repos.reminders.EXPECT().Create(ctx, mock.Anything).Return(errors.New("connection refused"))
	})

	_, err := fx.service.ReplaceTaskReminders(ctx, userID, taskID, []usecase.ReminderInput{{RemindAt: "2025-01-01T09:00"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create reminders")
}

func TestReminderService_ListTaskReminders(t *testing.T) {
	fx := createTestReminderService(t)

	ctx := context.Background()
	userID, taskID := uuid.New(), uuid.New()
	stored := []*entity.Reminder{{ID: uuid.New(), TaskID: taskID}}

	expectTransaction(t, fx.txManager, func(repos txRepos) {
		ownedTask(repos, userID, taskID)
		repos.reminders.EXPECT().ListByTask(ctx, taskID).Return(stored, nil)
	})

	reminders, err := fx.service.ListTaskReminders(ctx, userID, taskID)
	require.NoError(t, err)
	assert.Equal(t, stored, reminders)
}
