package impl

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"

	"chime/internal/domain/repository"
	mockRepo "chime/internal/mocks/repository"
)

// txRepos are the transaction-bound repositories handed to a transaction body.
type txRepos struct {
	factory   *mockRepo.MockRepositoryFactory
	reminders *mockRepo.MockReminderRepository
	devices   *mockRepo.MockDeviceRepository
	tasks     *mockRepo.MockTaskRepository
}

// expectTransaction runs the next transaction body against fresh mock
// repositories prepared by setup and returns the body's error as the commit result.
func expectTransaction(t *testing.T, txManager *mockRepo.MockTransactionManager, setup func(repos txRepos)) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			repos := txRepos{
				factory:   mockRepo.NewMockRepositoryFactory(t),
				reminders: mockRepo.NewMockReminderRepository(t),
				devices:   mockRepo.NewMockDeviceRepository(t),
				tasks:     mockRepo.NewMockTaskRepository(t),
			}
			repos.factory.EXPECT().NewReminderRepository().Return(repos.reminders).Maybe()
			repos.factory.EXPECT().NewDeviceRepository().Return(repos.devices).Maybe()
			repos.factory.EXPECT().NewTaskRepository().Return(repos.tasks).Maybe()

			setup(repos)

			return fn(repos.factory)
		}).
		Once()
}
