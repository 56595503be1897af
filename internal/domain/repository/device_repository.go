// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"chime/internal/domain/entity"
)

// Domain-specific errors for device persistence.
var (
	// ErrDeviceNotFound is returned when a device is not found.
	ErrDeviceNotFound = errors.New("device not found")
)

// DeviceRepository is the directory of push endpoints per user.
type DeviceRepository interface {
	// UpsertByToken inserts the device or updates the row already holding its token,
	// reviving it when it had been disabled. It reports whether a row was created.
	UpsertByToken(ctx context.Context, device *entity.UserDevice) (created bool, err error)

	// FindByUserAndToken retrieves a user's device by token.
	FindByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*entity.UserDevice, error)

	// FindDevicesByUser retrieves all devices for a user, newest first.
	FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// FindActiveDevicesByUsers retrieves active devices keyed by owning user.
	FindActiveDevicesByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]*entity.UserDevice, error)

	// Update persists the mutable fields of a device.
	Update(ctx context.Context, device *entity.UserDevice) error

	// DeleteByUserAndToken permanently removes a user's device.
	DeleteByUserAndToken(ctx context.Context, userID uuid.UUID, token string) error

	// DisableByTokens soft-deletes devices whose tokens the provider rejected permanently.
	DisableByTokens(ctx context.Context, tokens []string) (int64, error)
}
