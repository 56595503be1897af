package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/infra/persistence/model"
)

// deviceRepository implements the repository.DeviceRepository interface.
type deviceRepository struct {
	db *gorm.DB
}

// NewDeviceRepository is the constructor for deviceRepository.
func NewDeviceRepository(db *gorm.DB) repository.DeviceRepository {
	return &deviceRepository{
		db: db,
	}
}

// UpsertByToken inserts the device or takes over the row holding the same token,
// including rows soft-deleted after a permanent delivery failure.
func (repo *deviceRepository) UpsertByToken(ctx context.Context, device *entity.UserDevice) (bool, error) {
	var existing model.UserDeviceModel

	err := repo.db.WithContext(ctx).
		Unscoped().
		Where("token = ?", device.Token).
		Take(&existing).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		deviceM := fromDeviceDomain(device)
		if err := repo.db.WithContext(ctx).Create(deviceM).Error; err != nil {
			switch classifyConstraint(err) {
			case uniqueViolation:
				// Lost a race with a concurrent registration of the same token.
				return false, repo.overwriteByToken(ctx, device)
			case foreignKeyViolation:
				return false, domainerrors.ErrValidationFailed.WrapMessage("invalid user reference")
			default:
				return false, domainerrors.NewDatabaseExecuteError(err, "failed to create device")
			}
		}

		device.ID = deviceM.ID
		device.CreatedAt = deviceM.CreatedAt
		device.UpdatedAt = deviceM.UpdatedAt

		return true, nil
	case err != nil:
		return false, errors.Wrap(err, "failed to find device by token")
	}

	device.ID = existing.ID
	device.CreatedAt = existing.CreatedAt
	if err := repo.takeOver(ctx, device); err != nil {
		return false, err
	}

	return false, nil
}

// overwriteByToken overwrites the row holding device.Token.
func (repo *deviceRepository) overwriteByToken(ctx context.Context, device *entity.UserDevice) error {
	var existing model.UserDeviceModel
	if err := repo.db.WithContext(ctx).Unscoped().Where("token = ?", device.Token).Take(&existing).Error; err != nil {
		return errors.Wrap(err, "failed to reload device by token")
	}

	device.ID = existing.ID
	device.CreatedAt = existing.CreatedAt

	return repo.takeOver(ctx, device)
}

func (repo *deviceRepository) takeOver(ctx context.Context, device *entity.UserDevice) error {
	now := time.Now().UTC()

	result := repo.db.WithContext(ctx).
		Unscoped().
		Model(&model.UserDeviceModel{}).
		Where("id = ?", device.ID).
		Updates(map[string]any{
			"user_id":      device.UserID,
			"platform":     string(device.Platform),
			"channels":     datatypes.NewJSONSlice(device.Channels.ToStrings()),
			"locale":       device.Locale,
			"timezone":     device.Timezone,
			"app_version":  device.AppVersion,
			"is_active":    device.IsActive,
			"last_seen_at": device.LastSeenAt,
			"deleted_at":   nil,
			"updated_at":   now,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update device")
	}

	device.UpdatedAt = now

	return nil
}

// FindByUserAndToken retrieves a user's device by token.
func (repo *deviceRepository) FindByUserAndToken(ctx context.Context, userID uuid.UUID, token string) (*entity.UserDevice, error) {
	var deviceM model.UserDeviceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND token = ?", userID, token).
		Take(&deviceM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by token")
	}

	return toDeviceDomain(&deviceM), nil
}

// FindDevicesByUser retrieves all devices for a specific user (including inactive, excluding soft-deleted).
func (repo *deviceRepository) FindDevicesByUser(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	var deviceModels []*model.UserDeviceModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find devices by user")
	}

	devices := make([]*entity.UserDevice, 0, len(deviceModels))
	for _, deviceM := range deviceModels {
		devices = append(devices, toDeviceDomain(deviceM))
	}

	return devices, nil
}

// FindActiveDevicesByUsers retrieves the active devices of several users in one query.
func (repo *deviceRepository) FindActiveDevicesByUsers(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID][]*entity.UserDevice, error) {
	devices := make(map[uuid.UUID][]*entity.UserDevice, len(userIDs))
	if len(userIDs) == 0 {
		return devices, nil
	}

	var deviceModels []*model.UserDeviceModel
	if err := repo.db.WithContext(ctx).
		Where("user_id IN ? AND is_active = ?", userIDs, true).
		Order("created_at DESC").
		Find(&deviceModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active devices by users")
	}

	for _, deviceM := range deviceModels {
		devices[deviceM.UserID] = append(devices[deviceM.UserID], toDeviceDomain(deviceM))
	}

	return devices, nil
}

// Update persists the mutable fields of a device.
func (repo *deviceRepository) Update(ctx context.Context, device *entity.UserDevice) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserDeviceModel{}).
		Where("id = ?", device.ID).
		Updates(map[string]any{
			"channels":     datatypes.NewJSONSlice(device.Channels.ToStrings()),
			"locale":       device.Locale,
			"timezone":     device.Timezone,
			"app_version":  device.AppVersion,
			"is_active":    device.IsActive,
			"last_seen_at": device.LastSeenAt,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DeleteByUserAndToken permanently removes a user's device.
func (repo *deviceRepository) DeleteByUserAndToken(ctx context.Context, userID uuid.UUID, token string) error {
	result := repo.db.WithContext(ctx).
		Unscoped().
		Where("user_id = ? AND token = ?", userID, token).
		Delete(&model.UserDeviceModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete device")
	}

	if result.RowsAffected == 0 {
		return repository.ErrDeviceNotFound
	}

	return nil
}

// DisableByTokens soft-deletes the devices holding the given tokens.
func (repo *deviceRepository) DisableByTokens(ctx context.Context, tokens []string) (int64, error) {
	if len(tokens) == 0 {
		return 0, nil
	}

	result := repo.db.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&model.UserDeviceModel{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to disable devices")
	}

	return result.RowsAffected, nil
}

// --- Mapper Functions ---

// toDeviceDomain converts a GORM UserDeviceModel to a domain UserDevice entity.
func toDeviceDomain(data *model.UserDeviceModel) *entity.UserDevice {
	if data == nil {
		return nil
	}

	return &entity.UserDevice{
		ID:         data.ID,
		UserID:     data.UserID,
		Token:      data.Token,
		Platform:   entity.Platform(data.Platform),
		Channels:   entity.ChannelsFromStrings(data.Channels).Normalize(),
		Locale:     data.Locale,
		Timezone:   data.Timezone,
		AppVersion: data.AppVersion,
		IsActive:   data.IsActive,
		LastSeenAt: data.LastSeenAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

// fromDeviceDomain converts a domain UserDevice entity to a GORM UserDeviceModel.
func fromDeviceDomain(data *entity.UserDevice) *model.UserDeviceModel {
	if data == nil {
		return nil
	}

	return &model.UserDeviceModel{
		ID:         data.ID,
		UserID:     data.UserID,
		Token:      data.Token,
		Platform:   string(data.Platform),
		Channels:   datatypes.NewJSONSlice(data.Channels.ToStrings()),
		Locale:     data.Locale,
		Timezone:   data.Timezone,
		AppVersion: data.AppVersion,
		IsActive:   data.IsActive,
		LastSeenAt: data.LastSeenAt,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
