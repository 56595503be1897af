package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/domain/service"
	"chime/internal/errors"
	"chime/internal/usecase"
	"chime/internal/util"
)

type deviceService struct {
	deviceRepo repository.DeviceRepository
	clock      service.Clock
	logger     *slog.Logger
}

// NewDeviceService creates a new device service instance
func NewDeviceService(deviceRepo repository.DeviceRepository, clock service.Clock, logger *slog.Logger) usecase.DeviceUsecase {
	return &deviceService{
		deviceRepo: deviceRepo,
		clock:      clock,
		logger:     logger,
	}
}

// RegisterDevice upserts the device by token. A token registered before, even
// by another user or disabled after a delivery failure, is taken over.
func (s *deviceService) RegisterDevice(ctx context.Context, userID uuid.UUID, input *usecase.RegisterDeviceInput) (*entity.UserDevice, error) {
	token := strings.TrimSpace(input.Token)
	if token == "" {
		return nil, domainerrors.ErrDeviceTokenRequired
	}

	platform := entity.Platform(strings.ToLower(strings.TrimSpace(input.Platform)))
	if !platform.IsValid() {
		return nil, domainerrors.ErrInvalidPlatform.WithDetails(input.Platform)
	}

	channels, err := parseChannels(input.Channels)
	if err != nil {
		return nil, err
	}

	pushEnabled := true
	if input.PushEnabled != nil {
		pushEnabled = *input.PushEnabled
	}

	now := s.clock.Now()
	device := &entity.UserDevice{
		ID:         uuid.New(),
		UserID:     userID,
		Token:      token,
		Platform:   platform,
		Channels:   channels.Normalize(),
		Locale:     strings.TrimSpace(input.Locale),
		Timezone:   strings.TrimSpace(input.Timezone),
		AppVersion: strings.TrimSpace(input.AppVersion),
		IsActive:   pushEnabled,
		LastSeenAt: now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.deviceRepo.UpsertByToken(ctx, device)
	if err != nil {
		return nil, errors.Wrap(err, "failed to upsert device")
	}

	s.logger.Info("Device registered",
		slog.String("user_id", userID.String()),
		slog.String("token", util.MaskToken(token)),
		slog.String("platform", string(platform)),
		slog.Bool("created", created),
	)

	return device, nil
}

// UpdateDevice changes the preferences of one of the user's devices
func (s *deviceService) UpdateDevice(ctx context.Context, userID uuid.UUID, token string, input *usecase.UpdateDeviceInput) (*entity.UserDevice, error) {
	device, err := s.findOwnedDevice(ctx, userID, token)
	if err != nil {
		return nil, err
	}

	patch := &entity.DevicePatch{
		PushEnabled: input.PushEnabled,
		Locale:      trimmed(input.Locale),
		Timezone:    trimmed(input.Timezone),
		AppVersion:  trimmed(input.AppVersion),
	}
	if input.Channels != nil {
		channels, err := parseChannels(input.Channels)
		if err != nil {
			return nil, err
		}
		patch.Channels = channels.Normalize()
	}

	patch.Apply(device)
	device.LastSeenAt = s.clock.Now()

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to update device")
	}

	return device, nil
}

// ListDevices retrieves the user's devices, newest first
func (s *deviceService) ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error) {
	devices, err := s.deviceRepo.FindDevicesByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find devices by user")
	}

	return devices, nil
}

// UnregisterDevice permanently removes one of the user's devices
func (s *deviceService) UnregisterDevice(ctx context.Context, userID uuid.UUID, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return domainerrors.ErrDeviceTokenRequired
	}

	if err := s.deviceRepo.DeleteByUserAndToken(ctx, userID, token); err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return domainerrors.ErrDeviceNotFound
		}

		return errors.Wrap(err, "failed to delete device")
	}

	s.logger.Info("Device unregistered",
		slog.String("user_id", userID.String()),
		slog.String("token", util.MaskToken(token)),
	)

	return nil
}

func (s *deviceService) findOwnedDevice(ctx context.Context, userID uuid.UUID, token string) (*entity.UserDevice, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domainerrors.ErrDeviceTokenRequired
	}

	device, err := s.deviceRepo.FindByUserAndToken(ctx, userID, token)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound
		}

		return nil, errors.Wrap(err, "failed to find device by token")
	}

	return device, nil
}

func parseChannels(values []string) (entity.Channels, error) {
	channels := make(entity.Channels, 0, len(values))
	for _, v := range values {
		channel := entity.Channel(strings.ToLower(strings.TrimSpace(v)))
		if !channel.IsValid() {
			return nil, domainerrors.ErrInvalidChannel.WithDetails(v)
		}
		channels = append(channels, channel)
	}

	return channels, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)

	return &v
}
