package usecase

import (
	"context"

	"github.com/google/uuid"

	"chime/internal/domain/entity"
)

// RegisterDeviceInput represents a device registration request
type RegisterDeviceInput struct {
	Token       string   `json:"token" validate:"required,max=4096"`
	Platform    string   `json:"platform" validate:"required,oneof=android ios web"`
	Channels    []string `json:"channels" validate:"omitempty,dive,oneof=push local email"`
	Locale      string   `json:"locale" validate:"omitempty,max=35"`
	Timezone    string   `json:"timezone" validate:"omitempty,max=64"`
	AppVersion  string   `json:"app_version" validate:"omitempty,max=32"`
	PushEnabled *bool    `json:"push_enabled"`
}

// UpdateDeviceInput holds the device preferences to change. Nil fields are kept.
type UpdateDeviceInput struct {
	Channels    []string `json:"channels" validate:"omitempty,dive,oneof=push local email"`
	PushEnabled *bool    `json:"push_enabled"`
	Locale      *string  `json:"locale" validate:"omitempty,max=35"`
	Timezone    *string  `json:"timezone" validate:"omitempty,max=64"`
	AppVersion  *string  `json:"app_version" validate:"omitempty,max=32"`
}

// DeviceUsecase defines the interface for device directory use cases
type DeviceUsecase interface {
	// RegisterDevice upserts a device by token and binds it to the user
	RegisterDevice(ctx context.Context, userID uuid.UUID, input *RegisterDeviceInput) (*entity.UserDevice, error)

	// UpdateDevice changes the preferences of one of the user's devices
	UpdateDevice(ctx context.Context, userID uuid.UUID, token string, input *UpdateDeviceInput) (*entity.UserDevice, error)

	// ListDevices retrieves the user's devices, newest first
	ListDevices(ctx context.Context, userID uuid.UUID) ([]*entity.UserDevice, error)

	// UnregisterDevice permanently removes one of the user's devices
	UnregisterDevice(ctx context.Context, userID uuid.UUID, token string) error
}
