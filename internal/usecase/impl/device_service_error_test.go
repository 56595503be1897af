package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	"chime/internal/domain/repository"
	"chime/internal/usecase"
)

func TestDeviceService_RegisterDevice_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   *usecase.RegisterDeviceInput
		wantErr error
	}{
		{
			name:    "blank token",
			input:   &usecase.RegisterDeviceInput{Token: "  ", Platform: "ios"},
			wantErr: domainerrors.ErrDeviceTokenRequired,
		},
		{
			name:    "unknown platform",
			input:   &usecase.RegisterDeviceInput{Token: "tok", Platform: "symbian"},
			wantErr: domainerrors.ErrInvalidPlatform,
		},
		{
			name:    "unknown channel",
			input:   &usecase.RegisterDeviceInput{Token: "tok", Platform: "web", Channels: []string{"push", "sms"}},
			wantErr: domainerrors.ErrInvalidChannel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestDeviceService(t)

			_, err := fx.service.RegisterDevice(context.Background(), uuid.New(), tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDeviceService_RegisterDevice_RepositoryError(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	fx.deviceRepo.EXPECT().
		UpsertByToken(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Return(false, errors.New("database error"))

	_, err := fx.service.RegisterDevice(ctx, uuid.New(), &usecase.RegisterDeviceInput{Token: "tok", Platform: "ios"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to upsert device")
}

func TestDeviceService_UpdateDevice_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.deviceRepo.EXPECT().
		FindByUserAndToken(ctx, userID, "missing").
		Return(nil, repository.ErrDeviceNotFound)

	_, err := fx.service.UpdateDevice(ctx, userID, "missing", &usecase.UpdateDeviceInput{})
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestDeviceService_UpdateDevice_InvalidChannel(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.deviceRepo.EXPECT().
		FindByUserAndToken(ctx, userID, "tok").
		Return(&entity.UserDevice{UserID: userID, Token: "tok"}, nil)

	_, err := fx.service.UpdateDevice(ctx, userID, "tok", &usecase.UpdateDeviceInput{Channels: []string{"pager"}})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidChannel)
}

func TestDeviceService_UpdateDevice_VanishedDuringUpdate(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.deviceRepo.EXPECT().
		FindByUserAndToken(ctx, userID, "tok").
		Return(&entity.UserDevice{UserID: userID, Token: "tok"}, nil)
	fx.deviceRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.UserDevice")).
		Return(repository.ErrDeviceNotFound)

	_, err := fx.service.UpdateDevice(ctx, userID, "tok", &usecase.UpdateDeviceInput{PushEnabled: boolPtr(true)})
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestDeviceService_ListDevices_Error(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.deviceRepo.EXPECT().
		FindDevicesByUser(ctx, userID).
		Return(nil, errors.New("database error"))

	_, err := fx.service.ListDevices(ctx, userID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find devices by user")
}

func TestDeviceService_UnregisterDevice_NotFound(t *testing.T) {
	fx := createTestDeviceService(t)

	ctx := context.Background()
	userID := uuid.New()
	fx.deviceRepo.EXPECT().
		DeleteByUserAndToken(ctx, userID, "missing").
		Return(repository.ErrDeviceNotFound)

	err := fx.service.UnregisterDevice(ctx, userID, "missing")
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestDeviceService_UnregisterDevice_BlankToken(t *testing.T) {
	fx := createTestDeviceService(t)

	err := fx.service.UnregisterDevice(context.Background(), uuid.New(), " ")
	assert.ErrorIs(t, err, domainerrors.ErrDeviceTokenRequired)
}
