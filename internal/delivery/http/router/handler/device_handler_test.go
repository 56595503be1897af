package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chime/internal/domain/entity"
	domainerrors "chime/internal/domain/errors"
	mockUC "chime/internal/mocks/usecase"
	"chime/internal/usecase"
)

func createTestDeviceHandler(t *testing.T) (*DeviceHandler, *mockUC.MockDeviceUsecase) {
	deviceUC := mockUC.NewMockDeviceUsecase(t)

	return NewDeviceHandler(DeviceHandlerParams{DeviceUC: deviceUC, Logger: discardLogger()}), deviceUC
}

func TestDeviceHandler_RegisterDevice(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)
	userID := uuid.New()

	deviceUC.EXPECT().
		RegisterDevice(mock.Anything, userID, mock.MatchedBy(func(in *usecase.RegisterDeviceInput) bool {
			return in.Token == "tok-1" && in.Platform == "ios" && len(in.Channels) == 2
		})).
		Return(&entity.UserDevice{ID: uuid.New(), UserID: userID, Token: "tok-1", Platform: entity.PlatformIOS}, nil).
		Once()

	c, rec := newTestContext(http.MethodPost, "/notifications/devices",
		`{"token":"tok-1","platform":"ios","channels":["push","local"]}`, &userID)

	require.NoError(t, h.RegisterDevice(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var device entity.UserDevice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &device))
	assert.Equal(t, "tok-1", device.Token)
}

func TestDeviceHandler_RegisterDevice_ValidationFailed(t *testing.T) {
	h, _ := createTestDeviceHandler(t)
	userID := uuid.New()

	c, rec := newTestContext(http.MethodPost, "/notifications/devices", `{"token":"tok-1","platform":"symbian"}`, &userID)

	require.NoError(t, h.RegisterDevice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, string(env.Error.Details), "platform")
}

func TestDeviceHandler_RegisterDevice_MalformedBody(t *testing.T) {
	h, _ := createTestDeviceHandler(t)
	userID := uuid.New()

	c, rec := newTestContext(http.MethodPost, "/notifications/devices", `{"token":`, &userID)

	require.NoError(t, h.RegisterDevice(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_INPUT", decodeEnvelope(t, rec).Error.Code)
}

func TestDeviceHandler_RequiresUser(t *testing.T) {
	h, _ := createTestDeviceHandler(t)

	c, rec := newTestContext(http.MethodGet, "/notifications/devices", "", nil)

	require.NoError(t, h.ListDevices(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestDeviceHandler_ListDevices(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)
	userID := uuid.New()

	deviceUC.EXPECT().ListDevices(mock.Anything, userID).
		Return([]*entity.UserDevice{{Token: "a"}, {Token: "b"}}, nil).Once()

	c, rec := newTestContext(http.MethodGet, "/notifications/devices", "", &userID)

	require.NoError(t, h.ListDevices(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var devices []entity.UserDevice
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &devices))
	assert.Len(t, devices, 2)
}

func TestDeviceHandler_UpdateDevice_NotFound(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)
	userID := uuid.New()

	deviceUC.EXPECT().UpdateDevice(mock.Anything, userID, "tok-9", mock.Anything).
		Return(nil, domainerrors.ErrDeviceNotFound).Once()

	c, rec := newTestContext(http.MethodPatch, "/notifications/devices/tok-9", `{"push_enabled":false}`, &userID)
	c.SetParamNames("token")
	c.SetParamValues("tok-9")

	require.NoError(t, h.UpdateDevice(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "DEVICE_NOT_FOUND", decodeEnvelope(t, rec).Error.Code)
}

func TestDeviceHandler_UnregisterDevice(t *testing.T) {
	h, deviceUC := createTestDeviceHandler(t)
	userID := uuid.New()

	deviceUC.EXPECT().UnregisterDevice(mock.Anything, userID, "tok-1").Return(nil).Once()

	c, rec := newTestContext(http.MethodDelete, "/notifications/devices/tok-1", "", &userID)
	c.SetParamNames("token")
	c.SetParamValues("tok-1")

	require.NoError(t, h.UnregisterDevice(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
