package notification

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

type fakeMessagingClient struct {
	mu       sync.Mutex
	messages []*messaging.MulticastMessage
	dryRuns  int
	failWith error
	perToken map[string]error
}

func (f *fakeMessagingClient) respond(message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failWith != nil {
		return nil, f.failWith
	}
	f.messages = append(f.messages, message)

	resp := &messaging.BatchResponse{}
	for _, token := range message.Tokens {
		if err := f.perToken[token]; err != nil {
			resp.FailureCount++
			resp.Responses = append(resp.Responses, &messaging.SendResponse{Error: err})

			continue
		}
		resp.SuccessCount++
		resp.Responses = append(resp.Responses, &messaging.SendResponse{Success: true, MessageID: "id-" + token})
	}

	return resp, nil
}

func (f *fakeMessagingClient) SendEachForMulticast(_ context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	return f.respond(message)
}

func (f *fakeMessagingClient) SendEachForMulticastDryRun(_ context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error) {
	f.mu.Lock()
	f.dryRuns++
	f.mu.Unlock()

	return f.respond(message)
}

func staticFactory(client messagingClient) (clientFactory, *int) {
	calls := 0

	return func(context.Context) (messagingClient, error) {
		calls++

		return client, nil
	}, &calls
}

func TestFirebaseGateway_VisibleNotification(t *testing.T) {
	client := &fakeMessagingClient{}
	factory, _ := staticFactory(client)
	gw := newFirebaseGateway(factory, false, testNotificationConfig(2), testLogger())

	msg := &entity.PushMessage{
		Title: "Pay rent",
		Body:  "Reminder at 2025-01-08 09:00",
		Data:  map[string]string{"type": "task_reminder"},
	}
	result, err := gw.SendMulticast(context.Background(), []string{"a", "b", "c"}, msg)
	require.NoError(t, err)

	assert.Equal(t, 3, result.SuccessCount)
	require.Len(t, client.messages, 2)
	first := client.messages[0]
	require.NotNil(t, first.Notification)
	assert.Equal(t, "Pay rent", first.Notification.Title)
	assert.Equal(t, "task_reminder", first.Data["type"])
	assert.Nil(t, first.APNS)
}

func TestFirebaseGateway_SilentMessageIsDataOnly(t *testing.T) {
	client := &fakeMessagingClient{}
	factory, _ := staticFactory(client)
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{Title: "t", Body: "b", Silent: true})
	require.NoError(t, err)

	require.Len(t, client.messages, 1)
	message := client.messages[0]
	assert.Nil(t, message.Notification)
	require.NotNil(t, message.APNS)
	assert.True(t, message.APNS.Payload.Aps.ContentAvailable)
	assert.Equal(t, "high", message.Android.Priority)
}

func TestFirebaseGateway_DryRun(t *testing.T) {
	client := &fakeMessagingClient{}
	factory, _ := staticFactory(client)
	gw := newFirebaseGateway(factory, true, testNotificationConfig(10), testLogger())

	_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
	require.NoError(t, err)
	assert.Equal(t, 1, client.dryRuns)
}

func TestFirebaseGateway_PerTokenFailures(t *testing.T) {
	client := &fakeMessagingClient{perToken: map[string]error{"b": errors.New("internal error")}}
	factory, _ := staticFactory(client)
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	result, err := gw.SendMulticast(context.Background(), []string{"a", "b"}, &entity.PushMessage{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "b", result.Failures[0].Token)
	assert.False(t, result.Failures[0].Permanent)
	assert.Empty(t, result.InvalidTokens())
}

func TestFirebaseGateway_InitFailureIsRemembered(t *testing.T) {
	calls := 0
	factory := func(context.Context) (messagingClient, error) {
		calls++

		return nil, errors.New("credentials file not found")
	}
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	for range 3 {
		_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
		require.ErrorIs(t, err, service.ErrGatewayUnavailable)
	}
	assert.Equal(t, 1, calls)
}

func TestFirebaseGateway_ClientBuiltOnce(t *testing.T) {
	client := &fakeMessagingClient{}
	factory, calls := staticFactory(client)
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	for range 2 {
		_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
		require.NoError(t, err)
	}
	assert.Equal(t, 1, *calls)
}

func TestFirebaseGateway_NoTokensSkipsInit(t *testing.T) {
	factory, calls := staticFactory(&fakeMessagingClient{})
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	result, err := gw.SendMulticast(context.Background(), nil, &entity.PushMessage{})
	require.NoError(t, err)
	assert.Zero(t, result.SuccessCount)
	assert.Zero(t, *calls)
}

func TestFirebaseGateway_TransportErrorSurfaces(t *testing.T) {
	client := &fakeMessagingClient{failWith: errors.New("503 service unavailable")}
	factory, _ := staticFactory(client)
	gw := newFirebaseGateway(factory, false, testNotificationConfig(10), testLogger())

	_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, service.ErrGatewayUnavailable)
}

func TestNewFirebaseGateway_MissingCredentials(t *testing.T) {
	gw := newFirebaseGateway(firebaseClientFactory(config.FirebaseConfig{
		ProjectID:       "demo",
		CredentialsPath: filepath.Join(t.TempDir(), "firebase.json"),
	}), false, testNotificationConfig(10), testLogger())

	_, err := gw.SendMulticast(context.Background(), []string{"a"}, &entity.PushMessage{})
	require.ErrorIs(t, err, service.ErrGatewayUnavailable)
}

func TestFirebaseAppOptions(t *testing.T) {
	credentials := filepath.Join(t.TempDir(), "firebase.json")
	require.NoError(t, os.WriteFile(credentials, []byte(`{"type":"service_account"}`), 0o600))

	tests := []struct {
		name     string
		path     string
		wantOpts int
		wantErr  bool
	}{
		{name: "empty path uses default credentials"},
		{name: "blank path uses default credentials", path: "   "},
		{name: "existing file", path: credentials, wantOpts: 1},
		{name: "missing file", path: filepath.Join(t.TempDir(), "absent.json"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := firebaseAppOptions(config.FirebaseConfig{ProjectID: "demo", CredentialsPath: tt.path})
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, opts, tt.wantOpts)
		})
	}
}
