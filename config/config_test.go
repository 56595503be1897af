package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationConfig_PollInterval(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  *NotificationConfig
		want time.Duration
	}{
		{name: "nil config uses default", cfg: nil, want: 60 * time.Second},
		{name: "zero uses default", cfg: &NotificationConfig{}, want: 60 * time.Second},
		{name: "below minimum is raised", cfg: &NotificationConfig{PollIntervalSeconds: 5}, want: 15 * time.Second},
		{name: "above maximum is lowered", cfg: &NotificationConfig{PollIntervalSeconds: 3600}, want: 600 * time.Second},
		{name: "in range kept", cfg: &NotificationConfig{PollIntervalSeconds: 90}, want: 90 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.cfg.PollInterval())
		})
	}
}

func TestNotificationConfig_BatchWindow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 5*time.Minute, (*NotificationConfig)(nil).BatchWindow())
	assert.Equal(t, 5*time.Minute, (&NotificationConfig{BatchWindowMinutes: -3}).BatchWindow())
	assert.Equal(t, 60*time.Minute, (&NotificationConfig{BatchWindowMinutes: 120}).BatchWindow())
	assert.Equal(t, 10*time.Minute, (&NotificationConfig{BatchWindowMinutes: 10}).BatchWindow())
}

func TestNotificationConfig_Defaults(t *testing.T) {
	t.Parallel()

	var nilCfg *NotificationConfig
	assert.Equal(t, "UTC", nilCfg.Timezone())
	assert.Equal(t, "Asia/Taipei", (&NotificationConfig{DefaultTimezone: " Asia/Taipei "}).Timezone())
	assert.Equal(t, 500, nilCfg.MulticastChunkSize())
	assert.Equal(t, 500, (&NotificationConfig{ChunkSize: 1000}).MulticastChunkSize())
	assert.Equal(t, 100, (&NotificationConfig{ChunkSize: 100}).MulticastChunkSize())
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := []byte(`
env:
  env: test
  serviceName: chime
notification:
  provider: memory
  pollIntervalSeconds: 30
  batchWindowMinutes: 5
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yamlBody, 0o600))

	t.Chdir(dir)
	t.Setenv("CHIME_NOTIFICATION_POLLINTERVALSECONDS", "120")
	t.Setenv("CHIME_NOTIFICATION_DEFAULTTIMEZONE", "Europe/Berlin")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)
	require.NotNil(t, cfg.Notification)

	assert.Equal(t, "chime", cfg.Env.ServiceName)
	assert.Equal(t, "memory", cfg.Notification.Provider)
	assert.Equal(t, 120*time.Second, cfg.Notification.PollInterval())
	assert.Equal(t, "Europe/Berlin", cfg.Notification.Timezone())
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config.yaml not found")
}
