package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChannel_DeliverableTo_Matrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		reminder Channel
		device   Channel
		want     bool
	}{
		{reminder: ChannelPush, device: ChannelPush, want: true},
		{reminder: ChannelPush, device: ChannelLocal, want: false},
		{reminder: ChannelPush, device: ChannelEmail, want: false},
		{reminder: ChannelLocal, device: ChannelPush, want: true},
		{reminder: ChannelLocal, device: ChannelLocal, want: true},
		{reminder: ChannelLocal, device: ChannelEmail, want: false},
		{reminder: ChannelEmail, device: ChannelPush, want: false},
		{reminder: ChannelEmail, device: ChannelLocal, want: false},
		{reminder: ChannelEmail, device: ChannelEmail, want: false},
	}

	for _, tt := range tests {
		t.Run(string(tt.reminder)+"_to_"+string(tt.device), func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.reminder.DeliverableTo(Channels{tt.device}))
		})
	}
}

func TestChannels_Normalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Channels{ChannelPush}, Channels(nil).Normalize())
	assert.Equal(t, Channels{ChannelLocal, ChannelPush}, Channels{ChannelLocal, ChannelPush, ChannelLocal}.Normalize())
}

func TestUserDevice_Accepts(t *testing.T) {
	t.Parallel()

	device := &UserDevice{Token: "t1", IsActive: true, Channels: Channels{ChannelLocal}}
	assert.True(t, device.Accepts(ChannelLocal))
	assert.False(t, device.Accepts(ChannelPush))

	device.IsActive = false
	assert.False(t, device.Accepts(ChannelLocal))

	blank := &UserDevice{IsActive: true, Channels: Channels{ChannelPush}}
	assert.False(t, blank.Accepts(ChannelPush))
}

func TestDevicePatch_Apply(t *testing.T) {
	t.Parallel()

	enabled := false
	locale := "zh-TW"
	device := &UserDevice{Channels: Channels{ChannelPush}, IsActive: true, Locale: "en", Timezone: "UTC"}

	patch := DevicePatch{Channels: Channels{}, PushEnabled: &enabled, Locale: &locale}
	patch.Apply(device)

	assert.Equal(t, Channels{ChannelPush}, device.Channels)
	assert.False(t, device.IsActive)
	assert.Equal(t, "zh-TW", device.Locale)
	assert.Equal(t, "UTC", device.Timezone)
}
