package entity

import (
	"time"

	"github.com/google/uuid"
)

// Platform is the operating environment of a registered device.
type Platform string

const (
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
	PlatformWeb     Platform = "web"
)

// IsValid checks if the Platform is a known value.
func (p Platform) IsValid() bool {
	switch p {
	case PlatformAndroid, PlatformIOS, PlatformWeb:
		return true
	default:
		return false
	}
}

// UserDevice represents a user's device registered for push notifications.
type UserDevice struct {
	ID         uuid.UUID `json:"id"`           // The Global Unique Identifier (GUID) for the device.
	UserID     uuid.UUID `json:"user_id"`      // The ID of the user who owns this device.
	Token      string    `json:"token"`        // Provider registration token, unique across devices.
	Platform   Platform  `json:"platform"`     // Device platform (android, ios, web).
	Channels   Channels  `json:"channels"`     // Reminder channels the device accepts.
	Locale     string    `json:"locale"`       // Preferred locale reported by the client.
	Timezone   string    `json:"timezone"`     // IANA zone reported by the client.
	AppVersion string    `json:"app_version"`  // Client application version.
	IsActive   bool      `json:"is_active"`    // Indicates if this device is active for notifications.
	LastSeenAt time.Time `json:"last_seen_at"` // Timestamp of the last registration or update.
	CreatedAt  time.Time `json:"created_at"`   // Timestamp of when this device was registered.
	UpdatedAt  time.Time `json:"updated_at"`   // Timestamp of the last modification.
}

// Accepts reports whether the device can receive a reminder on the given channel.
func (d *UserDevice) Accepts(channel Channel) bool {
	return d.IsActive && d.Token != "" && channel.DeliverableTo(d.Channels)
}

// DevicePatch holds the optional fields of a device update. Nil fields are left unchanged.
type DevicePatch struct {
	Channels    Channels
	PushEnabled *bool
	Locale      *string
	Timezone    *string
	AppVersion  *string
}

// Apply copies the set fields of the patch onto the device.
func (p *DevicePatch) Apply(device *UserDevice) {
	if p.Channels != nil {
		device.Channels = p.Channels.Normalize()
	}
	if p.PushEnabled != nil {
		device.IsActive = *p.PushEnabled
	}
	if p.Locale != nil {
		device.Locale = *p.Locale
	}
	if p.Timezone != nil {
		device.Timezone = *p.Timezone
	}
	if p.AppVersion != nil {
		device.AppVersion = *p.AppVersion
	}
}
