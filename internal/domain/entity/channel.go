// Package entity contains the core business objects of the project.
package entity

import "slices"

// Channel is the delivery channel of a reminder or a channel a device accepts.
type Channel string

const (
	// ChannelPush delivers a visible push notification.
	ChannelPush Channel = "push"
	// ChannelLocal delivers a silent data message the client turns into a local notification.
	ChannelLocal Channel = "local"
	// ChannelEmail has no device delivery.
	ChannelEmail Channel = "email"
)

// String returns the string representation of the Channel.
func (c Channel) String() string {
	return string(c)
}

// IsValid checks if the Channel is a known value.
func (c Channel) IsValid() bool {
	switch c {
	case ChannelPush, ChannelLocal, ChannelEmail:
		return true
	default:
		return false
	}
}

// UsesDevices reports whether reminders on this channel are delivered through devices.
func (c Channel) UsesDevices() bool {
	return c == ChannelPush || c == ChannelLocal
}

// DeliverableTo reports whether a reminder on this channel can be delivered to a
// device accepting the given channels. A push-capable device stands in for local.
func (c Channel) DeliverableTo(accepted Channels) bool {
	switch c {
	case ChannelPush:
		return accepted.Contains(ChannelPush)
	case ChannelLocal:
		return accepted.Contains(ChannelLocal) || accepted.Contains(ChannelPush)
	default:
		return false
	}
}

// Channels is a set of channels declared by a device.
type Channels []Channel

// Contains checks if the set contains a specific channel.
func (cs Channels) Contains(channel Channel) bool {
	return slices.Contains(cs, channel)
}

// Normalize removes duplicates and falls back to push for an empty set.
func (cs Channels) Normalize() Channels {
	if len(cs) == 0 {
		return Channels{ChannelPush}
	}

	out := make(Channels, 0, len(cs))
	for _, c := range cs {
		if !out.Contains(c) {
			out = append(out, c)
		}
	}

	return out
}

// ToStrings converts Channels to []string for storage.
func (cs Channels) ToStrings() []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}

	return out
}

// ChannelsFromStrings converts stored values back to Channels.
func ChannelsFromStrings(values []string) Channels {
	out := make(Channels, 0, len(values))
	for _, v := range values {
		out = append(out, Channel(v))
	}

	return out
}
