package util

import (
	"fmt"
	"strings"
	"time"
)

const maskVisible = 6

// FormatDuration formats duration into human readable format (e.g., "1h30m", "5m10s", "45s").
func FormatDuration(duration time.Duration) string {
	duration = duration.Round(time.Second)

	if duration < time.Minute {
		return fmt.Sprintf("%ds", int(duration.Seconds()))
	}

	if duration < time.Hour {
		m := int(duration.Minutes())
		s := int(duration.Seconds()) % 60

		return fmt.Sprintf("%dm%ds", m, s)
	}

	h := int(duration.Hours())
	m := int(duration.Minutes()) % 60

	return fmt.Sprintf("%dh%dm", h, m)
}

// MaskToken keeps the tail of a device token for log correlation and hides the rest.
func MaskToken(token string) string {
	token = strings.TrimSpace(token)
	if len(token) <= maskVisible {
		return strings.Repeat("*", len(token))
	}

	return "***" + token[len(token)-maskVisible:]
}

// Plural returns singular when n is 1 and singular+"s" otherwise.
func Plural(n int, singular string) string {
	if n == 1 {
		return singular
	}

	return singular + "s"
}
