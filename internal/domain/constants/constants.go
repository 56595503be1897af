// Package constants holds identifiers shared across layers.
package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Event publishing providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Push gateway providers
const (
	PushProviderFirebase = "firebase"
	PushProviderMemory   = "memory"
)

// Echo context keys set by the auth middleware.
const (
	ContextKeyUserID = "userID"
	ContextKeyRoles  = "roles"
)

// ReminderNotificationType is the "type" value of every reminder data payload.
const ReminderNotificationType = "task_reminder"

// DefaultReminderTitle is used when the owning task has no title.
const DefaultReminderTitle = "Task Reminder"
