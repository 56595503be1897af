package notification

import (
	"log/slog"
	"strings"

	"github.com/pkg/errors"

	"chime/config"
	"chime/internal/domain/constants"
	"chime/internal/domain/service"
)

// NewPushGateway selects the push gateway named by the notification config.
// An empty provider means firebase.
func NewPushGateway(cfg *config.Config, logger *slog.Logger) (service.PushGateway, error) {
	provider := constants.PushProviderFirebase
	if cfg.Notification != nil && strings.TrimSpace(cfg.Notification.Provider) != "" {
		provider = strings.ToLower(strings.TrimSpace(cfg.Notification.Provider))
	}

	switch provider {
	case constants.PushProviderFirebase:
		logger.Info("Using Firebase push gateway", slog.Bool("dryRun", cfg.Firebase != nil && cfg.Firebase.DryRun))

		return NewFirebaseGateway(cfg, logger), nil
	case constants.PushProviderMemory:
		logger.Warn("Using in-memory push gateway, notifications are recorded but never delivered")

		return NewMemoryGateway(cfg.Notification, logger), nil
	default:
		return nil, errors.Errorf("unknown push gateway provider: %s", provider)
	}
}
