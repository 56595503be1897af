package notification

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"chime/config"
	"chime/internal/domain/entity"
	"chime/internal/domain/service"
)

// messagingClient is the part of *messaging.Client the gateway uses.
type messagingClient interface {
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
	SendEachForMulticastDryRun(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

// clientFactory builds the messaging client on first use.
type clientFactory func(ctx context.Context) (messagingClient, error)

// FirebaseGateway delivers reminders through Firebase Cloud Messaging.
//
// The SDK is initialised lazily on the first send. A failed initialisation is
// remembered and every later send reports service.ErrGatewayUnavailable
// without touching the provider again.
type FirebaseGateway struct {
	newClient clientFactory
	dryRun    bool
	multicast *multicaster
	logger    *slog.Logger

	mu      sync.Mutex
	client  messagingClient
	initErr error
}

// NewFirebaseGateway creates a gateway from the firebase and notification config.
func NewFirebaseGateway(cfg *config.Config, logger *slog.Logger) *FirebaseGateway {
	var fbCfg config.FirebaseConfig
	if cfg.Firebase != nil {
		fbCfg = *cfg.Firebase
	}

	return newFirebaseGateway(firebaseClientFactory(fbCfg), fbCfg.DryRun, cfg.Notification, logger)
}

func newFirebaseGateway(factory clientFactory, dryRun bool, cfg *config.NotificationConfig, logger *slog.Logger) *FirebaseGateway {
	return &FirebaseGateway{
		newClient: factory,
		dryRun:    dryRun,
		multicast: newMulticaster("firebase-messaging", cfg, logger),
		logger:    logger,
	}
}

func firebaseClientFactory(cfg config.FirebaseConfig) clientFactory {
	return func(ctx context.Context) (messagingClient, error) {
		opts, err := firebaseAppOptions(cfg)
		if err != nil {
			return nil, err
		}

		app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize Firebase app")
		}

		client, err := app.Messaging(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "failed to get messaging client")
		}

		return client, nil
	}
}

// firebaseAppOptions returns no options when no credentials file is set, so the
// SDK falls back to Application Default Credentials.
func firebaseAppOptions(cfg config.FirebaseConfig) ([]option.ClientOption, error) {
	path := strings.TrimSpace(cfg.CredentialsPath)
	if path == "" {
		return nil, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "firebase credentials file %q is not readable", path)
	}

	return []option.ClientOption{option.WithCredentialsFile(path)}, nil
}

// SendMulticast implements service.PushGateway.
func (g *FirebaseGateway) SendMulticast(ctx context.Context, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error) {
	if len(tokens) == 0 {
		return &entity.MulticastResult{}, nil
	}

	client, err := g.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	result, err := g.multicast.send(ctx, tokens, msg, func(ctx context.Context, chunk []string, msg *entity.PushMessage) (*entity.MulticastResult, error) {
		return g.sendChunk(ctx, client, chunk, msg)
	})
	if err != nil {
		return nil, err
	}

	g.logger.Debug("[FirebaseGateway] multicast finished",
		slog.Int("tokens", len(tokens)),
		slog.Int("success", result.SuccessCount),
		slog.Int("failure", result.FailureCount),
		slog.Any("invalid_tokens", maskedTokens(result.InvalidTokens())),
	)

	return result, nil
}

func (g *FirebaseGateway) ensureClient(ctx context.Context) (messagingClient, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}
	if g.initErr != nil {
		return nil, g.initErr
	}

	client, err := g.newClient(ctx)
	if err != nil {
		g.logger.Error("[FirebaseGateway] initialization failed, push delivery disabled", slog.Any("error", err))
		g.initErr = errors.Wrap(service.ErrGatewayUnavailable, err.Error())

		return nil, g.initErr
	}
	g.client = client

	return client, nil
}

func (g *FirebaseGateway) sendChunk(ctx context.Context, client messagingClient, tokens []string, msg *entity.PushMessage) (*entity.MulticastResult, error) {
	message := buildMulticastMessage(tokens, msg)

	var (
		resp *messaging.BatchResponse
		err  error
	)
	if g.dryRun {
		resp, err = client.SendEachForMulticastDryRun(ctx, message)
	} else {
		resp, err = client.SendEachForMulticast(ctx, message)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to send multicast notification")
	}

	return batchResult(tokens, resp), nil
}

func buildMulticastMessage(tokens []string, msg *entity.PushMessage) *messaging.MulticastMessage {
	message := &messaging.MulticastMessage{
		Tokens: tokens,
		Data:   msg.Data,
	}

	if msg.Silent {
		message.Android = &messaging.AndroidConfig{Priority: "high"}
		message.APNS = &messaging.APNSConfig{
			Headers: map[string]string{"apns-push-type": "background", "apns-priority": "5"},
			Payload: &messaging.APNSPayload{Aps: &messaging.Aps{ContentAvailable: true}},
		}

		return message
	}

	message.Notification = &messaging.Notification{
		Title: msg.Title,
		Body:  msg.Body,
	}

	return message
}

func batchResult(tokens []string, resp *messaging.BatchResponse) *entity.MulticastResult {
	result := &entity.MulticastResult{
		SuccessCount: resp.SuccessCount,
		FailureCount: resp.FailureCount,
	}

	for idx, sendResponse := range resp.Responses {
		if sendResponse == nil || sendResponse.Success || sendResponse.Error == nil || idx >= len(tokens) {
			continue
		}

		result.Failures = append(result.Failures, entity.TokenFailure{
			Token:     tokens[idx],
			Reason:    sendResponse.Error.Error(),
			Permanent: isPermanentTokenError(sendResponse.Error),
		})
	}

	return result
}

// isPermanentTokenError reports provider codes meaning the token will never work again.
func isPermanentTokenError(err error) bool {
	return messaging.IsUnregistered(err) ||
		messaging.IsInvalidArgument(err) ||
		messaging.IsSenderIDMismatch(err)
}
