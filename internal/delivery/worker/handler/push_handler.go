package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"

	"chime/config"
	deliverycontext "chime/internal/delivery/context"
	"chime/internal/domain/constants"
	"chime/internal/domain/service"
	"chime/internal/usecase"
)

// PubSubMessage represents the structure of a Pub/Sub push message
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// DispatchTrigger is the optional JSON payload of a trigger message.
type DispatchTrigger struct {
	RequestID string `json:"request_id,omitempty"`
	Source    string `json:"source,omitempty"`
}

// TriggerStatus is the outcome of the most recent trigger, served on /health.
type TriggerStatus struct {
	At         time.Time `json:"at"`
	Outcome    string    `json:"outcome"`
	Dispatched int       `json:"dispatched"`
}

const (
	outcomeDispatched = "dispatched"
	outcomeBusy       = "busy"
	outcomeStale      = "stale"
	outcomeFailed     = "failed"
)

// validateIDToken matches idtoken.Validate.
type validateIDToken func(ctx context.Context, token, audience string) (*idtoken.Payload, error)

// PushHandler runs a dispatch cycle for every Pub/Sub trigger message it receives.
//
// Status codes drive Pub/Sub redelivery: 2xx acks the message, 503 asks for a
// retry. Malformed messages answer 400.
type PushHandler struct {
	verifyPushAuth bool
	validate       validateIDToken
	grace          time.Duration
	dispatch       usecase.DispatchUsecase
	clock          service.Clock
	logger         *slog.Logger
	last           atomic.Pointer[TriggerStatus]
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config   *config.Config
	Logger   *slog.Logger
	Dispatch usecase.DispatchUsecase
	Clock    service.Clock
}

// NewPushHandler creates a new Pub/Sub push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	verifyPushAuth := params.Config.PubSub != nil &&
		params.Config.PubSub.Provider == constants.PubSubProviderGoogle &&
		params.Config.Env.Env != constants.EnvDevelop

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		validate:       idtoken.Validate,
		grace:          params.Config.Notification.PollInterval(),
		dispatch:       params.Dispatch,
		clock:          params.Clock,
		logger:         params.Logger,
	}
}

// HandlePush handles incoming Pub/Sub push messages
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := h.verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		h.logger.Error("[Worker] Failed to parse push message", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	trigger, err := decodeTrigger(pushMsg.Message.Data)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode trigger", slog.Any("error", err))

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, &pushMsg, trigger)
	ctx = deliverycontext.WithRequestScope(ctx, h.logger, requestID, slog.String("message_id", pushMsg.Message.MessageID))
	reqLogger := deliverycontext.GetLogger(ctx)

	if h.stale(pushMsg.Message.PublishTime) {
		reqLogger.Warn("[Worker] Trigger older than its grace period, acknowledged without dispatch",
			slog.String("publish_time", pushMsg.Message.PublishTime),
		)
		h.record(outcomeStale, 0)

		return c.NoContent(http.StatusOK)
	}

	report, err := h.dispatch.TryDispatchDue(ctx)
	switch {
	case errors.Is(err, usecase.ErrCycleInProgress):
		reqLogger.Info("[Worker] Dispatch cycle already running, trigger acknowledged")
		h.record(outcomeBusy, 0)

		return c.NoContent(http.StatusOK)
	case err != nil:
		reqLogger.Error("[Worker] Dispatch cycle failed, asking for redelivery", slog.Any("error", err))
		h.record(outcomeFailed, 0)

		return c.NoContent(http.StatusServiceUnavailable)
	}
	h.record(outcomeDispatched, report.Dispatched)

	reqLogger.Info("[Worker] Dispatch cycle triggered",
		slog.String("source", trigger.Source),
		slog.Int("selected", report.Selected),
		slog.Int("dispatched", report.Dispatched),
	)

	return c.NoContent(http.StatusOK)
}

// Health reports liveness and the last trigger outcome, if any.
func (h *PushHandler) Health(c echo.Context) error {
	body := struct {
		Status      string         `json:"status"`
		LastTrigger *TriggerStatus `json:"last_trigger,omitempty"`
	}{Status: "ok", LastTrigger: h.last.Load()}

	return c.JSON(http.StatusOK, body)
}

func (h *PushHandler) record(outcome string, dispatched int) {
	h.last.Store(&TriggerStatus{At: h.clock.Now(), Outcome: outcome, Dispatched: dispatched})
}

// decodeTrigger decodes the base64 data of a message. Empty data is a valid trigger.
func decodeTrigger(data string) (*DispatchTrigger, error) {
	trigger := &DispatchTrigger{}
	if data == "" {
		return trigger, nil
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decode message data")
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return trigger, nil
	}

	if err := json.Unmarshal(raw, trigger); err != nil {
		return nil, errors.Wrap(err, "failed to parse dispatch trigger")
	}

	return trigger, nil
}

// stale reports whether the message was published more than one poll interval ago.
// An unparsable publish time is treated as fresh.
func (h *PushHandler) stale(publishTime string) bool {
	published, err := time.Parse(time.RFC3339Nano, publishTime)
	if err != nil {
		return false
	}

	return h.clock.Now().Sub(published) > h.grace
}

// extractRequestID extracts request_id from message attributes, the trigger, or generates a new one
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, trigger *DispatchTrigger) string {
	if requestID, ok := pushMsg.Message.Attributes["request_id"]; ok && requestID != "" {
		return requestID
	}

	if trigger.RequestID != "" {
		return trigger.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// verifyPubSubToken validates the OIDC token Pub/Sub attaches to push requests.
// The expected audience is the URL of the push endpoint.
func (h *PushHandler) verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	token, found := strings.CutPrefix(authHeader, "Bearer ")
	if !found {
		return errors.New("invalid authorization header format")
	}

	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := h.validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
