package impl

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/fx"

	"chime/config"
	deliverycontext "chime/internal/delivery/context"
	"chime/internal/domain/constants"
	"chime/internal/domain/entity"
	"chime/internal/domain/repository"
	"chime/internal/domain/schedule"
	"chime/internal/domain/service"
	"chime/internal/errors"
	"chime/internal/usecase"
	"chime/internal/util"
)

// DispatchServiceParams holds dependencies for the dispatch service, injected by Fx.
type DispatchServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	Gateway   service.PushGateway
	Publisher service.EventPublisher
	Metrics   service.DispatchMetrics
	Zones     *schedule.Normalizer
	Advancer  *schedule.Advancer
	Clock     service.Clock
	Config    *config.Config
	Logger    *slog.Logger
}

type dispatchService struct {
	txManager repository.TransactionManager
	gateway   service.PushGateway
	publisher service.EventPublisher
	metrics   service.DispatchMetrics
	zones     *schedule.Normalizer
	advancer  *schedule.Advancer
	clock     service.Clock
	window    time.Duration
	logger    *slog.Logger

	// guard admits one cycle at a time for every trigger path.
	guard chan struct{}
}

// NewDispatchService creates the reminder dispatch service.
func NewDispatchService(params DispatchServiceParams) usecase.DispatchUsecase {
	var notificationCfg *config.NotificationConfig
	if params.Config != nil {
		notificationCfg = params.Config.Notification
	}

	return &dispatchService{
		txManager: params.TxManager,
		gateway:   params.Gateway,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		zones:     params.Zones,
		advancer:  params.Advancer,
		clock:     params.Clock,
		window:    notificationCfg.BatchWindow(),
		logger:    params.Logger,
		guard:     make(chan struct{}, 1),
	}
}

func (s *dispatchService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, s.logger)
}

// DispatchDue waits for the guard and runs one cycle.
func (s *dispatchService) DispatchDue(ctx context.Context) (*entity.DispatchReport, error) {
	select {
	case s.guard <- struct{}{}:
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
	defer func() { <-s.guard }()

	return s.runCycle(ctx)
}

// TryDispatchDue runs one cycle only if none is running.
func (s *dispatchService) TryDispatchDue(ctx context.Context) (*entity.DispatchReport, error) {
	select {
	case s.guard <- struct{}{}:
	default:
		s.metrics.RecordSkippedTick(ctx)

		return nil, usecase.ErrCycleInProgress
	}
	defer func() { <-s.guard }()

	return s.runCycle(ctx)
}

// errNothingToCommit rolls back a cycle that changed no reminder or device.
var errNothingToCommit = errors.New("dispatch cycle changed nothing")

// dispatchCycle carries the state of one cycle inside its transaction.
type dispatchCycle struct {
	now          time.Time
	reminderRepo repository.ReminderRepository
	deviceRepo   repository.DeviceRepository
	report       *entity.DispatchReport
	invalid      map[string]struct{}
	gatewayDown  bool
}

func (s *dispatchService) runCycle(ctx context.Context) (*entity.DispatchReport, error) {
	// A started cycle commits or rolls back on its own terms, even if the caller goes away.
	ctx = context.WithoutCancel(ctx)
	logger := s.log(ctx)

	now := s.clock.Now().UTC()
	report := &entity.DispatchReport{StartedAt: now}

	err := s.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cycle := &dispatchCycle{
			now:          now,
			reminderRepo: repoFactory.NewReminderRepository(),
			deviceRepo:   repoFactory.NewDeviceRepository(),
			report:       report,
			invalid:      make(map[string]struct{}),
		}

		if err := s.dispatch(ctx, cycle); err != nil {
			return err
		}
		if !report.ChangedState() {
			return errNothingToCommit
		}

		return nil
	})
	if errors.Is(err, errNothingToCommit) {
		err = nil
	}
	elapsed := s.clock.Now().Sub(now)

	if err != nil {
		logger.Error("[Dispatch] cycle failed, state changes rolled back",
			slog.Any("error", err),
			slog.String("origin", errors.Origin(err)),
			slog.Int("selected", report.Selected),
			slog.String("elapsed", util.FormatDuration(elapsed)),
		)
		s.metrics.RecordCycle(ctx, report, elapsed, err)

		return report, errors.Wrap(err, "dispatch cycle failed")
	}

	s.metrics.RecordCycle(ctx, report, elapsed, nil)
	s.publishDispatched(ctx, report)

	if report.Selected > 0 || report.GatewayUnavailable {
		logger.Info("[Dispatch] cycle finished",
			slog.Int("selected", report.Selected),
			slog.Int("dispatched", report.Dispatched),
			slog.Int("skipped_no_device", report.SkippedNoDevice),
			slog.Int("transient_failures", report.TransientFailures),
			slog.Int("email_placeholders", report.EmailPlaceholders),
			slog.Int("rescheduled", report.Rescheduled),
			slog.Int("retired", report.Retired),
			slog.Int("removed_tokens", report.RemovedTokens),
			slog.Bool("gateway_unavailable", report.GatewayUnavailable),
			slog.String("elapsed", util.FormatDuration(elapsed)),
		)
	}

	return report, nil
}

// dispatch runs selection, grouping, delivery and advancement inside the cycle transaction.
func (s *dispatchService) dispatch(ctx context.Context, cycle *dispatchCycle) error {
	selected, err := cycle.reminderRepo.FindDue(ctx, repository.DueQuery{
		Now:      cycle.now,
		Window:   s.window,
		Statuses: entity.ActionableTaskStatuses,
	})
	if err != nil {
		return errors.Wrap(err, "failed to find due reminders")
	}

	due := pendingReminders(selected, cycle.now)
	cycle.report.Selected = len(due)
	if len(due) == 0 {
		return nil
	}

	devicesByUser, err := s.loadDevices(ctx, cycle.deviceRepo, due)
	if err != nil {
		return err
	}

	for _, item := range due {
		switch {
		case item.Reminder.Channel == entity.ChannelEmail:
			err = s.dispatchEmail(ctx, cycle, item)
		case item.Reminder.Channel.UsesDevices():
			err = s.dispatchToDevices(ctx, cycle, item, devicesByUser[item.UserID])
		default:
			s.log(ctx).Warn("[Dispatch] reminder has an unknown channel, skipped",
				slog.String("reminder_id", item.Reminder.ID.String()),
				slog.String("channel", string(item.Reminder.Channel)),
			)
		}
		if err != nil {
			return err
		}
	}

	return s.removeInvalidTokens(ctx, cycle)
}

// pendingReminders drops reminders whose current fire time was already dispatched
// or that expired, keeping the earliest-first order of the selection.
func pendingReminders(selected []*entity.DueReminder, now time.Time) []*entity.DueReminder {
	due := make([]*entity.DueReminder, 0, len(selected))
	for _, item := range selected {
		if item == nil || item.Reminder == nil {
			continue
		}
		if item.Reminder.Triggered() || item.Reminder.Expired(now) || !item.Reminder.Active {
			continue
		}
		due = append(due, item)
	}

	return due
}

// loadDevices fetches the active devices of every user owning a device-delivered reminder.
func (s *dispatchService) loadDevices(ctx context.Context, deviceRepo repository.DeviceRepository, due []*entity.DueReminder) (map[uuid.UUID][]*entity.UserDevice, error) {
	seen := make(map[uuid.UUID]struct{})
	userIDs := make([]uuid.UUID, 0, len(due))
	for _, item := range due {
		if !item.Reminder.Channel.UsesDevices() {
			continue
		}
		if _, ok := seen[item.UserID]; ok {
			continue
		}
		seen[item.UserID] = struct{}{}
		userIDs = append(userIDs, item.UserID)
	}

	if len(userIDs) == 0 {
		return map[uuid.UUID][]*entity.UserDevice{}, nil
	}

	devicesByUser, err := deviceRepo.FindActiveDevicesByUsers(ctx, userIDs)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active devices")
	}

	return devicesByUser, nil
}

// dispatchEmail marks an email reminder triggered without delivering anything.
// Email reminders are retired after the first trigger.
func (s *dispatchService) dispatchEmail(ctx context.Context, cycle *dispatchCycle, item *entity.DueReminder) error {
	r := item.Reminder
	firedAt := r.FireAt
	triggeredAt := cycle.now
	r.LastTriggeredAt = &triggeredAt
	r.Active = false

	if err := cycle.reminderRepo.SaveDispatchState(ctx, r); err != nil {
		return errors.Wrap(err, "failed to save email reminder state")
	}

	s.log(ctx).Warn("[Dispatch] email reminder marked triggered without delivery",
		slog.String("event", "email_placeholder"),
		slog.String("reminder_id", r.ID.String()),
		slog.String("task_id", r.TaskID.String()),
		slog.String("user_id", item.UserID.String()),
	)

	report := cycle.report
	report.EmailPlaceholders++
	report.Dispatched++
	report.Retired++
	report.Reminders = append(report.Reminders, entity.DispatchedReminder{
		ReminderID:  r.ID,
		TaskID:      r.TaskID,
		UserID:      item.UserID,
		Channel:     r.Channel,
		FiredAt:     firedAt,
		TriggeredAt: triggeredAt,
		Outcome:     entity.OutcomeRetired,
	})

	return nil
}

func (s *dispatchService) dispatchToDevices(ctx context.Context, cycle *dispatchCycle, item *entity.DueReminder, devices []*entity.UserDevice) error {
	r := item.Reminder
	logger := s.log(ctx).With(
		slog.String("reminder_id", r.ID.String()),
		slog.String("user_id", item.UserID.String()),
		slog.String("channel", string(r.Channel)),
	)

	tokens := eligibleTokens(devices, r.Channel, cycle.invalid)
	if len(tokens) == 0 {
		cycle.report.SkippedNoDevice++
		logger.Debug("[Dispatch] no eligible device, reminder left pending")

		return nil
	}

	if cycle.gatewayDown {
		return nil
	}

	result, err := s.gateway.SendMulticast(ctx, tokens, s.render(item))
	if err != nil {
		if errors.Is(err, service.ErrGatewayUnavailable) {
			cycle.gatewayDown = true
			cycle.report.GatewayUnavailable = true
			logger.Error("[Dispatch] push gateway unavailable, device delivery skipped for this cycle", slog.Any("error", err))

			return nil
		}

		cycle.report.TransientFailures++
		logger.Warn("[Dispatch] delivery failed, reminder left for the next cycle", slog.Any("error", err))

		return nil
	}

	for _, token := range result.InvalidTokens() {
		cycle.invalid[token] = struct{}{}
	}

	if !result.Delivered() {
		cycle.report.TransientFailures++
		logger.Warn("[Dispatch] no token accepted the reminder, left for the next cycle",
			slog.Int("tokens", len(tokens)),
			slog.Int("invalid_tokens", len(result.InvalidTokens())),
		)

		return nil
	}

	firedAt := r.FireAt
	advancement := s.advancer.Advance(r, cycle.now)
	if err := cycle.reminderRepo.SaveDispatchState(ctx, r); err != nil {
		return errors.Wrap(err, "failed to save reminder dispatch state")
	}

	report := cycle.report
	report.Dispatched++
	switch advancement.Outcome {
	case entity.OutcomeRescheduled:
		report.Rescheduled++
	case entity.OutcomeRetired:
		report.Retired++
	}
	report.Reminders = append(report.Reminders, entity.DispatchedReminder{
		ReminderID:  r.ID,
		TaskID:      r.TaskID,
		UserID:      item.UserID,
		Channel:     r.Channel,
		FiredAt:     firedAt,
		TriggeredAt: cycle.now,
		Outcome:     advancement.Outcome,
		NextFireAt:  advancement.NextFireAt,
		Delivered:   result.SuccessCount,
	})

	logger.Debug("[Dispatch] reminder dispatched",
		slog.Int("delivered", result.SuccessCount),
		slog.Int("failed", result.FailureCount),
		slog.String("outcome", string(advancement.Outcome)),
	)

	return nil
}

// eligibleTokens returns the distinct tokens of devices accepting channel,
// leaving out tokens already rejected in this cycle.
func eligibleTokens(devices []*entity.UserDevice, channel entity.Channel, rejected map[string]struct{}) []string {
	seen := make(map[string]struct{}, len(devices))
	tokens := make([]string, 0, len(devices))
	for _, device := range devices {
		if device == nil || !device.Accepts(channel) {
			continue
		}
		if _, ok := rejected[device.Token]; ok {
			continue
		}
		if _, ok := seen[device.Token]; ok {
			continue
		}
		seen[device.Token] = struct{}{}
		tokens = append(tokens, device.Token)
	}

	return tokens
}

func (s *dispatchService) removeInvalidTokens(ctx context.Context, cycle *dispatchCycle) error {
	if len(cycle.invalid) == 0 {
		return nil
	}

	tokens := make([]string, 0, len(cycle.invalid))
	for token := range cycle.invalid {
		tokens = append(tokens, token)
	}

	removed, err := cycle.deviceRepo.DisableByTokens(ctx, tokens)
	if err != nil {
		return errors.Wrap(err, "failed to disable invalid device tokens")
	}
	cycle.report.RemovedTokens = int(removed)

	s.log(ctx).Info("[Dispatch] removed devices with rejected tokens",
		slog.Int64("removed", removed),
		slog.Int("tokens", len(tokens)),
	)

	return nil
}

// render builds the notification for a due reminder. Local reminders are sent
// as silent data messages.
func (s *dispatchService) render(item *entity.DueReminder) *entity.PushMessage {
	r := item.Reminder

	title := item.TaskTitle
	if title == "" {
		title = constants.DefaultReminderTitle
	}
	body := "Reminder at " + s.zones.FormatLocal(r.FireAt, r.Timezone)
	silent := r.Channel == entity.ChannelLocal

	return &entity.PushMessage{
		Title:  title,
		Body:   body,
		Silent: silent,
		Data: map[string]string{
			"type":         constants.ReminderNotificationType,
			"task_id":      r.TaskID.String(),
			"reminder_id":  r.ID.String(),
			"channel":      string(r.Channel),
			"silent":       strconv.FormatBool(silent),
			"scheduled_at": r.FireAt.UTC().Format(time.RFC3339),
			"timezone":     r.Timezone,
			"repeat_rule":  string(r.RepeatRule),
			"repeat_every": strconv.Itoa(r.RepeatEvery),
			"title":        title,
			"body":         body,
		},
	}
}

// publishDispatched emits the cycle's events in one batch. Failures are logged only.
func (s *dispatchService) publishDispatched(ctx context.Context, report *entity.DispatchReport) {
	if len(report.Reminders) == 0 {
		return
	}

	requestID := deliverycontext.GetRequestIDFromContext(ctx)
	events := make([]*service.ReminderDispatchedEvent, 0, len(report.Reminders))
	for i := range report.Reminders {
		dispatched := &report.Reminders[i]
		events = append(events, &service.ReminderDispatchedEvent{
			RequestID:   requestID,
			ReminderID:  dispatched.ReminderID.String(),
			TaskID:      dispatched.TaskID.String(),
			UserID:      dispatched.UserID.String(),
			Channel:     string(dispatched.Channel),
			FiredAt:     dispatched.FiredAt,
			TriggeredAt: dispatched.TriggeredAt,
			Outcome:     string(dispatched.Outcome),
			NextFireAt:  dispatched.NextFireAt,
			Delivered:   dispatched.Delivered,
		})
	}

	if err := s.publisher.PublishDispatched(ctx, events); err != nil {
		s.log(ctx).Warn("[Dispatch] failed to publish reminder events",
			slog.Int("events", len(events)),
			slog.Any("error", err),
		)
	}
}
