package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/salonworks/booking-api/internal/config"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// Sender delivers a notification over one channel (SMS, email, in-app).
// Implementations live under internal/platform.
type Sender interface {
	// Send attempts delivery and returns the provider's response for the
	// notification's audit trail.
	Send(ctx context.Context, notification *domain.Notification) (response string, err error)
}

// Dispatcher periodically delivers due pending notifications through the
// configured senders. Each notification is marked sent or failed after
// the attempt; failed notifications are not retried automatically.
type Dispatcher struct {
	notificationStore store.NotificationStore
	senders           map[domain.NotificationType]Sender
	cron              *cron.Cron
	interval          time.Duration
	batchSize         int
	logger            *slog.Logger
	timeFunc          func() time.Time // injectable for testing
}

// NewDispatcher creates a Dispatcher from the dispatch configuration.
// The senders map binds each notification type to its delivery channel;
// notifications of an unbound type are marked failed when they come due.
func NewDispatcher(
	notificationStore store.NotificationStore,
	senders map[domain.NotificationType]Sender,
	cfg config.DispatchConfig,
	logger *slog.Logger,
) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		notificationStore: notificationStore,
		senders:           senders,
		cron:              cron.New(),
		interval:          time.Duration(cfg.IntervalSeconds) * time.Second,
		batchSize:         cfg.BatchSize,
		logger:            logger.With(slog.String("component", "dispatcher")),
		timeFunc:          time.Now,
	}
}

// Start begins the periodic dispatch schedule. It returns immediately;
// dispatch runs happen on the cron goroutine.
func (d *Dispatcher) Start() error {
	spec := fmt.Sprintf("@every %s", d.interval)
	_, err := d.cron.AddFunc(spec, func() {
		if _, err := d.DispatchDue(context.Background()); err != nil {
			d.logger.Error("dispatch run failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule dispatch job: %w", err)
	}

	d.cron.Start()
	d.logger.Info("notification dispatcher started",
		"interval", d.interval.String(),
		"batch_size", d.batchSize)
	return nil
}

// Stop halts the schedule and waits for any in-flight run to finish.
func (d *Dispatcher) Stop() {
	ctx := d.cron.Stop()
	<-ctx.Done()
	d.logger.Info("notification dispatcher stopped")
}

// DispatchDue delivers every pending notification whose scheduled send
// time has passed, up to the batch size. Returns the number of
// notifications successfully sent. Individual delivery failures are
// recorded on the notification and do not abort the batch.
func (d *Dispatcher) DispatchDue(ctx context.Context) (int, error) {
	now := d.timeFunc().UTC()

	due, err := d.notificationStore.ListDue(ctx, now, d.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to list due notifications: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	d.logger.Info("dispatching due notifications", "count", len(due))

	sent := 0
	for _, notification := range due {
		if err := ctx.Err(); err != nil {
			return sent, err
		}
		if d.dispatchOne(ctx, notification, now) {
			sent++
		}
	}

	d.logger.Info("dispatch run complete",
		"sent", sent,
		"failed", len(due)-sent)
	return sent, nil
}

func (d *Dispatcher) dispatchOne(ctx context.Context, notification *domain.Notification, now time.Time) bool {
	log := d.logger.With(
		slog.String("notification_id", notification.ID.String()),
		slog.String("type", string(notification.Type)))

	sender, ok := d.senders[notification.Type]
	if !ok {
		log.Error("no sender for notification type")
		notification.MarkFailed(ErrNoSender.Error())
		d.persistOutcome(ctx, notification, log)
		return false
	}

	response, err := sender.Send(ctx, notification)
	if err != nil {
		log.Error("delivery failed", "error", err)
		notification.MarkFailed(err.Error())
		d.persistOutcome(ctx, notification, log)
		return false
	}

	notification.MarkSent(d.timeFunc().UTC(), response)
	d.persistOutcome(ctx, notification, log)
	log.Info("notification delivered")
	return true
}

func (d *Dispatcher) persistOutcome(ctx context.Context, notification *domain.Notification, log *slog.Logger) {
	if err := d.notificationStore.Update(ctx, notification); err != nil {
		log.Error("failed to record delivery outcome", "error", err)
	}
}
