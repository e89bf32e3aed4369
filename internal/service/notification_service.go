package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// NotificationService manages scheduled notifications.
type NotificationService interface {
	// CreateNotification schedules a new pending notification.
	CreateNotification(ctx context.Context, params CreateNotificationParams) (*domain.Notification, error)

	// GetNotification retrieves a notification by ID.
	GetNotification(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error)

	// ListNotifications retrieves all notifications, newest scheduled
	// first.
	ListNotifications(ctx context.Context) ([]*domain.Notification, error)

	// UpdateNotification applies a partial update to an existing
	// notification and returns the updated notification.
	UpdateNotification(ctx context.Context, notificationID uuid.UUID, update *domain.NotificationUpdate) (*domain.Notification, error)

	// DeleteNotification removes a notification by ID.
	DeleteNotification(ctx context.Context, notificationID uuid.UUID) error
}

// CreateNotificationParams carries the inputs for scheduling a
// notification.
type CreateNotificationParams struct {
	UserID          uuid.UUID
	AppointmentID   *uuid.UUID
	Type            domain.NotificationType
	Priority        domain.NotificationPriority
	Subject         *string
	Message         string
	ScheduledSendAt time.Time
	ChannelInfo     json.RawMessage
}

// NotificationServiceImpl implements NotificationService backed by a
// NotificationStore.
type NotificationServiceImpl struct {
	notificationStore store.NotificationStore
	db                *sql.DB
	logger            *slog.Logger
}

var _ NotificationService = (*NotificationServiceImpl)(nil)

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationStore store.NotificationStore, db *sql.DB, logger *slog.Logger) *NotificationServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &NotificationServiceImpl{
		notificationStore: notificationStore,
		db:                db,
		logger:            logger.With(slog.String("component", "notification_service")),
	}
}

// CreateNotification implements NotificationService.CreateNotification.
func (s *NotificationServiceImpl) CreateNotification(
	ctx context.Context,
	params CreateNotificationParams,
) (*domain.Notification, error) {
	notification, err := domain.NewNotification(
		params.UserID,
		params.Type,
		params.Message,
		params.ScheduledSendAt,
		params.Priority,
	)
	if err != nil {
		s.logger.Warn("invalid notification data",
			"error", err,
			"user_id", params.UserID)
		return nil, err
	}

	notification.Subject = params.Subject
	notification.AppointmentID = params.AppointmentID
	notification.ChannelInfo = params.ChannelInfo
	if err := notification.Validate(); err != nil {
		return nil, err
	}

	if err := s.notificationStore.Create(ctx, notification); err != nil {
		s.logger.Error("failed to create notification",
			"error", err,
			"user_id", params.UserID)
		return nil, err
	}

	s.logger.Info("notification scheduled",
		"notification_id", notification.ID,
		"user_id", notification.UserID,
		"scheduled_send_at", notification.ScheduledSendAt)
	return notification, nil
}

// GetNotification implements NotificationService.GetNotification.
func (s *NotificationServiceImpl) GetNotification(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	return s.notificationStore.GetByID(ctx, notificationID)
}

// ListNotifications implements NotificationService.ListNotifications.
func (s *NotificationServiceImpl) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	return s.notificationStore.List(ctx)
}

// UpdateNotification implements NotificationService.UpdateNotification.
func (s *NotificationServiceImpl) UpdateNotification(
	ctx context.Context,
	notificationID uuid.UUID,
	update *domain.NotificationUpdate,
) (*domain.Notification, error) {
	if err := update.Validate(); err != nil {
		s.logger.Warn("invalid notification update",
			"error", err,
			"notification_id", notificationID)
		return nil, err
	}

	var updated *domain.Notification
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.notificationStore.WithTx(tx)

		notification, err := txStore.GetByID(ctx, notificationID)
		if err != nil {
			return err
		}

		update.Apply(notification)
		notification.UpdatedAt = time.Now().UTC()
		if err := notification.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, notification); err != nil {
			return err
		}

		updated = notification
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update notification",
			"error", err,
			"notification_id", notificationID)
		return nil, err
	}

	s.logger.Info("notification updated", "notification_id", notificationID)
	return updated, nil
}

// DeleteNotification implements NotificationService.DeleteNotification.
func (s *NotificationServiceImpl) DeleteNotification(ctx context.Context, notificationID uuid.UUID) error {
	if err := s.notificationStore.Delete(ctx, notificationID); err != nil {
		s.logger.Error("failed to delete notification",
			"error", err,
			"notification_id", notificationID)
		return err
	}

	s.logger.Info("notification deleted", "notification_id", notificationID)
	return nil
}
