package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/platform/logger"
	"github.com/salonworks/booking-api/internal/store"
)

// NotificationStore implements store.NotificationStore using PostgreSQL.
type NotificationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewNotificationStore creates a PostgreSQL implementation of
// store.NotificationStore. If logger is nil, the process default is used.
func NewNotificationStore(db store.DBTX, logger *slog.Logger) *NotificationStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &NotificationStore{
		db:     db,
		logger: logger.With(slog.String("component", "notification_store")),
	}
}

// Ensure NotificationStore implements store.NotificationStore.
var _ store.NotificationStore = (*NotificationStore)(nil)

// WithTx implements store.NotificationStore.WithTx.
func (s *NotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return &NotificationStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.NotificationStore.Create.
func (s *NotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during create",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		INSERT INTO notifications (id, type, status, subject, message, scheduled_send_at, actual_sent_at, priority, channel_info, response, user_id, appointment_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		notification.ID,
		notification.Type,
		notification.Status,
		notification.Subject,
		notification.Message,
		notification.ScheduledSendAt,
		notification.ActualSentAt,
		notification.Priority,
		[]byte(notification.ChannelInfo),
		notification.Response,
		notification.UserID,
		notification.AppointmentID,
		notification.CreatedAt,
		notification.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrInvalidEntity) {
			log.Warn("foreign key violation during notification creation",
				slog.String("error", err.Error()),
				slog.String("user_id", notification.UserID.String()))
		} else {
			log.Error("failed to create notification",
				slog.String("error", err.Error()),
				slog.String("notification_id", notification.ID.String()))
		}
		return mapped
	}

	log.Info("notification created successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("user_id", notification.UserID.String()),
		slog.String("type", string(notification.Type)))
	return nil
}

const notificationColumns = `id, type, status, subject, message, scheduled_send_at, actual_sent_at, priority, channel_info, response, user_id, appointment_id, created_at, updated_at`

// GetByID implements store.NotificationStore.GetByID.
func (s *NotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM notifications WHERE id = $1`, notificationColumns)
	row := s.db.QueryRowContext(ctx, query, id)

	notification, err := scanNotification(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotificationNotFound
		}
		log.Error("failed to get notification by ID",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return nil, MapError(err)
	}

	return notification, nil
}

// List implements store.NotificationStore.List.
func (s *NotificationStore) List(ctx context.Context) ([]*domain.Notification, error) {
	query := fmt.Sprintf(`SELECT %s FROM notifications ORDER BY scheduled_send_at DESC`, notificationColumns)
	return s.queryMany(ctx, query)
}

// ListDue implements store.NotificationStore.ListDue. Priority ordering
// uses the closed low/medium/high set.
func (s *NotificationStore) ListDue(ctx context.Context, before time.Time, limit int) ([]*domain.Notification, error) {
	if limit <= 0 {
		limit = 50
	}

	query := fmt.Sprintf(`
		SELECT %s FROM notifications
		WHERE status = $1 AND scheduled_send_at <= $2
		ORDER BY CASE priority WHEN 'high' THEN 0 WHEN 'medium' THEN 1 ELSE 2 END,
		         scheduled_send_at
		LIMIT $3
	`, notificationColumns)

	return s.queryMany(ctx, query, domain.NotificationStatusPending, before, limit)
}

func (s *NotificationStore) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Notification, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query notifications", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	notifications := []*domain.Notification{}
	for rows.Next() {
		notification, err := scanNotification(rows.Scan)
		if err != nil {
			log.Error("failed to scan notification row", slog.String("error", err.Error()))
			return nil, err
		}
		notifications = append(notifications, notification)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning notification rows", slog.String("error", err.Error()))
		return nil, err
	}

	return notifications, nil
}

// Update implements store.NotificationStore.Update. The user foreign key
// is fixed at creation and deliberately excluded from the statement.
func (s *NotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := notification.Validate(); err != nil {
		log.Warn("notification validation failed during update",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return err
	}

	query := `
		UPDATE notifications
		SET type = $1, status = $2, subject = $3, message = $4, scheduled_send_at = $5,
		    actual_sent_at = $6, priority = $7, channel_info = $8, response = $9, updated_at = $10
		WHERE id = $11
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		notification.Type,
		notification.Status,
		notification.Subject,
		notification.Message,
		notification.ScheduledSendAt,
		notification.ActualSentAt,
		notification.Priority,
		[]byte(notification.ChannelInfo),
		notification.Response,
		notification.UpdatedAt,
		notification.ID,
	)

	if err != nil {
		log.Error("failed to update notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", notification.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNotificationNotFound); err != nil {
		return err
	}

	log.Info("notification updated successfully",
		slog.String("notification_id", notification.ID.String()),
		slog.String("status", string(notification.Status)))
	return nil
}

// Delete implements store.NotificationStore.Delete.
func (s *NotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete notification",
			slog.String("error", err.Error()),
			slog.String("notification_id", id.String()))
		return MapDeleteError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNotificationNotFound); err != nil {
		return err
	}

	log.Info("notification deleted successfully", slog.String("notification_id", id.String()))
	return nil
}

// scanNotification builds a domain.Notification from a row scan function.
func scanNotification(scan func(dest ...any) error) (*domain.Notification, error) {
	var (
		notification  domain.Notification
		typ           string
		status        string
		priority      string
		subject       sql.NullString
		actualSentAt  sql.NullTime
		channelInfo   []byte
		response      sql.NullString
		appointmentID uuid.NullUUID
	)

	err := scan(
		&notification.ID,
		&typ,
		&status,
		&subject,
		&notification.Message,
		&notification.ScheduledSendAt,
		&actualSentAt,
		&priority,
		&channelInfo,
		&response,
		&notification.UserID,
		&appointmentID,
		&notification.CreatedAt,
		&notification.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	notification.Type = domain.NotificationType(typ)
	notification.Status = domain.NotificationStatus(status)
	notification.Priority = domain.NotificationPriority(priority)
	if subject.Valid {
		notification.Subject = &subject.String
	}
	if actualSentAt.Valid {
		sentAt := actualSentAt.Time
		notification.ActualSentAt = &sentAt
	}
	if len(channelInfo) > 0 {
		notification.ChannelInfo = channelInfo
	}
	if response.Valid {
		notification.Response = &response.String
	}
	if appointmentID.Valid {
		id := appointmentID.UUID
		notification.AppointmentID = &id
	}

	return &notification, nil
}
