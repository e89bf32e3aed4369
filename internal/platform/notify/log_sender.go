// Package notify provides delivery channels for notifications that have
// no external provider: email and in-app messages are recorded through
// structured logging until a real provider is wired in.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/salonworks/booking-api/internal/domain"
)

// LogSender implements service.Sender by writing the delivery to the
// structured log. Useful for the in_app channel and for local
// development of the email channel.
type LogSender struct {
	channel string
	logger  *slog.Logger
}

// NewLogSender creates a LogSender labeled with the channel it stands in
// for.
func NewLogSender(channel string, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{
		channel: channel,
		logger:  logger.With(slog.String("component", "log_sender"), slog.String("channel", channel)),
	}
}

// Send records the notification in the log and reports success.
func (s *LogSender) Send(ctx context.Context, notification *domain.Notification) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	subject := ""
	if notification.Subject != nil {
		subject = *notification.Subject
	}

	s.logger.InfoContext(ctx, "delivering notification",
		"notification_id", notification.ID,
		"user_id", notification.UserID,
		"subject", subject,
		"message", notification.Message)

	return fmt.Sprintf("logged to %s channel", s.channel), nil
}
