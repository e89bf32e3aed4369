package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// NotificationType is the delivery channel of a notification.
type NotificationType string

// Possible notification types.
const (
	NotificationTypeEmail NotificationType = "email"
	NotificationTypeSMS   NotificationType = "sms"
	NotificationTypeInApp NotificationType = "in_app"
)

// NotificationStatus is the delivery state of a notification.
type NotificationStatus string

// Possible notification status values.
const (
	NotificationStatusPending NotificationStatus = "pending"
	NotificationStatusSent    NotificationStatus = "sent"
	NotificationStatusFailed  NotificationStatus = "failed"
)

// NotificationPriority orders dispatch when multiple notifications are due.
type NotificationPriority string

// Possible notification priorities.
const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityMedium NotificationPriority = "medium"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Common validation errors for Notification.
var (
	ErrEmptyNotificationID       = errors.New("notification ID cannot be empty")
	ErrInvalidNotificationType   = errors.New("type must be one of the following: email, sms, in_app")
	ErrInvalidNotificationStatus = errors.New("status must be one of the following: pending, sent, failed")
	ErrInvalidPriority           = errors.New("priority must be one of the following: low, medium, high")
	ErrEmptyMessage              = errors.New("message is required")
	ErrMessageTooLong            = errors.New("message must be no greater than 500 characters long")
	ErrSubjectTooLong            = errors.New("subject must be no greater than 50 characters long")
	ErrResponseTooLong           = errors.New("response must be no greater than 500 characters long")
	ErrMissingScheduledSendAt    = errors.New("scheduled_send_at is required")
	ErrEmptyNotificationUserID   = errors.New("notification user ID cannot be empty")
)

const (
	maxSubjectLen  = 50
	maxMessageLen  = 500
	maxResponseLen = 500
)

// Notification represents a message or alert to be delivered to a user,
// usually about an appointment: booking confirmations, reminders, and
// account activity.
type Notification struct {
	ID      uuid.UUID          `json:"id"`
	Type    NotificationType   `json:"type"`
	Status  NotificationStatus `json:"status"`
	Subject *string            `json:"subject,omitempty"`
	Message string             `json:"message"`
	// ScheduledSendAt is when the dispatcher should deliver the message.
	ScheduledSendAt time.Time `json:"scheduled_send_at"`
	// ActualSentAt is set once delivery has been attempted successfully.
	ActualSentAt *time.Time           `json:"actual_sent_at,omitempty"`
	Priority     NotificationPriority `json:"priority"`
	// ChannelInfo holds channel-specific delivery data, e.g. the phone
	// number for SMS or sender address for email.
	ChannelInfo json.RawMessage `json:"channel_info,omitempty"`
	// Response records what the delivery provider returned, useful when
	// debugging failed sends.
	Response      *string    `json:"response,omitempty"`
	UserID        uuid.UUID  `json:"user_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// NewNotification creates a new pending Notification with a generated ID
// and UTC timestamps. Returns a validation error if any field rule fails.
func NewNotification(
	userID uuid.UUID,
	typ NotificationType,
	message string,
	scheduledSendAt time.Time,
	priority NotificationPriority,
) (*Notification, error) {
	now := time.Now().UTC()
	n := &Notification{
		ID:              uuid.New(),
		Type:            typ,
		Status:          NotificationStatusPending,
		Message:         message,
		ScheduledSendAt: scheduledSendAt,
		Priority:        priority,
		UserID:          userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := n.Validate(); err != nil {
		return nil, err
	}

	return n, nil
}

// Validate checks the Notification against create-mode rules.
func (n *Notification) Validate() error {
	if n.ID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyNotificationID)
	}
	if n.CreatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingCreatedAt)
	}
	if n.UpdatedAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingUpdatedAt)
	}
	if err := ValidateNotificationType(n.Type); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateNotificationStatus(n.Status); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateNotificationPriority(n.Priority); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := ValidateNotificationMessage(n.Message); err != nil {
		return fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if n.Subject != nil && len(*n.Subject) > maxSubjectLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrSubjectTooLong)
	}
	if n.Response != nil && len(*n.Response) > maxResponseLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrResponseTooLong)
	}
	if n.ScheduledSendAt.IsZero() {
		return fmt.Errorf("%w: %w", ErrValidation, ErrMissingScheduledSendAt)
	}
	if n.UserID == uuid.Nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrEmptyNotificationUserID)
	}
	return nil
}

// NotificationUpdate carries the mutable Notification fields for a partial
// update. Nil fields are left untouched.
type NotificationUpdate struct {
	ID              *uuid.UUID            `json:"id,omitempty"`
	Type            *NotificationType     `json:"type,omitempty"`
	Status          *NotificationStatus   `json:"status,omitempty"`
	Subject         *string               `json:"subject,omitempty"`
	Message         *string               `json:"message,omitempty"`
	ScheduledSendAt *time.Time            `json:"scheduled_send_at,omitempty"`
	ActualSentAt    *time.Time            `json:"actual_sent_at,omitempty"`
	Priority        *NotificationPriority `json:"priority,omitempty"`
	ChannelInfo     json.RawMessage       `json:"channel_info,omitempty"`
	Response        *string               `json:"response,omitempty"`
}

// Validate checks the update payload against update-mode rules.
func (p *NotificationUpdate) Validate() error {
	if p.ID != nil {
		return fmt.Errorf("%w: %w", ErrValidation, ErrIDImmutable)
	}
	if p.Type != nil {
		if err := ValidateNotificationType(*p.Type); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Status != nil {
		if err := ValidateNotificationStatus(*p.Status); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Priority != nil {
		if err := ValidateNotificationPriority(*p.Priority); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Message != nil {
		if err := ValidateNotificationMessage(*p.Message); err != nil {
			return fmt.Errorf("%w: %w", ErrValidation, err)
		}
	}
	if p.Subject != nil && len(*p.Subject) > maxSubjectLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrSubjectTooLong)
	}
	if p.Response != nil && len(*p.Response) > maxResponseLen {
		return fmt.Errorf("%w: %w", ErrValidation, ErrResponseTooLong)
	}
	return nil
}

// Apply overwrites the notification's fields with the non-nil fields of
// the update.
func (p *NotificationUpdate) Apply(n *Notification) {
	if p.Type != nil {
		n.Type = *p.Type
	}
	if p.Status != nil {
		n.Status = *p.Status
	}
	if p.Subject != nil {
		n.Subject = p.Subject
	}
	if p.Message != nil {
		n.Message = *p.Message
	}
	if p.ScheduledSendAt != nil {
		n.ScheduledSendAt = *p.ScheduledSendAt
	}
	if p.ActualSentAt != nil {
		n.ActualSentAt = p.ActualSentAt
	}
	if p.Priority != nil {
		n.Priority = *p.Priority
	}
	if p.ChannelInfo != nil {
		n.ChannelInfo = p.ChannelInfo
	}
	if p.Response != nil {
		n.Response = p.Response
	}
}

// MarkSent records a successful delivery attempt. The provider response
// is truncated so the outcome always fits the response column.
func (n *Notification) MarkSent(at time.Time, response string) {
	response = truncateResponse(response)
	n.Status = NotificationStatusSent
	n.ActualSentAt = &at
	n.Response = &response
	n.UpdatedAt = time.Now().UTC()
}

// MarkFailed records a failed delivery attempt. The provider response
// is truncated so the outcome always fits the response column.
func (n *Notification) MarkFailed(response string) {
	response = truncateResponse(response)
	n.Status = NotificationStatusFailed
	n.Response = &response
	n.UpdatedAt = time.Now().UTC()
}

func truncateResponse(response string) string {
	if len(response) > maxResponseLen {
		return response[:maxResponseLen]
	}
	return response
}

// ValidateNotificationType checks the type against the closed set.
func ValidateNotificationType(typ NotificationType) error {
	switch typ {
	case NotificationTypeEmail, NotificationTypeSMS, NotificationTypeInApp:
		return nil
	default:
		return ErrInvalidNotificationType
	}
}

// ValidateNotificationStatus checks the status against the closed set.
func ValidateNotificationStatus(status NotificationStatus) error {
	switch status {
	case NotificationStatusPending, NotificationStatusSent, NotificationStatusFailed:
		return nil
	default:
		return ErrInvalidNotificationStatus
	}
}

// ValidateNotificationPriority checks the priority against the closed set.
func ValidateNotificationPriority(priority NotificationPriority) error {
	switch priority {
	case NotificationPriorityLow, NotificationPriorityMedium, NotificationPriorityHigh:
		return nil
	default:
		return ErrInvalidPriority
	}
}

// ValidateNotificationMessage checks the message length bounds.
func ValidateNotificationMessage(message string) error {
	if message == "" {
		return ErrEmptyMessage
	}
	if len(message) > maxMessageLen {
		return ErrMessageTooLong
	}
	return nil
}
